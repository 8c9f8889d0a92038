package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
)

// TenantService exposes the operations on tenant policy records:
// onboarding by the configured authority, admin-gated updates and
// read-only lookups.
type TenantService interface {
	InitTenant(ctx context.Context, req InitTenantReq) (*TenantInfo, error)
	UpdateTreasury(ctx context.Context, req UpdateTreasuryReq) error
	UpdateFeeRate(ctx context.Context, req UpdateFeeRateReq) error
	UpdateAssetPolicy(ctx context.Context, req UpdateAssetPolicyReq) error
	GetTenant(ctx context.Context, tenantID string) (*TenantInfo, error)
	ListTenants(ctx context.Context) ([]TenantInfo, error)
}

// InitTenantReq ...
type InitTenantReq struct {
	TenantID       string
	Treasury       string
	Admin          string
	FeeBasisPoints uint64
	Signers        Signers
}

// UpdateTreasuryReq ...
type UpdateTreasuryReq struct {
	TenantID    string
	NewTreasury string
	Signers     Signers
}

// UpdateFeeRateReq ...
type UpdateFeeRateReq struct {
	TenantID          string
	NewFeeBasisPoints uint64
	Signers           Signers
}

// UpdateAssetPolicyReq ...
type UpdateAssetPolicyReq struct {
	TenantID  string
	NewPolicy domain.AssetPolicy
	Signers   Signers
}

type tenantService struct {
	repoManager         ports.RepoManager
	pubsub              ports.SecurePubSub
	onboardingAuthority string
}

// NewTenantService returns a TenantService backed by the given
// repositories. Only onboardingAuthority can create new tenants.
func NewTenantService(
	repoManager ports.RepoManager,
	pubsub ports.SecurePubSub,
	onboardingAuthority string,
) TenantService {
	return &tenantService{
		repoManager:         repoManager,
		pubsub:              pubsub,
		onboardingAuthority: onboardingAuthority,
	}
}

func (s *tenantService) InitTenant(
	ctx context.Context, req InitTenantReq,
) (*TenantInfo, error) {
	if err := runChecks(check{
		ok:  func() bool { return req.Signers.Contains(s.onboardingAuthority) },
		err: ErrAuthoritySignatureRequired,
	}); err != nil {
		return nil, err
	}

	tenant, err := domain.NewTenantConfig(
		req.TenantID, req.Treasury, req.Admin, req.FeeBasisPoints,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.TenantRepository().AddTenant(ctx, tenant); err != nil {
		return nil, err
	}

	s.publishTenantEvent(tenant.TenantID, "initialized")
	return tenantInfo(tenant), nil
}

func (s *tenantService) UpdateTreasury(
	ctx context.Context, req UpdateTreasuryReq,
) error {
	if err := s.updateTenant(ctx, req.TenantID, req.Signers,
		func(t *domain.TenantConfig) error {
			return t.UpdateTreasury(req.NewTreasury)
		},
	); err != nil {
		return err
	}
	s.publishTenantEvent(req.TenantID, "treasury_updated")
	return nil
}

func (s *tenantService) UpdateFeeRate(
	ctx context.Context, req UpdateFeeRateReq,
) error {
	if err := s.updateTenant(ctx, req.TenantID, req.Signers,
		func(t *domain.TenantConfig) error {
			return t.UpdateFeeRate(req.NewFeeBasisPoints)
		},
	); err != nil {
		return err
	}
	s.publishTenantEvent(req.TenantID, "fee_rate_updated")
	return nil
}

func (s *tenantService) UpdateAssetPolicy(
	ctx context.Context, req UpdateAssetPolicyReq,
) error {
	if err := s.updateTenant(ctx, req.TenantID, req.Signers,
		func(t *domain.TenantConfig) error {
			return t.UpdateAssetPolicy(req.NewPolicy)
		},
	); err != nil {
		return err
	}
	s.publishTenantEvent(req.TenantID, "asset_policy_updated")
	return nil
}

func (s *tenantService) GetTenant(
	ctx context.Context, tenantID string,
) (*TenantInfo, error) {
	tenant, err := s.repoManager.TenantRepository().GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return tenantInfo(tenant), nil
}

func (s *tenantService) ListTenants(ctx context.Context) ([]TenantInfo, error) {
	tenants, err := s.repoManager.TenantRepository().GetAllTenants(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]TenantInfo, 0, len(tenants))
	for i := range tenants {
		infos = append(infos, *tenantInfo(&tenants[i]))
	}
	return infos, nil
}

// updateTenant runs the admin gate and applies the mutation inside the
// repository's atomic update closure.
func (s *tenantService) updateTenant(
	ctx context.Context, tenantID string, signers Signers,
	mutate func(t *domain.TenantConfig) error,
) error {
	return s.repoManager.TenantRepository().UpdateTenant(
		ctx, tenantID,
		func(t *domain.TenantConfig) (*domain.TenantConfig, error) {
			if err := runChecks(adminChecks(t, signers)...); err != nil {
				return nil, err
			}
			if err := mutate(t); err != nil {
				return nil, err
			}
			return t, nil
		},
	)
}

func (s *tenantService) publishTenantEvent(tenantID, change string) {
	event := TenantUpdatedEvent{
		ID:        newEventID(),
		TenantID:  tenantID,
		Change:    change,
		Timestamp: eventTimestamp(),
	}
	if err := s.pubsub.Publish(TopicTenantUpdated, serialize(event)); err != nil {
		log.WithError(err).Warn("failed to publish tenant event")
	}
}
