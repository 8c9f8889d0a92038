package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
	"github.com/custodia-network/custodia-daemon/pkg/derivation"
)

// WalletService manages the owner/guardian binding records.
type WalletService interface {
	CreateWallet(ctx context.Context, req CreateWalletReq) (*WalletInfo, error)
	RotateGuardian(ctx context.Context, req RotateGuardianReq) (*WalletInfo, error)
	CloseWallet(ctx context.Context, req CloseWalletReq) error
	GetWallet(ctx context.Context, address string) (*WalletInfo, error)
}

// CreateWalletReq ...
type CreateWalletReq struct {
	Owner    string
	Guardian string
	Signers  Signers
}

// RotateGuardianReq carries an emergency guardian rotation: both the
// current owner and the current guardian must have signed.
type RotateGuardianReq struct {
	Owner       string
	NewGuardian string
	Signers     Signers
}

// CloseWalletReq ...
type CloseWalletReq struct {
	Owner   string
	Signers Signers
}

type walletService struct {
	repoManager ports.RepoManager
	pubsub      ports.SecurePubSub
}

// NewWalletService ...
func NewWalletService(
	repoManager ports.RepoManager, pubsub ports.SecurePubSub,
) WalletService {
	return &walletService{repoManager: repoManager, pubsub: pubsub}
}

func (s *walletService) CreateWallet(
	ctx context.Context, req CreateWalletReq,
) (*WalletInfo, error) {
	if err := runChecks(check{
		ok:  func() bool { return req.Signers.Contains(req.Owner) },
		err: ErrOwnerSignatureRequired,
	}); err != nil {
		return nil, err
	}

	wallet, err := domain.NewWallet(req.Owner, req.Guardian)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.WalletRepository().AddWallet(ctx, wallet); err != nil {
		return nil, err
	}

	return walletInfo(wallet), nil
}

func (s *walletService) RotateGuardian(
	ctx context.Context, req RotateGuardianReq,
) (*WalletInfo, error) {
	walletAddress, _, err := derivation.Derive(
		derivation.WalletNamespace, domain.PubKeyBytes(req.Owner),
	)
	if err != nil {
		return nil, err
	}

	var rotated *domain.Wallet
	var oldGuardian string
	if err := s.repoManager.WalletRepository().UpdateWallet(
		ctx, walletAddress,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			// The current guardian must co-sign its own replacement.
			if err := runChecks(
				walletBindingChecks(w, req.Owner, req.Signers, true)...,
			); err != nil {
				return nil, err
			}
			oldGuardian = w.Guardian
			if err := w.RotateGuardian(req.NewGuardian); err != nil {
				return nil, err
			}
			rotated = w
			return w, nil
		},
	); err != nil {
		return nil, err
	}

	event := GuardianRotatedEvent{
		ID:          newEventID(),
		Wallet:      rotated.Address,
		Owner:       rotated.Owner,
		OldGuardian: oldGuardian,
		NewGuardian: rotated.Guardian,
		Timestamp:   eventTimestamp(),
	}
	if err := s.pubsub.Publish(TopicGuardianRotated, serialize(event)); err != nil {
		log.WithError(err).Warn("failed to publish guardian rotation event")
	}

	return walletInfo(rotated), nil
}

func (s *walletService) CloseWallet(
	ctx context.Context, req CloseWalletReq,
) error {
	walletAddress, _, err := derivation.Derive(
		derivation.WalletNamespace, domain.PubKeyBytes(req.Owner),
	)
	if err != nil {
		return err
	}

	return s.repoManager.WalletRepository().UpdateWallet(
		ctx, walletAddress,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			if err := runChecks(
				walletBindingChecks(w, req.Owner, req.Signers, true)...,
			); err != nil {
				return nil, err
			}
			if err := w.Close(); err != nil {
				return nil, err
			}
			return w, nil
		},
	)
}

func (s *walletService) GetWallet(
	ctx context.Context, address string,
) (*WalletInfo, error) {
	wallet, err := s.repoManager.WalletRepository().GetWallet(ctx, address)
	if err != nil {
		return nil, err
	}
	return walletInfo(wallet), nil
}
