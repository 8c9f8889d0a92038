package domain

import (
	"time"

	"github.com/custodia-network/custodia-daemon/pkg/derivation"
	"github.com/custodia-network/custodia-daemon/pkg/mathutil"
)

const (
	// MaxFeeBasisPoints is the hard cap on tenant fee rates (5%),
	// enforced regardless of who sets the rate.
	MaxFeeBasisPoints = uint64(500)

	// MinFeeAmount is the absolute floor of any non-zero fee, expressed
	// in the asset's base unit.
	MinFeeAmount = uint64(1_000_000)
	// MaxFeeAmount is the absolute ceiling of any fee.
	MaxFeeAmount = uint64(100_000_000)

	// DefaultMaxDailyTransactions ...
	DefaultMaxDailyTransactions = uint16(500)
	// DefaultMaxTransactionAmount ...
	DefaultMaxTransactionAmount = uint64(1_000_000_000_000)
	// DefaultMinTransactionAmount ...
	DefaultMinTransactionAmount = uint64(50_000_000)

	// TenantConfigVersion is the current schema version stamped on new
	// tenant configs.
	TenantConfigVersion = uint8(1)
)

// TenantConfig is the per-tenant policy record: fee rate, transaction
// bounds, asset policy and administrative identities. It is created once
// by the onboarding authority and mutated only by its admin.
type TenantConfig struct {
	TenantID             string
	Address              string
	Bump                 uint8
	Treasury             string
	Admin                string
	FeeBasisPoints       uint64
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Version              uint8
	MaxDailyTransactions uint16
	MaxTransactionAmount uint64
	MinTransactionAmount uint64
	AssetPolicy          AssetPolicy
}

// NewTenantConfig returns an active tenant config with default limits
// and the AllowAll asset policy.
func NewTenantConfig(
	tenantID, treasury, admin string, feeBasisPoints uint64,
) (*TenantConfig, error) {
	if !IsValidPubKey(tenantID) || IsZeroPubKey(tenantID) {
		return nil, ErrInvalidTenantID
	}
	if !IsValidPubKey(treasury) || !IsValidPubKey(admin) {
		return nil, ErrInvalidPubKey
	}
	if treasury == admin {
		return nil, ErrTreasuryCannotBeAdmin
	}
	if feeBasisPoints > MaxFeeBasisPoints {
		return nil, ErrInvalidFeeRate
	}

	address, bump, err := derivation.Derive(
		derivation.TenantNamespace, PubKeyBytes(tenantID),
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &TenantConfig{
		TenantID:             tenantID,
		Address:              address,
		Bump:                 bump,
		Treasury:             treasury,
		Admin:                admin,
		FeeBasisPoints:       feeBasisPoints,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
		Version:              TenantConfigVersion,
		MaxDailyTransactions: DefaultMaxDailyTransactions,
		MaxTransactionAmount: DefaultMaxTransactionAmount,
		MinTransactionAmount: DefaultMinTransactionAmount,
		AssetPolicy:          AssetPolicyAllowAll,
	}, nil
}

// UpdateTreasury changes the treasury identity.
func (t *TenantConfig) UpdateTreasury(newTreasury string) error {
	if !IsValidPubKey(newTreasury) || IsZeroPubKey(newTreasury) {
		return ErrInvalidTreasury
	}
	if newTreasury == t.Admin {
		return ErrTreasuryCannotBeAdmin
	}

	t.Treasury = newTreasury
	t.UpdatedAt = time.Now()
	return nil
}

// UpdateFeeRate changes the fee rate, always within the hard cap.
func (t *TenantConfig) UpdateFeeRate(newFeeBasisPoints uint64) error {
	if newFeeBasisPoints > MaxFeeBasisPoints {
		return ErrInvalidFeeRate
	}

	t.FeeBasisPoints = newFeeBasisPoints
	t.UpdatedAt = time.Now()
	return nil
}

// UpdateAssetPolicy changes the asset policy.
func (t *TenantConfig) UpdateAssetPolicy(newPolicy AssetPolicy) error {
	if !newPolicy.IsValid() {
		return ErrInvalidAssetPolicy
	}

	t.AssetPolicy = newPolicy
	t.UpdatedAt = time.Now()
	return nil
}

// ValidateAssetAllowed is the read-only gate consulted by every vault
// operation.
func (t *TenantConfig) ValidateAssetAllowed(asset string) error {
	switch t.AssetPolicy {
	case AssetPolicyAllowAll:
		return nil
	case AssetPolicyBlockAll:
		return ErrAssetNotAllowed
	default:
		// Allowlist has no backing storage yet and rejects every asset.
		return ErrAssetNotAllowed
	}
}

// ValidateTransactionLimits checks an amount against the tenant's
// min/max transaction bounds.
func (t *TenantConfig) ValidateTransactionLimits(amount uint64) error {
	if amount < t.MinTransactionAmount {
		return ErrAmountTooSmall
	}
	if amount > t.MaxTransactionAmount {
		return ErrAmountTooLarge
	}
	return nil
}

// CalculateFee computes the fee for the given amount with checked
// arithmetic and ceiling rounding, clamped into
// [MinFeeAmount, MaxFeeAmount]. The clamped fee must stay below the
// amount and its effective rate below the hard cap.
func (t *TenantConfig) CalculateFee(amount uint64) (uint64, error) {
	if t.FeeBasisPoints == 0 {
		return 0, nil
	}

	if amount == 0 {
		return 0, ErrInvalidAmount
	}
	if amount > t.MaxTransactionAmount {
		return 0, ErrAmountTooLarge
	}
	if amount > mathutil.MaxSafeFeeAmount {
		return 0, ErrFeeCalculationOverflow
	}

	scaled, err := mathutil.CheckedMul(amount, t.FeeBasisPoints)
	if err != nil {
		return 0, ErrFeeCalculationOverflow
	}
	rounded, err := mathutil.CheckedAdd(scaled, mathutil.TenThousands-1)
	if err != nil {
		return 0, ErrFeeCalculationOverflow
	}
	rawFee, err := mathutil.CheckedDiv(rounded, mathutil.TenThousands)
	if err != nil {
		return 0, ErrFeeCalculationOverflow
	}

	fee := mathutil.Clamp(rawFee, MinFeeAmount, MaxFeeAmount)
	if fee >= amount {
		return 0, ErrFeeExceedsAmount
	}

	// The clamp must not silently push the effective rate above the cap.
	scaledFee, err := mathutil.CheckedMul(fee, mathutil.TenThousands)
	if err != nil {
		return 0, ErrFeeCalculationOverflow
	}
	feeRatio, err := mathutil.CheckedDiv(scaledFee, amount)
	if err != nil {
		return 0, ErrFeeCalculationOverflow
	}
	if feeRatio > MaxFeeBasisPoints {
		return 0, ErrInvalidFeeRate
	}

	return fee, nil
}
