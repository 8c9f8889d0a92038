package domain_test

import (
	"strings"
	"testing"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/pkg/mathutil"
	"github.com/stretchr/testify/require"
)

var (
	tenantID = strings.Repeat("aa", 32)
	treasury = strings.Repeat("bb", 32)
	admin    = strings.Repeat("cc", 32)
	asset    = strings.Repeat("dd", 32)
)

func TestNewTenantConfig(t *testing.T) {
	t.Parallel()

	tenant, err := domain.NewTenantConfig(tenantID, treasury, admin, 250)
	require.NoError(t, err)
	require.NotNil(t, tenant)
	require.Equal(t, tenantID, tenant.TenantID)
	require.True(t, tenant.IsActive)
	require.Equal(t, uint64(250), tenant.FeeBasisPoints)
	require.Equal(t, domain.TenantConfigVersion, tenant.Version)
	require.Equal(t, domain.DefaultMaxDailyTransactions, tenant.MaxDailyTransactions)
	require.Equal(t, domain.DefaultMaxTransactionAmount, tenant.MaxTransactionAmount)
	require.Equal(t, domain.DefaultMinTransactionAmount, tenant.MinTransactionAmount)
	require.Equal(t, domain.AssetPolicyAllowAll, tenant.AssetPolicy)
	require.False(t, tenant.CreatedAt.IsZero())
	require.True(t, domain.IsValidPubKey(tenant.Address))
}

func TestFailingNewTenantConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		tenantID      string
		treasury      string
		admin         string
		feeBps        uint64
		expectedError error
	}{
		{
			name:          "zero_tenant_id",
			tenantID:      domain.ZeroPubKey,
			treasury:      treasury,
			admin:         admin,
			feeBps:        100,
			expectedError: domain.ErrInvalidTenantID,
		},
		{
			name:          "treasury_equals_admin",
			tenantID:      tenantID,
			treasury:      admin,
			admin:         admin,
			feeBps:        100,
			expectedError: domain.ErrTreasuryCannotBeAdmin,
		},
		{
			name:          "fee_above_cap",
			tenantID:      tenantID,
			treasury:      treasury,
			admin:         admin,
			feeBps:        501,
			expectedError: domain.ErrInvalidFeeRate,
		},
		{
			name:          "malformed_treasury",
			tenantID:      tenantID,
			treasury:      "nothex",
			admin:         admin,
			feeBps:        100,
			expectedError: domain.ErrInvalidPubKey,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewTenantConfig(tt.tenantID, tt.treasury, tt.admin, tt.feeBps)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}

func TestUpdateTreasury(t *testing.T) {
	t.Parallel()

	tenant, err := domain.NewTenantConfig(tenantID, treasury, admin, 0)
	require.NoError(t, err)

	newTreasury := strings.Repeat("ee", 32)
	err = tenant.UpdateTreasury(newTreasury)
	require.NoError(t, err)
	require.Equal(t, newTreasury, tenant.Treasury)

	err = tenant.UpdateTreasury(admin)
	require.EqualError(t, err, domain.ErrTreasuryCannotBeAdmin.Error())

	err = tenant.UpdateTreasury(domain.ZeroPubKey)
	require.EqualError(t, err, domain.ErrInvalidTreasury.Error())
}

func TestUpdateFeeRate(t *testing.T) {
	t.Parallel()

	tenant, err := domain.NewTenantConfig(tenantID, treasury, admin, 0)
	require.NoError(t, err)

	for _, bps := range []uint64{0, 1, 250, 500} {
		require.NoError(t, tenant.UpdateFeeRate(bps))
		require.Equal(t, bps, tenant.FeeBasisPoints)
	}

	err = tenant.UpdateFeeRate(501)
	require.EqualError(t, err, domain.ErrInvalidFeeRate.Error())
	require.LessOrEqual(t, tenant.FeeBasisPoints, domain.MaxFeeBasisPoints)
}

func TestValidateAssetAllowed(t *testing.T) {
	t.Parallel()

	tenant, err := domain.NewTenantConfig(tenantID, treasury, admin, 0)
	require.NoError(t, err)
	require.NoError(t, tenant.ValidateAssetAllowed(asset))

	require.NoError(t, tenant.UpdateAssetPolicy(domain.AssetPolicyBlockAll))
	err = tenant.ValidateAssetAllowed(asset)
	require.EqualError(t, err, domain.ErrAssetNotAllowed.Error())

	// Allowlist has no backing storage and rejects every asset.
	require.NoError(t, tenant.UpdateAssetPolicy(domain.AssetPolicyAllowlist))
	err = tenant.ValidateAssetAllowed(asset)
	require.EqualError(t, err, domain.ErrAssetNotAllowed.Error())

	err = tenant.UpdateAssetPolicy(domain.AssetPolicy(42))
	require.EqualError(t, err, domain.ErrInvalidAssetPolicy.Error())
}

func TestValidateTransactionLimits(t *testing.T) {
	t.Parallel()

	tenant, err := domain.NewTenantConfig(tenantID, treasury, admin, 0)
	require.NoError(t, err)

	require.NoError(t, tenant.ValidateTransactionLimits(domain.DefaultMinTransactionAmount))
	require.NoError(t, tenant.ValidateTransactionLimits(domain.DefaultMaxTransactionAmount))

	err = tenant.ValidateTransactionLimits(domain.DefaultMinTransactionAmount - 1)
	require.EqualError(t, err, domain.ErrAmountTooSmall.Error())

	err = tenant.ValidateTransactionLimits(domain.DefaultMaxTransactionAmount + 1)
	require.EqualError(t, err, domain.ErrAmountTooLarge.Error())
}

func TestCalculateFee(t *testing.T) {
	t.Parallel()

	tenant, err := domain.NewTenantConfig(tenantID, treasury, admin, 250)
	require.NoError(t, err)

	// raw fee ceil(100_000_000 * 250 / 10000) = 2_500_000, inside the
	// clamp bounds.
	fee, err := tenant.CalculateFee(100_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(2_500_000), fee)

	// The fee is always lower than the amount and its effective rate
	// never exceeds the cap.
	for _, amount := range []uint64{
		50_000_000, 300_000_000, 7_777_777_777, 1_000_000_000_000,
	} {
		fee, err := tenant.CalculateFee(amount)
		require.NoError(t, err)
		require.Less(t, fee, amount)
		require.LessOrEqual(t, fee*10000/amount, domain.MaxFeeBasisPoints)
	}
}

func TestCalculateFeeZeroRate(t *testing.T) {
	t.Parallel()

	tenant, err := domain.NewTenantConfig(tenantID, treasury, admin, 0)
	require.NoError(t, err)

	for _, amount := range []uint64{0, 1, 100_000_000, ^uint64(0)} {
		fee, err := tenant.CalculateFee(amount)
		require.NoError(t, err)
		require.Zero(t, fee)
	}
}

func TestFailingCalculateFee(t *testing.T) {
	t.Parallel()

	tenant, err := domain.NewTenantConfig(tenantID, treasury, admin, 250)
	require.NoError(t, err)

	tests := []struct {
		name          string
		amount        uint64
		expectedError error
	}{
		{
			name:          "zero_amount",
			amount:        0,
			expectedError: domain.ErrInvalidAmount,
		},
		{
			name:          "above_max_transaction_amount",
			amount:        domain.DefaultMaxTransactionAmount + 1,
			expectedError: domain.ErrAmountTooLarge,
		},
		{
			// raw fee 25_000 is clamped up to the 1_000_000 floor which
			// equals the amount itself.
			name:          "clamped_fee_swallows_amount",
			amount:        1_000_000,
			expectedError: domain.ErrFeeExceedsAmount,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := tenant.CalculateFee(tt.amount)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}

func TestCalculateFeeOverflowGuard(t *testing.T) {
	t.Parallel()

	tenant, err := domain.NewTenantConfig(tenantID, treasury, admin, 250)
	require.NoError(t, err)
	// Lift the tenant bound so only the overflow guard can trip.
	tenant.MaxTransactionAmount = ^uint64(0)

	_, err = tenant.CalculateFee(mathutil.MaxSafeFeeAmount + 1)
	require.EqualError(t, err, domain.ErrFeeCalculationOverflow.Error())
}
