package domain_test

import (
	"strings"
	"testing"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/pkg/derivation"
	"github.com/stretchr/testify/require"
)

var (
	owner       = strings.Repeat("11", 32)
	guardian    = strings.Repeat("22", 32)
	newGuardian = strings.Repeat("33", 32)
)

func TestNewWallet(t *testing.T) {
	t.Parallel()

	wallet, err := domain.NewWallet(owner, guardian)
	require.NoError(t, err)
	require.NotNil(t, wallet)
	require.Equal(t, owner, wallet.Owner)
	require.Equal(t, guardian, wallet.Guardian)
	require.Equal(t, domain.WalletStatusActive, wallet.Status)
	require.True(t, wallet.IsActive())
	require.True(t, wallet.RotatedAt.IsZero())

	// The address is re-derivable from the owner identity alone.
	expected, bump, err := derivation.Derive(
		derivation.WalletNamespace, domain.PubKeyBytes(owner),
	)
	require.NoError(t, err)
	require.Equal(t, expected, wallet.Address)
	require.Equal(t, bump, wallet.Bump)
}

func TestFailingNewWallet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		owner         string
		guardian      string
		expectedError error
	}{
		{
			name:          "zero_owner",
			owner:         domain.ZeroPubKey,
			guardian:      guardian,
			expectedError: domain.ErrInvalidPubKey,
		},
		{
			name:          "zero_guardian",
			owner:         owner,
			guardian:      domain.ZeroPubKey,
			expectedError: domain.ErrInvalidPubKey,
		},
		{
			name:          "guardian_equals_owner",
			owner:         owner,
			guardian:      owner,
			expectedError: domain.ErrGuardianCannotBeOwner,
		},
		{
			name:          "malformed_owner",
			owner:         "xyz",
			guardian:      guardian,
			expectedError: domain.ErrInvalidPubKey,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewWallet(tt.owner, tt.guardian)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}

func TestRotateGuardian(t *testing.T) {
	t.Parallel()

	wallet, err := domain.NewWallet(owner, guardian)
	require.NoError(t, err)

	err = wallet.RotateGuardian(newGuardian)
	require.NoError(t, err)
	require.Equal(t, newGuardian, wallet.Guardian)
	require.False(t, wallet.RotatedAt.IsZero())

	err = wallet.RotateGuardian(owner)
	require.EqualError(t, err, domain.ErrGuardianCannotBeOwner.Error())

	err = wallet.RotateGuardian(domain.ZeroPubKey)
	require.EqualError(t, err, domain.ErrInvalidPubKey.Error())
}

func TestCloseWallet(t *testing.T) {
	t.Parallel()

	wallet, err := domain.NewWallet(owner, guardian)
	require.NoError(t, err)

	require.NoError(t, wallet.Close())
	require.False(t, wallet.IsActive())

	err = wallet.Close()
	require.EqualError(t, err, domain.ErrWalletClosed.Error())

	err = wallet.RotateGuardian(newGuardian)
	require.EqualError(t, err, domain.ErrWalletClosed.Error())
}
