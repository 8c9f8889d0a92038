package derivation_test

import (
	"testing"

	"github.com/custodia-network/custodia-daemon/pkg/derivation"
	"github.com/stretchr/testify/require"
)

var (
	owner = []byte("6f776e65726f776e65726f776e65726f776e65726f776e65726f776e65726f77")
	asset = []byte("6173736574617373657461737365746173736574617373657461737365746173")
)

func TestDeriveIsDeterministic(t *testing.T) {
	t.Parallel()

	addr1, bump1, err := derivation.Derive(derivation.WalletNamespace, owner)
	require.NoError(t, err)
	require.True(t, derivation.IsValidAddress(addr1))

	addr2, bump2, err := derivation.Derive(derivation.WalletNamespace, owner)
	require.NoError(t, err)
	require.Equal(t, addr1, addr2)
	require.Equal(t, bump1, bump2)
}

func TestDeriveDistinctAcrossNamespaces(t *testing.T) {
	t.Parallel()

	walletAddr, _, err := derivation.Derive(derivation.WalletNamespace, owner)
	require.NoError(t, err)
	vaultAddr, _, err := derivation.Derive(derivation.VaultNamespace, owner)
	require.NoError(t, err)
	require.NotEqual(t, walletAddr, vaultAddr)
}

func TestDeriveDistinctAcrossSeeds(t *testing.T) {
	t.Parallel()

	addr1, _, err := derivation.Derive(derivation.VaultNamespace, owner, asset)
	require.NoError(t, err)
	addr2, _, err := derivation.Derive(derivation.VaultNamespace, asset, owner)
	require.NoError(t, err)
	require.NotEqual(t, addr1, addr2)
}

func TestDeriveWithBump(t *testing.T) {
	t.Parallel()

	addr, bump, err := derivation.Derive(derivation.VaultNamespace, owner, asset)
	require.NoError(t, err)

	recomputed, err := derivation.DeriveWithBump(
		derivation.VaultNamespace, bump, owner, asset,
	)
	require.NoError(t, err)
	require.Equal(t, addr, recomputed)
}

func TestIsValidAddress(t *testing.T) {
	t.Parallel()

	addr, _, err := derivation.Derive(derivation.TenantNamespace, owner)
	require.NoError(t, err)
	require.True(t, derivation.IsValidAddress(addr))
	require.False(t, derivation.IsValidAddress("notanaddress"))
	require.False(t, derivation.IsValidAddress("abcd"))
}
