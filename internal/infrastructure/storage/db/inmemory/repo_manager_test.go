package inmemory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/internal/infrastructure/storage/db/inmemory"
)

var (
	owner    = strings.Repeat("11", 32)
	guardian = strings.Repeat("22", 32)
	asset    = strings.Repeat("dd", 32)
	tenantID = strings.Repeat("01", 32)
	treasury = strings.Repeat("bb", 32)
	admin    = strings.Repeat("cc", 32)
)

func TestWalletRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := inmemory.NewRepoManager().WalletRepository()

	wallet, err := domain.NewWallet(owner, guardian)
	require.NoError(t, err)

	_, err = repo.GetWallet(ctx, wallet.Address)
	require.ErrorIs(t, err, domain.ErrWalletNotFound)

	require.NoError(t, repo.AddWallet(ctx, wallet))
	require.ErrorIs(t, repo.AddWallet(ctx, wallet), domain.ErrWalletAlreadyExists)

	found, err := repo.GetWallet(ctx, wallet.Address)
	require.NoError(t, err)
	require.Equal(t, wallet.Owner, found.Owner)

	err = repo.UpdateWallet(ctx, wallet.Address,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			if err := w.Close(); err != nil {
				return nil, err
			}
			return w, nil
		},
	)
	require.NoError(t, err)

	closed, err := repo.GetWallet(ctx, wallet.Address)
	require.NoError(t, err)
	require.Equal(t, domain.WalletStatusClosed, closed.Status)

	all, err := repo.GetAllWallets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestTenantRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := inmemory.NewRepoManager().TenantRepository()

	tenant, err := domain.NewTenantConfig(tenantID, treasury, admin, 250)
	require.NoError(t, err)

	_, err = repo.GetTenant(ctx, tenantID)
	require.ErrorIs(t, err, domain.ErrTenantNotFound)

	require.NoError(t, repo.AddTenant(ctx, tenant))
	require.ErrorIs(t, repo.AddTenant(ctx, tenant), domain.ErrTenantAlreadyExists)

	err = repo.UpdateTenant(ctx, tenantID,
		func(tc *domain.TenantConfig) (*domain.TenantConfig, error) {
			if err := tc.UpdateFeeRate(100); err != nil {
				return nil, err
			}
			return tc, nil
		},
	)
	require.NoError(t, err)

	updated, err := repo.GetTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Equal(t, uint64(100), updated.FeeBasisPoints)
}

func TestVaultRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := inmemory.NewRepoManager().VaultRepository()

	wallet, err := domain.NewWallet(owner, guardian)
	require.NoError(t, err)
	vault, err := domain.NewVault(wallet.Address, asset)
	require.NoError(t, err)

	require.NoError(t, repo.AddVault(ctx, vault))
	require.ErrorIs(t, repo.AddVault(ctx, vault), domain.ErrVaultAlreadyExists)

	forWallet, err := repo.GetVaultsForWallet(ctx, wallet.Address)
	require.NoError(t, err)
	require.Len(t, forWallet, 1)

	forOther, err := repo.GetVaultsForWallet(ctx, treasury)
	require.NoError(t, err)
	require.Empty(t, forOther)

	err = repo.UpdateVault(ctx, vault.Address,
		func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.RecordDeposit(1000); err != nil {
				return nil, err
			}
			return v, nil
		},
	)
	require.NoError(t, err)

	updated, err := repo.GetVault(ctx, vault.Address)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), updated.TotalDeposited)
}

func TestUpdateRollbackOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := inmemory.NewRepoManager().VaultRepository()

	wallet, err := domain.NewWallet(owner, guardian)
	require.NoError(t, err)
	vault, err := domain.NewVault(wallet.Address, asset)
	require.NoError(t, err)
	require.NoError(t, repo.AddVault(ctx, vault))

	err = repo.UpdateVault(ctx, vault.Address,
		func(v *domain.Vault) (*domain.Vault, error) {
			v.TotalDeposited = 42
			return nil, domain.ErrVaultNotActive
		},
	)
	require.ErrorIs(t, err, domain.ErrVaultNotActive)

	unchanged, err := repo.GetVault(ctx, vault.Address)
	require.NoError(t, err)
	require.Equal(t, uint64(0), unchanged.TotalDeposited)
}
