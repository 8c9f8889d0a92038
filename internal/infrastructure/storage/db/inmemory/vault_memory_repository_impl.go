package inmemory

import (
	"context"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
)

// VaultRepositoryImpl represents an in memory storage of vault records.
type VaultRepositoryImpl struct {
	db *DbManager
}

// NewVaultRepositoryImpl returns a new empty VaultRepositoryImpl.
func NewVaultRepositoryImpl(db *DbManager) domain.VaultRepository {
	return &VaultRepositoryImpl{db: db}
}

func (r VaultRepositoryImpl) AddVault(
	ctx context.Context, vault *domain.Vault,
) error {
	r.db.vaultStore.locker.Lock()
	defer r.db.vaultStore.locker.Unlock()

	if _, ok := r.db.vaultStore.vaults[vault.Address]; ok {
		return domain.ErrVaultAlreadyExists
	}
	r.db.vaultStore.vaults[vault.Address] = *vault
	return nil
}

func (r VaultRepositoryImpl) GetVault(
	ctx context.Context, address string,
) (*domain.Vault, error) {
	r.db.vaultStore.locker.Lock()
	defer r.db.vaultStore.locker.Unlock()

	vault, ok := r.db.vaultStore.vaults[address]
	if !ok {
		return nil, domain.ErrVaultNotFound
	}
	return &vault, nil
}

func (r VaultRepositoryImpl) GetVaultsForWallet(
	ctx context.Context, walletAddress string,
) ([]domain.Vault, error) {
	r.db.vaultStore.locker.Lock()
	defer r.db.vaultStore.locker.Unlock()

	vaults := make([]domain.Vault, 0)
	for _, vault := range r.db.vaultStore.vaults {
		if vault.WalletAddress == walletAddress {
			vaults = append(vaults, vault)
		}
	}
	return vaults, nil
}

func (r VaultRepositoryImpl) UpdateVault(
	ctx context.Context, address string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	r.db.vaultStore.locker.Lock()
	defer r.db.vaultStore.locker.Unlock()

	vault, ok := r.db.vaultStore.vaults[address]
	if !ok {
		return domain.ErrVaultNotFound
	}

	updatedVault, err := updateFn(&vault)
	if err != nil {
		return err
	}

	r.db.vaultStore.vaults[address] = *updatedVault
	return nil
}

func (r VaultRepositoryImpl) GetAllVaults(
	ctx context.Context,
) ([]domain.Vault, error) {
	r.db.vaultStore.locker.Lock()
	defer r.db.vaultStore.locker.Unlock()

	vaults := make([]domain.Vault, 0, len(r.db.vaultStore.vaults))
	for _, vault := range r.db.vaultStore.vaults {
		vaults = append(vaults, vault)
	}
	return vaults, nil
}
