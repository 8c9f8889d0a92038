package dbbadger

import (
	"context"
	"errors"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

type vaultRepositoryImpl struct {
	db *DbManager
}

// NewVaultRepositoryImpl initialize a badger implementation of the
// domain.VaultRepository
func NewVaultRepositoryImpl(db *DbManager) domain.VaultRepository {
	return vaultRepositoryImpl{db: db}
}

func (r vaultRepositoryImpl) AddVault(
	ctx context.Context, vault *domain.Vault,
) error {
	if err := r.db.Store.Insert(vault.Address, *vault); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrVaultAlreadyExists
		}
		return err
	}
	return nil
}

func (r vaultRepositoryImpl) GetVault(
	ctx context.Context, address string,
) (*domain.Vault, error) {
	var vault domain.Vault
	if err := r.db.Store.Get(address, &vault); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrVaultNotFound
		}
		return nil, err
	}
	return &vault, nil
}

func (r vaultRepositoryImpl) GetVaultsForWallet(
	ctx context.Context, walletAddress string,
) ([]domain.Vault, error) {
	query := badgerhold.Where("WalletAddress").Eq(walletAddress)

	vaults := make([]domain.Vault, 0)
	if err := r.db.Store.Find(&vaults, query); err != nil {
		return nil, err
	}
	return vaults, nil
}

func (r vaultRepositoryImpl) UpdateVault(
	ctx context.Context, address string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	return r.db.Store.Badger().Update(func(tx *badger.Txn) error {
		var vault domain.Vault
		if err := r.db.Store.TxGet(tx, address, &vault); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrVaultNotFound
			}
			return err
		}

		updatedVault, err := updateFn(&vault)
		if err != nil {
			return err
		}

		return r.db.Store.TxUpdate(tx, address, *updatedVault)
	})
}

func (r vaultRepositoryImpl) GetAllVaults(
	ctx context.Context,
) ([]domain.Vault, error) {
	vaults := make([]domain.Vault, 0)
	if err := r.db.Store.Find(&vaults, nil); err != nil {
		return nil, err
	}
	return vaults, nil
}
