package dbbadger

import (
	"context"
	"errors"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

type walletRepositoryImpl struct {
	db *DbManager
}

// NewWalletRepositoryImpl initialize a badger implementation of the
// domain.WalletRepository
func NewWalletRepositoryImpl(db *DbManager) domain.WalletRepository {
	return walletRepositoryImpl{db: db}
}

func (r walletRepositoryImpl) AddWallet(
	ctx context.Context, wallet *domain.Wallet,
) error {
	if err := r.db.Store.Insert(wallet.Address, *wallet); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrWalletAlreadyExists
		}
		return err
	}
	return nil
}

func (r walletRepositoryImpl) GetWallet(
	ctx context.Context, address string,
) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := r.db.Store.Get(address, &wallet); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r walletRepositoryImpl) UpdateWallet(
	ctx context.Context, address string,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	return r.db.Store.Badger().Update(func(tx *badger.Txn) error {
		var wallet domain.Wallet
		if err := r.db.Store.TxGet(tx, address, &wallet); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrWalletNotFound
			}
			return err
		}

		updatedWallet, err := updateFn(&wallet)
		if err != nil {
			return err
		}

		return r.db.Store.TxUpdate(tx, address, *updatedWallet)
	})
}

func (r walletRepositoryImpl) GetAllWallets(
	ctx context.Context,
) ([]domain.Wallet, error) {
	wallets := make([]domain.Wallet, 0)
	if err := r.db.Store.Find(&wallets, nil); err != nil {
		return nil, err
	}
	return wallets, nil
}
