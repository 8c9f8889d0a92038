package inmemory

import (
	"context"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
)

// WalletRepositoryImpl represents an in memory storage of wallet
// records.
type WalletRepositoryImpl struct {
	db *DbManager
}

// NewWalletRepositoryImpl returns a new empty WalletRepositoryImpl.
func NewWalletRepositoryImpl(db *DbManager) domain.WalletRepository {
	return &WalletRepositoryImpl{db: db}
}

func (r WalletRepositoryImpl) AddWallet(
	ctx context.Context, wallet *domain.Wallet,
) error {
	r.db.walletStore.locker.Lock()
	defer r.db.walletStore.locker.Unlock()

	if _, ok := r.db.walletStore.wallets[wallet.Address]; ok {
		return domain.ErrWalletAlreadyExists
	}
	r.db.walletStore.wallets[wallet.Address] = *wallet
	return nil
}

func (r WalletRepositoryImpl) GetWallet(
	ctx context.Context, address string,
) (*domain.Wallet, error) {
	r.db.walletStore.locker.Lock()
	defer r.db.walletStore.locker.Unlock()

	wallet, ok := r.db.walletStore.wallets[address]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return &wallet, nil
}

func (r WalletRepositoryImpl) UpdateWallet(
	ctx context.Context, address string,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	r.db.walletStore.locker.Lock()
	defer r.db.walletStore.locker.Unlock()

	wallet, ok := r.db.walletStore.wallets[address]
	if !ok {
		return domain.ErrWalletNotFound
	}

	updatedWallet, err := updateFn(&wallet)
	if err != nil {
		return err
	}

	r.db.walletStore.wallets[address] = *updatedWallet
	return nil
}

func (r WalletRepositoryImpl) GetAllWallets(
	ctx context.Context,
) ([]domain.Wallet, error) {
	r.db.walletStore.locker.Lock()
	defer r.db.walletStore.locker.Unlock()

	wallets := make([]domain.Wallet, 0, len(r.db.walletStore.wallets))
	for _, wallet := range r.db.walletStore.wallets {
		wallets = append(wallets, wallet)
	}
	return wallets, nil
}
