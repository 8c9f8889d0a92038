package domain

import "context"

// WalletRepository persists wallet records keyed by their derived
// address.
type WalletRepository interface {
	// AddWallet inserts a new wallet, failing with ErrWalletAlreadyExists
	// if one is stored for the same address.
	AddWallet(ctx context.Context, wallet *Wallet) error
	// GetWallet returns the wallet stored for the given address or
	// ErrWalletNotFound.
	GetWallet(ctx context.Context, address string) (*Wallet, error)
	// UpdateWallet atomically applies updateFn to the stored wallet and
	// persists the result. An error returned by updateFn aborts the
	// update and leaves the record unchanged.
	UpdateWallet(
		ctx context.Context, address string,
		updateFn func(w *Wallet) (*Wallet, error),
	) error
	// GetAllWallets returns every stored wallet.
	GetAllWallets(ctx context.Context) ([]Wallet, error)
}
