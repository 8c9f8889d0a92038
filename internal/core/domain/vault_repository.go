package domain

import "context"

// VaultRepository persists vault records keyed by their derived address.
type VaultRepository interface {
	// AddVault inserts a new vault, failing with ErrVaultAlreadyExists
	// for a duplicate address.
	AddVault(ctx context.Context, vault *Vault) error
	// GetVault returns the vault stored for the given address or
	// ErrVaultNotFound.
	GetVault(ctx context.Context, address string) (*Vault, error)
	// GetVaultsForWallet returns all vaults owned by a wallet.
	GetVaultsForWallet(ctx context.Context, walletAddress string) ([]Vault, error)
	// UpdateVault atomically applies updateFn to the stored vault and
	// persists the result. An error returned by updateFn aborts the
	// update and leaves the record unchanged.
	UpdateVault(
		ctx context.Context, address string,
		updateFn func(v *Vault) (*Vault, error),
	) error
	// GetAllVaults returns every stored vault.
	GetAllVaults(ctx context.Context) ([]Vault, error)
}
