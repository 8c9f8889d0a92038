package ports

import "github.com/custodia-network/custodia-daemon/internal/core/domain"

// RepoManager gives access to all the repositories of the daemon's
// storage layer and manages their shared lifecycle.
type RepoManager interface {
	// WalletRepository returns the repository of wallet records.
	WalletRepository() domain.WalletRepository
	// TenantRepository returns the repository of tenant policy records.
	TenantRepository() domain.TenantRepository
	// VaultRepository returns the repository of vault records.
	VaultRepository() domain.VaultRepository
	// Close gracefully closes the connection with the underlying store.
	Close()
}
