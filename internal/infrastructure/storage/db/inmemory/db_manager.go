package inmemory

import (
	"sync"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
)

type walletStore struct {
	locker  *sync.Mutex
	wallets map[string]domain.Wallet
}

type tenantStore struct {
	locker  *sync.Mutex
	tenants map[string]domain.TenantConfig
}

type vaultStore struct {
	locker *sync.Mutex
	vaults map[string]domain.Vault
}

// DbManager holds all the in memory stores in a single data structure.
type DbManager struct {
	walletStore *walletStore
	tenantStore *tenantStore
	vaultStore  *vaultStore
}

// NewDbManager returns a new empty DbManager.
func NewDbManager() *DbManager {
	return &DbManager{
		walletStore: &walletStore{
			locker:  &sync.Mutex{},
			wallets: map[string]domain.Wallet{},
		},
		tenantStore: &tenantStore{
			locker:  &sync.Mutex{},
			tenants: map[string]domain.TenantConfig{},
		},
		vaultStore: &vaultStore{
			locker: &sync.Mutex{},
			vaults: map[string]domain.Vault{},
		},
	}
}

type repoManager struct {
	walletRepository domain.WalletRepository
	tenantRepository domain.TenantRepository
	vaultRepository  domain.VaultRepository
}

// NewRepoManager returns a ports.RepoManager backed by in memory
// repositories, used for tests and for running the daemon stateless.
func NewRepoManager() ports.RepoManager {
	db := NewDbManager()
	return &repoManager{
		walletRepository: NewWalletRepositoryImpl(db),
		tenantRepository: NewTenantRepositoryImpl(db),
		vaultRepository:  NewVaultRepositoryImpl(db),
	}
}

func (m *repoManager) WalletRepository() domain.WalletRepository {
	return m.walletRepository
}

func (m *repoManager) TenantRepository() domain.TenantRepository {
	return m.tenantRepository
}

func (m *repoManager) VaultRepository() domain.VaultRepository {
	return m.vaultRepository
}

func (m *repoManager) Close() {}
