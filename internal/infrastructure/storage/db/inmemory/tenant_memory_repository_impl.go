package inmemory

import (
	"context"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
)

// TenantRepositoryImpl represents an in memory storage of tenant policy
// records.
type TenantRepositoryImpl struct {
	db *DbManager
}

// NewTenantRepositoryImpl returns a new empty TenantRepositoryImpl.
func NewTenantRepositoryImpl(db *DbManager) domain.TenantRepository {
	return &TenantRepositoryImpl{db: db}
}

func (r TenantRepositoryImpl) AddTenant(
	ctx context.Context, tenant *domain.TenantConfig,
) error {
	r.db.tenantStore.locker.Lock()
	defer r.db.tenantStore.locker.Unlock()

	if _, ok := r.db.tenantStore.tenants[tenant.TenantID]; ok {
		return domain.ErrTenantAlreadyExists
	}
	r.db.tenantStore.tenants[tenant.TenantID] = *tenant
	return nil
}

func (r TenantRepositoryImpl) GetTenant(
	ctx context.Context, tenantID string,
) (*domain.TenantConfig, error) {
	r.db.tenantStore.locker.Lock()
	defer r.db.tenantStore.locker.Unlock()

	tenant, ok := r.db.tenantStore.tenants[tenantID]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	return &tenant, nil
}

func (r TenantRepositoryImpl) UpdateTenant(
	ctx context.Context, tenantID string,
	updateFn func(t *domain.TenantConfig) (*domain.TenantConfig, error),
) error {
	r.db.tenantStore.locker.Lock()
	defer r.db.tenantStore.locker.Unlock()

	tenant, ok := r.db.tenantStore.tenants[tenantID]
	if !ok {
		return domain.ErrTenantNotFound
	}

	updatedTenant, err := updateFn(&tenant)
	if err != nil {
		return err
	}

	r.db.tenantStore.tenants[tenantID] = *updatedTenant
	return nil
}

func (r TenantRepositoryImpl) GetAllTenants(
	ctx context.Context,
) ([]domain.TenantConfig, error) {
	r.db.tenantStore.locker.Lock()
	defer r.db.tenantStore.locker.Unlock()

	tenants := make([]domain.TenantConfig, 0, len(r.db.tenantStore.tenants))
	for _, tenant := range r.db.tenantStore.tenants {
		tenants = append(tenants, tenant)
	}
	return tenants, nil
}
