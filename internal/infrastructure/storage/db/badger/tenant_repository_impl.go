package dbbadger

import (
	"context"
	"errors"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

type tenantRepositoryImpl struct {
	db *DbManager
}

// NewTenantRepositoryImpl initialize a badger implementation of the
// domain.TenantRepository
func NewTenantRepositoryImpl(db *DbManager) domain.TenantRepository {
	return tenantRepositoryImpl{db: db}
}

func (r tenantRepositoryImpl) AddTenant(
	ctx context.Context, tenant *domain.TenantConfig,
) error {
	if err := r.db.Store.Insert(tenant.TenantID, *tenant); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrTenantAlreadyExists
		}
		return err
	}
	return nil
}

func (r tenantRepositoryImpl) GetTenant(
	ctx context.Context, tenantID string,
) (*domain.TenantConfig, error) {
	var tenant domain.TenantConfig
	if err := r.db.Store.Get(tenantID, &tenant); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

func (r tenantRepositoryImpl) UpdateTenant(
	ctx context.Context, tenantID string,
	updateFn func(t *domain.TenantConfig) (*domain.TenantConfig, error),
) error {
	return r.db.Store.Badger().Update(func(tx *badger.Txn) error {
		var tenant domain.TenantConfig
		if err := r.db.Store.TxGet(tx, tenantID, &tenant); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrTenantNotFound
			}
			return err
		}

		updatedTenant, err := updateFn(&tenant)
		if err != nil {
			return err
		}

		return r.db.Store.TxUpdate(tx, tenantID, *updatedTenant)
	})
}

func (r tenantRepositoryImpl) GetAllTenants(
	ctx context.Context,
) ([]domain.TenantConfig, error) {
	tenants := make([]domain.TenantConfig, 0)
	if err := r.db.Store.Find(&tenants, nil); err != nil {
		return nil, err
	}
	return tenants, nil
}
