package domain

import "context"

// TenantRepository persists tenant policy records keyed by tenant id.
type TenantRepository interface {
	// AddTenant inserts a new tenant config, failing with
	// ErrTenantAlreadyExists for a duplicate tenant id.
	AddTenant(ctx context.Context, tenant *TenantConfig) error
	// GetTenant returns the config stored for the given tenant id or
	// ErrTenantNotFound.
	GetTenant(ctx context.Context, tenantID string) (*TenantConfig, error)
	// UpdateTenant atomically applies updateFn to the stored config and
	// persists the result.
	UpdateTenant(
		ctx context.Context, tenantID string,
		updateFn func(t *TenantConfig) (*TenantConfig, error),
	) error
	// GetAllTenants returns every stored tenant config.
	GetAllTenants(ctx context.Context) ([]TenantConfig, error)
}
