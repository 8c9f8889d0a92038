package application

import (
	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/pkg/derivation"
)

// check is a single declarative authorization predicate. Checks are
// plain data evaluated in order, the first failing one aborts with its
// error before any state is touched.
type check struct {
	ok  func() bool
	err error
}

func runChecks(checks ...check) error {
	for _, c := range checks {
		if !c.ok() {
			return c.err
		}
	}
	return nil
}

// walletBindingChecks re-validates the owner/guardian binding of a
// wallet record at call time: the record must match the address
// re-derived from the claimed owner, the stored owner must have signed,
// and, for guardian-gated operations, the stored guardian must have
// co-signed.
func walletBindingChecks(
	wallet *domain.Wallet, owner string, signers Signers, requireGuardian bool,
) []check {
	checks := []check{
		{
			ok: func() bool {
				derived, _, err := derivation.Derive(
					derivation.WalletNamespace, domain.PubKeyBytes(owner),
				)
				return err == nil && derived == wallet.Address
			},
			err: ErrWalletMismatch,
		},
		{
			ok:  func() bool { return wallet.Owner == owner },
			err: ErrOwnerMismatch,
		},
		{
			ok:  func() bool { return signers.Contains(wallet.Owner) },
			err: ErrOwnerSignatureRequired,
		},
		{
			ok:  func() bool { return wallet.IsActive() },
			err: domain.ErrWalletClosed,
		},
	}
	if requireGuardian {
		checks = append(checks, check{
			ok:  func() bool { return signers.Contains(wallet.Guardian) },
			err: ErrGuardianSignatureRequired,
		})
	}
	return checks
}

// tenantPolicyChecks asserts the tenant is active and allows the asset.
// Every mutating vault operation runs these at call time.
func tenantPolicyChecks(tenant *domain.TenantConfig, asset string) []check {
	return []check{
		{
			ok:  func() bool { return tenant.IsActive },
			err: domain.ErrTenantNotActive,
		},
		{
			ok:  func() bool { return tenant.ValidateAssetAllowed(asset) == nil },
			err: domain.ErrAssetNotAllowed,
		},
	}
}

// adminChecks asserts the tenant admin signed the request.
func adminChecks(tenant *domain.TenantConfig, signers Signers) []check {
	return []check{
		{
			ok:  func() bool { return signers.Contains(tenant.Admin) },
			err: ErrAdminSignatureRequired,
		},
	}
}
