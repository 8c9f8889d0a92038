package httpinterface

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
)

// RouterOpts groups everything the HTTP interface depends on.
type RouterOpts struct {
	TenantService application.TenantService
	WalletService application.WalletService
	VaultService  application.VaultService
	StatsService  application.StatsService
	PubSub        ports.SecurePubSub
	Verifier      ports.SignatureVerifier
	// Minter enables the faucet endpoint when not nil.
	Minter Minter
	// RateLimit is the number of requests per second accepted, 0 disables
	// the limiter.
	RateLimit int
}

// NewRouter builds the HTTP interface of the daemon with logging, rate
// limiting and prometheus instrumentation applied to every route.
func NewRouter(opts RouterOpts) http.Handler {
	tenants := newTenantHandler(opts.TenantService, opts.Verifier)
	wallets := newWalletHandler(opts.WalletService, opts.VaultService, opts.Verifier)
	vaults := newVaultHandler(opts.VaultService, opts.Verifier)
	operator := newOperatorHandler(opts.PubSub, opts.StatsService, opts.Minter)

	router := mux.NewRouter()
	router.Use(loggingMiddleware, metricsMiddleware)
	if opts.RateLimit > 0 {
		router.Use(rateLimitMiddleware(opts.RateLimit))
	}

	v1 := router.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/tenants", tenants.initTenant).Methods(http.MethodPost)
	v1.HandleFunc("/tenants", tenants.listTenants).Methods(http.MethodGet)
	v1.HandleFunc("/tenants/treasury", tenants.updateTreasury).Methods(http.MethodPut)
	v1.HandleFunc("/tenants/fee-rate", tenants.updateFeeRate).Methods(http.MethodPut)
	v1.HandleFunc("/tenants/asset-policy", tenants.updateAssetPolicy).Methods(http.MethodPut)
	v1.HandleFunc("/tenants/{id}", tenants.getTenant).Methods(http.MethodGet)

	v1.HandleFunc("/wallets", wallets.createWallet).Methods(http.MethodPost)
	v1.HandleFunc("/wallets/guardian", wallets.rotateGuardian).Methods(http.MethodPut)
	v1.HandleFunc("/wallets/close", wallets.closeWallet).Methods(http.MethodPost)
	v1.HandleFunc("/wallets/{address}", wallets.getWallet).Methods(http.MethodGet)
	v1.HandleFunc("/wallets/{address}/vaults", wallets.listWalletVaults).Methods(http.MethodGet)

	v1.HandleFunc("/vaults", vaults.initVault).Methods(http.MethodPost)
	v1.HandleFunc("/vaults/deposit", vaults.deposit).Methods(http.MethodPost)
	v1.HandleFunc("/vaults/withdraw", vaults.withdraw).Methods(http.MethodPost)
	v1.HandleFunc("/vaults/pause", vaults.pauseVault).Methods(http.MethodPost)
	v1.HandleFunc("/vaults/resume", vaults.resumeVault).Methods(http.MethodPost)
	v1.HandleFunc("/vaults/close", vaults.closeVault).Methods(http.MethodPost)
	v1.HandleFunc("/vaults/{address}", vaults.getVault).Methods(http.MethodGet)

	v1.HandleFunc("/webhooks", operator.addWebhook).Methods(http.MethodPost)
	v1.HandleFunc("/webhooks", operator.listWebhooks).Methods(http.MethodGet)
	v1.HandleFunc("/webhooks/{id}", operator.removeWebhook).Methods(http.MethodDelete)
	v1.HandleFunc("/info", operator.getInfo).Methods(http.MethodGet)
	v1.HandleFunc("/stats", operator.getStats).Methods(http.MethodGet)
	v1.HandleFunc("/faucet", operator.faucet).Methods(http.MethodPost)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}
