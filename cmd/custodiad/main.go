package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/custodia-network/custodia-daemon/internal/config"
	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
	inmemoryledger "github.com/custodia-network/custodia-daemon/internal/infrastructure/ledger/inmemory"
	webhookpubsub "github.com/custodia-network/custodia-daemon/internal/infrastructure/pubsub/webhook"
	ed25519verifier "github.com/custodia-network/custodia-daemon/internal/infrastructure/signer/ed25519"
	dbbadger "github.com/custodia-network/custodia-daemon/internal/infrastructure/storage/db/badger"
	"github.com/custodia-network/custodia-daemon/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/custodia-network/custodia-daemon/internal/interfaces/http"
	"github.com/custodia-network/custodia-daemon/pkg/stats"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repoManager, err := newRepoManager()
	if err != nil {
		log.WithError(err).Panic("error while opening the storage")
	}
	defer repoManager.Close()

	pubsub, err := webhookpubsub.NewWebhookPubSubService(
		config.GetDbDir(), nil,
		time.Duration(config.GetInt(config.WebhookRequestTimeoutKey))*time.Millisecond,
	)
	if err != nil {
		log.WithError(err).Panic("error while opening the webhook store")
	}
	defer pubsub.Close()

	ledger := inmemoryledger.NewLedger()

	tenantSvc := application.NewTenantService(
		repoManager, pubsub, config.GetString(config.OnboardingAuthorityKey),
	)
	walletSvc := application.NewWalletService(repoManager, pubsub)
	vaultSvc := application.NewVaultService(repoManager, ledger, pubsub)
	statsSvc := application.NewStatsService(repoManager)

	var minter httpinterface.Minter
	if config.GetBool(config.EnableFaucetKey) {
		minter = ledger
		log.Warn("faucet endpoint is enabled, do not use in production")
	}

	router := httpinterface.NewRouter(httpinterface.RouterOpts{
		TenantService: tenantSvc,
		WalletService: walletSvc,
		VaultService:  vaultSvc,
		StatsService:  statsSvc,
		PubSub:        pubsub,
		Verifier:      ed25519verifier.NewVerifier(),
		Minter:        minter,
		RateLimit:     config.GetInt(config.RateLimitKey),
	})

	address := fmt.Sprintf(":%+v", config.GetInt(config.ListeningPortKey))
	server := &http.Server{
		Addr:    address,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	statsSvc.Start(
		ctx, time.Duration(config.GetInt(config.StatsIntervalKey))*time.Second,
	)

	if config.GetBool(config.EnableProfilerKey) {
		stats.EnableMemoryStatistics(
			ctx,
			time.Duration(config.GetInt(config.StatsIntervalKey))*time.Second,
			filepath.Join(config.GetDatadir(), "stats"),
		)
	}

	go func() {
		log.Info("daemon is listening on " + address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Panic("error listening on the http interface")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), 10*time.Second,
	)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("error while shutting the http interface down")
	}

	log.Debug("exiting")
}

func newRepoManager() (ports.RepoManager, error) {
	if config.GetString(config.DbTypeKey) == "inmemory" {
		return inmemory.NewRepoManager(), nil
	}
	return dbbadger.NewRepoManager(config.GetDbDir(), nil)
}
