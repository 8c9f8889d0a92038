package application_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
	inmemoryledger "github.com/custodia-network/custodia-daemon/internal/infrastructure/ledger/inmemory"
	"github.com/custodia-network/custodia-daemon/internal/infrastructure/storage/db/inmemory"
)

var (
	authority   = strings.Repeat("aa", 32)
	tenantID    = strings.Repeat("01", 32)
	treasury    = strings.Repeat("bb", 32)
	admin       = strings.Repeat("cc", 32)
	asset       = strings.Repeat("dd", 32)
	owner       = strings.Repeat("11", 32)
	guardian    = strings.Repeat("22", 32)
	newGuardian = strings.Repeat("33", 32)
	recipient   = strings.Repeat("44", 32)

	feeBasisPoints = uint64(250)
)

type mockPubSub struct {
	published map[string][]string
}

func newMockPubSub() *mockPubSub {
	return &mockPubSub{published: map[string][]string{}}
}

func (m *mockPubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	return "", nil
}

func (m *mockPubSub) Unsubscribe(topic, id string) error { return nil }

func (m *mockPubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return nil
}

func (m *mockPubSub) Publish(topic string, message string) error {
	m.published[topic] = append(m.published[topic], message)
	return nil
}

func (m *mockPubSub) Close() error { return nil }

type testServices struct {
	repoManager   ports.RepoManager
	ledger        *inmemoryledger.Ledger
	pubsub        *mockPubSub
	tenantService application.TenantService
	walletService application.WalletService
	vaultService  application.VaultService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	repoManager := inmemory.NewRepoManager()
	ledger := inmemoryledger.NewLedger()
	pubsub := newMockPubSub()

	return &testServices{
		repoManager:   repoManager,
		ledger:        ledger,
		pubsub:        pubsub,
		tenantService: application.NewTenantService(repoManager, pubsub, authority),
		walletService: application.NewWalletService(repoManager, pubsub),
		vaultService:  application.NewVaultService(repoManager, ledger, pubsub),
	}
}

// newFundedVault provisions a tenant, a wallet for owner/guardian and an
// active vault, and credits the owner's external account so that
// deposits can be made.
func newFundedVault(t *testing.T, svc *testServices, funds uint64) *application.VaultInfo {
	t.Helper()
	ctx := context.Background()

	_, err := svc.tenantService.InitTenant(ctx, application.InitTenantReq{
		TenantID:       tenantID,
		Treasury:       treasury,
		Admin:          admin,
		FeeBasisPoints: feeBasisPoints,
		Signers:        application.Signers{authority},
	})
	require.NoError(t, err)

	_, err = svc.walletService.CreateWallet(ctx, application.CreateWalletReq{
		Owner:    owner,
		Guardian: guardian,
		Signers:  application.Signers{owner},
	})
	require.NoError(t, err)

	vault, err := svc.vaultService.InitVault(ctx, application.InitVaultReq{
		TenantID: tenantID,
		Owner:    owner,
		Asset:    asset,
		Signers:  application.Signers{owner, guardian},
	})
	require.NoError(t, err)
	require.NotNil(t, vault)

	if funds > 0 {
		require.NoError(t, svc.ledger.Mint(ctx, owner, asset, funds))
	}
	return vault
}
