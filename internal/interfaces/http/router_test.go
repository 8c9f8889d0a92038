package httpinterface_test

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
	inmemoryledger "github.com/custodia-network/custodia-daemon/internal/infrastructure/ledger/inmemory"
	ed25519verifier "github.com/custodia-network/custodia-daemon/internal/infrastructure/signer/ed25519"
	"github.com/custodia-network/custodia-daemon/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/custodia-network/custodia-daemon/internal/interfaces/http"
)

type testKey struct {
	pub  string
	priv ed25519.PrivateKey
}

func newTestKey(t *testing.T) testKey {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return testKey{pub: hex.EncodeToString(pub), priv: priv}
}

type noopPubSub struct{}

func (noopPubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	return "sub-id", nil
}
func (noopPubSub) Unsubscribe(topic, id string) error { return nil }
func (noopPubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return nil
}
func (noopPubSub) Publish(topic, message string) error { return nil }
func (noopPubSub) Close() error                        { return nil }

func newTestServer(t *testing.T, authority string) (*httptest.Server, *inmemoryledger.Ledger) {
	t.Helper()

	repoManager := inmemory.NewRepoManager()
	ledger := inmemoryledger.NewLedger()
	pubsub := noopPubSub{}

	router := httpinterface.NewRouter(httpinterface.RouterOpts{
		TenantService: application.NewTenantService(repoManager, pubsub, authority),
		WalletService: application.NewWalletService(repoManager, pubsub),
		VaultService:  application.NewVaultService(repoManager, ledger, pubsub),
		StatsService:  application.NewStatsService(repoManager),
		PubSub:        pubsub,
		Verifier:      ed25519verifier.NewVerifier(),
		Minter:        ledger,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, ledger
}

// signedBody wraps the payload in the signature envelope, signing the
// exact payload bytes with every given key.
func signedBody(t *testing.T, payload interface{}, keys ...testKey) []byte {
	t.Helper()

	rawPayload, err := json.Marshal(payload)
	require.NoError(t, err)

	signatures := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		sig := ed25519.Sign(key.priv, rawPayload)
		signatures = append(signatures, map[string]string{
			"pubkey":    key.pub,
			"signature": hex.EncodeToString(sig),
		})
	}

	envelope := map[string]interface{}{
		"payload":    json.RawMessage(rawPayload),
		"signatures": signatures,
	}
	body, err := json.Marshal(envelope)
	require.NoError(t, err)
	return body
}

func doRequest(
	t *testing.T, server *httptest.Server, method, path string, body []byte,
) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, server.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestEndToEndCustodyFlow(t *testing.T) {
	authority := newTestKey(t)
	admin := newTestKey(t)
	owner := newTestKey(t)
	guardian := newTestKey(t)

	treasury := strings.Repeat("bb", 32)
	asset := strings.Repeat("dd", 32)
	tenantID := strings.Repeat("01", 32)
	recipient := strings.Repeat("44", 32)

	server, _ := newTestServer(t, authority.pub)

	// Tenant onboarding, signed by the authority.
	resp, _ := doRequest(t, server, http.MethodPost, "/v1/tenants", signedBody(t,
		map[string]interface{}{
			"tenant_id":        tenantID,
			"treasury":         treasury,
			"admin":            admin.pub,
			"fee_basis_points": 250,
		},
		authority,
	))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Wallet creation, signed by the owner.
	resp, body := doRequest(t, server, http.MethodPost, "/v1/wallets", signedBody(t,
		map[string]interface{}{
			"owner":    owner.pub,
			"guardian": guardian.pub,
		},
		owner,
	))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	wallet := application.WalletInfo{}
	require.NoError(t, json.Unmarshal(body, &wallet))
	require.NotEmpty(t, wallet.Address)

	// Vault creation needs the guardian co-signature.
	resp, body = doRequest(t, server, http.MethodPost, "/v1/vaults", signedBody(t,
		map[string]interface{}{
			"tenant_id": tenantID,
			"owner":     owner.pub,
			"asset":     asset,
		},
		owner, guardian,
	))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	vault := application.VaultInfo{}
	require.NoError(t, json.Unmarshal(body, &vault))

	// Fund the owner through the faucet and deposit.
	faucetBody, err := json.Marshal(map[string]interface{}{
		"account": owner.pub,
		"asset":   asset,
		"amount":  300_000_000,
	})
	require.NoError(t, err)
	resp, _ = doRequest(t, server, http.MethodPost, "/v1/faucet", faucetBody)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, server, http.MethodPost, "/v1/vaults/deposit", signedBody(t,
		map[string]interface{}{
			"tenant_id": tenantID,
			"owner":     owner.pub,
			"asset":     asset,
			"amount":    200_000_000,
		},
		owner,
	))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Withdrawal needs the guardian too and pays the tenant fee.
	resp, body = doRequest(t, server, http.MethodPost, "/v1/vaults/withdraw", signedBody(t,
		map[string]interface{}{
			"tenant_id": tenantID,
			"owner":     owner.pub,
			"asset":     asset,
			"amount":    100_000_000,
			"recipient": recipient,
		},
		owner, guardian,
	))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	transfer := application.TransferInfo{}
	require.NoError(t, json.Unmarshal(body, &transfer))
	require.Equal(t, uint64(2_500_000), transfer.Fee)

	resp, body = doRequest(
		t, server, http.MethodGet, fmt.Sprintf("/v1/vaults/%s", vault.Address), nil,
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &vault))
	require.Equal(t, uint64(100_000_000), vault.Balance)
	require.Equal(t, uint64(100_000_000), vault.TotalWithdrawn)

	resp, _ = doRequest(t, server, http.MethodGet, "/v1/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, server, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRejectedRequests(t *testing.T) {
	authority := newTestKey(t)
	owner := newTestKey(t)
	guardian := newTestKey(t)
	intruder := newTestKey(t)

	server, _ := newTestServer(t, authority.pub)

	resp, _ := doRequest(t, server, http.MethodPost, "/v1/wallets", signedBody(t,
		map[string]interface{}{
			"owner":    owner.pub,
			"guardian": guardian.pub,
		},
		owner,
	))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("missing guardian signature", func(t *testing.T) {
		resp, _ := doRequest(t, server, http.MethodPut, "/v1/wallets/guardian", signedBody(t,
			map[string]interface{}{
				"owner":        owner.pub,
				"new_guardian": intruder.pub,
			},
			owner,
		))
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("forged signature", func(t *testing.T) {
		// The intruder signs claiming to be the owner.
		rawPayload, err := json.Marshal(map[string]interface{}{
			"owner":        owner.pub,
			"new_guardian": intruder.pub,
		})
		require.NoError(t, err)
		sig := ed25519.Sign(intruder.priv, rawPayload)

		envelope, err := json.Marshal(map[string]interface{}{
			"payload": json.RawMessage(rawPayload),
			"signatures": []map[string]string{{
				"pubkey":    owner.pub,
				"signature": hex.EncodeToString(sig),
			}},
		})
		require.NoError(t, err)

		resp, _ := doRequest(t, server, http.MethodPut, "/v1/wallets/guardian", envelope)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("malformed envelope", func(t *testing.T) {
		resp, _ := doRequest(
			t, server, http.MethodPost, "/v1/wallets", []byte("not json"),
		)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown wallet", func(t *testing.T) {
		resp, _ := doRequest(
			t, server, http.MethodGet,
			"/v1/wallets/"+strings.Repeat("ff", 32), nil,
		)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
