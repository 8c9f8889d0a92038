package webhookpubsub_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	webhookpubsub "github.com/custodia-network/custodia-daemon/internal/infrastructure/pubsub/webhook"
)

type receiver struct {
	locker   sync.Mutex
	payloads []string
	headers  []http.Header
}

func (r *receiver) handler(w http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)

	r.locker.Lock()
	defer r.locker.Unlock()
	r.payloads = append(r.payloads, string(body))
	r.headers = append(r.headers, req.Header.Clone())
}

func (r *receiver) received() []string {
	r.locker.Lock()
	defer r.locker.Unlock()
	return append([]string{}, r.payloads...)
}

func (r *receiver) lastHeader() http.Header {
	r.locker.Lock()
	defer r.locker.Unlock()
	if len(r.headers) == 0 {
		return nil
	}
	return r.headers[len(r.headers)-1]
}

func TestPublishToSubscribedEndpoint(t *testing.T) {
	rcv := &receiver{}
	server := httptest.NewServer(http.HandlerFunc(rcv.handler))
	defer server.Close()

	svc, err := webhookpubsub.NewWebhookPubSubService(
		t.TempDir(), nil, 5*time.Second,
	)
	require.NoError(t, err)
	defer svc.Close()

	id, err := svc.Subscribe(
		application.TopicTokensDeposited, server.URL, "",
	)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	subs := svc.ListSubscriptionsForTopic(application.TopicTokensDeposited)
	require.Len(t, subs, 1)
	require.Equal(t, server.URL, subs[0].NotifyAt())
	require.False(t, subs[0].IsSecured())

	message := `{"amount": 1000}`
	require.NoError(t, svc.Publish(application.TopicTokensDeposited, message))
	require.Equal(t, []string{message}, rcv.received())
	require.Equal(t, "application/json", rcv.lastHeader().Get("Content-Type"))

	// Other topics must not reach this endpoint.
	require.NoError(t, svc.Publish(application.TopicTokensWithdrawn, message))
	require.Len(t, rcv.received(), 1)

	require.NoError(t, svc.Unsubscribe(application.TopicTokensDeposited, id))
	require.Empty(t, svc.ListSubscriptionsForTopic(application.TopicTokensDeposited))
}

func TestPublishToSecuredEndpoint(t *testing.T) {
	rcv := &receiver{}
	server := httptest.NewServer(http.HandlerFunc(rcv.handler))
	defer server.Close()

	svc, err := webhookpubsub.NewWebhookPubSubService(
		t.TempDir(), nil, 5*time.Second,
	)
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.Subscribe(
		webhookpubsub.TopicAllEvents, server.URL, "supersecret",
	)
	require.NoError(t, err)

	require.NoError(t, svc.Publish(application.TopicGuardianRotated, "{}"))
	require.Len(t, rcv.received(), 1)

	auth := rcv.lastHeader().Get("Authorization")
	require.True(t, strings.HasPrefix(auth, "Bearer "))
}

func TestPublishTimesOutOnSlowEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		},
	))
	defer server.Close()

	svc, err := webhookpubsub.NewWebhookPubSubService(
		t.TempDir(), nil, 100*time.Millisecond,
	)
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.Subscribe(application.TopicVaultStatusChanged, server.URL, "")
	require.NoError(t, err)

	err = svc.Publish(application.TopicVaultStatusChanged, "{}")
	require.Error(t, err)
}

func TestFailingSubscribe(t *testing.T) {
	svc, err := webhookpubsub.NewWebhookPubSubService(
		t.TempDir(), nil, 5*time.Second,
	)
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.Subscribe("unknown_topic", "http://localhost:8080", "")
	require.ErrorIs(t, err, webhookpubsub.ErrInvalidTopic)

	_, err = svc.Subscribe(application.TopicTenantUpdated, "not a url", "")
	require.ErrorIs(t, err, webhookpubsub.ErrInvalidEndpoint)
}
