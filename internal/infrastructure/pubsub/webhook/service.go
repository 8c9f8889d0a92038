package webhookpubsub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
)

// TopicAllEvents subscribes a hook for every published topic.
const TopicAllEvents = "all_events"

var knownTopics = map[string]struct{}{
	application.TopicVaultInitialized:   {},
	application.TopicTokensDeposited:    {},
	application.TopicTokensWithdrawn:    {},
	application.TopicVaultStatusChanged: {},
	application.TopicGuardianRotated:    {},
	application.TopicTenantUpdated:      {},
	TopicAllEvents:                      {},
}

type webhookService struct {
	store          *webhookStore
	httpClient     *http.Client
	requestTimeout time.Duration
	cb             *gobreaker.CircuitBreaker
}

// NewWebhookPubSubService returns a ports.SecurePubSub that notifies
// subscribed endpoints with a POST request for every published message.
// Hooks registered with a secret get the payload authenticated with a
// JWT bearer token signed with it.
func NewWebhookPubSubService(
	baseDbDir string, logger badger.Logger, requestTimeout time.Duration,
) (ports.SecurePubSub, error) {
	store, err := newWebhookStore(baseDbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening webhook store: %w", err)
	}

	return &webhookService{
		store:          store,
		httpClient:     &http.Client{},
		requestTimeout: requestTimeout,
		cb:             newCircuitBreaker(),
	}, nil
}

func (ws *webhookService) Subscribe(topic, endpoint, secret string) (string, error) {
	hook, err := NewWebhook(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	if err := ws.store.addWebhook(hook); err != nil {
		return "", err
	}
	return hook.ID, nil
}

func (ws *webhookService) Unsubscribe(_, id string) error {
	return ws.store.removeWebhook(id)
}

// ListSubscriptionsForTopic returns the hooks registered for the given
// topic, or every registered hook when the topic is empty.
func (ws *webhookService) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	var hooks []*Webhook
	var err error
	if topic == "" {
		hooks, err = ws.store.getAllWebhooks()
	} else {
		hooks, err = ws.store.getWebhooksForTopic(topic)
	}
	if err != nil {
		log.WithError(err).Warn("failed to list webhooks")
		return nil
	}

	subs := make([]ports.Subscription, 0, len(hooks))
	for _, h := range hooks {
		subs = append(subs, h)
	}
	return subs
}

// Publish makes a POST request to every webhook endpoint registered for
// the given topic, plus those registered for all events. A circuit
// breaker is adopted in order to maximize the chances that every
// webhook gets invoked without errors.
func (ws *webhookService) Publish(topic string, message string) error {
	if _, ok := knownTopics[topic]; !ok {
		return ErrInvalidTopic
	}

	hooks, err := ws.store.getWebhooksForTopic(topic)
	if err != nil {
		return err
	}
	if topic != TopicAllEvents {
		hooksForAllEvents, err := ws.store.getWebhooksForTopic(TopicAllEvents)
		if err != nil {
			return err
		}
		hooks = append(hooks, hooksForAllEvents...)
	}

	eg := &errgroup.Group{}
	for i := range hooks {
		hook := hooks[i]
		eg.Go(func() error { return ws.doRequest(hook, message) })
	}
	return eg.Wait()
}

func (ws *webhookService) Close() error {
	return ws.store.close()
}

func (ws *webhookService) doRequest(hook *Webhook, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(
			context.Background(), ws.requestTimeout,
		)
		defer cancel()

		req, err := http.NewRequestWithContext(
			ctx, http.MethodPost, hook.Endpoint, strings.NewReader(payload),
		)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if hook.IsSecured() {
			token := jwt.New(jwt.SigningMethodHS256)
			tokenString, _ := token.SignedString([]byte(hook.Secret))
			req.Header.Set("Authorization", "Bearer "+tokenString)
		}

		res, err := ws.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(res.Body)
			return nil, fmt.Errorf("endpoint returned %d: %s", res.StatusCode, body)
		}
		return nil, nil
	})

	return err
}

func newCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "webhook",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests > 20 && failureRatio >= 0.7
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				log.Warn("webhook endpoints seem down, stop allowing requests")
			}
			if from == gobreaker.StateOpen && to == gobreaker.StateHalfOpen {
				log.Info("checking webhook endpoints status")
			}
			if from == gobreaker.StateHalfOpen && to == gobreaker.StateClosed {
				log.Info("webhook endpoints seem ok, restart allowing requests")
			}
		},
	})
}
