package webhookpubsub

import (
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	dbbadger "github.com/custodia-network/custodia-daemon/internal/infrastructure/storage/db/badger"
)

// webhookStore persists registered hooks on a dedicated badger store so
// that subscriptions survive daemon restarts.
type webhookStore struct {
	store *badgerhold.Store
}

func newWebhookStore(baseDbDir string, logger badger.Logger) (*webhookStore, error) {
	opts := badger.DefaultOptions(baseDbDir + "/webhooks")
	opts.Logger = logger

	store, err := badgerhold.Open(badgerhold.Options{
		Encoder:          dbbadger.JSONEncode,
		Decoder:          dbbadger.JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}
	return &webhookStore{store: store}, nil
}

func (s *webhookStore) addWebhook(hook *Webhook) error {
	if err := s.store.Insert(hook.ID, *hook); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return nil
		}
		return err
	}
	return nil
}

func (s *webhookStore) getWebhook(id string) (*Webhook, error) {
	var hook Webhook
	if err := s.store.Get(id, &hook); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, ErrWebhookNotFound
		}
		return nil, err
	}
	return &hook, nil
}

func (s *webhookStore) removeWebhook(id string) error {
	if err := s.store.Delete(id, Webhook{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrWebhookNotFound
		}
		return err
	}
	return nil
}

func (s *webhookStore) getWebhooksForTopic(topic string) ([]*Webhook, error) {
	query := badgerhold.Where("TopicName").Eq(topic)

	hooks := make([]Webhook, 0)
	if err := s.store.Find(&hooks, query); err != nil {
		return nil, err
	}

	list := make([]*Webhook, 0, len(hooks))
	for i := range hooks {
		list = append(list, &hooks[i])
	}
	return list, nil
}

func (s *webhookStore) getAllWebhooks() ([]*Webhook, error) {
	hooks := make([]Webhook, 0)
	if err := s.store.Find(&hooks, nil); err != nil {
		return nil, err
	}

	list := make([]*Webhook, 0, len(hooks))
	for i := range hooks {
		list = append(list, &hooks[i])
	}
	return list, nil
}

func (s *webhookStore) close() error {
	return s.store.Close()
}
