package ports

// Subscription holds the info of a client subscribed for a topic.
type Subscription interface {
	Topic() string
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// SecurePubSub defines the methods of the pubsub service used to notify
// external observers about vault and tenant events.
type SecurePubSub interface {
	// Subscribe adds a new subscription for the requested topic and
	// returns its id.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the subscription with the given id.
	Unsubscribe(topic, id string) error
	// ListSubscriptionsForTopic returns the info of all clients
	// subscribed for a certain topic.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish publishes a message for a certain topic. All clients
	// subscribed for such topic will receive the message.
	Publish(topic string, message string) error
	// Close should be used to gracefully shut the service down.
	Close() error
}
