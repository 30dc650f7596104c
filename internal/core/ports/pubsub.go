package ports

// AnyTopic matches every topic of the pubsub service.
const AnyTopic = "*"

// Subscription is the info of a client subscribed for a topic.
type Subscription interface {
	// Id of the subscription.
	Id() string
	// Topic the subscription listens on.
	Topic() string
	// NotifyAt is the endpoint notified when a message is published.
	NotifyAt() string
}

// PubSubService defines the methods of the pubsub service used to broadcast
// the domain events of the engine.
type PubSubService interface {
	// Subscribe adds a new subscription for the requested topic and returns
	// its id.
	Subscribe(topic, endpoint string) (string, error)
	// Unsubscribe removes a subscription by its id.
	Unsubscribe(topic, id string) error
	// ListSubscriptionsForTopic returns the info of all clients subscribed
	// for a certain topic.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish publishes a message for a certain topic. All clients subscribed
	// for such topic will receive the message.
	Publish(topic string, message string) error
}
