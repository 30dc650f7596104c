package webhookpubsub

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tokex-network/tokex-daemon/internal/core/ports"
)

const httpTimeout = 10 * time.Second

type subscription struct {
	id       string
	topic    string
	endpoint string
}

func (s subscription) Id() string       { return s.id }
func (s subscription) Topic() string    { return s.topic }
func (s subscription) NotifyAt() string { return s.endpoint }

// WebhookPubSubService is a ports.PubSubService notifying subscribers by
// invoking their HTTP endpoint with the JSON serialized message of the
// published event.
type WebhookPubSubService struct {
	httpClient *http.Client

	subscriptionsByTopic map[string][]subscription
	lock                 *sync.RWMutex
}

// NewWebhookPubSubService returns a pubsub service without subscriptions.
func NewWebhookPubSubService() ports.PubSubService {
	return &WebhookPubSubService{
		httpClient:           &http.Client{Timeout: httpTimeout},
		subscriptionsByTopic: map[string][]subscription{},
		lock:                 &sync.RWMutex{},
	}
}

func (s *WebhookPubSubService) Subscribe(topic, endpoint string) (string, error) {
	if topic == "" {
		return "", fmt.Errorf("topic must not be empty")
	}
	if endpoint == "" {
		return "", fmt.Errorf("endpoint must not be empty")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	sub := subscription{
		id:       uuid.New().String(),
		topic:    topic,
		endpoint: endpoint,
	}
	s.subscriptionsByTopic[topic] = append(s.subscriptionsByTopic[topic], sub)
	return sub.id, nil
}

func (s *WebhookPubSubService) Unsubscribe(topic, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	subs := s.subscriptionsByTopic[topic]
	for i, sub := range subs {
		if sub.id == id {
			s.subscriptionsByTopic[topic] = append(subs[:i], subs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("subscription %s not found for topic %s", id, topic)
}

func (s *WebhookPubSubService) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	s.lock.RLock()
	defer s.lock.RUnlock()

	subs := s.subscriptionsByTopic[topic]
	list := make([]ports.Subscription, 0, len(subs))
	for _, sub := range subs {
		list = append(list, sub)
	}
	return list
}

func (s *WebhookPubSubService) Publish(topic string, message string) error {
	s.lock.RLock()
	subs := make([]subscription, 0)
	subs = append(subs, s.subscriptionsByTopic[topic]...)
	subs = append(subs, s.subscriptionsByTopic[ports.AnyTopic]...)
	s.lock.RUnlock()

	for _, sub := range subs {
		go s.notify(sub, topic, message)
	}
	return nil
}

func (s *WebhookPubSubService) notify(sub subscription, topic, message string) {
	resp, err := s.httpClient.Post(
		sub.endpoint, "application/json", bytes.NewBufferString(message),
	)
	if err != nil {
		log.WithError(err).Warnf(
			"failed to notify subscriber %s for topic %s", sub.id, topic,
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf(
			"subscriber %s replied with status %d for topic %s",
			sub.id, resp.StatusCode, topic,
		)
	}
}
