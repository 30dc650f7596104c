package webhookpubsub_test

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tokex-network/tokex-daemon/internal/core/ports"
	webhookpubsub "github.com/tokex-network/tokex-daemon/internal/infrastructure/pubsub"
)

func TestSubscribeAndUnsubscribe(t *testing.T) {
	t.Parallel()

	svc := webhookpubsub.NewWebhookPubSubService()

	id, err := svc.Subscribe("offer.filled", "http://localhost:8080/hook")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	subs := svc.ListSubscriptionsForTopic("offer.filled")
	require.Len(t, subs, 1)
	require.Equal(t, id, subs[0].Id())
	require.Equal(t, "offer.filled", subs[0].Topic())
	require.Equal(t, "http://localhost:8080/hook", subs[0].NotifyAt())

	err = svc.Unsubscribe("offer.filled", id)
	require.NoError(t, err)
	require.Empty(t, svc.ListSubscriptionsForTopic("offer.filled"))

	err = svc.Unsubscribe("offer.filled", id)
	require.Error(t, err)
}

func TestFailingSubscribe(t *testing.T) {
	t.Parallel()

	svc := webhookpubsub.NewWebhookPubSubService()

	_, err := svc.Subscribe("", "http://localhost:8080/hook")
	require.Error(t, err)

	_, err = svc.Subscribe("offer.filled", "")
	require.Error(t, err)
}

func TestPublish(t *testing.T) {
	t.Parallel()

	received := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			body, _ := ioutil.ReadAll(r.Body)
			received <- string(body)
		},
	))
	defer server.Close()

	svc := webhookpubsub.NewWebhookPubSubService()
	_, err := svc.Subscribe("offer.filled", server.URL)
	require.NoError(t, err)
	// subscribers of the any topic get every event
	_, err = svc.Subscribe(ports.AnyTopic, server.URL)
	require.NoError(t, err)

	err = svc.Publish("offer.filled", `{"offer_id":1}`)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		select {
		case body := <-received:
			require.Equal(t, `{"offer_id":1}`, body)
		case <-time.After(3 * time.Second):
			t.Fatal("subscriber was not notified in time")
		}
	}

	// events of other topics don't reach the subscriber of offer.filled twice
	err = svc.Publish("exchange.created", `{"exchange_id":1}`)
	require.NoError(t, err)

	select {
	case body := <-received:
		require.Equal(t, `{"exchange_id":1}`, body)
	case <-time.After(3 * time.Second):
		t.Fatal("any topic subscriber was not notified in time")
	}
}
