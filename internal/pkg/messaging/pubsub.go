package messaging

import (
	"context"
	"errors"
	"sync"

	"cloud.google.com/go/pubsub/v2"
	"google.golang.org/api/option"
)

// PubSubConfig configures the Google Pub/Sub driver.
type PubSubConfig struct {
	// ProjectID is the GCP project hosting the topics.
	ProjectID string
	// ClientOptions are extra client options (credentials, endpoint, ...).
	ClientOptions []option.ClientOption
}

// PubSub is a Messaging implementation backed by Google Cloud Pub/Sub.
type PubSub struct {
	client *pubsub.Client

	mu         sync.Mutex
	publishers map[string]*pubsub.Publisher
}

// NewPubSub builds a Pub/Sub client for the project.
func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("messaging: pubsub project id is required")
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID, cfg.ClientOptions...)
	if err != nil {
		return nil, err
	}

	return &PubSub{client: client, publishers: make(map[string]*pubsub.Publisher)}, nil
}

func (p *PubSub) publisher(topic string) *pubsub.Publisher {
	p.mu.Lock()
	defer p.mu.Unlock()

	pub, ok := p.publishers[topic]
	if !ok {
		pub = p.client.Publisher(topic)
		p.publishers[topic] = pub
	}
	return pub
}

// Publish sends a message to the topic and waits for the server ack.
func (p *PubSub) Publish(ctx context.Context, destination string, msg OutgoingMessage) error {
	attrs := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		attrs[h.Key] = string(h.Value)
	}

	result := p.publisher(destination).Publish(ctx, &pubsub.Message{
		Data:       msg.Body,
		Attributes: attrs,
	})

	_, err := result.Get(ctx)
	return err
}

// Consume receives from the subscription and blocks until the context is
// canceled. The source topic is implied by the subscription.
func (p *PubSub) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	co := newConsumeOptions(opts...)

	subscription := co.subscription
	if subscription == "" {
		subscription = source
	}

	sub := p.client.Subscriber(subscription)
	sub.ReceiveSettings.NumGoroutines = co.concurrency
	sub.ReceiveSettings.MaxOutstandingMessages = co.maxInFlight

	err := sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		if err := safeHandle(ctx, handler, &pubsubMessage{msg: m}); err != nil {
			m.Nack()
			return
		}
		m.Ack()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close stops publishers and closes the client.
func (p *PubSub) Close() error {
	p.mu.Lock()
	for _, pub := range p.publishers {
		pub.Stop()
	}
	p.mu.Unlock()

	return p.client.Close()
}

type pubsubMessage struct {
	msg *pubsub.Message
}

func (m *pubsubMessage) Body() []byte {
	return m.msg.Data
}

func (m *pubsubMessage) Headers() []Header {
	headers := make([]Header, 0, len(m.msg.Attributes))
	for key, value := range m.msg.Attributes {
		headers = append(headers, Header{Key: key, Value: []byte(value)})
	}
	return headers
}
