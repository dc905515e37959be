package messaging

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nsqio/go-nsq"
)

// NSQConfig configures the NSQ driver.
type NSQConfig struct {
	// ProducerAddr is the nsqd address used for publishing.
	ProducerAddr string
	// ConsumerNSQDAddrs are nsqd addresses for direct consumption.
	ConsumerNSQDAddrs []string
	// ConsumerLookupdAddrs are nsqlookupd addresses for discovery.
	ConsumerLookupdAddrs []string
	// ProducerConfig tunes the producer connection.
	ProducerConfig *nsq.Config
	// ConsumerConfig tunes consumer connections.
	ConsumerConfig *nsq.Config
}

// NSQ is a Messaging implementation backed by nsqio/go-nsq.
//
// NSQ has no native message headers, so messages are wrapped in a small JSON
// envelope on the wire.
type NSQ struct {
	cfg      NSQConfig
	producer *nsq.Producer
}

type nsqEnvelope struct {
	Headers []Header `json:"headers,omitempty"`
	Body    []byte   `json:"body"`
}

// NewNSQ connects a producer to nsqd.
func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	if cfg.ProducerAddr == "" {
		return nil, errors.New("messaging: nsq producer address is required")
	}

	producerCfg := cfg.ProducerConfig
	if producerCfg == nil {
		producerCfg = nsq.NewConfig()
	}

	producer, err := nsq.NewProducer(cfg.ProducerAddr, producerCfg)
	if err != nil {
		return nil, err
	}

	return &NSQ{cfg: cfg, producer: producer}, nil
}

// Publish sends a message to the topic.
func (n *NSQ) Publish(ctx context.Context, destination string, msg OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(nsqEnvelope{Headers: msg.Headers, Body: msg.Body})
	if err != nil {
		return err
	}

	return n.producer.Publish(destination, body)
}

// Consume reads the topic on the configured channel and blocks until the
// context is canceled.
func (n *NSQ) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	co := newConsumeOptions(opts...)

	consumerCfg := n.cfg.ConsumerConfig
	if consumerCfg == nil {
		consumerCfg = nsq.NewConfig()
	}
	if co.maxInFlight > 0 {
		consumerCfg.MaxInFlight = co.maxInFlight
	}

	consumer, err := nsq.NewConsumer(source, co.channel, consumerCfg)
	if err != nil {
		return err
	}

	consumer.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
		var env nsqEnvelope
		if err := json.Unmarshal(m.Body, &env); err != nil {
			// Not our envelope; deliver the raw body.
			env = nsqEnvelope{Body: m.Body}
		}
		return safeHandle(ctx, handler, &nsqMessage{env: env})
	}), co.concurrency)

	switch {
	case len(n.cfg.ConsumerLookupdAddrs) > 0:
		err = consumer.ConnectToNSQLookupds(n.cfg.ConsumerLookupdAddrs)
	case len(n.cfg.ConsumerNSQDAddrs) > 0:
		err = consumer.ConnectToNSQDs(n.cfg.ConsumerNSQDAddrs)
	default:
		err = errors.New("messaging: nsq consumer addresses are required")
	}
	if err != nil {
		consumer.Stop()
		return err
	}

	<-ctx.Done()
	consumer.Stop()
	<-consumer.StopChan

	return nil
}

// Close stops the producer.
func (n *NSQ) Close() error {
	n.producer.Stop()
	return nil
}

type nsqMessage struct {
	env nsqEnvelope
}

func (m *nsqMessage) Body() []byte {
	return m.env.Body
}

func (m *nsqMessage) Headers() []Header {
	return m.env.Headers
}
