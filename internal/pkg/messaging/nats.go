package messaging

import (
	"context"

	"github.com/nats-io/nats.go"
)

// NATSConfig configures the NATS driver.
type NATSConfig struct {
	// URL is the NATS server URL.
	URL string
	// Options are extra connection options (name, reconnect policy, ...).
	Options []nats.Option
}

// NATS is a Messaging implementation backed by core NATS.
type NATS struct {
	conn *nats.Conn
}

// NewNATS connects to the NATS server.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, err
	}
	return &NATS{conn: conn}, nil
}

// Publish sends a message to the subject.
func (n *NATS) Publish(ctx context.Context, destination string, msg OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := nats.NewMsg(destination)
	m.Data = msg.Body
	for _, h := range msg.Headers {
		m.Header.Add(h.Key, string(h.Value))
	}

	return n.conn.PublishMsg(m)
}

// Consume subscribes to the subject (queue group when configured) and blocks
// until the context is canceled.
func (n *NATS) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	co := newConsumeOptions(opts...)

	cb := func(m *nats.Msg) {
		//nolint:errcheck // core NATS has no redelivery to drive with the error
		_ = safeHandle(ctx, handler, &natsMessage{msg: m})
	}

	var sub *nats.Subscription
	var err error
	if co.queueGroup != "" {
		sub, err = n.conn.QueueSubscribe(source, co.queueGroup, cb)
	} else {
		sub, err = n.conn.Subscribe(source, cb)
	}
	if err != nil {
		return err
	}

	<-ctx.Done()

	return sub.Drain()
}

// Close drains and closes the connection.
func (n *NATS) Close() error {
	return n.conn.Drain()
}

type natsMessage struct {
	msg *nats.Msg
}

func (m *natsMessage) Body() []byte {
	return m.msg.Data
}

func (m *natsMessage) Headers() []Header {
	headers := make([]Header, 0, len(m.msg.Header))
	for key, values := range m.msg.Header {
		for _, value := range values {
			headers = append(headers, Header{Key: key, Value: []byte(value)})
		}
	}
	return headers
}
