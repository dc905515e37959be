// Package messaging provides a broker-agnostic API for publishing and
// consuming messages.
//
// Business code depends only on the interfaces here; the concrete broker
// (Kafka, NATS, NSQ, Google Pub/Sub) is chosen by configuration.
package messaging

import (
	"context"
	"io"
)

// Messaging is a broker-agnostic client that can publish and consume messages.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a destination (topic/subject/queue).
type Publisher interface {
	// Publish sends a message to the destination.
	Publish(ctx context.Context, destination string, msg OutgoingMessage) error
}

// Consumer consumes messages from a source.
//
// Consume blocks until the context is canceled, so callers usually run it in
// a managed goroutine.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message.
//
// Returning a non-nil error requests redelivery on brokers that support it.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage represents a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte
	// Key is used for partitioning on brokers that support it (Kafka).
	Key []byte
	// Headers carry message metadata such as correlation IDs.
	Headers []Header
}

// Header is a key/value pair used for message headers.
type Header struct {
	Key   string
	Value []byte
}

// Message is a broker-agnostic received message.
type Message interface {
	// Body returns the message payload.
	Body() []byte
	// Headers returns message headers.
	Headers() []Header
}
