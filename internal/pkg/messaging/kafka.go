package messaging

import (
	"context"
	"errors"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig configures the Kafka driver.
type KafkaConfig struct {
	// Brokers are the bootstrap broker addresses.
	Brokers []string
}

// Kafka is a Messaging implementation backed by segmentio/kafka-go.
type Kafka struct {
	brokers []string
	writer  *kafka.Writer
}

// NewKafka builds a Kafka client with a shared writer.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("messaging: kafka brokers are required")
	}

	return &Kafka{
		brokers: cfg.Brokers,
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Balancer: &kafka.Hash{},
		},
	}, nil
}

// Publish writes a message to the topic.
func (k *Kafka) Publish(ctx context.Context, destination string, msg OutgoingMessage) error {
	headers := make([]kafka.Header, 0, len(msg.Headers))
	for _, h := range msg.Headers {
		headers = append(headers, kafka.Header{Key: h.Key, Value: h.Value})
	}

	return k.writer.WriteMessages(ctx, kafka.Message{
		Topic:   destination,
		Key:     msg.Key,
		Value:   msg.Body,
		Headers: headers,
	})
}

// Consume reads the topic within a consumer group and blocks until the
// context is canceled.
func (k *Kafka) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	co := newConsumeOptions(opts...)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.brokers,
		GroupID: co.group,
		Topic:   source,
	})
	defer func() {
		if err := reader.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close kafka reader", "topic", source, "error", err)
		}
	}()

	for {
		// ReadMessage commits the offset after the message is returned.
		m, err := reader.ReadMessage(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		if err != nil {
			return err
		}

		//nolint:errcheck // offset is already committed, redelivery is not possible here
		_ = safeHandle(ctx, handler, &kafkaMessage{msg: m})
	}
}

// Close closes the shared writer.
func (k *Kafka) Close() error {
	return k.writer.Close()
}

type kafkaMessage struct {
	msg kafka.Message
}

func (m *kafkaMessage) Body() []byte {
	return m.msg.Value
}

func (m *kafkaMessage) Headers() []Header {
	headers := make([]Header, 0, len(m.msg.Headers))
	for _, h := range m.msg.Headers {
		headers = append(headers, Header{Key: h.Key, Value: h.Value})
	}
	return headers
}
