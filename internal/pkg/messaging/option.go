package messaging

type consumeOptions struct {
	// concurrency is the number of handler goroutines per consumer.
	concurrency int
	// group is the Kafka consumer group name.
	group string
	// channel is the NSQ channel name.
	channel string
	// queueGroup is the NATS queue group name.
	queueGroup string
	// subscription is the Google Pub/Sub subscription name.
	subscription string
	// maxInFlight limits unacknowledged messages in flight.
	maxInFlight int
}

// ConsumeOption configures consumer behavior.
type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	co := consumeOptions{concurrency: 1, maxInFlight: 1}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&co)
	}
	if co.concurrency < 1 {
		co.concurrency = 1
	}
	if co.maxInFlight < 1 {
		co.maxInFlight = 1
	}
	return co
}

// WithConcurrency sets how many handler goroutines process messages in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithGroup sets the consumer group name (Kafka).
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}

// WithChannel sets the channel name (NSQ).
func WithChannel(channel string) ConsumeOption {
	return func(o *consumeOptions) { o.channel = channel }
}

// WithQueueGroup sets the queue group name (NATS).
func WithQueueGroup(queueGroup string) ConsumeOption {
	return func(o *consumeOptions) { o.queueGroup = queueGroup }
}

// WithSubscription sets the subscription name (Google Pub/Sub).
func WithSubscription(subscription string) ConsumeOption {
	return func(o *consumeOptions) { o.subscription = subscription }
}

// WithMaxInFlight limits the maximum number of unacknowledged messages in flight.
func WithMaxInFlight(maxInFlight int) ConsumeOption {
	return func(o *consumeOptions) { o.maxInFlight = maxInFlight }
}
