package sms

import (
	"context"
	"log/slog"
)

// Console is a Sender that logs messages instead of sending them.
//
// Intended for development mode where no SMS gateway is configured.
type Console struct{}

// NewConsole returns a console sender.
func NewConsole() *Console {
	return &Console{}
}

// Send logs the message.
func (*Console) Send(ctx context.Context, to, body string) error {
	slog.InfoContext(ctx, "console sms", "to", to, "body", body)
	return nil
}

// Close implements io.Closer for interface compatibility.
func (*Console) Close() error {
	return nil
}
