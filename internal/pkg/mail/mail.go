package mail

import (
	"context"
	"io"
)

// Message is a provider-agnostic email payload.
type Message struct {
	// From is an optional explicit sender; when empty the implementation
	// falls back to its configured default.
	From string
	// To lists the recipients.
	To []string
	// Subject is the subject line.
	Subject string
	// TextBody is the plain-text body.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
}

// Mail abstracts an email provider.
type Mail interface {
	io.Closer
	// Send dispatches the message through the underlying provider.
	Send(ctx context.Context, msg Message) error
}
