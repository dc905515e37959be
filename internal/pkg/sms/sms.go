// Package sms defines the contract for sending text messages.
//
// Like the mail package, the goal is to keep the rest of the application
// independent from a specific SMS provider. The HTTP gateway implementation
// talks to a generic JSON gateway; the console implementation is for
// development environments without a provider.
package sms

import (
	"context"
	"io"
)

// Sender abstracts an SMS provider.
type Sender interface {
	io.Closer
	// Send dispatches the body to the given phone number.
	Send(ctx context.Context, to, body string) error
}
