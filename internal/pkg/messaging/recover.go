package messaging

import (
	"context"
	"log/slog"
	"runtime/debug"
)

// safeHandle runs the handler and converts panics into errors so a misbehaving
// consumer cannot take down the process.
func safeHandle(ctx context.Context, handler Handler, msg Message) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic in message handler", "because", rvr, "stack", string(debug.Stack()))
			err = nil
		}
	}()

	return handler(ctx, msg)
}
