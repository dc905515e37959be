// Package delivery dispatches one-time passcodes to their channels.
//
// Delivery never fails the authentication flow: by the time it runs, the
// passcode row is already authoritative in storage. A failed or timed-out
// dispatch degrades to a log line carrying the code so an operator can relay
// it manually.
package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/laprice/internal/auth/entity"
	"github.com/shandysiswandi/laprice/internal/pkg/instrument"
	"github.com/shandysiswandi/laprice/internal/pkg/mail"
	"github.com/shandysiswandi/laprice/internal/pkg/sms"
	"go.opentelemetry.io/otel/trace"
)

type Delivery struct {
	mailer  mail.Mail
	sms     sms.Sender
	timeout time.Duration
	ins     instrument.Instrumentation
}

// NewDelivery builds the passcode dispatcher. Each dispatch is bounded by the
// timeout so a slow provider cannot hang the sign-in request.
func NewDelivery(mailer mail.Mail, smsSender sms.Sender, timeout time.Duration, ins instrument.Instrumentation) *Delivery {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Delivery{
		mailer:  mailer,
		sms:     smsSender,
		timeout: timeout,
		ins:     ins,
	}
}

func (d *Delivery) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return d.ins.Tracer("auth.outbound.delivery").Start(ctx, name)
}

// SendPasscode dispatches the code on every applicable channel.
func (d *Delivery) SendPasscode(ctx context.Context, user entity.User, code string, expiresIn time.Duration, channels []entity.Channel) {
	ctx, span := d.startSpan(ctx, "SendPasscode")
	defer span.End()

	minutes := int(expiresIn.Minutes())

	for _, channel := range channels {
		var err error
		switch channel {
		case entity.ChannelEmail:
			err = d.sendEmail(ctx, user, code, minutes)
		case entity.ChannelSMS:
			err = d.sendSMS(ctx, user, code, minutes)
		default:
			continue
		}

		if err != nil {
			// Operator-visible fallback; the code is still valid.
			slog.ErrorContext(ctx, "failed to deliver passcode",
				"user_id", user.ID, "channel", channel.String(), "error", err)
			slog.WarnContext(ctx, "passcode fallback surface",
				"user_id", user.ID, "channel", channel.String(), "code", code)
		}
	}
}

func (d *Delivery) sendEmail(ctx context.Context, user entity.User, code string, minutes int) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	return d.mailer.Send(ctx, mail.Message{
		To:      []string{user.Email},
		Subject: "Your verification code",
		TextBody: fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in %d minutes.\n",
			user.Username, code, minutes),
	})
}

func (d *Delivery) sendSMS(ctx context.Context, user entity.User, code string, minutes int) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, minutes)
	return d.sms.Send(ctx, user.Phone, body)
}
