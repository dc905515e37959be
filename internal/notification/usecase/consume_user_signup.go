package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/laprice/internal/pkg/mail"
)

type ConsumeUserSignupInput struct {
	UserID   int64  `validate:"required,gt=0"`
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
}

// ConsumeUserSignup sends the welcome email for a freshly created account.
func (s *Usecase) ConsumeUserSignup(ctx context.Context, in ConsumeUserSignupInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserSignup")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		// A malformed event will not become valid on redelivery.
		slog.ErrorContext(ctx, "invalid user signup event", "user_id", in.UserID, "error", err)
		return nil
	}

	appName := s.cfg.GetString("app.name")
	msg := mail.Message{
		To:      []string{in.Email},
		Subject: fmt.Sprintf("Welcome to %s", appName),
		TextBody: fmt.Sprintf("Hi %s,\n\nYour account is ready. "+
			"Sign in and get your first laptop price estimate.\n\n%s\n", in.Username, appName),
	}

	if err := s.repoMail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send welcome email", "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}
