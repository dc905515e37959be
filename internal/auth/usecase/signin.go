package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/laprice/internal/auth/entity"
	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
)

type SigninInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type SigninOutput struct {
	// Token is the opaque pending-session token for the OTP step.
	Token string
	// SentEmail is the address the code was mailed to.
	SentEmail string
	// SentPhone is the number the code was texted to, empty when none.
	SentPhone string
	Channels  []string
}

// Signin verifies the password and, on success, mints and dispatches a fresh
// one-time passcode, leaving the caller in a pending session. Unknown user and
// wrong password are indistinguishable to the caller.
func (s *Usecase) Signin(ctx context.Context, in SigninInput) (*SigninOutput, error) {
	ctx, span := s.startSpan(ctx, "Signin")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	username := strings.TrimSpace(in.Username)
	user, err := s.repoDB.GetUserByUsername(ctx, username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "username", username)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by username", "username", username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}

	channels, err := s.mintPasscodes(ctx, user)
	if err != nil {
		return nil, err
	}

	token := s.oid.Generate()
	if err := s.sessions.Save(ctx, token, session.Session{
		UserID:    user.ID,
		State:     session.StatePending,
		CreatedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to create pending session", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SigninOutput{
		Token:     token,
		SentEmail: user.Email,
		SentPhone: user.Phone,
		Channels:  lo.Map(channels, func(c entity.Channel, _ int) string { return c.String() }),
	}, nil
}
