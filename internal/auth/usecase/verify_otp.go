package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/laprice/internal/auth/entity"
	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
)

type VerifyOtpInput struct {
	Code string `validate:"required,len=6,number"`
}

type VerifyOtpOutput struct {
	User entity.User
}

// VerifyOtp consumes the pending user's passcode and promotes the session to
// authenticated. A miss leaves the pending state intact so the caller can
// retry or request a resend.
func (s *Usecase) VerifyOtp(ctx context.Context, in VerifyOtpInput) (*VerifyOtpOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOtp")
	defer span.End()

	auth, err := s.pendingAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	userID := auth.Session.UserID
	ok, err := s.repoDB.ConsumePasscode(ctx, userID, in.Code, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume passcode", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "passcode did not match a live record", "user_id", userID)
		return nil, goerror.NewBusiness("invalid or expired OTP", goerror.CodeUnauthorized)
	}

	// Load the user before touching the session, so a failed read leaves the
	// caller pending instead of half-authenticated.
	user, err := s.repoDB.GetUserByID(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.sessions.Save(ctx, auth.Token, session.Session{
		UserID:    userID,
		State:     session.StateAuthenticated,
		CreatedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to promote session", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOtpOutput{User: *user}, nil
}
