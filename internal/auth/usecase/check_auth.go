package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/laprice/internal/auth/entity"
	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
)

type CheckAuthOutput struct {
	Authenticated bool
	User          *entity.User
}

// CheckAuth reports whether the caller holds a fully authenticated session.
// It is a pure read with no state transition.
func (s *Usecase) CheckAuth(ctx context.Context) (*CheckAuthOutput, error) {
	ctx, span := s.startSpan(ctx, "CheckAuth")
	defer span.End()

	auth := session.GetAuth(ctx)
	if auth == nil || auth.Session.State != session.StateAuthenticated {
		return &CheckAuthOutput{Authenticated: false}, nil
	}

	user, err := s.repoDB.GetUserByID(ctx, auth.Session.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		// Session outlived the user row.
		slog.WarnContext(ctx, "session references a missing user", "user_id", auth.Session.UserID)
		return &CheckAuthOutput{Authenticated: false}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", auth.Session.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CheckAuthOutput{Authenticated: true, User: user}, nil
}
