package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/laprice/internal/pkg/session"
)

// Logout clears the caller's session. It always succeeds; a missing or
// already-cleared session is not an error.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	auth := session.GetAuth(ctx)
	if auth == nil {
		return nil
	}

	if err := s.sessions.Delete(ctx, auth.Token); err != nil {
		// The cookie is cleared regardless, so the caller still ends up
		// signed out; the orphaned record expires with its TTL.
		slog.ErrorContext(ctx, "failed to delete session", "user_id", auth.Session.UserID, "error", err)
	}

	return nil
}
