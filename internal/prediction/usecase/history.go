package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/prediction/entity"
)

type HistoryOutput struct {
	// Predictions are the caller's own rows, newest first.
	Predictions []entity.Prediction
}

// History lists the caller's past predictions. Scoping by the session's user
// id is the only filter; a caller can never address another user's rows.
func (s *Usecase) History(ctx context.Context) (*HistoryOutput, error) {
	ctx, span := s.startSpan(ctx, "History")
	defer span.End()

	userID, err := s.authenticatedUserID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repoDB.GetPredictionsByUserID(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get predictions", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &HistoryOutput{Predictions: rows}, nil
}
