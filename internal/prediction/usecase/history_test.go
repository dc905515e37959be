package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/prediction/entity"
)

func TestHistory(t *testing.T) {
	t.Run("ReturnsOwnRowsOnly", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t, testArtifact)
		h.repo.stored = []entity.Prediction{
			{ID: 3, UserID: 7, Brand: "Dell", PredictedPrice: 31000},
			{ID: 2, UserID: 9, Brand: "HP", PredictedPrice: 28000},
			{ID: 1, UserID: 7, Brand: "Asus", PredictedPrice: 26000},
		}
		ctx := authenticatedContext(7)

		// Act
		out, err := h.uc.History(ctx)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(out.Predictions) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(out.Predictions))
		}
		for _, p := range out.Predictions {
			if p.UserID != 7 {
				t.Fatalf("expected only user 7 rows, got row of user %d", p.UserID)
			}
		}
	})

	t.Run("EmptyHistory", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t, testArtifact)
		ctx := authenticatedContext(7)

		// Act
		out, err := h.uc.History(ctx)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(out.Predictions) != 0 {
			t.Fatalf("expected empty history, got %d rows", len(out.Predictions))
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t, testArtifact)

		// Act
		_, err := h.uc.History(context.Background())

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("RepoFailure", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t, testArtifact)
		h.repo.listErr = errors.New("connection reset")
		ctx := authenticatedContext(7)

		// Act
		_, err := h.uc.History(ctx)

		// Assert
		assertCode(t, err, goerror.CodeInternal)
	})
}
