package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
)

var validInput = PredictInput{
	Brand:           "Dell",
	ProcessorSpeed:  3.2,
	RAMSize:         16,
	StorageCapacity: 512,
	ScreenSize:      15.6,
	Weight:          1.8,
}

func TestPredict(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t, testArtifact)
		ctx := authenticatedContext(7)

		// Act
		out, err := h.uc.Predict(ctx, validInput)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Prediction.PredictedPrice == 0 {
			t.Fatalf("expected a non-zero predicted price")
		}
		if out.Prediction.UserID != 7 {
			t.Fatalf("expected row owned by user 7, got %d", out.Prediction.UserID)
		}
		if len(h.repo.rows) != 1 {
			t.Fatalf("expected one persisted row, got %d", len(h.repo.rows))
		}
		if h.repo.rows[0].PredictedPrice != out.Prediction.PredictedPrice {
			t.Fatalf("persisted price differs from returned price")
		}
	})

	t.Run("PublishesEvent", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t, testArtifact)
		ctx := authenticatedContext(7)

		// Act
		out, err := h.uc.Predict(ctx, validInput)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := h.goroutine.Wait(); err != nil {
			t.Fatalf("background publish failed: %v", err)
		}
		if len(h.messaging.events) != 1 {
			t.Fatalf("expected one event, got %d", len(h.messaging.events))
		}
		if h.messaging.events[0].PredictionID != out.Prediction.ID {
			t.Fatalf("event references wrong prediction")
		}
	})

	t.Run("UnknownBrand", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t, testArtifact)
		ctx := authenticatedContext(7)
		in := validInput
		in.Brand = "Commodore"

		// Act
		_, err := h.uc.Predict(ctx, in)

		// Assert
		assertCode(t, err, goerror.CodeInvalidFormat)

		var gerr *goerror.Error
		if !errors.As(err, &gerr) {
			t.Fatalf("expected goerror.Error, got %v", err)
		}
		brands := gerr.Fields()["available_brands"]
		if !strings.Contains(brands, "Dell") || !strings.Contains(brands, "Lenovo") {
			t.Fatalf("expected known brands in detail, got %q", brands)
		}
		if len(h.repo.rows) != 0 {
			t.Fatalf("expected no row persisted for a rejected brand")
		}
	})

	t.Run("ModelUnavailable", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t, "")
		ctx := authenticatedContext(7)

		// Act
		_, err := h.uc.Predict(ctx, validInput)

		// Assert
		assertCode(t, err, goerror.CodeInternal)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t, testArtifact)

		// Act
		_, err := h.uc.Predict(context.Background(), validInput)

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("InvalidFeatures", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t, testArtifact)
		ctx := authenticatedContext(7)
		in := validInput
		in.RAMSize = -8

		// Act
		_, err := h.uc.Predict(ctx, in)

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})
}
