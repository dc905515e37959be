package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/predictor"
	"github.com/shandysiswandi/laprice/internal/prediction/entity"
)

type PredictInput struct {
	Brand           string  `validate:"required"`
	ProcessorSpeed  float64 `validate:"required,gt=0"`
	RAMSize         int32   `validate:"required,gt=0"`
	StorageCapacity int32   `validate:"required,gt=0"`
	ScreenSize      float64 `validate:"required,gt=0"`
	Weight          float64 `validate:"required,gt=0"`
}

type PredictOutput struct {
	Prediction entity.Prediction
}

// Predict scores the six features against the loaded model and logs the
// inference as an immutable row owned by the caller.
func (s *Usecase) Predict(ctx context.Context, in PredictInput) (*PredictOutput, error) {
	ctx, span := s.startSpan(ctx, "Predict")
	defer span.End()

	userID, err := s.authenticatedUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	model, err := s.predictor.Model()
	if err != nil {
		slog.ErrorContext(ctx, "prediction model is not loaded", "error", err)
		return nil, goerror.NewServer(err)
	}

	price, err := model.Predict(predictor.Features{
		Brand:           in.Brand,
		ProcessorSpeed:  in.ProcessorSpeed,
		RAMSize:         in.RAMSize,
		StorageCapacity: in.StorageCapacity,
		ScreenSize:      in.ScreenSize,
		Weight:          in.Weight,
	})
	var unknownBrand *predictor.UnknownBrandError
	if errors.As(err, &unknownBrand) {
		slog.WarnContext(ctx, "prediction requested for unknown brand", "brand", in.Brand)
		return nil, goerror.NewBusinessFields(
			"unknown brand: "+in.Brand,
			goerror.CodeInvalidFormat,
			map[string]string{"available_brands": strings.Join(unknownBrand.Known, ", ")},
		)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to score prediction", "error", err)
		return nil, goerror.NewServer(err)
	}

	row := entity.NewPrediction{
		ID:              s.uid.Generate(),
		UserID:          userID,
		Brand:           in.Brand,
		ProcessorSpeed:  in.ProcessorSpeed,
		RAMSize:         in.RAMSize,
		StorageCapacity: in.StorageCapacity,
		ScreenSize:      in.ScreenSize,
		Weight:          in.Weight,
		PredictedPrice:  price,
	}

	if err := s.repoDB.CreatePrediction(ctx, row); err != nil {
		slog.ErrorContext(ctx, "failed to repo create prediction", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishPredictionCreated(ctx, PredictionCreatedEvent{
			PredictionID:   row.ID,
			UserID:         row.UserID,
			Brand:          row.Brand,
			PredictedPrice: row.PredictedPrice,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish prediction created", "prediction_id", row.ID, "error", err)
		}
		return nil
	})

	return &PredictOutput{Prediction: entity.Prediction{
		ID:              row.ID,
		UserID:          row.UserID,
		Brand:           row.Brand,
		ProcessorSpeed:  row.ProcessorSpeed,
		RAMSize:         row.RAMSize,
		StorageCapacity: row.StorageCapacity,
		ScreenSize:      row.ScreenSize,
		Weight:          row.Weight,
		PredictedPrice:  row.PredictedPrice,
		CreatedAt:       s.clock.Now(),
	}}, nil
}
