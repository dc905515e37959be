package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/laprice/internal/pkg/clock"
	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/goroutine"
	"github.com/shandysiswandi/laprice/internal/pkg/instrument"
	"github.com/shandysiswandi/laprice/internal/pkg/predictor"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
	"github.com/shandysiswandi/laprice/internal/pkg/uid"
	"github.com/shandysiswandi/laprice/internal/pkg/validator"
	"github.com/shandysiswandi/laprice/internal/prediction/entity"
	"go.opentelemetry.io/otel/trace"
)

type PredictionCreatedEvent struct {
	PredictionID   int64
	UserID         int64
	Brand          string
	PredictedPrice float64
}

type repoMessaging interface {
	PublishPredictionCreated(ctx context.Context, msg PredictionCreatedEvent) error
}

type repoDB interface {
	CreatePrediction(ctx context.Context, p entity.NewPrediction) error
	// GetPredictionsByUserID returns the user's rows, newest first.
	GetPredictionsByUserID(ctx context.Context, userID int64) ([]entity.Prediction, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	predictor     *predictor.Predictor
	validator     validator.Validator
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Predictor     *predictor.Predictor
	Validator     validator.Validator
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		predictor:     dep.Predictor,
		validator:     dep.Validator,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("prediction.usecase").Start(ctx, name)
}

// authenticatedUserID returns the caller's user id. The session middleware
// already rejects unauthenticated callers on these endpoints; this guards the
// usecase when it is driven directly.
func (s *Usecase) authenticatedUserID(ctx context.Context) (int64, error) {
	auth := session.GetAuth(ctx)
	if auth == nil || auth.Session.State != session.StateAuthenticated {
		slog.WarnContext(ctx, "prediction operation without an authenticated session")
		return 0, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return auth.Session.UserID, nil
}
