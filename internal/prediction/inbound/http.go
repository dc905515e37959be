package inbound

import (
	"context"

	"github.com/shandysiswandi/laprice/internal/pkg/router"
	"github.com/shandysiswandi/laprice/internal/prediction/usecase"
)

type uc interface {
	Predict(ctx context.Context, in usecase.PredictInput) (*usecase.PredictOutput, error)
	History(ctx context.Context) (*usecase.HistoryOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Both require an authenticated session (enforced by the router middleware).
	r.POST("/api/v1/predictions", end.Predict)
	r.GET("/api/v1/predictions/history", end.History)
}
