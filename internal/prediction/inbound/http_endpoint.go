package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/laprice/internal/pkg/router"
	"github.com/shandysiswandi/laprice/internal/prediction/entity"
	"github.com/shandysiswandi/laprice/internal/prediction/usecase"
)

// HTTPEndpoint exposes HTTP handlers for price inference.
type HTTPEndpoint struct {
	uc uc
}

// Predict scores a laptop configuration and returns the predicted price.
func (h *HTTPEndpoint) Predict(r *router.Request) (any, error) {
	var req PredictRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Predict(r.Context(), usecase.PredictInput{
		Brand:           req.Brand,
		ProcessorSpeed:  req.ProcessorSpeed,
		RAMSize:         req.RAMSize,
		StorageCapacity: req.StorageCapacity,
		ScreenSize:      req.ScreenSize,
		Weight:          req.Weight,
	})
	if err != nil {
		return nil, err
	}

	return PredictResponse{
		PredictedPrice: resp.Prediction.PredictedPrice,
		Prediction:     toPredictionPayload(resp.Prediction),
	}, nil
}

// History lists the caller's past predictions, newest first.
func (h *HTTPEndpoint) History(r *router.Request) (any, error) {
	resp, err := h.uc.History(r.Context())
	if err != nil {
		return nil, err
	}

	return HistoryResponse{
		Predictions: lo.Map(resp.Predictions, func(p entity.Prediction, _ int) PredictionPayload {
			return toPredictionPayload(p)
		}),
	}, nil
}
