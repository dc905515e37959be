package inbound

import (
	"time"

	"github.com/shandysiswandi/laprice/internal/prediction/entity"
)

type PredictRequest struct {
	Brand           string  `json:"brand"`
	ProcessorSpeed  float64 `json:"processor_speed"`
	RAMSize         int32   `json:"ram_size"`
	StorageCapacity int32   `json:"storage_capacity"`
	ScreenSize      float64 `json:"screen_size"`
	Weight          float64 `json:"weight"`
}

type PredictionPayload struct {
	ID              int64     `json:"id"`
	Brand           string    `json:"brand"`
	ProcessorSpeed  float64   `json:"processor_speed"`
	RAMSize         int32     `json:"ram_size"`
	StorageCapacity int32     `json:"storage_capacity"`
	ScreenSize      float64   `json:"screen_size"`
	Weight          float64   `json:"weight"`
	PredictedPrice  float64   `json:"predicted_price"`
	CreatedAt       time.Time `json:"created_at"`
}

func toPredictionPayload(p entity.Prediction) PredictionPayload {
	return PredictionPayload{
		ID:              p.ID,
		Brand:           p.Brand,
		ProcessorSpeed:  p.ProcessorSpeed,
		RAMSize:         p.RAMSize,
		StorageCapacity: p.StorageCapacity,
		ScreenSize:      p.ScreenSize,
		Weight:          p.Weight,
		PredictedPrice:  p.PredictedPrice,
		CreatedAt:       p.CreatedAt,
	}
}

type PredictResponse struct {
	PredictedPrice float64           `json:"predicted_price"`
	Prediction     PredictionPayload `json:"prediction"`
}

type HistoryResponse struct {
	Predictions []PredictionPayload `json:"predictions"`
}
