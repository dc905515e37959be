package event

const PredictionCreatedDestination string = "prediction_created"

type PredictionCreatedMessage struct {
	PredictionID   int64   `json:"prediction_id"`
	UserID         int64   `json:"user_id"`
	Brand          string  `json:"brand"`
	PredictedPrice float64 `json:"predicted_price"`
}
