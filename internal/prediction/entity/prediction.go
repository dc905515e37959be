package entity

import "time"

// Prediction is a logged inference, immutable once written and owned
// exclusively by its user.
type Prediction struct {
	ID              int64
	UserID          int64
	Brand           string
	ProcessorSpeed  float64
	RAMSize         int32
	StorageCapacity int32
	ScreenSize      float64
	Weight          float64
	PredictedPrice  float64
	CreatedAt       time.Time
}

// NewPrediction carries the fields persisted by the predict operation.
type NewPrediction struct {
	ID              int64
	UserID          int64
	Brand           string
	ProcessorSpeed  float64
	RAMSize         int32
	StorageCapacity int32
	ScreenSize      float64
	Weight          float64
	PredictedPrice  float64
}
