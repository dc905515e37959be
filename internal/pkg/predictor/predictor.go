// Package predictor scores laptop configurations against a pre-trained linear
// regression artifact.
//
// The artifact bundles the brand label encoding, the standard scaler
// parameters, and the regression coefficients in one JSON document, so the
// service never depends on the training pipeline.
package predictor

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrModelUnavailable is returned when no model artifact is loaded.
var ErrModelUnavailable = errors.New("predictor: model artifact not loaded")

// UnknownBrandError reports a brand outside the model's label encoding.
type UnknownBrandError struct {
	// Brand is the rejected input value.
	Brand string
	// Known lists the brands the model was trained on, sorted.
	Known []string
}

// Error implements the error interface.
func (e *UnknownBrandError) Error() string {
	return fmt.Sprintf("predictor: unknown brand %q", e.Brand)
}

// Features are the six model inputs, in training order.
type Features struct {
	Brand           string
	ProcessorSpeed  float64
	RAMSize         int32
	StorageCapacity int32
	ScreenSize      float64
	Weight          float64
}

type artifact struct {
	Brands       map[string]float64 `json:"brands"`
	ScalerMean   []float64          `json:"scaler_mean"`
	ScalerScale  []float64          `json:"scaler_scale"`
	Coefficients []float64          `json:"coefficients"`
	Intercept    float64            `json:"intercept"`
}

const featureCount = 6

// Model is an immutable, goroutine-safe scoring function.
type Model struct {
	brands       map[string]float64
	knownBrands  []string
	scalerMean   []float64
	scalerScale  []float64
	coefficients []float64
	intercept    float64
}

// Decode parses and validates a model artifact document.
func Decode(data []byte) (*Model, error) {
	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("predictor: decode artifact: %w", err)
	}

	if len(art.Brands) == 0 {
		return nil, errors.New("predictor: artifact has no brand encoding")
	}
	if len(art.ScalerMean) != featureCount || len(art.ScalerScale) != featureCount || len(art.Coefficients) != featureCount {
		return nil, fmt.Errorf("predictor: artifact must carry %d scaler and coefficient entries", featureCount)
	}
	for i, scale := range art.ScalerScale {
		if scale == 0 {
			return nil, fmt.Errorf("predictor: scaler scale is zero at index %d", i)
		}
	}

	known := make([]string, 0, len(art.Brands))
	for brand := range art.Brands {
		known = append(known, brand)
	}
	sort.Strings(known)

	return &Model{
		brands:       art.Brands,
		knownBrands:  known,
		scalerMean:   art.ScalerMean,
		scalerScale:  art.ScalerScale,
		coefficients: art.Coefficients,
		intercept:    art.Intercept,
	}, nil
}

// Brands returns the brands the model was trained on, sorted.
func (m *Model) Brands() []string {
	out := make([]string, len(m.knownBrands))
	copy(out, m.knownBrands)
	return out
}

// Predict scores the features and returns the predicted price.
func (m *Model) Predict(in Features) (float64, error) {
	encoded, ok := m.brands[in.Brand]
	if !ok {
		return 0, &UnknownBrandError{Brand: in.Brand, Known: m.Brands()}
	}

	raw := [featureCount]float64{
		encoded,
		in.ProcessorSpeed,
		float64(in.RAMSize),
		float64(in.StorageCapacity),
		in.ScreenSize,
		in.Weight,
	}

	price := m.intercept
	for i, v := range raw {
		price += m.coefficients[i] * (v - m.scalerMean[i]) / m.scalerScale[i]
	}

	return price, nil
}
