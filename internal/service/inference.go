package service

import (
	"context"
	"errors"
	"fmt"

	drainguard "github.com/krishkishore714-max/Drainage-congestion"
	"github.com/krishkishore714-max/Drainage-congestion/internal/artifact"
)

// Valid sensor ranges, matching the training data. Endpoints are inclusive.
const (
	MinTemperatureC  = -10.0
	MaxTemperatureC  = 50.0
	MinWaterDistance = 0.0
	MaxWaterDistance = 1000.0
)

// Fallback confidence defaults used when the classifier cannot report class
// probabilities. These are placeholders, not measured accuracy figures.
const (
	fallbackConfidenceNormal  = 0.98
	fallbackConfidenceBlocked = 0.85
)

var (
	// ErrModelUnavailable is returned when artifacts failed to load at startup.
	ErrModelUnavailable = errors.New("model not loaded")
	// ErrInvalidReading wraps range violations in the submitted reading.
	ErrInvalidReading = errors.New("invalid sensor reading")
)

// InferenceService runs the classification pipeline: feature vector -> scaler
// -> classifier -> status. Stateless; safe for concurrent use since the loaded
// artifacts are read-only.
type InferenceService struct {
	arts *artifact.Artifacts
}

// NewInferenceService builds the pipeline around the loaded artifacts.
// Pass nil when loading failed; Classify then returns ErrModelUnavailable.
func NewInferenceService(arts *artifact.Artifacts) *InferenceService {
	return &InferenceService{arts: arts}
}

// Available reports whether the artifacts loaded and inference can run.
func (s *InferenceService) Available() bool { return s.arts != nil }

// ModelInfo describes the loaded artifacts.
func (s *InferenceService) ModelInfo() ModelInfo {
	if s.arts == nil {
		return ModelInfo{Loaded: false}
	}
	return ModelInfo{
		Loaded:                true,
		ClassifierKind:        s.arts.Classifier.Kind(),
		Features:              artifact.FeatureNames,
		SupportsProbabilities: s.arts.SupportsProbabilities(),
	}
}

// Classify scales the reading and maps the classifier label to a status.
// Label 0 -> BLOCKED, 1 -> NORMAL; this mapping encodes the training convention
// and is not configurable. Any pipeline failure is returned as a value, never
// a panic.
func (s *InferenceService) Classify(ctx context.Context, r drainguard.SensorReading) (drainguard.PredictionResult, error) {
	if s.arts == nil {
		return drainguard.PredictionResult{}, ErrModelUnavailable
	}
	if err := validateReading(r); err != nil {
		return drainguard.PredictionResult{}, err
	}

	scaled, err := s.arts.Scaler.Transform(featureVector(r))
	if err != nil {
		return drainguard.PredictionResult{}, fmt.Errorf("prediction failed: %w", err)
	}

	label, err := s.arts.Classifier.Predict(scaled)
	if err != nil {
		return drainguard.PredictionResult{}, fmt.Errorf("prediction failed: %w", err)
	}

	status, err := statusFromLabel(label)
	if err != nil {
		return drainguard.PredictionResult{}, fmt.Errorf("prediction failed: %w", err)
	}

	confidence, estimated, err := s.confidenceFor(scaled, label, status)
	if err != nil {
		return drainguard.PredictionResult{}, fmt.Errorf("prediction failed: %w", err)
	}

	return drainguard.PredictionResult{
		Status:              status,
		Confidence:          confidence,
		ConfidenceEstimated: estimated,
	}, nil
}

// featureVector assembles the reading in the exact order fixed at training
// time: [gas_value, rain_value, temp_value, water_dist, wf_value].
func featureVector(r drainguard.SensorReading) []float64 {
	return []float64{
		boolAsFeature(r.ToxicGas),
		boolAsFeature(r.IsRaining),
		r.TemperatureC,
		r.WaterDistanceMM,
		boolAsFeature(r.WaterFlowing),
	}
}

func boolAsFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func validateReading(r drainguard.SensorReading) error {
	if r.TemperatureC < MinTemperatureC || r.TemperatureC > MaxTemperatureC {
		return fmt.Errorf("%w: temperature_c %.2f out of range [%.0f, %.0f]",
			ErrInvalidReading, r.TemperatureC, MinTemperatureC, MaxTemperatureC)
	}
	if r.WaterDistanceMM < MinWaterDistance || r.WaterDistanceMM > MaxWaterDistance {
		return fmt.Errorf("%w: water_distance_mm %.2f out of range [%.0f, %.0f]",
			ErrInvalidReading, r.WaterDistanceMM, MinWaterDistance, MaxWaterDistance)
	}
	return nil
}

func statusFromLabel(label int) (drainguard.Status, error) {
	switch label {
	case 0:
		return drainguard.StatusBlocked, nil
	case 1:
		return drainguard.StatusNormal, nil
	default:
		return "", fmt.Errorf("unexpected class label %d", label)
	}
}

// confidenceFor returns the probability of the predicted label when the
// classifier supports it, otherwise the per-status fallback default.
func (s *InferenceService) confidenceFor(scaled []float64, label int, status drainguard.Status) (float64, bool, error) {
	est, ok := s.arts.Classifier.(artifact.ProbabilityEstimator)
	if !ok {
		if status == drainguard.StatusNormal {
			return fallbackConfidenceNormal, true, nil
		}
		return fallbackConfidenceBlocked, true, nil
	}

	probs, err := est.PredictProba(scaled)
	if err != nil {
		return 0, false, err
	}
	if label < 0 || label >= len(probs) {
		return 0, false, fmt.Errorf("label %d outside probability vector of length %d", label, len(probs))
	}
	return probs[label], false, nil
}
