package drainguard

import "time"

// Status is the binary drain condition produced by the classifier.
// The numeric labels come from the training pipeline: 0 = BLOCKED, 1 = NORMAL.
type Status string

const (
	StatusBlocked Status = "BLOCKED"
	StatusNormal  Status = "NORMAL"
)

// SensorReading is one snapshot of the drainage sensors. It is built fresh per
// request, never mutated, and discarded after the prediction is rendered.
type SensorReading struct {
	ToxicGas        bool    `json:"toxic_gas"`
	IsRaining       bool    `json:"is_raining"`
	TemperatureC    float64 `json:"temperature_c"`     // valid range [-10, 50]
	WaterDistanceMM float64 `json:"water_distance_mm"` // distance sensor -> water surface, [0, 1000]
	WaterFlowing    bool    `json:"water_flowing"`
}

// PredictionResult is the outcome of classifying a single reading. It is a
// pure function of (artifacts, reading): no timestamps, so identical inputs
// yield identical results. ConfidenceEstimated is true when the classifier
// cannot report class probabilities and the confidence is a fallback default.
type PredictionResult struct {
	Status              Status  `json:"status"`
	Confidence          float64 `json:"confidence"` // in [0,1]
	ConfidenceEstimated bool    `json:"confidence_estimated,omitempty"`
}

// DrainState is the latest persisted snapshot shown on the dashboard:
// the most recent reading plus its classification.
type DrainState struct {
	ID                  int       `json:"id"`
	ToxicGas            bool      `json:"toxic_gas"`
	IsRaining           bool      `json:"is_raining"`
	TemperatureC        float64   `json:"temperature_c"`
	WaterDistanceMM     float64   `json:"water_distance_mm"`
	WaterFlowing        bool      `json:"water_flowing"`
	Status              Status    `json:"status,omitempty"` // empty when the model is unavailable
	Confidence          float64   `json:"confidence,omitempty"`
	ConfidenceEstimated bool      `json:"confidence_estimated,omitempty"`
	FeedRunning         bool      `json:"feed_running"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Reading extracts the sensor fields of a state snapshot.
func (s DrainState) Reading() SensorReading {
	return SensorReading{
		ToxicGas:        s.ToxicGas,
		IsRaining:       s.IsRaining,
		TemperatureC:    s.TemperatureC,
		WaterDistanceMM: s.WaterDistanceMM,
		WaterFlowing:    s.WaterFlowing,
	}
}

// DrainEvent is a single append-only log entry.
type DrainEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // PREDICTION | ALERT | START | STOP | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don't expose hash
}
