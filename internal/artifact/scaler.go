package artifact

import (
	"encoding/json"
	"fmt"
)

// scalerDoc is the on-disk layout of scaler.json as exported by the training
// pipeline: the fitted per-feature mean/scale plus the feature-name order.
type scalerDoc struct {
	Type     string    `json:"type"` // "standard"
	Features []string  `json:"features"`
	Mean     []float64 `json:"mean"`
	Scale    []float64 `json:"scale"`
}

const scalerTypeStandard = "standard"

// StandardScaler applies the z-score transform (x - mean) / scale using
// parameters fitted at training time.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

var _ Scaler = (*StandardScaler)(nil)

// NewStandardScaler builds a scaler from fitted parameters. Exposed for tests
// that need a known transform without artifact files.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("scaler: mean has %d entries, scale has %d", len(mean), len(scale))
	}
	if len(mean) == 0 {
		return nil, fmt.Errorf("scaler: no fitted parameters")
	}
	for i, s := range scale {
		if s == 0 {
			return nil, fmt.Errorf("scaler: zero scale for feature %d", i)
		}
	}
	return &StandardScaler{mean: mean, scale: scale}, nil
}

func parseScaler(data []byte) (*StandardScaler, error) {
	var doc scalerDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode scaler: %w", err)
	}
	if doc.Type != scalerTypeStandard {
		return nil, fmt.Errorf("scaler: unsupported type %q", doc.Type)
	}
	// The feature order recorded in the artifact must match the compiled
	// contract exactly; a drifted artifact must not load.
	if len(doc.Features) != len(FeatureNames) {
		return nil, fmt.Errorf("scaler: fitted on %d features, expected %d", len(doc.Features), len(FeatureNames))
	}
	for i, name := range doc.Features {
		if name != FeatureNames[i] {
			return nil, fmt.Errorf("scaler: feature %d is %q, expected %q", i, name, FeatureNames[i])
		}
	}
	if len(doc.Mean) != len(doc.Features) || len(doc.Scale) != len(doc.Features) {
		return nil, fmt.Errorf("scaler: mean/scale length does not match feature count")
	}
	return NewStandardScaler(doc.Mean, doc.Scale)
}

// Transform scales the vector in feature order. The input is not mutated.
func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.mean) {
		return nil, fmt.Errorf("scaler: got %d features, fitted on %d", len(features), len(s.mean))
	}
	out := make([]float64, len(features))
	for i, x := range features {
		out[i] = (x - s.mean[i]) / s.scale[i]
	}
	return out, nil
}

// NumFeatures reports the fitted vector width.
func (s *StandardScaler) NumFeatures() int { return len(s.mean) }
