// Package artifact loads the pre-trained scaler and classifier the drainage
// model pipeline produced. Both files are opaque to the rest of the system:
// they are deserialized once at startup, validated against the fixed feature
// contract, and treated as immutable for the process lifetime.
package artifact

import "errors"

// Feature names in the exact order fixed at model-training time.
// This contract is external and non-renegotiable: the scaler was fitted on
// columns in this order and the classifier expects the same layout.
var FeatureNames = []string{
	"gas_value",  // toxic gas present (0/1)
	"rain_value", // raining (0/1)
	"temp_value", // temperature °C
	"water_dist", // water distance mm
	"wf_value",   // water flowing (0/1)
}

// Default artifact file names, matching the training pipeline output.
const (
	ScalerFileName     = "scaler.json"
	ClassifierFileName = "model.json"
)

var (
	// ErrUnavailable is returned when one or both artifact files are missing
	// or fail to deserialize. Callers degrade gracefully: inference is
	// disabled, never attempted against partial artifacts.
	ErrUnavailable = errors.New("model artifacts unavailable")
)

// Scaler is a deterministic transform normalizing a raw feature vector into
// the numeric range the classifier was trained on.
type Scaler interface {
	// Transform scales the vector in feature order. The input is not mutated.
	Transform(features []float64) ([]float64, error)
	// NumFeatures reports the fitted vector width.
	NumFeatures() int
}

// Classifier maps a scaled feature vector to a class label in {0, 1}.
type Classifier interface {
	// Predict returns the class label: 0 = blocked, 1 = normal.
	Predict(scaled []float64) (int, error)
	// Kind identifies the serialized model type (for the model-info endpoint).
	Kind() string
}

// ProbabilityEstimator is the optional capability of classifiers that expose
// per-class probabilities. Callers must type-assert rather than guess.
type ProbabilityEstimator interface {
	// PredictProba returns the probability distribution over {0, 1},
	// index-aligned with the class labels.
	PredictProba(scaled []float64) ([]float64, error)
}

// Artifacts bundles the loaded scaler and classifier. The zero value is not
// usable; construct via Load. Fields are read-only after load and safe for
// concurrent readers.
type Artifacts struct {
	Scaler     Scaler
	Classifier Classifier
}

// SupportsProbabilities reports whether the loaded classifier can produce a
// class probability distribution.
func (a *Artifacts) SupportsProbabilities() bool {
	_, ok := a.Classifier.(ProbabilityEstimator)
	return ok
}
