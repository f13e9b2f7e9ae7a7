package artifact

import (
	"encoding/json"
	"fmt"
	"math"
)

// classifierDoc is the on-disk layout of model.json. The training pipeline
// exports either a logistic regression (with probability support) or a linear
// SVC (decision function only); the type tag selects the implementation.
type classifierDoc struct {
	Type         string    `json:"type"` // "logistic_regression" | "linear_svc"
	Classes      []int     `json:"classes"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

const (
	classifierTypeLogistic  = "logistic_regression"
	classifierTypeLinearSVC = "linear_svc"
)

func parseClassifier(data []byte) (Classifier, error) {
	var doc classifierDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode classifier: %w", err)
	}
	if err := validateClassifierDoc(doc); err != nil {
		return nil, err
	}
	switch doc.Type {
	case classifierTypeLogistic:
		return &LogisticRegression{coef: doc.Coefficients, intercept: doc.Intercept}, nil
	case classifierTypeLinearSVC:
		return &LinearSVC{coef: doc.Coefficients, intercept: doc.Intercept}, nil
	default:
		return nil, fmt.Errorf("classifier: unsupported type %q", doc.Type)
	}
}

func validateClassifierDoc(doc classifierDoc) error {
	if len(doc.Coefficients) == 0 {
		return fmt.Errorf("classifier: no coefficients")
	}
	// Binary model trained with labels 0 (blocked) and 1 (normal).
	if len(doc.Classes) != 2 || doc.Classes[0] != 0 || doc.Classes[1] != 1 {
		return fmt.Errorf("classifier: expected classes [0 1], got %v", doc.Classes)
	}
	return nil
}

// decision computes the linear decision value w·x + b shared by both model types.
func decision(coef []float64, intercept float64, scaled []float64) (float64, error) {
	if len(scaled) != len(coef) {
		return 0, fmt.Errorf("classifier: got %d features, trained on %d", len(scaled), len(coef))
	}
	v := intercept
	for i, x := range scaled {
		v += coef[i] * x
	}
	return v, nil
}

// LogisticRegression is a binary logistic model; positive decision values map
// to class 1 (normal). It supports class probabilities via the sigmoid.
type LogisticRegression struct {
	coef      []float64
	intercept float64
}

var (
	_ Classifier           = (*LogisticRegression)(nil)
	_ ProbabilityEstimator = (*LogisticRegression)(nil)
)

// NewLogisticRegression builds a model from trained weights. Exposed for tests.
func NewLogisticRegression(coef []float64, intercept float64) *LogisticRegression {
	return &LogisticRegression{coef: coef, intercept: intercept}
}

func (m *LogisticRegression) Kind() string { return classifierTypeLogistic }

// Predict returns the class label: 0 = blocked, 1 = normal.
func (m *LogisticRegression) Predict(scaled []float64) (int, error) {
	v, err := decision(m.coef, m.intercept, scaled)
	if err != nil {
		return 0, err
	}
	if v >= 0 {
		return 1, nil
	}
	return 0, nil
}

// PredictProba returns [P(class 0), P(class 1)].
func (m *LogisticRegression) PredictProba(scaled []float64) ([]float64, error) {
	v, err := decision(m.coef, m.intercept, scaled)
	if err != nil {
		return nil, err
	}
	p1 := 1.0 / (1.0 + math.Exp(-v))
	return []float64{1 - p1, p1}, nil
}

// LinearSVC is a binary max-margin linear model. It has no calibrated
// probabilities, so it deliberately does not implement ProbabilityEstimator.
type LinearSVC struct {
	coef      []float64
	intercept float64
}

var _ Classifier = (*LinearSVC)(nil)

// NewLinearSVC builds a model from trained weights. Exposed for tests.
func NewLinearSVC(coef []float64, intercept float64) *LinearSVC {
	return &LinearSVC{coef: coef, intercept: intercept}
}

func (m *LinearSVC) Kind() string { return classifierTypeLinearSVC }

// Predict returns the class label: 0 = blocked, 1 = normal.
func (m *LinearSVC) Predict(scaled []float64) (int, error) {
	v, err := decision(m.coef, m.intercept, scaled)
	if err != nil {
		return 0, err
	}
	if v >= 0 {
		return 1, nil
	}
	return 0, nil
}
