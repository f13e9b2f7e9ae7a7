package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads and validates both artifact files from dir. Any missing or
// corrupt file returns an error wrapping ErrUnavailable so the caller can
// disable inference instead of crashing; partially-loaded artifacts are
// never returned.
func Load(dir string) (*Artifacts, error) {
	scaler, err := loadScaler(filepath.Join(dir, ScalerFileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	classifier, err := loadClassifier(filepath.Join(dir, ClassifierFileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// The two artifacts were fitted together; a width mismatch means the
	// directory mixes files from different training runs.
	if err := checkShapes(scaler, classifier); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &Artifacts{Scaler: scaler, Classifier: classifier}, nil
}

func loadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	s, err := parseScaler(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

func loadClassifier(path string) (Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	c, err := parseClassifier(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return c, nil
}

func checkShapes(scaler *StandardScaler, classifier Classifier) error {
	probe := make([]float64, scaler.NumFeatures())
	if _, err := classifier.Predict(probe); err != nil {
		return fmt.Errorf("scaler/classifier shape mismatch: %v", err)
	}
	return nil
}
