package service

import (
	"context"
	"time"

	drainguard "github.com/krishkishore714-max/Drainage-congestion"
	"github.com/krishkishore714-max/Drainage-congestion/internal/artifact"
	"github.com/krishkishore714-max/Drainage-congestion/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Inference classifies sensor readings against the loaded model artifacts.
type Inference interface {
	Classify(ctx context.Context, r drainguard.SensorReading) (drainguard.PredictionResult, error)
	ModelInfo() ModelInfo
	Available() bool
}

// Feed exposes control over the simulated sensor feed: start/stop.
type Feed interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Monitoring exposes the latest persisted drain snapshot.
type Monitoring interface {
	GetState(ctx context.Context) (drainguard.DrainState, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]drainguard.DrainEvent, error)
}

// Simulator runs the background loop that generates readings and classifies them.
// Stop via context cancellation in main() for graceful shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// ModelInfo describes the loaded artifacts for the dashboard's model panel.
type ModelInfo struct {
	Loaded                bool     `json:"loaded"`
	ClassifierKind        string   `json:"classifier_kind,omitempty"`
	Features              []string `json:"features,omitempty"`
	SupportsProbabilities bool     `json:"supports_probabilities"`
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "PREDICTION", "ALERT", "START", "STOP", "ERROR"
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Inference
	Feed
	Monitoring
	EventLog
	Simulator
	Authorization
}

// NewService wires the repository layer and loaded artifacts into concrete
// services. arts may be nil when artifact loading failed at startup; inference
// then reports unavailability instead of classifying.
func NewService(repos *repository.Repository, arts *artifact.Artifacts) *Service {
	inference := NewInferenceService(arts)
	return &Service{
		Inference:     inference,
		Feed:          NewFeedService(repos.StateRepo, repos.EventRepo),
		Monitoring:    NewMonitoringService(repos.StateRepo),
		EventLog:      NewEventLogService(repos.EventRepo),
		Simulator:     NewSimulatorService(repos.StateRepo, repos.EventRepo, inference),
		Authorization: NewAuthService(repos.Auth),
	}
}
