package service

import (
	"context"
	"time"

	drainguard "github.com/krishkishore714-max/Drainage-congestion"
	"github.com/krishkishore714-max/Drainage-congestion/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns the latest persisted drain snapshot.
// If no state is persisted yet, returns the baseline snapshot.
func (s *MonitoringService) GetState(ctx context.Context) (drainguard.DrainState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return drainguard.DrainState{}, err
	}
	if state.ID == 0 {
		return baselineDrainState(time.Now().UTC()), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
