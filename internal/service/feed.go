package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	drainguard "github.com/krishkishore714-max/Drainage-congestion"
	"github.com/krishkishore714-max/Drainage-congestion/internal/repository"
)

// FeedService controls the simulated sensor feed: starting and stopping the
// background stream of readings the simulator classifies.
type FeedService struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
}

func NewFeedService(stateRepo repository.StateRepo, eventRepo repository.EventRepo) *FeedService {
	return &FeedService{stateRepo: stateRepo, eventRepo: eventRepo}
}

// Start sets FeedRunning=true and logs START.
// If the state row doesn't exist yet, it initializes a baseline one.
func (s *FeedService) Start(ctx context.Context) error {
	now := time.Now().UTC()

	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return err
	}
	if st.ID == 0 {
		st = baselineDrainState(now)
	}
	st.FeedRunning = true
	st.UpdatedAt = now

	if err := s.stateRepo.Save(ctx, st); err != nil {
		return err
	}

	return s.eventRepo.Append(ctx, drainguard.DrainEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        "START",
		Description: "Sensor feed started",
	})
}

// Stop sets FeedRunning=false and logs STOP. The last reading and its
// classification stay visible on the dashboard.
func (s *FeedService) Stop(ctx context.Context) error {
	now := time.Now().UTC()

	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return err
	}
	if st.ID == 0 {
		st = baselineDrainState(now)
	}
	st.FeedRunning = false
	st.UpdatedAt = now

	if err := s.stateRepo.Save(ctx, st); err != nil {
		return err
	}

	return s.eventRepo.Append(ctx, drainguard.DrainEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        "STOP",
		Description: "Sensor feed stopped",
	})
}

// baselineDrainState is the snapshot for an uninitialized installation: the
// reference "normal" reading from the training data, not yet classified.
func baselineDrainState(now time.Time) drainguard.DrainState {
	return drainguard.DrainState{
		ID:              1, // DB schema enforces single-row state with id=1
		ToxicGas:        false,
		IsRaining:       false,
		TemperatureC:    25.0,
		WaterDistanceMM: 792, // dataset value associated with a normal drain
		WaterFlowing:    true,
		FeedRunning:     false,
		UpdatedAt:       now,
	}
}
