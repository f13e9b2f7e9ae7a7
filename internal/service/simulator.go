package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	drainguard "github.com/krishkishore714-max/Drainage-congestion"
	"github.com/krishkishore714-max/Drainage-congestion/internal/repository"
)

// ----------- Simulation constants -----------
const (
	tempDriftC       = 0.8  // max °C change per tick
	waterDriftMM     = 40.0 // max mm change per tick
	toggleChance     = 0.05 // per-tick chance a boolean sensor flips
	rainToggleChance = 0.10 // rain flips more often than the others
)

// SimulatorService generates simulated drainage readings over time and runs
// each one through the inference pipeline, keeping the persisted snapshot and
// event log current.
type SimulatorService struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	inference Inference
	rng       *rand.Rand
}

// NewSimulatorService returns a simulator with its own RNG.
func NewSimulatorService(stateRepo repository.StateRepo, eventRepo repository.EventRepo, inference Inference) *SimulatorService {
	return &SimulatorService{
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		inference: inference,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.step(ctx, now.UTC())
		}
	}
}

// step advances the simulation one tick: drift the sensors, classify, persist.
func (s *SimulatorService) step(ctx context.Context, now time.Time) {
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return
	}
	// Initialize state if empty
	if st.ID == 0 {
		st = baselineDrainState(now)
		_ = s.stateRepo.Save(ctx, st)
		return
	}
	if !st.FeedRunning {
		return
	}

	prevStatus := st.Status
	reading := s.nextReading(st.Reading())

	st.ToxicGas = reading.ToxicGas
	st.IsRaining = reading.IsRaining
	st.TemperatureC = reading.TemperatureC
	st.WaterDistanceMM = reading.WaterDistanceMM
	st.WaterFlowing = reading.WaterFlowing
	st.UpdatedAt = now

	if s.inference.Available() {
		res, err := s.inference.Classify(ctx, reading)
		if err != nil {
			// Scoped to this tick; the snapshot keeps its previous status.
			_ = s.eventRepo.Append(ctx, drainguard.DrainEvent{
				EventID:     uuid.NewString(),
				OccurredAt:  now,
				Type:        "ERROR",
				Description: "Prediction failed: " + err.Error(),
			})
			_ = s.stateRepo.Save(ctx, st)
			return
		}
		st.Status = res.Status
		st.Confidence = res.Confidence
		st.ConfidenceEstimated = res.ConfidenceEstimated

		if res.Status != prevStatus {
			s.logStatusChange(ctx, now, prevStatus, res)
		}
	}

	_ = s.stateRepo.Save(ctx, st)
}

// nextReading drifts each sensor from its previous value, clamped to the
// valid ranges so generated readings always satisfy the pipeline preconditions.
func (s *SimulatorService) nextReading(prev drainguard.SensorReading) drainguard.SensorReading {
	next := prev

	next.TemperatureC = clamp(prev.TemperatureC+s.symmetric(tempDriftC), MinTemperatureC, MaxTemperatureC)
	next.WaterDistanceMM = clamp(prev.WaterDistanceMM+s.symmetric(waterDriftMM), MinWaterDistance, MaxWaterDistance)

	if s.rng.Float64() < rainToggleChance {
		next.IsRaining = !prev.IsRaining
	}
	if s.rng.Float64() < toggleChance {
		next.ToxicGas = !prev.ToxicGas
	}
	if s.rng.Float64() < toggleChance {
		next.WaterFlowing = !prev.WaterFlowing
	}

	return next
}

// logStatusChange records every transition, with an ALERT when the drain
// becomes blocked.
func (s *SimulatorService) logStatusChange(ctx context.Context, now time.Time, prev drainguard.Status, res drainguard.PredictionResult) {
	typ := "PREDICTION"
	desc := "Status changed to " + string(res.Status)
	if res.Status == drainguard.StatusBlocked {
		typ = "ALERT"
		desc = "Obstruction detected; drain status BLOCKED"
	}
	_ = s.eventRepo.Append(ctx, drainguard.DrainEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        typ,
		Description: desc,
		Metadata: map[string]any{
			"from":       string(prev),
			"to":         string(res.Status),
			"confidence": res.Confidence,
		},
	})
}

// symmetric returns a uniform value in [-max, max].
func (s *SimulatorService) symmetric(max float64) float64 {
	return (s.rng.Float64()*2 - 1) * max
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
