package service

import (
	"context"
	"errors"
	"testing"
	"time"

	drainguard "github.com/krishkishore714-max/Drainage-congestion"
)

type fakeStateRepo struct {
	loadResp   drainguard.DrainState
	loadErr    error
	saveErr    error
	savedCalls []drainguard.DrainState
}

func (f *fakeStateRepo) Load(ctx context.Context) (drainguard.DrainState, error) {
	return f.loadResp, f.loadErr
}
func (f *fakeStateRepo) Save(ctx context.Context, s drainguard.DrainState) error {
	f.savedCalls = append(f.savedCalls, s)
	return f.saveErr
}

type localEventRepo struct {
	appendErr error
	events    []drainguard.DrainEvent
	listErr   error
}

func (f *localEventRepo) Append(ctx context.Context, e drainguard.DrainEvent) error {
	f.events = append(f.events, e)
	return f.appendErr
}
func (f *localEventRepo) List(ctx context.Context, from time.Time, to time.Time, typ string) ([]drainguard.DrainEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []drainguard.DrainEvent
	for _, e := range f.events {
		if !e.OccurredAt.Before(from) && !e.OccurredAt.After(to) {
			if typ == "" || e.Type == typ {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func assertWithinTimeWindow(t *testing.T, ts time.Time, start time.Time, end time.Time) {
	t.Helper()
	if ts.Before(start) || ts.After(end) {
		t.Fatalf("time %v not within window [%v, %v]", ts, start, end)
	}
}

func lastSavedState(t *testing.T, f *fakeStateRepo) drainguard.DrainState {
	t.Helper()
	if len(f.savedCalls) == 0 {
		t.Fatalf("expected at least one Save call")
	}
	return f.savedCalls[len(f.savedCalls)-1]
}

func TestFeedService_Start_LoadError(t *testing.T) {
	fs := &FeedService{
		stateRepo: &fakeStateRepo{loadErr: errors.New("db down")},
		eventRepo: &localEventRepo{},
	}
	err := fs.Start(context.Background())
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestFeedService_Start_InitializesBaselineAndAppendsEvent(t *testing.T) {
	srepo := &fakeStateRepo{
		loadResp: drainguard.DrainState{},
	}
	erepo := &localEventRepo{}
	fs := &FeedService{stateRepo: srepo, eventRepo: erepo}
	t0 := time.Now().UTC()
	err := fs.Start(context.Background())
	t1 := time.Now().UTC()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := lastSavedState(t, srepo)
	if s.ID != 1 {
		t.Fatalf("expected ID=1, got %d", s.ID)
	}
	if !s.FeedRunning {
		t.Fatalf("expected FeedRunning=true")
	}
	// Baseline reading is the reference normal example from the dataset.
	if s.TemperatureC != 25.0 || s.WaterDistanceMM != 792 || !s.WaterFlowing {
		t.Fatalf("unexpected baseline reading: %+v", s)
	}
	if s.Status != "" {
		t.Fatalf("baseline must not carry a classification, got %s", s.Status)
	}
	assertWithinTimeWindow(t, s.UpdatedAt, t0, t1)
	if len(erepo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(erepo.events))
	}
	ev := erepo.events[0]
	if ev.Type != "START" {
		t.Fatalf("expected START event, got %s", ev.Type)
	}
	if ev.EventID == "" {
		t.Fatalf("expected non-empty EventID")
	}
	assertWithinTimeWindow(t, ev.OccurredAt, t0, t1)
}

func TestFeedService_Stop_KeepsLastClassification(t *testing.T) {
	srepo := &fakeStateRepo{
		loadResp: drainguard.DrainState{
			ID:              1,
			TemperatureC:    30,
			WaterDistanceMM: 120,
			Status:          drainguard.StatusBlocked,
			Confidence:      0.91,
			FeedRunning:     true,
			UpdatedAt:       time.Now().UTC().Add(-time.Minute),
		},
	}
	erepo := &localEventRepo{}
	fs := &FeedService{stateRepo: srepo, eventRepo: erepo}

	if err := fs.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := lastSavedState(t, srepo)
	if s.FeedRunning {
		t.Fatalf("expected FeedRunning=false after Stop")
	}
	if s.Status != drainguard.StatusBlocked || s.Confidence != 0.91 {
		t.Fatalf("Stop must not clear the last classification: %+v", s)
	}
	if len(erepo.events) != 1 || erepo.events[0].Type != "STOP" {
		t.Fatalf("expected a single STOP event, got %+v", erepo.events)
	}
}

func TestFeedService_Start_SaveErrorPropagates(t *testing.T) {
	srepo := &fakeStateRepo{saveErr: errors.New("disk full")}
	fs := &FeedService{stateRepo: srepo, eventRepo: &localEventRepo{}}
	if err := fs.Start(context.Background()); err == nil {
		t.Fatalf("expected save error to propagate")
	}
}
