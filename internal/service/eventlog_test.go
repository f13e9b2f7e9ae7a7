package service

import (
	"context"
	"errors"
	"testing"
	"time"

	drainguard "github.com/krishkishore714-max/Drainage-congestion"
)

func TestEventLogService_List_InvalidRange(t *testing.T) {
	es := NewEventLogService(&localEventRepo{})

	now := time.Now().UTC()
	_, err := es.List(context.Background(), LogFilter{From: now, To: now.Add(-time.Hour)})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange, got %v", err)
	}
}

func TestEventLogService_List_NormalizesTypeFilter(t *testing.T) {
	now := time.Now().UTC()
	repo := &localEventRepo{events: []drainguard.DrainEvent{
		{EventID: "1", OccurredAt: now, Type: "ALERT", Description: "blocked"},
		{EventID: "2", OccurredAt: now, Type: "PREDICTION", Description: "normal again"},
	}}
	es := NewEventLogService(repo)

	got, err := es.List(context.Background(), LogFilter{
		From: now.Add(-time.Minute),
		To:   now.Add(time.Minute),
		Type: "  alert ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].EventID != "1" {
		t.Fatalf("expected only the ALERT event, got %+v", got)
	}
}

func TestEventLogService_List_RepoErrorPropagates(t *testing.T) {
	es := NewEventLogService(&localEventRepo{listErr: errors.New("db down")})
	if _, err := es.List(context.Background(), LogFilter{}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
