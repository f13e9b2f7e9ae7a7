package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	drainguard "github.com/krishkishore714-max/Drainage-congestion"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	drainStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO drain_state (id, toxic_gas, is_raining, temp_c, water_dist_mm, water_flowing,
			status, confidence, confidence_estimated, feed_running, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			toxic_gas=excluded.toxic_gas,
			is_raining=excluded.is_raining,
			temp_c=excluded.temp_c,
			water_dist_mm=excluded.water_dist_mm,
			water_flowing=excluded.water_flowing,
			status=excluded.status,
			confidence=excluded.confidence,
			confidence_estimated=excluded.confidence_estimated,
			feed_running=excluded.feed_running,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, toxic_gas, is_raining, temp_c, water_dist_mm, water_flowing,
			status, confidence, confidence_estimated, feed_running, updated_at
		FROM drain_state WHERE id=?
	`
)

// Save updates or inserts the drain_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state drainguard.DrainState) error {
	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		drainStateRowID,
		state.ToxicGas,
		state.IsRaining,
		state.TemperatureC,
		state.WaterDistanceMM,
		state.WaterFlowing,
		string(state.Status),
		state.Confidence,
		state.ConfidenceEstimated,
		state.FeedRunning,
		tsUTC,
	)
	return err
}

// Load fetches the single drain_state row (id=1).
func (r *StateSQLite) Load(ctx context.Context) (drainguard.DrainState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, drainStateRowID)

	var s drainguard.DrainState
	var status string
	if err := row.Scan(
		&s.ID,
		&s.ToxicGas,
		&s.IsRaining,
		&s.TemperatureC,
		&s.WaterDistanceMM,
		&s.WaterFlowing,
		&status,
		&s.Confidence,
		&s.ConfidenceEstimated,
		&s.FeedRunning,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return drainguard.DrainState{}, nil // no state yet
		}
		return drainguard.DrainState{}, err
	}

	s.Status = drainguard.Status(status)
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
