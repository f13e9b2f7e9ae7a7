package repository

import (
	"context"
	"database/sql"
	"time"

	drainguard "github.com/krishkishore714-max/Drainage-congestion"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*drainguard.User, error)
}

type StateRepo interface {
	Save(ctx context.Context, s drainguard.DrainState) error
	Load(ctx context.Context) (drainguard.DrainState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e drainguard.DrainEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]drainguard.DrainEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
