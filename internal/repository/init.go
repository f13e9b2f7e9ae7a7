package repository

import (
	"database/sql"

	"github.com/krishkishore714-max/Drainage-congestion/internal/repository/db"
)

// InitDB opens the SQLite file and applies the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
