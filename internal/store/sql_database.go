package store

import (
	"database/sql"

	"github.com/MKhiriev/go-recall-keeper/internal/logger"
	"github.com/MKhiriev/go-recall-keeper/migrations"
)

// DB is the SQLite connection used for scheduler state.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB); err != nil {
		db.logger.Err(err).Str("func", "DB.Migrate").Msg("failed to migrate meta database")
		return err
	}
	db.logger.Debug().Str("func", "DB.Migrate").Msg("meta database is up to date")
	return nil
}
