package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-recall-keeper/internal/config"
	"github.com/MKhiriev/go-recall-keeper/internal/crypto"
	"github.com/MKhiriev/go-recall-keeper/internal/logger"
)

// Storages aggregates every persistence backend of the client.
// Meta is nil when scheduler state persistence is not configured.
type Storages struct {
	Credentials CredentialStorage
	Containers  ContainerStorage
	Meta        MetaRepository

	dataDir string
	db      *DB
}

// NewStorages builds the storages described by cfg. When cfg.MetaDSN is
// set the SQLite database is opened and migrated.
func NewStorages(ctx context.Context, cfg config.Storage, keyChain crypto.KeyChainService, log *logger.Logger) (*Storages, error) {
	s := &Storages{
		Credentials: NewCredentialFileStorage(filepath.Join(cfg.DataDir, cfg.UsersFile), log),
		Containers:  NewContainerFileStorage(keyChain, log),
		dataDir:     cfg.DataDir,
	}

	if cfg.MetaDSN == "" {
		return s, nil
	}

	db, err := NewConnectSQLite(ctx, cfg.MetaDSN, log)
	if err != nil {
		return nil, err
	}
	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate meta database: %w", err)
	}

	s.db = db
	s.Meta = NewMetaRepository(db, log)
	return s, nil
}

// PathsFor returns the container paths of username.
func (s *Storages) PathsFor(username string) UserPaths {
	return PathsFor(s.dataDir, username)
}

// Close releases the meta database, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
