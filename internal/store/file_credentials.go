package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-recall-keeper/internal/logger"
	"github.com/MKhiriev/go-recall-keeper/models"
)

// Credential file layout, repeated per user:
//
//	username
//	password_hash
//	salt_hex
//	created_at   (unix seconds)
//	---
const (
	credentialFields = 4
	recordSeparator  = "---"
)

type credentialFileStorage struct {
	path   string
	logger *logger.Logger
}

// NewCredentialFileStorage returns a [CredentialStorage] backed by the text
// file at path.
func NewCredentialFileStorage(path string, log *logger.Logger) CredentialStorage {
	if log == nil {
		log = logger.Nop()
	}
	return &credentialFileStorage{path: path, logger: log}
}

func (s *credentialFileStorage) LoadUsers(ctx context.Context) ([]models.User, error) {
	log := s.logger.GetChildLogger()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("func", "credentialFileStorage.LoadUsers").Msg("no credential file yet")
			return nil, nil
		}
		return nil, fmt.Errorf("read credential file: %w", err)
	}

	users, err := decodeUsers(data)
	if err != nil {
		log.Err(err).Str("func", "credentialFileStorage.LoadUsers").Msg("failed to parse credential file")
		return nil, err
	}

	log.Debug().Str("func", "credentialFileStorage.LoadUsers").Int("users", len(users)).Msg("credentials loaded")
	return users, nil
}

func (s *credentialFileStorage) SaveUsers(ctx context.Context, users []models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, u := range users {
		fmt.Fprintf(&buf, "%s\n%s\n%s\n%d\n%s\n", u.Username, u.PasswordHash, u.KeySalt, u.CreatedAt.Unix(), recordSeparator)
	}

	if err := writeFileAtomic(s.path, buf.Bytes(), 0o600); err != nil {
		s.logger.Err(err).Str("func", "credentialFileStorage.SaveUsers").Msg("failed to write credential file")
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func decodeUsers(data []byte) ([]models.User, error) {
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")

	var users []models.User
	for pos, record := 0, 1; pos < len(lines); record++ {
		if pos+credentialFields >= len(lines) {
			return nil, fmt.Errorf("%w: record %d is truncated", ErrMalformedCredentials, record)
		}
		f := lines[pos : pos+credentialFields+1]
		for i := range f {
			f[i] = strings.TrimSuffix(f[i], "\r")
		}
		if f[credentialFields] != recordSeparator {
			return nil, fmt.Errorf("%w: record %d has no separator", ErrMalformedCredentials, record)
		}
		if f[0] == "" || f[1] == "" {
			return nil, fmt.Errorf("%w: record %d has empty fields", ErrMalformedCredentials, record)
		}
		created, err := strconv.ParseInt(f[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d created_at %q", ErrMalformedCredentials, record, f[3])
		}

		users = append(users, models.User{
			Username:     f[0],
			PasswordHash: f[1],
			KeySalt:      f[2],
			CreatedAt:    time.Unix(created, 0),
		})
		pos += credentialFields + 1
	}
	return users, nil
}
