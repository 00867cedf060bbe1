// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"encoding"

	"github.com/MKhiriev/go-recall-keeper/models"
)

// CredentialStorage persists the whole credential store as one unit.
// The file holds only hashes and salts and is not encrypted.
type CredentialStorage interface {
	// LoadUsers returns every record in file order. A missing file is an
	// empty store, not an error.
	LoadUsers(ctx context.Context) ([]models.User, error)

	// SaveUsers atomically replaces the stored records with users.
	SaveUsers(ctx context.Context, users []models.User) error
}

// ContainerStorage reads and writes encrypted containers. The payload is
// whatever the collection marshals itself to.
type ContainerStorage interface {
	// Save marshals src, seals it under key with a fresh nonce and
	// atomically replaces the file at path. Nothing is written if
	// marshalling or encryption fails.
	Save(ctx context.Context, path string, key []byte, src encoding.BinaryMarshaler) error

	// Load opens the container at path and unmarshals the plaintext into
	// dst. A missing file unmarshals an empty payload and returns nil.
	Load(ctx context.Context, path string, key []byte, dst encoding.BinaryUnmarshaler) error
}

// MetaRepository stores scheduler memory state across sessions.
type MetaRepository interface {
	// SaveMeta upserts the state of every item in meta for username.
	SaveMeta(ctx context.Context, username string, meta map[string]models.Meta) error

	// LoadMeta returns the stored state of every item of username.
	LoadMeta(ctx context.Context, username string) (map[string]models.Meta, error)

	// DeleteMeta removes the state of one item.
	DeleteMeta(ctx context.Context, username, itemID string) error
}
