// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"encoding"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/go-recall-keeper/internal/crypto"
	"github.com/MKhiriev/go-recall-keeper/internal/logger"
)

// Container layout:
//
//	magic (8 bytes) || nonce (crypto.NonceSize) || ciphertext
//
// The ciphertext carries the AEAD tag at its end; its length is implied by
// the file size.
var containerMagic = [8]byte{'R', 'C', 'L', 'K', 'E', 'E', 'P', '1'}

// MagicSize is the length of the version tag at the start of a container.
const MagicSize = len(containerMagic)

type containerFileStorage struct {
	crypto crypto.KeyChainService
	logger *logger.Logger
}

// NewContainerFileStorage returns a [ContainerStorage] that seals payloads
// with keyChain.
func NewContainerFileStorage(keyChain crypto.KeyChainService, log *logger.Logger) ContainerStorage {
	if log == nil {
		log = logger.Nop()
	}
	return &containerFileStorage{crypto: keyChain, logger: log}
}

func (s *containerFileStorage) Save(ctx context.Context, path string, key []byte, src encoding.BinaryMarshaler) error {
	log := s.logger

	plaintext, err := src.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal container payload: %w", err)
	}
	defer crypto.Zero(plaintext)

	nonce, ciphertext, err := s.crypto.Seal(plaintext, key)
	if err != nil {
		log.Err(err).Str("func", "containerFileStorage.Save").Msg("failed to seal container")
		return fmt.Errorf("seal container: %w", err)
	}

	out := make([]byte, 0, MagicSize+len(nonce)+len(ciphertext))
	out = append(out, containerMagic[:]...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)

	if err = writeFileAtomic(path, out, 0o600); err != nil {
		log.Err(err).Str("func", "containerFileStorage.Save").Msg("failed to write container")
		return err
	}

	log.Debug().Str("func", "containerFileStorage.Save").Int("bytes", len(out)).Msg("container saved")
	return nil
}

func (s *containerFileStorage) Load(ctx context.Context, path string, key []byte, dst encoding.BinaryUnmarshaler) error {
	log := s.logger

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("func", "containerFileStorage.Load").Msg("no container yet, starting empty")
			return dst.UnmarshalBinary(nil)
		}
		return fmt.Errorf("read container: %w", err)
	}

	nonce, ciphertext, err := splitContainer(data)
	if err != nil {
		log.Warn().Err(err).Str("func", "containerFileStorage.Load").Msg("invalid container layout")
		return err
	}

	plaintext, err := s.crypto.Open(nonce, ciphertext, key)
	if err != nil {
		if errors.Is(err, crypto.ErrDecryption) {
			log.Warn().Str("func", "containerFileStorage.Load").Msg("container authentication failed")
			return ErrAuthenticationFailed
		}
		return fmt.Errorf("%w: %v", ErrCodec, err)
	}
	defer crypto.Zero(plaintext)

	if err = dst.UnmarshalBinary(plaintext); err != nil {
		log.Err(err).Str("func", "containerFileStorage.Load").Msg("failed to decode container payload")
		return fmt.Errorf("decode container payload: %w", err)
	}

	return nil
}

// splitContainer validates the container layout and returns its nonce and
// ciphertext.
func splitContainer(data []byte) (nonce, ciphertext []byte, err error) {
	if len(data) < MagicSize {
		return nil, nil, ErrTruncatedHeader
	}
	if !bytes.Equal(data[:MagicSize], containerMagic[:]) {
		return nil, nil, ErrBadMagic
	}

	rest := data[MagicSize:]
	if len(rest) < crypto.NonceSize {
		return nil, nil, ErrTruncatedNonce
	}

	nonce, ciphertext = rest[:crypto.NonceSize], rest[crypto.NonceSize:]
	if len(ciphertext) < crypto.Overhead {
		return nil, nil, ErrCiphertextTooShort
	}

	return nonce, ciphertext, nil
}
