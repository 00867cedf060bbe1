// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sizes fixed by the container format and the AEAD construction.
const (
	KeySize   = chacha20poly1305.KeySize    // 32
	NonceSize = chacha20poly1305.NonceSizeX // 24
	Overhead  = chacha20poly1305.Overhead   // 16
	SaltSize  = 16
)

// argonParams are the Argon2id cost parameters. They match libsodium's
// "interactive" limits: 2 passes over 64 MiB with a single lane.
type argonParams struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

var interactive = argonParams{
	time:    2,
	memory:  64 * 1024,
	threads: 1,
	keyLen:  KeySize,
}

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	params argonParams
	rand   io.Reader
}

// NewKeyChainService constructs a [KeyChainService] with fixed interactive
// Argon2id parameters and the OS CSPRNG.
func NewKeyChainService() KeyChainService {
	return &keyChainService{params: interactive, rand: rand.Reader}
}

func (k *keyChainService) randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(k.rand, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateKeySalt implements [KeyChainService].
func (k *keyChainService) GenerateKeySalt() ([]byte, error) {
	return k.randomBytes(SaltSize)
}

// HashPassword implements [KeyChainService]. The output follows the PHC
// string format used by libsodium and the reference argon2 tool:
//
//	$argon2id$v=19$m=65536,t=2,p=1$<salt>$<hash>
//
// with salt and hash in unpadded standard Base64.
func (k *keyChainService) HashPassword(password string) (string, error) {
	salt, err := k.randomBytes(SaltSize)
	if err != nil {
		return "", fmt.Errorf("generate hash salt: %w", err)
	}

	sum, err := idKey(password, salt, k.params)
	if err != nil {
		return "", err
	}

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, k.params.memory, k.params.time, k.params.threads,
		b64.EncodeToString(salt), b64.EncodeToString(sum)), nil
}

// VerifyPassword implements [KeyChainService]. Cost parameters are taken
// from the encoded hash, not from the receiver.
func (k *keyChainService) VerifyPassword(password, encodedHash string) (bool, error) {
	params, salt, want, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	got, err := idKey(password, salt, params)
	if err != nil {
		return false, err
	}
	defer Zero(got)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// DeriveSessionKey implements [KeyChainService].
func (k *keyChainService) DeriveSessionKey(password string, salt []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrKeyDerivation, SaltSize, len(salt))
	}
	return idKey(password, salt, k.params)
}

// Seal implements [KeyChainService].
func (k *keyChainService) Seal(plaintext, key []byte) ([]byte, []byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, nil, err
	}

	nonce, err := k.randomBytes(aead.NonceSize())
	if err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	return nonce, aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open implements [KeyChainService].
func (k *keyChainService) Open(nonce, ciphertext, key []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: nonce must be %d bytes", ErrDecryption, aead.NonceSize())
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return plaintext, nil
}

// Zero overwrites b with zeros. Used to wipe session keys.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKey, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}
	return aead, nil
}

// idKey runs Argon2id. argon2 panics instead of returning errors (huge
// memory parameter, zero threads), so panics are turned into
// ErrKeyDerivation.
func idKey(password string, salt []byte, p argonParams) (key []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			key = nil
			err = fmt.Errorf("%w: %v", ErrKeyDerivation, r)
		}
	}()

	if p.time == 0 || p.threads == 0 || p.keyLen == 0 {
		return nil, fmt.Errorf("%w: invalid argon2id parameters", ErrKeyDerivation)
	}

	return argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLen), nil
}

func decodeHash(encoded string) (argonParams, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return argonParams{}, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return argonParams{}, nil, nil, fmt.Errorf("%w: unsupported version %q", ErrMalformedHash, parts[2])
	}

	var p argonParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return argonParams{}, nil, nil, fmt.Errorf("%w: bad parameters %q", ErrMalformedHash, parts[3])
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return argonParams{}, nil, nil, fmt.Errorf("%w: bad salt", ErrMalformedHash)
	}
	sum, err := b64.DecodeString(parts[5])
	if err != nil || len(sum) == 0 {
		return argonParams{}, nil, nil, fmt.Errorf("%w: bad digest", ErrMalformedHash)
	}
	p.keyLen = uint32(len(sum))

	return p, salt, sum, nil
}
