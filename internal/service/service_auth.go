// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-recall-keeper/internal/crypto"
	"github.com/MKhiriev/go-recall-keeper/internal/ledger"
	"github.com/MKhiriev/go-recall-keeper/internal/logger"
	"github.com/MKhiriev/go-recall-keeper/internal/scheduler"
	"github.com/MKhiriev/go-recall-keeper/internal/store"
	"github.com/MKhiriev/go-recall-keeper/internal/utils"
	"github.com/MKhiriev/go-recall-keeper/internal/validators"
	"github.com/MKhiriev/go-recall-keeper/models"
)

// Deps are the collaborators of the auth service and of every session it
// opens. Meta may be nil.
type Deps struct {
	Credentials store.CredentialStorage
	Containers  store.ContainerStorage
	Meta        store.MetaRepository
	KeyChain    crypto.KeyChainService
	Validator   validators.Validator

	// Paths maps a username to its container files.
	Paths func(username string) store.UserPaths

	Params *scheduler.Params
	IDs    ledger.IDGenerator
	Now    func() time.Time
	Logger *logger.Logger
}

type authService struct {
	Deps
}

// NewAuthService returns an [AuthService]. Zero optional fields get
// defaults.
func NewAuthService(d Deps) AuthService {
	if d.Validator == nil {
		d.Validator = validators.NewRecallValidator()
	}
	if d.Params == nil {
		d.Params = scheduler.NewDefaultParams()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.IDs == nil {
		d.IDs = utils.NewUUIDGenerator()
	}
	if d.Paths == nil {
		d.Paths = func(username string) store.UserPaths { return store.PathsFor(".", username) }
	}
	return &authService{Deps: d}
}

func (a *authService) Signup(ctx context.Context, username, password string) error {
	log := a.Logger.GetChildLogger()

	if err := a.checkCredentials(ctx, username, password); err != nil {
		return err
	}

	users, err := a.Credentials.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	if _, ok := findUser(users, username); ok {
		log.Info().Str("func", "authService.Signup").Str("username", username).Msg("username already taken")
		return ErrDuplicateUsername
	}

	hash, err := a.KeyChain.HashPassword(password)
	if err != nil {
		log.Err(err).Str("func", "authService.Signup").Msg("failed to hash password")
		return mapKeyError(err)
	}
	salt, err := a.KeyChain.GenerateKeySalt()
	if err != nil {
		return fmt.Errorf("generate key salt: %w", err)
	}

	users = append(users, models.User{
		Username:     username,
		PasswordHash: hash,
		KeySalt:      hex.EncodeToString(salt),
		CreatedAt:    a.Now(),
	})
	if err = a.Credentials.SaveUsers(ctx, users); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	log.Info().Str("func", "authService.Signup").Str("username", username).Msg("user signed up")
	return nil
}

func (a *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	log := a.Logger.GetChildLogger()

	if err := a.checkCredentials(ctx, username, password); err != nil {
		return nil, err
	}

	users, err := a.Credentials.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	user, ok := findUser(users, username)
	if !ok {
		log.Info().Str("func", "authService.Login").Str("username", username).Msg("unknown user")
		return nil, ErrUnknownUser
	}

	valid, err := a.KeyChain.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Str("username", username).Msg("failed to verify password")
		return nil, mapKeyError(err)
	}
	if !valid {
		log.Info().Str("func", "authService.Login").Str("username", username).Msg("wrong password")
		return nil, ErrWrongPassword
	}

	salt, err := hex.DecodeString(user.KeySalt)
	if err != nil {
		return nil, fmt.Errorf("%w: key salt: %v", ErrCorruptCredential, err)
	}
	key, err := a.KeyChain.DeriveSessionKey(password, salt)
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Str("username", username).Msg("failed to derive session key")
		return nil, mapKeyError(err)
	}

	session := newSession(username, key, a.Deps)
	if err = session.load(ctx); err != nil {
		session.Logout()
		return nil, err
	}

	log.Info().Str("func", "authService.Login").Str("username", username).Int("items", session.ledger.Len()).Msg("user logged in")
	return session, nil
}

func (a *authService) Logout(ctx context.Context, session *Session) error {
	if session == nil {
		return nil
	}
	return session.Close(ctx)
}

func (a *authService) checkCredentials(ctx context.Context, username, password string) error {
	err := a.Validator.Validate(ctx, validators.Credentials{Username: username, Password: password})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, validators.ErrEmptyUsername), errors.Is(err, validators.ErrEmptyPassword):
		return ErrEmptyCredentials
	default:
		return fmt.Errorf("%w: %v", ErrInvalidUsername, err)
	}
}

func findUser(users []models.User, username string) (models.User, bool) {
	for _, u := range users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

// mapKeyError turns keychain failures into auth errors, keeping resource
// failures apart from corrupt stored hashes.
func mapKeyError(err error) error {
	switch {
	case errors.Is(err, crypto.ErrKeyDerivation):
		return fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	case errors.Is(err, crypto.ErrMalformedHash):
		return fmt.Errorf("%w: %v", ErrCorruptCredential, err)
	default:
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
}
