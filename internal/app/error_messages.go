// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing wording of the recall command line.
//
// All Msg* constants are the human-readable strings printed to the terminal
// to describe the outcome of an operation. MessageFor picks one of them for
// an error returned by the services, so the same failure always reads the
// same way.
package app

import (
	"errors"

	"github.com/MKhiriev/go-recall-keeper/internal/ledger"
	"github.com/MKhiriev/go-recall-keeper/internal/service"
	"github.com/MKhiriev/go-recall-keeper/internal/store"
	"github.com/MKhiriev/go-recall-keeper/internal/tags"
	"github.com/MKhiriev/go-recall-keeper/models"
)

const (
	// MsgEmptyCredentials is printed when the username or password is blank.
	MsgEmptyCredentials = "username and password are required"

	// MsgInvalidUsername is printed when the username contains line breaks
	// or equals the record separator.
	MsgInvalidUsername = "invalid username"

	// MsgLoginAlreadyExists is printed when signup picks a taken username.
	MsgLoginAlreadyExists = "username already exists"

	// MsgInvalidLoginPassword is printed for an unknown user or a wrong
	// password.
	MsgInvalidLoginPassword = "invalid username/password"

	// MsgKeyDerivationFailed is printed when the password hash or session
	// key could not be computed, e.g. out of memory.
	MsgKeyDerivationFailed = "could not derive key, try again"

	// MsgCorruptCredential is printed when the stored credential record
	// cannot be parsed.
	MsgCorruptCredential = "stored credentials are corrupt"

	// MsgDataTampered is printed when a container fails authentication.
	MsgDataTampered = "data file is corrupt or was modified"

	MsgDataCorrupt = "data file is corrupt"

	// MsgInvalidQuality is printed for a rating outside again/hard/good/easy.
	MsgInvalidQuality = "quality must be one of again, hard, good, easy"

	MsgDataNotFound = "item not found"

	MsgInvalidDataProvided = "invalid data provided"

	MsgSessionClosed = "not logged in"

	MsgInternalError = "internal error"
)

// MessageFor returns the message to print for err, or "" for nil.
func MessageFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrEmptyCredentials):
		return MsgEmptyCredentials
	case errors.Is(err, service.ErrInvalidUsername):
		return MsgInvalidUsername
	case errors.Is(err, service.ErrDuplicateUsername):
		return MsgLoginAlreadyExists
	case errors.Is(err, service.ErrUnknownUser), errors.Is(err, service.ErrWrongPassword):
		return MsgInvalidLoginPassword
	case errors.Is(err, service.ErrKeyDerivationFailed):
		return MsgKeyDerivationFailed
	case errors.Is(err, service.ErrCorruptCredential), errors.Is(err, store.ErrMalformedCredentials):
		return MsgCorruptCredential
	case errors.Is(err, store.ErrAuthenticationFailed):
		return MsgDataTampered
	case errors.Is(err, store.ErrCodec), errors.Is(err, ledger.ErrData), errors.Is(err, tags.ErrData):
		return MsgDataCorrupt
	case errors.Is(err, models.ErrInvalidQuality):
		return MsgInvalidQuality
	case errors.Is(err, ledger.ErrItemNotFound):
		return MsgDataNotFound
	case errors.Is(err, service.ErrInvalidItem):
		return MsgInvalidDataProvided
	case errors.Is(err, service.ErrSessionClosed):
		return MsgSessionClosed
	default:
		return MsgInternalError
	}
}
