// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators enforces the input rules of the recall core before
// anything reaches the ledger or the credential store.
//
// Items must have a non-blank title, single-line tags, an interval of at
// least one day and an ease factor within bounds. Credentials must be
// non-empty and the username must fit the line-based credential file.
//
// Services receive a Validator in their constructor and call Validate with
// the value and, optionally, the names of the fields to check.
package validators

import "context"

// Validator checks an item or a credential pair. Passing field names
// limits the check to those fields; see the Field* constants.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
