// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the form checks of the account pages and the
// structural validation of per-user algorithm settings.
//
// Form checks report failures as page flags and never return errors. The
// [Validator] implementations return sentinel errors instead and are used
// by services before anything is persisted.
package validators

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
