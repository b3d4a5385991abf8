// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents a registered account of the predictor.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier used to authenticate.
	Login string `json:"login"`

	// Email is the unique contact address, used by the restore flow.
	Email string `json:"email"`

	// FirstName and LastName are display attributes collected at registration.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Plain-text passwords never reach the persistence layer.
	PasswordHash string `json:"-"`

	// IsResearcher reports membership in the "researcher" group, which is
	// allowed to retrain its own model.
	IsResearcher bool `json:"is_researcher"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
