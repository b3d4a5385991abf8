// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Session is the server-side state of one browser session.
type Session struct {
	ID string `json:"id"`

	// UserID is the authenticated user, zero for anonymous sessions.
	UserID int64 `json:"user_id,omitempty"`

	// Result is the last uploaded or predicted content, offered for download.
	Result string `json:"result,omitempty"`

	// Form holds registration field echoes shown again after a failed attempt.
	Form map[string]string `json:"form,omitempty"`

	Restore RestoreState `json:"restore"`

	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}

// NewSession creates an anonymous session valid for ttl.
func NewSession(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:             generateSessionID(),
		Form:           make(map[string]string),
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
		LastAccessedAt: now,
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsAuthenticated reports whether a user is logged in within this session.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != 0
}

// HasResult reports whether the session carries a result to download.
func (s *Session) HasResult() bool {
	return s.Result != ""
}

// Login binds the session to userID.
func (s *Session) Login(userID int64) {
	s.UserID = userID
}

// Logout drops the authenticated user and every piece of per-user state.
func (s *Session) Logout() {
	s.UserID = 0
	s.Restore.Reset()
	s.Form = make(map[string]string)
}

func generateSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}
