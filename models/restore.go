// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "errors"

// ErrRestoreOutOfOrder is returned when a restore step is attempted from a
// state that does not allow it.
var ErrRestoreOutOfOrder = errors.New("restore step is out of order")

// RestoreStep is a state of the password restore flow.
type RestoreStep int

const (
	// RestoreAwaitingEmail is the initial state: the account email is unknown.
	RestoreAwaitingEmail RestoreStep = iota
	// RestoreAwaitingAnswer means a single account matched the email and the
	// secret answer is expected next.
	RestoreAwaitingAnswer
	// RestoreConfirmed means the secret answer was correct and a new password
	// may be set.
	RestoreConfirmed
)

// String implements fmt.Stringer.
func (s RestoreStep) String() string {
	switch s {
	case RestoreAwaitingEmail:
		return "awaiting_email"
	case RestoreAwaitingAnswer:
		return "awaiting_answer"
	case RestoreConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// RestoreState is the per-session state machine of the restore flow.
// Transitions:
//
//	AwaitingEmail  --EmailFound-->     AwaitingAnswer
//	AwaitingAnswer --AnswerAccepted--> Confirmed
//	any            --Reset-->          AwaitingEmail
type RestoreState struct {
	Step   RestoreStep `json:"step"`
	Email  string      `json:"email,omitempty"`
	UserID int64       `json:"user_id,omitempty"`
}

// EmailFound moves the flow to AwaitingAnswer for the given account.
func (s *RestoreState) EmailFound(email string, userID int64) error {
	if s.Step != RestoreAwaitingEmail {
		return ErrRestoreOutOfOrder
	}
	s.Step = RestoreAwaitingAnswer
	s.Email = email
	s.UserID = userID
	return nil
}

// AnswerAccepted moves the flow to Confirmed.
func (s *RestoreState) AnswerAccepted() error {
	if s.Step != RestoreAwaitingAnswer {
		return ErrRestoreOutOfOrder
	}
	s.Step = RestoreConfirmed
	return nil
}

// Reset returns the flow to its initial state.
func (s *RestoreState) Reset() {
	*s = RestoreState{}
}

// IsConfirmed reports whether the secret answer has been accepted.
func (s RestoreState) IsConfirmed() bool {
	return s.Step == RestoreConfirmed
}
