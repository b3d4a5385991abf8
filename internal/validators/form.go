// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/menu-predictor/models"
	"github.com/go-playground/validator/v10"
)

const (
	// DefaultMaxLen bounds names, logins and passwords.
	DefaultMaxLen = 32
	// LongMaxLen bounds the secret question and answer.
	LongMaxLen = 128
)

var emailValidator = validator.New()

// IsCorrectString reports whether s is non-empty valid UTF-8 made only of
// ASCII letters, digits, whitespace and the characters "_.@-".
func IsCorrectString(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}

	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
		case r == '_', r == '.', r == '@', r == '-':
		default:
			return false
		}
	}

	return true
}

// CheckContent checks every required field of supplied. A field that is
// absent or empty raises "no_<field>" on page; a field longer than maxLen
// runes or containing forbidden characters raises "incorrect_<field>".
// Exactly one flag is raised per failing field. It returns true when every
// field passed.
func CheckContent(required []string, supplied map[string]string, page models.Page, maxLen int) bool {
	ok := true

	for _, field := range required {
		value, present := supplied[field]
		switch {
		case !present || value == "":
			page.SetFlag("no_" + field)
			ok = false
		case utf8.RuneCountInString(value) > maxLen || !IsCorrectString(value):
			page.SetFlag("incorrect_" + field)
			ok = false
		}
	}

	return ok
}

// IsEmail reports whether s is a well-formed email address.
func IsEmail(s string) bool {
	return emailValidator.Var(s, "required,email") == nil
}
