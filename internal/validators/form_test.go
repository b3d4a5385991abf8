// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"strings"
	"testing"

	"github.com/MKhiriev/menu-predictor/models"
	"github.com/stretchr/testify/assert"
)

func TestIsCorrectString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "letters", in: "bob", want: true},
		{name: "digits and underscore", in: "user_42", want: true},
		{name: "email characters", in: "bob.smith@example-mail.com", want: true},
		{name: "inner whitespace", in: "what is my pet", want: true},
		{name: "tabs and newlines", in: "a\tb\nc", want: true},
		{name: "cyrillic letters", in: "Борис", want: false},
		{name: "greek letter", in: "Ωmega", want: false},
		{name: "arabic-indic digits", in: "١٢٣", want: false},
		{name: "no-break space", in: "bob\u00a0smith", want: false},
		{name: "empty", in: "", want: false},
		{name: "quote", in: "bob'", want: false},
		{name: "semicolon", in: "a;b", want: false},
		{name: "slash", in: "a/b", want: false},
		{name: "angle brackets", in: "<script>", want: false},
		{name: "plus", in: "a+b@example.com", want: false},
		{name: "invalid utf8", in: string([]byte{0xff, 0xfe}), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCorrectString(tt.in))
		})
	}
}

// TestIsCorrectString_CharClass checks every printable ASCII character on
// its own against the allowed class.
func TestIsCorrectString_CharClass(t *testing.T) {
	for r := rune(0x21); r < 0x7f; r++ {
		allowed := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || strings.ContainsRune("_.@-", r)

		assert.Equal(t, allowed, IsCorrectString(string(r)), "rune %q", r)
	}
}

func TestCheckContent(t *testing.T) {
	tests := []struct {
		name      string
		required  []string
		supplied  map[string]string
		maxLen    int
		wantOK    bool
		wantFlags []string
	}{
		{
			name:     "all present",
			required: []string{"username", "password"},
			supplied: map[string]string{"username": "bob", "password": "x"},
			maxLen:   DefaultMaxLen,
			wantOK:   true,
		},
		{
			name:      "missing field",
			required:  []string{"username", "password"},
			supplied:  map[string]string{"username": "bob"},
			maxLen:    DefaultMaxLen,
			wantFlags: []string{"no_password"},
		},
		{
			name:      "empty field",
			required:  []string{"username"},
			supplied:  map[string]string{"username": ""},
			maxLen:    DefaultMaxLen,
			wantFlags: []string{"no_username"},
		},
		{
			name:      "too long",
			required:  []string{"login"},
			supplied:  map[string]string{"login": strings.Repeat("a", DefaultMaxLen+1)},
			maxLen:    DefaultMaxLen,
			wantFlags: []string{"incorrect_login"},
		},
		{
			name:      "non-ascii letters",
			required:  []string{"login"},
			supplied:  map[string]string{"login": "Жора"},
			maxLen:    DefaultMaxLen,
			wantFlags: []string{"incorrect_login"},
		},
		{
			name:     "exactly max length",
			required: []string{"login"},
			supplied: map[string]string{"login": strings.Repeat("a", DefaultMaxLen)},
			maxLen:   DefaultMaxLen,
			wantOK:   true,
		},
		{
			name:      "forbidden characters",
			required:  []string{"login"},
			supplied:  map[string]string{"login": "bob;drop"},
			maxLen:    DefaultMaxLen,
			wantFlags: []string{"incorrect_login"},
		},
		{
			name:      "several failing fields",
			required:  []string{"first_name", "last_name", "email"},
			supplied:  map[string]string{"first_name": "", "last_name": "x!", "email": "a@b.c"},
			maxLen:    DefaultMaxLen,
			wantFlags: []string{"no_first_name", "incorrect_last_name"},
		},
		{
			name:     "long limit",
			required: []string{"question"},
			supplied: map[string]string{"question": strings.Repeat("q", 100)},
			maxLen:   LongMaxLen,
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := models.NewPage()

			ok := CheckContent(tt.required, tt.supplied, page, tt.maxLen)

			assert.Equal(t, tt.wantOK, ok)
			assert.Len(t, page, len(tt.wantFlags))
			for _, flag := range tt.wantFlags {
				assert.True(t, page.Flag(flag), "expected flag %s", flag)
			}
		})
	}
}

// TestCheckContent_OneFlagPerField verifies that a field never gets both
// the "no_" and the "incorrect_" flag.
func TestCheckContent_OneFlagPerField(t *testing.T) {
	required := []string{"a", "b", "c", "d"}
	supplied := map[string]string{"b": "", "c": "bad!", "d": "good"}
	page := models.NewPage()

	ok := CheckContent(required, supplied, page, DefaultMaxLen)

	assert.False(t, ok)
	for _, f := range required {
		assert.False(t, page.Flag("no_"+f) && page.Flag("incorrect_"+f), "field %s has two flags", f)
	}
	assert.False(t, page.Flag("no_d"))
	assert.False(t, page.Flag("incorrect_d"))
}

func TestIsEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"bob@example.com", true},
		{"first.last@sub.example.org", true},
		{"bob", false},
		{"bob@", false},
		{"@example.com", false},
		{"", false},
		{"bob example@com", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmail(tt.in))
		})
	}
}
