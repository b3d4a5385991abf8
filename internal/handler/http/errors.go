// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrNoSession is returned when a page handler runs without the session
	// attached by withSession.
	ErrNoSession = errors.New("request has no session")

	// ErrMalformedForm is returned when the request body is not a readable
	// urlencoded or multipart form.
	ErrMalformedForm = errors.New("malformed form")
)
