package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no HTTP handler or address configured")
	errListenFailed        = errors.New("HTTP listener failed")
)
