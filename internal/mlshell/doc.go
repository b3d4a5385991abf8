// Package mlshell is the boundary to the external machine-learning shell
// that trains, tests and applies prediction models.
//
// The shell itself is a separate program. This package defines the closed
// set of algorithm adapters it understands ([Algorithm]), the [Shell]
// contract and two transports for it: a local command that speaks JSON over
// stdin/stdout and a remote HTTP service. Every transport is wrapped in a
// circuit breaker by [New].
package mlshell
