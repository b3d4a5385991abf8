// Package workers runs the background jobs of the server next to the HTTP
// listener. Every job implements Worker and stops when its context is done.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
