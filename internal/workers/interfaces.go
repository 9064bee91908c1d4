// Package workers runs the background jobs of the server process.
// Each Worker blocks in Run until its context is cancelled; the Workers
// aggregate starts them together and waits for all of them to stop.
package workers

import "context"

// Worker is a background job bound to the lifetime of ctx.
type Worker interface {
	Run(ctx context.Context)
}
