// Package stage defines the contract every pipeline phase implements for the
// workflow orchestrator.
package stage

import (
	"context"

	"github.com/BigBrown10/director-v2/internal/queue"
)

// Handler describes the contract the orchestrator needs from each phase.
// Prepare validates inputs and cheap preconditions; Execute does the work and
// mutates the job in memory (the orchestrator persists it).
type Handler interface {
	Prepare(ctx context.Context, job *queue.Job) error
	Execute(ctx context.Context, job *queue.Job) error
	HealthCheck(ctx context.Context) Health
}
