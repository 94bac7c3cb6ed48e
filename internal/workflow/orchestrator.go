package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BigBrown10/director-v2/internal/logging"
	"github.com/BigBrown10/director-v2/internal/queue"
	"github.com/BigBrown10/director-v2/internal/services"
	"github.com/BigBrown10/director-v2/internal/stage"
)

// Progress checkpoints persisted as each phase begins. The render phase
// interpolates from its base toward 100 using engine progress events.
const (
	planBasePercent   = 10.0
	recordBasePercent = 40.0
	renderBasePercent = 70.0
)

// Orchestrator drains the queue one job at a time through the pipeline.
type Orchestrator struct {
	store        *queue.Store
	phases       []namedPhase
	pollInterval time.Duration
	logger       *slog.Logger
}

type namedPhase struct {
	name    string
	base    float64
	handler stage.Handler
}

// Options configures the orchestrator.
type Options struct {
	PollInterval time.Duration
}

// New constructs an orchestrator over the three pipeline phases.
func New(store *queue.Store, plan, record, render stage.Handler, opts Options, logger *slog.Logger) *Orchestrator {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Orchestrator{
		store: store,
		phases: []namedPhase{
			{name: PhasePlan, base: planBasePercent, handler: plan},
			{name: PhaseRecord, base: recordBasePercent, handler: record},
			{name: PhaseRender, base: renderBasePercent, handler: render},
		},
		pollInterval: interval,
		logger:       logging.NewComponentLogger(logger, "orchestrator"),
	}
}

// Run drains the queue until ctx is cancelled. Jobs left in processing by a
// previous run are failed up front rather than resumed.
func (o *Orchestrator) Run(ctx context.Context) error {
	interrupted, err := o.store.FailInterrupted(ctx)
	if err != nil {
		return err
	}
	if interrupted > 0 {
		o.logger.Warn("failed jobs interrupted by previous shutdown", logging.Int("count", interrupted))
	}

	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()
	for {
		processed, err := o.RunOnce(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			o.logger.Error("queue poll failed", logging.Error(err))
		}
		if processed {
			// Another job may already be waiting.
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce claims and fully processes at most one pending job. It reports
// whether a job was claimed.
func (o *Orchestrator) RunOnce(ctx context.Context) (bool, error) {
	job, err := o.store.ClaimNextPending(ctx)
	if err != nil {
		return false, err
	}
	if job == nil {
		return false, nil
	}
	o.ProcessJob(ctx, job)
	return true, nil
}

// ProcessByID moves one specific pending job into processing and runs it to
// a terminal status. The returned job reflects the final state.
func (o *Orchestrator) ProcessByID(ctx context.Context, id string) (*queue.Job, error) {
	job, err := o.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != queue.StatusPending {
		return nil, fmt.Errorf("job %s is %s, only pending jobs can be processed", id, job.Status)
	}
	job.Status = queue.StatusProcessing
	job.SetProgress("starting", 0)
	if err := o.store.Update(ctx, job); err != nil {
		return nil, err
	}
	o.ProcessJob(ctx, job)
	return job, nil
}

// ProcessJob runs every phase in order, persisting the job after each. Any
// phase error moves the job to the terminal failed status with the error as
// its diagnostic message; there are no retries. Each run is stamped with a
// fresh correlation id so all of its log lines can be tied together.
func (o *Orchestrator) ProcessJob(ctx context.Context, job *queue.Job) {
	ctx = services.WithJobID(ctx, job.ID)
	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("job started", logging.String("instruction", job.Instruction))

	for _, phase := range o.phases {
		phaseCtx := services.WithPhase(ctx, phase.name)
		phaseLogger := logging.WithContext(phaseCtx, o.logger)
		job.SetProgress(phase.name, phase.base)
		if err := o.store.Update(phaseCtx, job); err != nil {
			o.fail(ctx, job, logger, err)
			return
		}

		phaseLogger.Info("phase started", logging.String(logging.FieldEventType, "phase_start"))
		started := time.Now()
		if err := phase.handler.Prepare(phaseCtx, job); err != nil {
			o.fail(phaseCtx, job, phaseLogger, err)
			return
		}
		if err := phase.handler.Execute(phaseCtx, job); err != nil {
			o.fail(phaseCtx, job, phaseLogger, err)
			return
		}
		if err := o.store.Update(phaseCtx, job); err != nil {
			o.fail(phaseCtx, job, phaseLogger, err)
			return
		}
		phaseLogger.Info("phase finished",
			logging.String(logging.FieldEventType, "phase_complete"),
			logging.Duration("elapsed", time.Since(started)))
	}

	job.Status = queue.StatusCompleted
	job.SetProgress("completed", 100)
	if err := o.store.Update(ctx, job); err != nil {
		o.fail(ctx, job, logger, err)
		return
	}
	logger.Info("job completed", logging.String("final_video", job.FinalVideoPath))
}

func (o *Orchestrator) fail(ctx context.Context, job *queue.Job, logger *slog.Logger, cause error) {
	logger.Error("job failed",
		logging.String(logging.FieldPhase, job.ProgressStage),
		logging.Error(cause))
	job.Fail(cause.Error())
	if err := o.store.Update(ctx, job); err != nil {
		// Persisting the failure itself failed; the startup interrupted-job
		// sweep will reconcile the row on the next run.
		logger.Error("failed to persist job failure", logging.Error(err))
	}
}

// Health reports readiness of every phase.
func (o *Orchestrator) Health(ctx context.Context) []stage.Health {
	checks := make([]stage.Health, 0, len(o.phases))
	for _, phase := range o.phases {
		checks = append(checks, phase.handler.HealthCheck(ctx))
	}
	return checks
}

// Healthy reports whether every phase passed its health check.
func Healthy(checks []stage.Health) bool {
	for _, check := range checks {
		if !check.Ready {
			return false
		}
	}
	return true
}
