package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/BigBrown10/director-v2/internal/compositor"
	"github.com/BigBrown10/director-v2/internal/config"
	"github.com/BigBrown10/director-v2/internal/logging"
	"github.com/BigBrown10/director-v2/internal/planner"
	"github.com/BigBrown10/director-v2/internal/queue"
	"github.com/BigBrown10/director-v2/internal/services/browseragent"
	"github.com/BigBrown10/director-v2/internal/services/llm"
	"github.com/BigBrown10/director-v2/internal/services/pixabay"
	"github.com/BigBrown10/director-v2/internal/services/remotion"
	"github.com/BigBrown10/director-v2/internal/services/whisper"
	"github.com/BigBrown10/director-v2/internal/workflow"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "process [job-id]",
		Short: "Run the worker: drain the queue, or process one job by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			jobID := ""
			if len(args) > 0 {
				jobID = args[0]
			}
			return runWorker(cmd.Context(), cfg, jobID, once)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Process at most one job and exit")
	return cmd
}

func runWorker(cmdCtx context.Context, cfg *config.Config, jobID string, once bool) error {
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	// One worker per queue database. A second invocation exits immediately
	// instead of racing the first for jobs.
	lockPath := filepath.Join(cfg.Paths.LogDir, "director.lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire worker lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another worker already holds %s", lockPath)
	}
	defer lock.Unlock()

	store, err := queue.Open(signalCtx, cfg.Paths.DBPath, logger)
	if err != nil {
		return fmt.Errorf("open queue store: %w", err)
	}
	defer store.Close()

	orchestrator := buildOrchestrator(cfg, store, logger)

	for _, check := range orchestrator.Health(signalCtx) {
		if !check.Ready {
			logger.Warn("phase not ready",
				logging.String(logging.FieldPhase, check.Name),
				logging.String("detail", check.Detail))
		}
	}

	if jobID != "" {
		job, err := orchestrator.ProcessByID(signalCtx, jobID)
		if err != nil {
			return err
		}
		if job.Status != queue.StatusCompleted {
			return fmt.Errorf("job %s failed: %s", job.ID, job.ErrorMessage)
		}
		logger.Info("job completed", logging.String("final_video", job.FinalVideoPath))
		return nil
	}

	if once {
		if _, err := store.FailInterrupted(signalCtx); err != nil {
			return err
		}
		processed, err := orchestrator.RunOnce(signalCtx)
		if err != nil {
			return err
		}
		if !processed {
			logger.Info("queue is empty")
		}
		return nil
	}

	logger.Info("worker started", logging.String("db", cfg.Paths.DBPath))
	return orchestrator.Run(signalCtx)
}

func buildOrchestrator(cfg *config.Config, store *queue.Store, logger *slog.Logger) *workflow.Orchestrator {
	generator := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})
	transcriber := whisper.NewClient(whisper.Config{
		APIKey:         cfg.Transcription.APIKey,
		BaseURL:        cfg.Transcription.BaseURL,
		Model:          cfg.Transcription.Model,
		TimeoutSeconds: cfg.Transcription.TimeoutSeconds,
	})
	music := pixabay.NewClient(pixabay.Config{
		APIKey:          cfg.Pixabay.APIKey,
		BaseURL:         cfg.Pixabay.BaseURL,
		DefaultTrackURL: cfg.Pixabay.DefaultTrackURL,
		TimeoutSeconds:  cfg.Pixabay.TimeoutSeconds,
	}, logger)

	planPhase := workflow.NewPlanPhase(planner.New(generator, transcriber, music, logger))

	driver := browseragent.New(browseragent.Config{
		Binary:         cfg.Browser.Binary,
		Headless:       cfg.Browser.Headless,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		TypingDelayMS:  cfg.Browser.TypingDelayMS,
		ScrollStepPX:   cfg.Browser.ScrollStepPX,
	}, logger)
	recordPhase := workflow.NewRecordPhase(workflow.RecordPhaseOptions{
		Driver:        driver,
		StagingDir:    cfg.Paths.StagingDir,
		ActionWait:    time.Duration(cfg.Workflow.ActionWaitSeconds) * time.Second,
		PostRoll:      time.Duration(cfg.Workflow.PostRollSeconds) * time.Second,
		EncryptionKey: cfg.EncryptionKey(),
	}, logger)

	renderer := remotion.NewCLI(remotion.Config{
		Binary:        cfg.Render.Binary,
		CompositionID: cfg.Render.CompositionID,
		FPS:           cfg.Render.FPS,
		Width:         cfg.Render.Width,
		Height:        cfg.Render.Height,
	})
	renderPhase := workflow.NewRenderPhase(compositor.New(renderer, compositor.Options{
		StagingDir: cfg.Paths.StagingDir,
		OutputDir:  cfg.Paths.OutputDir,
	}, logger), renderer.Binary(), logger)

	return workflow.New(store, planPhase, recordPhase, renderPhase, workflow.Options{
		PollInterval: time.Duration(cfg.Workflow.PollIntervalSeconds) * time.Second,
	}, logger)
}
