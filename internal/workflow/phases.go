package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/BigBrown10/director-v2/internal/compositor"
	"github.com/BigBrown10/director-v2/internal/concepts"
	"github.com/BigBrown10/director-v2/internal/encryption"
	"github.com/BigBrown10/director-v2/internal/logging"
	"github.com/BigBrown10/director-v2/internal/queue"
	"github.com/BigBrown10/director-v2/internal/recorder"
	"github.com/BigBrown10/director-v2/internal/services"
	"github.com/BigBrown10/director-v2/internal/services/browseragent"
	"github.com/BigBrown10/director-v2/internal/services/remotion"
	"github.com/BigBrown10/director-v2/internal/stage"
	"github.com/BigBrown10/director-v2/internal/timeline"
)

// Phase progress labels persisted on the job while it runs.
const (
	PhasePlan   = "plan"
	PhaseRecord = "record"
	PhaseRender = "render"
)

// planService is the slice of the planner the plan phase needs.
type planService interface {
	CreatePlan(ctx context.Context, signal, jobID, targetURL string, concept concepts.Concept) (*timeline.Timeline, error)
}

// PlanPhase resolves the creative concept and generates the timeline.
type PlanPhase struct {
	planner planService
}

// NewPlanPhase constructs the planning phase.
func NewPlanPhase(planner planService) *PlanPhase {
	return &PlanPhase{planner: planner}
}

func (p *PlanPhase) Prepare(_ context.Context, job *queue.Job) error {
	if strings.TrimSpace(job.Instruction) == "" {
		return services.Wrap(services.ErrValidation, PhasePlan, "prepare", "job has no instruction", nil)
	}
	if strings.TrimSpace(job.TargetURL) == "" {
		return services.Wrap(services.ErrValidation, PhasePlan, "prepare", "job has no target url", nil)
	}
	return nil
}

func (p *PlanPhase) Execute(ctx context.Context, job *queue.Job) error {
	concept := concepts.Resolve(job.ConceptID, job.Styling)
	tl, err := p.planner.CreatePlan(ctx, job.Instruction, job.ID, job.TargetURL, concept)
	if err != nil {
		return err
	}
	job.Timeline = tl
	return nil
}

func (p *PlanPhase) HealthCheck(context.Context) stage.Health {
	// Planning degrades to the fallback plan, so it is always ready.
	return stage.Healthy(PhasePlan)
}

// RecordPhase replays the timeline in a browser session.
type RecordPhase struct {
	recorder      recordService
	agentBinary   string
	encryptionKey []byte
	logger        *slog.Logger
}

type recordService interface {
	Record(ctx context.Context, tl *timeline.Timeline, extraEnv []string) (string, error)
}

// RecordPhaseOptions wires the record phase.
type RecordPhaseOptions struct {
	Driver        *browseragent.Driver
	StagingDir    string
	ActionWait    time.Duration
	PostRoll      time.Duration
	EncryptionKey []byte
}

// NewRecordPhase constructs the recording phase around the agent driver.
func NewRecordPhase(opts RecordPhaseOptions, logger *slog.Logger) *RecordPhase {
	factory := &agentSessionFactory{driver: opts.Driver}
	return &RecordPhase{
		recorder: recorder.New(factory, recorder.Options{
			StagingDir: opts.StagingDir,
			ActionWait: opts.ActionWait,
			PostRoll:   opts.PostRoll,
		}, logger),
		agentBinary:   opts.Driver.Binary(),
		encryptionKey: opts.EncryptionKey,
		logger:        logging.NewComponentLogger(logger, "record-phase"),
	}
}

func (p *RecordPhase) Prepare(_ context.Context, job *queue.Job) error {
	if job.Timeline == nil || len(job.Timeline.Events) == 0 {
		return services.Wrap(services.ErrValidation, PhaseRecord, "prepare", "job has no timeline", nil)
	}
	if job.HasCredentials() && len(p.encryptionKey) == 0 {
		return services.Wrap(services.ErrConfiguration, PhaseRecord, "prepare", "job carries credentials but no encryption key is configured", nil)
	}
	return nil
}

func (p *RecordPhase) Execute(ctx context.Context, job *queue.Job) error {
	env, err := p.credentialEnv(job)
	if err != nil {
		return err
	}
	path, err := p.recorder.Record(ctx, job.Timeline, env)
	if err != nil {
		return err
	}
	job.RawRecordingPath = path
	return nil
}

// credentialEnv unseals job credentials into agent environment entries. The
// plaintext lives only for the duration of the session launch.
func (p *RecordPhase) credentialEnv(job *queue.Job) ([]string, error) {
	if !job.HasCredentials() {
		return nil, nil
	}
	creds, err := encryption.OpenCredentials(p.encryptionKey, job.CredentialsSealed)
	if err != nil {
		return nil, services.Wrap(services.ErrRecording, PhaseRecord, "unseal credentials", "", err)
	}
	return []string{
		"DIRECTOR_AGENT_USERNAME=" + creds.Username,
		"DIRECTOR_AGENT_PASSWORD=" + creds.Password,
	}, nil
}

func (p *RecordPhase) HealthCheck(context.Context) stage.Health {
	if _, err := exec.LookPath(p.agentBinary); err != nil {
		return stage.Unhealthy(PhaseRecord, fmt.Sprintf("browser agent binary %q not found", p.agentBinary))
	}
	return stage.Healthy(PhaseRecord)
}

// agentSessionFactory adapts the agent driver to the recorder contract.
type agentSessionFactory struct {
	driver *browseragent.Driver
}

func (f *agentSessionFactory) StartSession(ctx context.Context, extraEnv []string) (recorder.BrowserSession, error) {
	return f.driver.StartSessionEnv(ctx, extraEnv)
}

func (f *agentSessionFactory) ScrollStep() int {
	return f.driver.ScrollStep()
}

// RenderPhase composes the final video.
type RenderPhase struct {
	compositor   renderService
	renderBinary string
	logger       *slog.Logger
}

type renderService interface {
	Render(ctx context.Context, tl *timeline.Timeline, rawMediaPath string, concept concepts.Concept, progress func(remotion.ProgressUpdate)) (string, error)
}

// NewRenderPhase constructs the render phase.
func NewRenderPhase(comp *compositor.Compositor, renderBinary string, logger *slog.Logger) *RenderPhase {
	return &RenderPhase{
		compositor:   comp,
		renderBinary: renderBinary,
		logger:       logging.NewComponentLogger(logger, "render-phase"),
	}
}

func (p *RenderPhase) Prepare(_ context.Context, job *queue.Job) error {
	if job.Timeline == nil {
		return services.Wrap(services.ErrValidation, PhaseRender, "prepare", "job has no timeline", nil)
	}
	if strings.TrimSpace(job.RawRecordingPath) == "" {
		return services.Wrap(services.ErrValidation, PhaseRender, "prepare", "job has no raw recording", nil)
	}
	return nil
}

func (p *RenderPhase) Execute(ctx context.Context, job *queue.Job) error {
	concept := concepts.Resolve(job.Timeline.ConceptID, job.Styling)
	logger := logging.WithContext(ctx, p.logger)
	final, err := p.compositor.Render(ctx, job.Timeline, job.RawRecordingPath, concept, func(update remotion.ProgressUpdate) {
		// Render progress maps onto the back half of the job's progress bar.
		job.SetProgress(PhaseRender, renderBasePercent+update.Percent*(100-renderBasePercent)/100)
		logger.Debug("render progress",
			logging.Float64("percent", update.Percent),
			logging.String("stage", update.Stage))
	})
	if err != nil {
		return err
	}
	job.FinalVideoPath = final
	return nil
}

func (p *RenderPhase) HealthCheck(context.Context) stage.Health {
	if _, err := exec.LookPath(p.renderBinary); err != nil {
		return stage.Unhealthy(PhaseRender, fmt.Sprintf("render binary %q not found", p.renderBinary))
	}
	return stage.Healthy(PhaseRender)
}
