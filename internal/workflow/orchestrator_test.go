package workflow

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/BigBrown10/director-v2/internal/logging"
	"github.com/BigBrown10/director-v2/internal/queue"
	"github.com/BigBrown10/director-v2/internal/services"
	"github.com/BigBrown10/director-v2/internal/stage"
	"github.com/BigBrown10/director-v2/internal/timeline"
)

type fakePhase struct {
	name       string
	prepareErr error
	executeErr error
	execute    func(job *queue.Job)
	calls      int
	health     stage.Health
}

func (p *fakePhase) Prepare(_ context.Context, _ *queue.Job) error {
	return p.prepareErr
}

func (p *fakePhase) Execute(_ context.Context, job *queue.Job) error {
	p.calls++
	if p.executeErr != nil {
		return p.executeErr
	}
	if p.execute != nil {
		p.execute(job)
	}
	return nil
}

func (p *fakePhase) HealthCheck(context.Context) stage.Health {
	if p.health.Name != "" {
		return p.health
	}
	return stage.Healthy(p.name)
}

func openTestStore(t *testing.T) *queue.Store {
	t.Helper()
	store, err := queue.Open(context.Background(), filepath.Join(t.TempDir(), "queue.db"), logging.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func submitTestJob(t *testing.T, store *queue.Store) *queue.Job {
	t.Helper()
	job, err := store.NewJob(context.Background(), queue.NewJobParams{
		Instruction: "showcase the pricing page with dramatic zooms",
		TargetURL:   "https://example.com",
		ConceptID:   "gaming-rgb",
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	return job
}

func passingPhases() (*fakePhase, *fakePhase, *fakePhase) {
	plan := &fakePhase{name: PhasePlan, execute: func(job *queue.Job) {
		job.Timeline = &timeline.Timeline{
			JobID:           job.ID,
			ConceptID:       "gaming-rgb",
			DurationSeconds: 10,
			Events: []timeline.Event{
				{ID: "e1", Timestamp: 0, Action: timeline.ActionNav, Value: job.TargetURL},
			},
		}
	}}
	record := &fakePhase{name: PhaseRecord, execute: func(job *queue.Job) {
		job.RawRecordingPath = "/tmp/" + job.ID + "-raw.webm"
	}}
	render := &fakePhase{name: PhaseRender, execute: func(job *queue.Job) {
		job.FinalVideoPath = "/tmp/final-" + job.ID + ".mp4"
	}}
	return plan, record, render
}

func TestProcessJobHappyPath(t *testing.T) {
	store := openTestStore(t)
	submitted := submitTestJob(t, store)
	plan, record, render := passingPhases()
	orch := New(store, plan, record, render, Options{}, logging.NewNop())

	processed, err := orch.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if !processed {
		t.Fatal("no job claimed")
	}

	got, err := store.GetByID(context.Background(), submitted.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != queue.StatusCompleted {
		t.Fatalf("status = %s, want completed", got.Status)
	}
	if got.FinalVideoPath == "" {
		t.Fatal("final video path not persisted")
	}
	if got.Timeline == nil || len(got.Timeline.Events) == 0 {
		t.Fatal("timeline not persisted")
	}
	if got.ProgressPercent != 100 {
		t.Fatalf("progress = %v, want 100", got.ProgressPercent)
	}
	if plan.calls != 1 || record.calls != 1 || render.calls != 1 {
		t.Fatalf("phase calls = %d/%d/%d", plan.calls, record.calls, render.calls)
	}
}

func TestProcessJobPlanFailure(t *testing.T) {
	store := openTestStore(t)
	submitted := submitTestJob(t, store)
	plan, record, render := passingPhases()
	plan.executeErr = services.Wrap(services.ErrPlanning, PhasePlan, "generate", "instruction empty after transcription", nil)
	orch := New(store, plan, record, render, Options{}, logging.NewNop())

	if _, err := orch.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	got, err := store.GetByID(context.Background(), submitted.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != queue.StatusFailed {
		t.Fatalf("status = %s, want failed", got.Status)
	}
	if !strings.Contains(got.ErrorMessage, "planning error") {
		t.Fatalf("diagnostic missing phase marker: %q", got.ErrorMessage)
	}
	if record.calls != 0 || render.calls != 0 {
		t.Fatal("later phases ran after plan failure")
	}
}

func TestProcessJobRecordFailureStopsPipeline(t *testing.T) {
	store := openTestStore(t)
	submitted := submitTestJob(t, store)
	plan, record, render := passingPhases()
	record.executeErr = services.Wrap(services.ErrRecording, PhaseRecord, "execute event", "page crashed", nil)
	orch := New(store, plan, record, render, Options{}, logging.NewNop())

	if _, err := orch.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	got, _ := store.GetByID(context.Background(), submitted.ID)
	if got.Status != queue.StatusFailed {
		t.Fatalf("status = %s, want failed", got.Status)
	}
	if !strings.Contains(got.ErrorMessage, "recording error") {
		t.Fatalf("diagnostic = %q", got.ErrorMessage)
	}
	if render.calls != 0 {
		t.Fatal("render ran after recording failure")
	}
	// The plan result stays on the row even though the job failed.
	if got.Timeline == nil {
		t.Fatal("timeline lost on failure")
	}
}

func TestProcessJobRenderFailure(t *testing.T) {
	store := openTestStore(t)
	submitted := submitTestJob(t, store)
	plan, record, render := passingPhases()
	render.executeErr = services.Wrap(services.ErrRendering, PhaseRender, "render", "engine exited 1", errors.New("exit status 1"))
	orch := New(store, plan, record, render, Options{}, logging.NewNop())

	if _, err := orch.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	got, _ := store.GetByID(context.Background(), submitted.ID)
	if got.Status != queue.StatusFailed {
		t.Fatalf("status = %s, want failed", got.Status)
	}
	if got.FinalVideoPath != "" {
		t.Fatal("final video path set despite render failure")
	}
	if got.RawRecordingPath == "" {
		t.Fatal("raw recording path lost on render failure")
	}
}

func TestProcessJobPrepareFailure(t *testing.T) {
	store := openTestStore(t)
	submitted := submitTestJob(t, store)
	plan, record, render := passingPhases()
	record.prepareErr = services.Wrap(services.ErrConfiguration, PhaseRecord, "prepare", "job carries credentials but no encryption key is configured", nil)
	orch := New(store, plan, record, render, Options{}, logging.NewNop())

	if _, err := orch.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	got, _ := store.GetByID(context.Background(), submitted.ID)
	if got.Status != queue.StatusFailed {
		t.Fatalf("status = %s, want failed", got.Status)
	}
	if record.calls != 0 {
		t.Fatal("execute ran after prepare failure")
	}
}

func TestFailedJobsAreNotRetried(t *testing.T) {
	store := openTestStore(t)
	submitTestJob(t, store)
	plan, record, render := passingPhases()
	plan.executeErr = errors.New("boom")
	orch := New(store, plan, record, render, Options{}, logging.NewNop())

	if _, err := orch.RunOnce(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	processed, err := orch.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if processed {
		t.Fatal("failed job was claimed again")
	}
	if plan.calls != 1 {
		t.Fatalf("plan ran %d times, want 1", plan.calls)
	}
}

func TestRunOnceDrainsOldestFirst(t *testing.T) {
	store := openTestStore(t)
	first := submitTestJob(t, store)
	second := submitTestJob(t, store)
	plan, record, render := passingPhases()
	orch := New(store, plan, record, render, Options{}, logging.NewNop())

	if _, err := orch.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	firstGot, _ := store.GetByID(context.Background(), first.ID)
	secondGot, _ := store.GetByID(context.Background(), second.ID)
	if firstGot.Status != queue.StatusCompleted {
		t.Fatalf("oldest job status = %s, want completed", firstGot.Status)
	}
	if secondGot.Status != queue.StatusPending {
		t.Fatalf("newer job status = %s, want pending", secondGot.Status)
	}
}

func TestProcessByID(t *testing.T) {
	store := openTestStore(t)
	submitted := submitTestJob(t, store)
	plan, record, render := passingPhases()
	orch := New(store, plan, record, render, Options{}, logging.NewNop())

	job, err := orch.ProcessByID(context.Background(), submitted.ID)
	if err != nil {
		t.Fatalf("process by id: %v", err)
	}
	if job.Status != queue.StatusCompleted {
		t.Fatalf("status = %s, want completed", job.Status)
	}

	// Terminal jobs cannot be processed again.
	if _, err := orch.ProcessByID(context.Background(), submitted.ID); err == nil {
		t.Fatal("completed job processed twice")
	}
	if _, err := orch.ProcessByID(context.Background(), "no-such-job"); !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("unknown id: got %v", err)
	}
}

func TestProcessJobStampsCorrelationID(t *testing.T) {
	store := openTestStore(t)
	submitTestJob(t, store)
	plan, record, render := passingPhases()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	orch := New(store, plan, record, render, Options{}, logger)

	if _, err := orch.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	out := buf.String()
	marker := logging.FieldCorrelationID + "="
	idx := strings.Index(out, marker)
	if idx < 0 {
		t.Fatalf("no correlation id logged: %q", out)
	}
	id := out[idx+len(marker):]
	id = id[:strings.IndexAny(id, " \n")]
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("correlation id %q is not a uuid: %v", id, err)
	}

	// Every correlated line of the run carries the same id, and the phase
	// lifecycle events are stamped with it.
	if strings.Count(out, marker) != strings.Count(out, marker+id) {
		t.Fatalf("mixed correlation ids in one run: %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "event_type=phase_start") {
			continue
		}
		if !strings.Contains(line, marker+id) || !strings.Contains(line, logging.FieldPhase+"=") {
			t.Fatalf("phase start line missing correlation fields: %q", line)
		}
	}
	if !strings.Contains(out, "event_type=phase_start") {
		t.Fatalf("no phase lifecycle events logged: %q", out)
	}
}

func TestHealthAggregation(t *testing.T) {
	store := openTestStore(t)
	plan := &fakePhase{name: PhasePlan}
	record := &fakePhase{name: PhaseRecord, health: stage.Unhealthy(PhaseRecord, "browser agent binary not found")}
	render := &fakePhase{name: PhaseRender}
	orch := New(store, plan, record, render, Options{}, logging.NewNop())

	checks := orch.Health(context.Background())
	if len(checks) != 3 {
		t.Fatalf("got %d checks", len(checks))
	}
	if Healthy(checks) {
		t.Fatal("aggregate healthy despite unhealthy phase")
	}
	if checks[1].Detail == "" {
		t.Fatal("unhealthy check carries no detail")
	}
}
