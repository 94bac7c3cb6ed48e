package recorder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BigBrown10/director-v2/internal/services"
	"github.com/BigBrown10/director-v2/internal/timeline"
)

type fakeSession struct {
	calls      []string
	moveErr    error
	clickErr   error
	navErr     error
	scrollErrs map[string]error
	stopPath   string
	stopErr    error
	closed     bool
}

func (s *fakeSession) record(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	s.record("navigate %s", url)
	return s.navErr
}

func (s *fakeSession) MoveTo(_ context.Context, selector string) error {
	s.record("move %s", selector)
	return s.moveErr
}

func (s *fakeSession) Click(_ context.Context, selector string) error {
	s.record("click %s", selector)
	return s.clickErr
}

func (s *fakeSession) Type(_ context.Context, selector, text string) error {
	s.record("type %s %s", selector, text)
	return nil
}

func (s *fakeSession) Hover(_ context.Context, selector string) error {
	s.record("hover %s", selector)
	return nil
}

func (s *fakeSession) Scroll(_ context.Context, selector string, pixels int) error {
	s.record("scroll %q %d", selector, pixels)
	if err, ok := s.scrollErrs[selector]; ok {
		return err
	}
	return nil
}

func (s *fakeSession) StartRecording(_ context.Context, path string) error {
	s.record("record_start %s", path)
	return nil
}

func (s *fakeSession) StopRecording(context.Context) (string, error) {
	s.record("record_stop")
	return s.stopPath, s.stopErr
}

func (s *fakeSession) Close(context.Context) error {
	s.closed = true
	s.record("close")
	return nil
}

type fakeFactory struct {
	session  *fakeSession
	startErr error
	sawEnv   []string
}

func (f *fakeFactory) StartSession(_ context.Context, extraEnv []string) (BrowserSession, error) {
	f.sawEnv = extraEnv
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.session, nil
}

func (f *fakeFactory) ScrollStep() int { return 500 }

func newTestRecorder(t *testing.T, session *fakeSession) (*Recorder, *[]time.Duration) {
	t.Helper()
	rec := New(&fakeFactory{session: session}, Options{
		StagingDir: t.TempDir(),
		ActionWait: 2 * time.Second,
		PostRoll:   2 * time.Second,
	}, nil)
	var sleeps []time.Duration
	rec.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return rec, &sleeps
}

func demoTimeline() *timeline.Timeline {
	return &timeline.Timeline{
		JobID:           "job-1",
		ConceptID:       "gaming-rgb",
		DurationSeconds: 12,
		Events: []timeline.Event{
			{ID: "e1", Timestamp: 0, Action: timeline.ActionNav, Value: "https://example.com"},
			{ID: "e2", Timestamp: 2, Action: timeline.ActionClick, Selector: "#cta"},
			{ID: "e3", Timestamp: 4, Action: timeline.ActionType, Selector: "input[name=q]", Value: "hello"},
			{ID: "e4", Timestamp: 6, Action: timeline.ActionScroll, Value: "700"},
			{ID: "e5", Timestamp: 8, Action: timeline.ActionWait, Value: "9999"},
		},
	}
}

func TestRecordHappyPath(t *testing.T) {
	session := &fakeSession{stopPath: "/tmp/job-1-raw.webm"}
	rec, sleeps := newTestRecorder(t, session)

	path, err := rec.Record(context.Background(), demoTimeline(), nil)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if path != "/tmp/job-1-raw.webm" {
		t.Fatalf("got path %q", path)
	}
	if !session.closed {
		t.Fatal("session not released")
	}

	want := []string{
		"record_start",
		"navigate https://example.com",
		"move #cta", "click #cta",
		"move input[name=q]", "click input[name=q]", "type input[name=q] hello",
		`scroll "" 700`,
		"record_stop",
		"close",
	}
	assertCallsInOrder(t, session.calls, want)

	// The wait action holds for the fixed duration regardless of its value.
	found := false
	for _, d := range *sleeps {
		if d == 2*time.Second {
			found = true
		}
	}
	if !found {
		t.Fatalf("fixed wait not observed in sleeps: %v", *sleeps)
	}
}

func TestRecordPacesEventGaps(t *testing.T) {
	session := &fakeSession{stopPath: "/tmp/out.webm"}
	rec, sleeps := newTestRecorder(t, session)

	tl := &timeline.Timeline{
		JobID:           "job-2",
		DurationSeconds: 10,
		Events: []timeline.Event{
			{ID: "e1", Timestamp: 0, Action: timeline.ActionNav, Value: "https://example.com"},
			{ID: "e2", Timestamp: 3, Action: timeline.ActionClick, Selector: "#a"},
		},
	}
	if _, err := rec.Record(context.Background(), tl, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(*sleeps) == 0 || (*sleeps)[0] != 3*time.Second {
		t.Fatalf("expected 3s gap sleep first, got %v", *sleeps)
	}
}

func TestRecordClickFallsBackOnMotionFailure(t *testing.T) {
	session := &fakeSession{stopPath: "/tmp/out.webm", moveErr: errors.New("element occluded")}
	rec, _ := newTestRecorder(t, session)

	tl := &timeline.Timeline{
		JobID:           "job-3",
		DurationSeconds: 5,
		Events: []timeline.Event{
			{ID: "e1", Timestamp: 0, Action: timeline.ActionNav, Value: "https://example.com"},
			{ID: "e2", Timestamp: 1, Action: timeline.ActionClick, Selector: "#cta"},
		},
	}
	if _, err := rec.Record(context.Background(), tl, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	assertCallsInOrder(t, session.calls, []string{"move #cta", "click #cta"})
}

func TestRecordScrollVariants(t *testing.T) {
	session := &fakeSession{stopPath: "/tmp/out.webm"}
	rec, _ := newTestRecorder(t, session)

	tl := &timeline.Timeline{
		JobID:           "job-4",
		DurationSeconds: 10,
		Events: []timeline.Event{
			{ID: "e1", Timestamp: 0, Action: timeline.ActionNav, Value: "https://example.com"},
			{ID: "e2", Timestamp: 1, Action: timeline.ActionScroll, Selector: "#pricing"},
			{ID: "e3", Timestamp: 2, Action: timeline.ActionScroll, Value: "not-a-number"},
		},
	}
	if _, err := rec.Record(context.Background(), tl, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	assertCallsInOrder(t, session.calls, []string{`scroll "#pricing" 0`, `scroll "" 500`})
}

func TestRecordSkipsUnknownActionAndEmptySelectors(t *testing.T) {
	session := &fakeSession{stopPath: "/tmp/out.webm"}
	rec, _ := newTestRecorder(t, session)

	tl := &timeline.Timeline{
		JobID:           "job-5",
		DurationSeconds: 10,
		Events: []timeline.Event{
			{ID: "e1", Timestamp: 0, Action: timeline.ActionNav, Value: "https://example.com"},
			{ID: "e2", Timestamp: 1, Action: timeline.Action("teleport"), Description: "???"},
			{ID: "e3", Timestamp: 2, Action: timeline.ActionClick},
			{ID: "e4", Timestamp: 3, Action: timeline.ActionHover},
		},
	}
	if _, err := rec.Record(context.Background(), tl, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	for _, call := range session.calls {
		if call == "click " || call == "hover " || call == "move " {
			t.Fatalf("empty-selector action executed: %q", call)
		}
	}
}

func TestRecordZoomTargetBestEffort(t *testing.T) {
	session := &fakeSession{
		stopPath:   "/tmp/out.webm",
		scrollErrs: map[string]error{"#chart": errors.New("not found")},
	}
	rec, _ := newTestRecorder(t, session)

	tl := &timeline.Timeline{
		JobID:           "job-6",
		DurationSeconds: 5,
		Events: []timeline.Event{
			{ID: "e1", Timestamp: 0, Action: timeline.ActionNav, Value: "https://example.com"},
			{ID: "e2", Timestamp: 1, Action: timeline.ActionClick, Selector: "#cta", ZoomTarget: "#chart"},
		},
	}
	if _, err := rec.Record(context.Background(), tl, nil); err != nil {
		t.Fatalf("zoom target failure must not abort: %v", err)
	}
	assertCallsInOrder(t, session.calls, []string{`scroll "#chart" 0`, "click #cta"})
}

func TestRecordMidSequenceFailureDiscardsArtifact(t *testing.T) {
	staging := t.TempDir()
	partial := filepath.Join(staging, "partial.webm")
	if err := os.WriteFile(partial, []byte("partial"), 0o644); err != nil {
		t.Fatalf("write partial: %v", err)
	}

	session := &fakeSession{stopPath: partial, clickErr: errors.New("page crashed")}
	rec, _ := newTestRecorder(t, session)

	tl := &timeline.Timeline{
		JobID:           "job-7",
		DurationSeconds: 5,
		Events: []timeline.Event{
			{ID: "e1", Timestamp: 0, Action: timeline.ActionNav, Value: "https://example.com"},
			{ID: "e2", Timestamp: 1, Action: timeline.ActionClick, Selector: "#cta"},
			{ID: "e3", Timestamp: 2, Action: timeline.ActionClick, Selector: "#after"},
		},
	}
	_, err := rec.Record(context.Background(), tl, nil)
	if !errors.Is(err, services.ErrRecording) {
		t.Fatalf("expected ErrRecording, got %v", err)
	}
	if !session.closed {
		t.Fatal("session not released after failure")
	}
	if _, statErr := os.Stat(partial); !os.IsNotExist(statErr) {
		t.Fatal("partial artifact not discarded")
	}
	for _, call := range session.calls {
		if call == "click #after" {
			t.Fatal("remainder executed after failure")
		}
	}
}

func TestRecordSessionStartFailure(t *testing.T) {
	rec := New(&fakeFactory{startErr: errors.New("no browser")}, Options{StagingDir: t.TempDir()}, nil)
	_, err := rec.Record(context.Background(), demoTimeline(), nil)
	if !errors.Is(err, services.ErrRecording) {
		t.Fatalf("expected ErrRecording, got %v", err)
	}
}

func TestRecordEmptyArtifactPath(t *testing.T) {
	session := &fakeSession{stopPath: ""}
	rec, _ := newTestRecorder(t, session)
	_, err := rec.Record(context.Background(), demoTimeline(), nil)
	if !errors.Is(err, services.ErrRecording) {
		t.Fatalf("expected ErrRecording, got %v", err)
	}
}

// assertCallsInOrder checks that want appears as a subsequence of calls,
// matching on prefix for entries without arguments of interest.
func assertCallsInOrder(t *testing.T, calls, want []string) {
	t.Helper()
	i := 0
	for _, call := range calls {
		if i < len(want) && (call == want[i] || len(call) >= len(want[i]) && call[:len(want[i])] == want[i]) {
			i++
		}
	}
	if i != len(want) {
		t.Fatalf("calls missing %q\ncalls: %v", want[i], calls)
	}
}
