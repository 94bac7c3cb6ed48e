package compositor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BigBrown10/director-v2/internal/services"
	"github.com/BigBrown10/director-v2/internal/services/remotion"
)

type fakeRenderer struct {
	err         error
	writeOutput bool
	propsPath   string
	outputPath  string
}

func (f *fakeRenderer) Render(_ context.Context, propsPath, outputPath string, progress func(remotion.ProgressUpdate)) error {
	f.propsPath = propsPath
	f.outputPath = outputPath
	if progress != nil {
		progress(remotion.ProgressUpdate{Percent: 50, Stage: "encoding"})
	}
	if f.err != nil {
		return f.err
	}
	if f.writeOutput {
		return os.WriteFile(outputPath, []byte("mp4"), 0o644)
	}
	return nil
}

func writeRawRecording(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "job-1-raw.webm")
	if err := os.WriteFile(path, []byte("webm"), 0o644); err != nil {
		t.Fatalf("write raw: %v", err)
	}
	return path
}

func TestRenderWritesPropsAndReturnsOutput(t *testing.T) {
	staging := t.TempDir()
	output := t.TempDir()
	raw := writeRawRecording(t, staging)

	renderer := &fakeRenderer{writeOutput: true}
	comp := New(renderer, Options{StagingDir: staging, OutputDir: output}, nil)

	var sawProgress bool
	tl := demoTimeline()
	final, err := comp.Render(context.Background(), tl, raw, demoConcept(), func(remotion.ProgressUpdate) { sawProgress = true })
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if final != filepath.Join(output, "final-job-1.mp4") {
		t.Fatalf("final path %q", final)
	}
	if !sawProgress {
		t.Fatal("progress callback not forwarded")
	}

	data, err := os.ReadFile(renderer.propsPath)
	if err != nil {
		t.Fatalf("read props: %v", err)
	}
	var doc struct {
		VideoSource string `json:"videoSource"`
		MusicSource string `json:"musicSource"`
		Events      []any  `json:"events"`
		Theme       struct {
			ZoomAggression int    `json:"zoom_aggression"`
			PrimaryColor   string `json:"primary_color"`
		} `json:"theme"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode props: %v", err)
	}
	if doc.VideoSource != raw || doc.MusicSource != tl.MusicURL {
		t.Fatalf("props sources wrong: %+v", doc)
	}
	if len(doc.Events) != len(tl.Events) {
		t.Fatalf("props carry %d events, want %d", len(doc.Events), len(tl.Events))
	}
	if doc.Theme.ZoomAggression != 3 || doc.Theme.PrimaryColor != "#00f3ff" {
		t.Fatalf("props theme wrong: %+v", doc.Theme)
	}
}

func TestRenderMissingRawRecording(t *testing.T) {
	comp := New(&fakeRenderer{}, Options{StagingDir: t.TempDir(), OutputDir: t.TempDir()}, nil)
	_, err := comp.Render(context.Background(), demoTimeline(), "/nonexistent/raw.webm", demoConcept(), nil)
	if !errors.Is(err, services.ErrRendering) {
		t.Fatalf("expected ErrRendering, got %v", err)
	}
}

func TestRenderEngineFailure(t *testing.T) {
	staging := t.TempDir()
	raw := writeRawRecording(t, staging)
	comp := New(&fakeRenderer{err: errors.New("chromium crashed")}, Options{StagingDir: staging, OutputDir: t.TempDir()}, nil)
	_, err := comp.Render(context.Background(), demoTimeline(), raw, demoConcept(), nil)
	if !errors.Is(err, services.ErrRendering) {
		t.Fatalf("expected ErrRendering, got %v", err)
	}
}

func TestRenderMissingOutputFails(t *testing.T) {
	staging := t.TempDir()
	raw := writeRawRecording(t, staging)
	// Renderer claims success but never writes the file.
	comp := New(&fakeRenderer{writeOutput: false}, Options{StagingDir: staging, OutputDir: t.TempDir()}, nil)
	_, err := comp.Render(context.Background(), demoTimeline(), raw, demoConcept(), nil)
	if !errors.Is(err, services.ErrRendering) {
		t.Fatalf("expected ErrRendering, got %v", err)
	}
}
