package remotion

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func fakeRenderer(t *testing.T, script string) *[]string {
	t.Helper()
	var captured []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append([]string{name}, args...)
		return exec.CommandContext(ctx, "sh", "-c", script)
	}
	t.Cleanup(func() { commandContext = original })
	return &captured
}

func TestRenderStreamsProgress(t *testing.T) {
	captured := fakeRenderer(t, `
printf '{"percent":10,"stage":"bundling","message":"bundling composition"}\n'
echo "renderer: warming up chromium"
printf '{"percent":100,"stage":"encoding","message":"done"}\n'
exit 0`)

	cli := NewCLI(Config{CompositionID: "DirectorAgent", FPS: 30, Width: 3840, Height: 2160})
	var updates []ProgressUpdate
	err := cli.Render(context.Background(), "/tmp/props.json", "/tmp/final.mp4", func(u ProgressUpdate) {
		updates = append(updates, u)
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 progress updates, got %d", len(updates))
	}
	if updates[0].Stage != "bundling" || updates[1].Percent != 100 {
		t.Fatalf("unexpected updates: %+v", updates)
	}

	joined := strings.Join(*captured, " ")
	for _, want := range []string{"--composition DirectorAgent", "--props /tmp/props.json", "--output /tmp/final.mp4", "--fps 30", "--size 3840x2160"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("command missing %q: %s", want, joined)
		}
	}
}

func TestRenderFailure(t *testing.T) {
	fakeRenderer(t, `printf '{"percent":5,"stage":"bundling","message":"start"}\n'; exit 3`)

	cli := NewCLI(Config{})
	if err := cli.Render(context.Background(), "/tmp/props.json", "/tmp/final.mp4", nil); err == nil {
		t.Fatal("expected error on nonzero exit")
	}
}

func TestRenderValidatesPaths(t *testing.T) {
	cli := NewCLI(Config{})
	if err := cli.Render(context.Background(), "", "/tmp/out.mp4", nil); err == nil {
		t.Fatal("expected error for missing props path")
	}
	if err := cli.Render(context.Background(), "/tmp/props.json", "", nil); err == nil {
		t.Fatal("expected error for missing output path")
	}
}
