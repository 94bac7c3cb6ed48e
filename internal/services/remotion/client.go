// Package remotion wraps the external composition renderer binary. The
// renderer receives a props file describing the composition and reports
// progress as line-delimited JSON on stdout.
package remotion

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// ProgressUpdate captures renderer progress events.
type ProgressUpdate struct {
	Percent float64
	Stage   string
	Message string
}

// Config captures the runtime settings for rendering.
type Config struct {
	Binary        string
	CompositionID string
	FPS           int
	Width         int
	Height        int
}

// Renderer defines composition rendering behaviour.
type Renderer interface {
	Render(ctx context.Context, propsPath, outputPath string, progress func(ProgressUpdate)) error
}

// CLI wraps the renderer command line.
type CLI struct {
	cfg Config
}

// NewCLI constructs a CLI renderer.
func NewCLI(cfg Config) *CLI {
	if cfg.Binary == "" {
		cfg.Binary = "director-render"
	}
	if cfg.CompositionID == "" {
		cfg.CompositionID = "DirectorAgent"
	}
	return &CLI{cfg: cfg}
}

// Binary returns the renderer executable name for preflight checks.
func (c *CLI) Binary() string {
	return c.cfg.Binary
}

// Render launches the renderer and blocks until the composition is written.
func (c *CLI) Render(ctx context.Context, propsPath, outputPath string, progress func(ProgressUpdate)) error {
	if strings.TrimSpace(propsPath) == "" {
		return errors.New("props path required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}

	args := []string{
		"render",
		"--composition", c.cfg.CompositionID,
		"--props", propsPath,
		"--output", outputPath,
		"--progress-json",
	}
	if c.cfg.FPS > 0 {
		args = append(args, "--fps", strconv.Itoa(c.cfg.FPS))
	}
	if c.cfg.Width > 0 && c.cfg.Height > 0 {
		args = append(args, "--size", fmt.Sprintf("%dx%d", c.cfg.Width, c.cfg.Height))
	}

	cmd := commandContext(ctx, c.cfg.Binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start renderer: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		var payload struct {
			Percent float64 `json:"percent"`
			Stage   string  `json:"stage"`
			Message string  `json:"message"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &payload); err != nil {
			continue
		}
		if progress != nil {
			progress(ProgressUpdate{Percent: payload.Percent, Stage: payload.Stage, Message: payload.Message})
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read renderer output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}

var _ Renderer = (*CLI)(nil)
