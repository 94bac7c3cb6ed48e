// Package browseragent drives the external browser automation runner. The
// runner is a separate binary owning the actual browser; this package speaks
// its line-delimited JSON protocol: one command object per stdin line, one
// matching response object per stdout line.
package browseragent

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/BigBrown10/director-v2/internal/logging"
)

var commandContext = exec.CommandContext

// Config captures the runtime settings for browser sessions.
type Config struct {
	Binary         string
	Headless       bool
	ViewportWidth  int
	ViewportHeight int
	TypingDelayMS  int
	ScrollStepPX   int
}

// Driver launches browser agent processes.
type Driver struct {
	cfg    Config
	logger *slog.Logger
}

// New constructs a driver.
func New(cfg Config, logger *slog.Logger) *Driver {
	if cfg.Binary == "" {
		cfg.Binary = "director-agent"
	}
	return &Driver{cfg: cfg, logger: logging.NewComponentLogger(logger, "browser-agent")}
}

// Binary returns the agent executable name for preflight checks.
func (d *Driver) Binary() string {
	return d.cfg.Binary
}

// ScrollStep returns the configured fixed scroll distance in pixels.
func (d *Driver) ScrollStep() int {
	if d.cfg.ScrollStepPX <= 0 {
		return 500
	}
	return d.cfg.ScrollStepPX
}

// StartSession launches one agent process with the configured viewport and
// returns a live session. The caller must Close it.
func (d *Driver) StartSession(ctx context.Context) (*Session, error) {
	return d.StartSessionEnv(ctx, nil)
}

// StartSessionEnv launches an agent process with extra environment entries,
// used to hand login credentials to the agent without putting them on the
// command line.
func (d *Driver) StartSessionEnv(ctx context.Context, extraEnv []string) (*Session, error) {
	args := []string{
		"--viewport", fmt.Sprintf("%dx%d", d.cfg.ViewportWidth, d.cfg.ViewportHeight),
		"--typing-delay-ms", strconv.Itoa(d.cfg.TypingDelayMS),
	}
	if d.cfg.Headless {
		args = append(args, "--headless")
	}

	cmd := commandContext(ctx, d.cfg.Binary, args...) //nolint:gosec
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start browser agent: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Session{
		cmd:     cmd,
		stdin:   stdin,
		scanner: scanner,
		logger:  d.logger,
	}, nil
}

// Session is one live agent process.
type Session struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	scanner *bufio.Scanner
	logger  *slog.Logger
	seq     int
	closed  bool
}

type command struct {
	ID       string `json:"id"`
	Cmd      string `json:"cmd"`
	URL      string `json:"url,omitempty"`
	Selector string `json:"selector,omitempty"`
	Text     string `json:"text,omitempty"`
	Pixels   int    `json:"pixels,omitempty"`
	Path     string `json:"path,omitempty"`
}

type response struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Path  string `json:"path"`
	Event string `json:"event"`
	Text  string `json:"text"`
}

// Navigate loads a URL and waits for the page to settle.
func (s *Session) Navigate(ctx context.Context, url string) error {
	_, err := s.roundTrip(ctx, command{Cmd: "navigate", URL: url})
	return err
}

// MoveTo moves the cursor to an element along a human-like path.
func (s *Session) MoveTo(ctx context.Context, selector string) error {
	_, err := s.roundTrip(ctx, command{Cmd: "move", Selector: selector})
	return err
}

// Click performs a direct click on the element.
func (s *Session) Click(ctx context.Context, selector string) error {
	_, err := s.roundTrip(ctx, command{Cmd: "click", Selector: selector})
	return err
}

// Type enters text into an element, one delayed keystroke at a time.
func (s *Session) Type(ctx context.Context, selector, text string) error {
	_, err := s.roundTrip(ctx, command{Cmd: "type", Selector: selector, Text: text})
	return err
}

// Hover moves the cursor over an element without clicking.
func (s *Session) Hover(ctx context.Context, selector string) error {
	_, err := s.roundTrip(ctx, command{Cmd: "hover", Selector: selector})
	return err
}

// Scroll scrolls the page. With a selector it scrolls that element into
// view; with an empty selector it scrolls down by the given pixel count.
func (s *Session) Scroll(ctx context.Context, selector string, pixels int) error {
	_, err := s.roundTrip(ctx, command{Cmd: "scroll", Selector: selector, Pixels: pixels})
	return err
}

// StartRecording begins capturing video to path.
func (s *Session) StartRecording(ctx context.Context, path string) error {
	_, err := s.roundTrip(ctx, command{Cmd: "record_start", Path: path})
	return err
}

// StopRecording finalizes the capture and returns the recording path.
func (s *Session) StopRecording(ctx context.Context) (string, error) {
	resp, err := s.roundTrip(ctx, command{Cmd: "record_stop"})
	if err != nil {
		return "", err
	}
	if resp.Path == "" {
		return "", errors.New("browser agent: record_stop returned no path")
	}
	return resp.Path, nil
}

// Close shuts down the agent process. Safe to call more than once.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	// A close command lets the agent shut the browser down cleanly; ignore
	// protocol errors since the process may already be gone.
	_, _ = s.exchange(ctx, command{Cmd: "close"}, true)
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("browser agent exited: %w", err)
	}
	return nil
}

func (s *Session) roundTrip(ctx context.Context, cmd command) (response, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return response{}, errors.New("browser agent: session closed")
	}
	s.mu.Unlock()
	return s.exchange(ctx, cmd, false)
}

// exchange writes one command line and reads frames until its matching
// response arrives. It relies on the recorder's strictly sequential use of
// the session rather than on the mutex, which only guards the closed flag.
func (s *Session) exchange(ctx context.Context, cmd command, closing bool) (response, error) {
	if err := ctx.Err(); err != nil {
		return response{}, err
	}

	s.seq++
	cmd.ID = strconv.Itoa(s.seq)
	encoded, err := json.Marshal(cmd)
	if err != nil {
		return response{}, fmt.Errorf("browser agent: encode command: %w", err)
	}
	if _, err := s.stdin.Write(append(encoded, '\n')); err != nil {
		return response{}, fmt.Errorf("browser agent: write command: %w", err)
	}

	for s.scanner.Scan() {
		var resp response
		if err := json.Unmarshal(s.scanner.Bytes(), &resp); err != nil {
			// The agent shares stdout with its own diagnostics; skip
			// anything that is not protocol JSON.
			continue
		}
		if resp.Event != "" {
			s.logger.Debug("agent event",
				logging.String("event", resp.Event),
				logging.String("text", resp.Text))
			continue
		}
		if resp.ID != cmd.ID {
			continue
		}
		if !resp.OK {
			return resp, fmt.Errorf("browser agent: %s failed: %s", cmd.Cmd, resp.Error)
		}
		return resp, nil
	}
	if err := s.scanner.Err(); err != nil {
		return response{}, fmt.Errorf("browser agent: read response: %w", err)
	}
	if closing {
		return response{}, nil
	}
	return response{}, errors.New("browser agent: process closed its output")
}
