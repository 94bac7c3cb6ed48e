// Package recorder replays a timeline inside a live browser session and
// captures the raw screen recording.
package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BigBrown10/director-v2/internal/logging"
	"github.com/BigBrown10/director-v2/internal/services"
	"github.com/BigBrown10/director-v2/internal/timeline"
)

// BrowserSession is the slice of agent behaviour the recorder drives.
type BrowserSession interface {
	Navigate(ctx context.Context, url string) error
	MoveTo(ctx context.Context, selector string) error
	Click(ctx context.Context, selector string) error
	Type(ctx context.Context, selector, text string) error
	Hover(ctx context.Context, selector string) error
	Scroll(ctx context.Context, selector string, pixels int) error
	StartRecording(ctx context.Context, path string) error
	StopRecording(ctx context.Context) (string, error)
	Close(ctx context.Context) error
}

// SessionFactory opens browser sessions. extraEnv carries per-job secrets
// (login credentials) into the agent process environment.
type SessionFactory interface {
	StartSession(ctx context.Context, extraEnv []string) (BrowserSession, error)
	ScrollStep() int
}

// Options tune recorder timing.
type Options struct {
	StagingDir string
	ActionWait time.Duration
	PostRoll   time.Duration
}

// Recorder executes timelines against browser sessions.
type Recorder struct {
	factory SessionFactory
	opts    Options
	logger  *slog.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// New constructs a recorder.
func New(factory SessionFactory, opts Options, logger *slog.Logger) *Recorder {
	if opts.ActionWait <= 0 {
		opts.ActionWait = 2 * time.Second
	}
	if opts.PostRoll < 0 {
		opts.PostRoll = 0
	}
	return &Recorder{
		factory: factory,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "recorder"),
		sleep:   sleepCtx,
	}
}

// Record replays the timeline sequentially and returns the path of the raw
// recording. The session is released on every exit path; a failure
// mid-sequence aborts the remainder and discards any partial artifact.
func (r *Recorder) Record(ctx context.Context, tl *timeline.Timeline, extraEnv []string) (string, error) {
	session, err := r.factory.StartSession(ctx, extraEnv)
	if err != nil {
		return "", services.Wrap(services.ErrRecording, "record", "start session", "", err)
	}
	defer session.Close(context.WithoutCancel(ctx))

	target := filepath.Join(r.opts.StagingDir, tl.JobID+"-raw.webm")
	if err := session.StartRecording(ctx, target); err != nil {
		return "", services.Wrap(services.ErrRecording, "record", "start recording", target, err)
	}

	if err := r.executeAll(ctx, session, tl); err != nil {
		r.discardPartial(ctx, session, target)
		return "", err
	}

	if err := r.sleep(ctx, r.opts.PostRoll); err != nil {
		r.discardPartial(ctx, session, target)
		return "", services.Wrap(services.ErrRecording, "record", "trailing hold", "", err)
	}

	path, err := session.StopRecording(ctx)
	if err != nil {
		return "", services.Wrap(services.ErrRecording, "record", "stop recording", "", err)
	}
	if strings.TrimSpace(path) == "" {
		return "", services.Wrap(services.ErrRecording, "record", "stop recording", "no artifact produced", nil)
	}

	r.logger.Info("recording captured",
		logging.String(logging.FieldJobID, tl.JobID),
		logging.String("path", path),
		logging.Int("events", len(tl.Events)))
	return path, nil
}

func (r *Recorder) executeAll(ctx context.Context, session BrowserSession, tl *timeline.Timeline) error {
	elapsed := 0.0
	for _, evt := range tl.Events {
		if gap := evt.Timestamp - elapsed; gap > 0 {
			if err := r.sleep(ctx, time.Duration(gap*float64(time.Second))); err != nil {
				return services.Wrap(services.ErrRecording, "record", "pace events", evt.ID, err)
			}
			elapsed = evt.Timestamp
		}
		if err := r.execute(ctx, session, evt); err != nil {
			return services.Wrap(services.ErrRecording, "record", "execute event", evt.ID, err)
		}
	}
	return nil
}

func (r *Recorder) execute(ctx context.Context, session BrowserSession, evt timeline.Event) error {
	if evt.ZoomTarget != "" {
		// Best effort: the camera focus target should be in view, but a
		// missing element must not kill the take.
		if err := session.Scroll(ctx, evt.ZoomTarget, 0); err != nil {
			r.logger.Debug("zoom target not scrollable",
				logging.String("event", evt.ID),
				logging.String("selector", evt.ZoomTarget),
				logging.Error(err))
		}
	}

	switch evt.Action {
	case timeline.ActionNav:
		if evt.Value == "" {
			return nil
		}
		return session.Navigate(ctx, evt.Value)

	case timeline.ActionClick:
		if evt.Selector == "" {
			return nil
		}
		return r.clickWithFallback(ctx, session, evt)

	case timeline.ActionType:
		if evt.Selector == "" {
			return nil
		}
		if err := r.clickWithFallback(ctx, session, evt); err != nil {
			return err
		}
		return session.Type(ctx, evt.Selector, evt.Value)

	case timeline.ActionHover:
		if evt.Selector == "" {
			return nil
		}
		if err := session.MoveTo(ctx, evt.Selector); err != nil {
			r.logger.Debug("cursor motion failed, hovering directly",
				logging.String("event", evt.ID),
				logging.Error(err))
			return session.Hover(ctx, evt.Selector)
		}
		return nil

	case timeline.ActionScroll:
		if evt.Selector != "" {
			return session.Scroll(ctx, evt.Selector, 0)
		}
		return session.Scroll(ctx, "", r.scrollPixels(evt.Value))

	case timeline.ActionWait:
		// Value is reserved; the hold length is fixed.
		return r.sleep(ctx, r.opts.ActionWait)

	default:
		r.logger.Warn("skipping unknown action",
			logging.String("event", evt.ID),
			logging.String("action", string(evt.Action)))
		return nil
	}
}

// clickWithFallback tries a natural cursor approach and falls back to a
// direct click when the motion fails.
func (r *Recorder) clickWithFallback(ctx context.Context, session BrowserSession, evt timeline.Event) error {
	if err := session.MoveTo(ctx, evt.Selector); err != nil {
		r.logger.Debug("cursor motion failed, clicking directly",
			logging.String("event", evt.ID),
			logging.Error(err))
	}
	return session.Click(ctx, evt.Selector)
}

func (r *Recorder) scrollPixels(value string) int {
	if pixels, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && pixels > 0 {
		return pixels
	}
	return r.factory.ScrollStep()
}

// discardPartial finalizes and removes whatever the session captured so a
// failed take never leaks into later phases.
func (r *Recorder) discardPartial(ctx context.Context, session BrowserSession, fallbackPath string) {
	cleanupCtx := context.WithoutCancel(ctx)
	path, err := session.StopRecording(cleanupCtx)
	if err != nil || path == "" {
		path = fallbackPath
	}
	if removeErr := os.Remove(path); removeErr != nil && !os.IsNotExist(removeErr) {
		r.logger.Warn("could not remove partial recording",
			logging.String("path", path),
			logging.Error(removeErr))
		return
	}
	r.logger.Debug("partial recording discarded", logging.String("path", path))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("wait interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
