// Package compositor turns a raw screen recording into the final styled
// video. The per-frame overlay math is pure and lives in DeriveFrameState;
// pixel work is delegated to the external render engine.
package compositor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BigBrown10/director-v2/internal/concepts"
	"github.com/BigBrown10/director-v2/internal/logging"
	"github.com/BigBrown10/director-v2/internal/services"
	"github.com/BigBrown10/director-v2/internal/services/remotion"
	"github.com/BigBrown10/director-v2/internal/timeline"
)

// Options locate the working directories.
type Options struct {
	StagingDir string
	OutputDir  string
}

// Compositor renders final videos.
type Compositor struct {
	renderer remotion.Renderer
	opts     Options
	logger   *slog.Logger
}

// New constructs a compositor.
func New(renderer remotion.Renderer, opts Options, logger *slog.Logger) *Compositor {
	return &Compositor{
		renderer: renderer,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "compositor"),
	}
}

// props is the input document handed to the render engine. Field names match
// the composition's expected schema.
type props struct {
	VideoSource string           `json:"videoSource"`
	MusicSource string           `json:"musicSource"`
	Events      []timeline.Event `json:"events"`
	Theme       themeProps       `json:"theme"`
}

type themeProps struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Tags           []string `json:"tags"`
	ZoomAggression int      `json:"zoom_aggression"`
	PrimaryColor   string   `json:"primary_color"`
	AccentColor    string   `json:"accent_color"`
	FontFamily     string   `json:"font_family"`
}

// Render composes the final video and returns its path.
func (c *Compositor) Render(ctx context.Context, tl *timeline.Timeline, rawMediaPath string, concept concepts.Concept, progress func(remotion.ProgressUpdate)) (string, error) {
	if _, err := os.Stat(rawMediaPath); err != nil {
		return "", services.Wrap(services.ErrRendering, "render", "locate raw recording", rawMediaPath, err)
	}

	propsPath := filepath.Join(c.opts.StagingDir, tl.JobID+"-props.json")
	if err := c.writeProps(propsPath, tl, rawMediaPath, concept); err != nil {
		return "", services.Wrap(services.ErrRendering, "render", "write props", propsPath, err)
	}

	if err := os.MkdirAll(c.opts.OutputDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrRendering, "render", "ensure output directory", c.opts.OutputDir, err)
	}
	outputPath := filepath.Join(c.opts.OutputDir, "final-"+tl.JobID+".mp4")

	if err := c.renderer.Render(ctx, propsPath, outputPath, progress); err != nil {
		return "", services.Wrap(services.ErrRendering, "render", "compose video", "", err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		return "", services.Wrap(services.ErrRendering, "render", "verify output", outputPath, err)
	}

	c.logger.Info("final video rendered",
		logging.String(logging.FieldJobID, tl.JobID),
		logging.String("path", outputPath))
	return outputPath, nil
}

func (c *Compositor) writeProps(path string, tl *timeline.Timeline, rawMediaPath string, concept concepts.Concept) error {
	document := props{
		VideoSource: rawMediaPath,
		MusicSource: tl.MusicURL,
		Events:      tl.Events,
		Theme: themeProps{
			ID:             concept.ID,
			Name:           concept.Name,
			Tags:           concept.Tags,
			ZoomAggression: concept.ZoomAggression,
			PrimaryColor:   concept.PrimaryColor,
			AccentColor:    concept.AccentColor,
			FontFamily:     concept.FontFamily,
		},
	}
	encoded, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("encode props: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure staging directory: %w", err)
	}
	return os.WriteFile(path, encoded, 0o644)
}
