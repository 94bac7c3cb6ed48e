package planner

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/BigBrown10/director-v2/internal/concepts"
	"github.com/BigBrown10/director-v2/internal/logging"
	"github.com/BigBrown10/director-v2/internal/services"
	"github.com/BigBrown10/director-v2/internal/services/llm"
	"github.com/BigBrown10/director-v2/internal/timeline"
)

// TextSignalPrefix marks an instruction signal carrying literal text rather
// than a narration audio reference.
const TextSignalPrefix = "text://"

// Generator produces structured JSON from prompts.
type Generator interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Configured() bool
}

// Transcriber turns narration audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// MusicFinder resolves mood keywords to a playable track URL. It degrades
// internally and never fails.
type MusicFinder interface {
	FindTrack(ctx context.Context, keywords []string) string
}

// Planner builds timelines from instruction signals.
type Planner struct {
	generator   Generator
	transcriber Transcriber
	music       MusicFinder
	logger      *slog.Logger
}

// New constructs a planner.
func New(generator Generator, transcriber Transcriber, music MusicFinder, logger *slog.Logger) *Planner {
	return &Planner{
		generator:   generator,
		transcriber: transcriber,
		music:       music,
		logger:      logging.NewComponentLogger(logger, "planner"),
	}
}

// CreatePlan resolves the instruction signal, generates the event timeline,
// attaches music, and returns a normalized plan honoring the timeline
// invariants.
func (p *Planner) CreatePlan(ctx context.Context, signal, jobID, targetURL string, concept concepts.Concept) (*timeline.Timeline, error) {
	signal = strings.TrimSpace(signal)

	var (
		instruction  string
		voiceoverURL string
		musicURL     string
	)

	if text, ok := strings.CutPrefix(signal, TextSignalPrefix); ok {
		instruction = strings.TrimSpace(text)
		musicURL = p.findMusic(ctx, concept)
	} else {
		// Narration audio: transcription and music search are independent,
		// run them concurrently and join both before continuing.
		voiceoverURL = signal
		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			text, err := p.transcriber.Transcribe(groupCtx, signal)
			if err != nil {
				return services.Wrap(services.ErrPlanning, "plan", "transcribe narration", signal, err)
			}
			instruction = text
			return nil
		})
		group.Go(func() error {
			musicURL = p.findMusic(groupCtx, concept)
			return nil
		})
		if err := group.Wait(); err != nil {
			return nil, err
		}
	}

	if instruction == "" {
		return nil, services.Wrap(services.ErrPlanning, "plan", "resolve instruction", "empty instruction signal", nil)
	}

	events, duration := p.generate(ctx, instruction, concept)

	tl := &timeline.Timeline{
		JobID:           jobID,
		ConceptID:       concept.ID,
		MusicURL:        musicURL,
		VoiceoverURL:    voiceoverURL,
		DurationSeconds: duration,
		Events:          events,
	}
	tl.Normalize(targetURL)
	if err := tl.Validate(); err != nil {
		return nil, services.Wrap(services.ErrPlanning, "plan", "validate timeline", "", err)
	}

	p.logger.Info("plan created",
		logging.String(logging.FieldJobID, jobID),
		logging.String("concept", concept.ID),
		logging.Int("events", len(tl.Events)),
		logging.Float64("duration_seconds", tl.DurationSeconds))
	return tl, nil
}

func (p *Planner) findMusic(ctx context.Context, concept concepts.Concept) string {
	if p.music == nil {
		return ""
	}
	return p.music.FindTrack(ctx, concept.MusicKeywords)
}

type planPayload struct {
	Events          []timeline.Event `json:"events"`
	DurationSeconds float64          `json:"durationSeconds"`
}

// generate asks the model for a plan, falling back to the deterministic plan
// whenever generation is unavailable or produces nothing usable.
func (p *Planner) generate(ctx context.Context, instruction string, concept concepts.Concept) ([]timeline.Event, float64) {
	if p.generator == nil || !p.generator.Configured() {
		p.logger.Info("generator not configured, using fallback plan",
			logging.String("concept", concept.ID))
		return fallbackPlan(concept)
	}

	content, err := p.generator.CompleteJSON(ctx, systemPrompt(concept), userPrompt(instruction))
	if err != nil {
		p.logger.Warn("plan generation failed, using fallback plan", logging.Error(err))
		return fallbackPlan(concept)
	}

	var payload planPayload
	if err := llm.DecodeJSON(content, &payload); err != nil {
		p.logger.Warn("plan payload malformed, using fallback plan", logging.Error(err))
		return fallbackPlan(concept)
	}
	if len(payload.Events) == 0 {
		p.logger.Warn("plan payload has no events, using fallback plan")
		return fallbackPlan(concept)
	}
	return payload.Events, payload.DurationSeconds
}
