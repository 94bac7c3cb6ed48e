package planner

import (
	"github.com/BigBrown10/director-v2/internal/concepts"
	"github.com/BigBrown10/director-v2/internal/timeline"
)

// fallbackPlan is the deterministic plan used when generation is unavailable.
// Only pacing affects it: fast concepts get compressed gaps.
func fallbackPlan(concept concepts.Concept) ([]timeline.Event, float64) {
	offsets := []float64{0, 2, 5, 8}
	duration := 15.0
	if concept.Pacing == concepts.PacingFast {
		offsets = []float64{0, 1, 3, 5}
		duration = 10.0
	}

	events := []timeline.Event{
		{
			ID:          "evt-1",
			Timestamp:   offsets[0],
			Action:      timeline.ActionNav,
			Value:       timeline.PlaceholderTargetURL,
			Description: "Navigating to target application",
		},
		{
			ID:          "evt-2",
			Timestamp:   offsets[1],
			Action:      timeline.ActionWait,
			Value:       "3000",
			Description: "Observing page content",
			GlowEffect:  true,
		},
		{
			ID:          "evt-3",
			Timestamp:   offsets[2],
			Action:      timeline.ActionScroll,
			Value:       "500",
			Description: "Scanning for opportunities",
			GlowEffect:  true,
		},
		{
			ID:          "evt-4",
			Timestamp:   offsets[3],
			Action:      timeline.ActionWait,
			Value:       "2000",
			Description: "Analyzing data",
			GlowEffect:  true,
		},
	}
	return events, duration
}
