package planner

import (
	"fmt"
	"strings"

	"github.com/BigBrown10/director-v2/internal/concepts"
)

func pacingGuidance(pacing concepts.Pacing) string {
	switch pacing {
	case concepts.PacingFast:
		return "Fast pacing: keep 1-2 seconds between events."
	case concepts.PacingSlow:
		return "Slow pacing: keep 3-5 seconds between events, let moments breathe."
	default:
		return "Medium pacing: keep 2-3 seconds between events."
	}
}

func systemPrompt(concept concepts.Concept) string {
	mood := "neutral"
	if len(concept.Tags) > 0 {
		mood = strings.Join(concept.Tags, ", ")
	}

	var b strings.Builder
	b.WriteString("You are a video director. Convert the user's intent into a JSON timeline of browser interactions.\n\n")
	fmt.Fprintf(&b, "Creative concept: %s\n", concept.Name)
	if concept.Description != "" {
		fmt.Fprintf(&b, "Concept description: %s\n", concept.Description)
	}
	fmt.Fprintf(&b, "Mood: %s\n", mood)
	fmt.Fprintf(&b, "Zoom aggression (1-5): %d\n", concept.ZoomAggression)
	b.WriteString(pacingGuidance(concept.Pacing))
	b.WriteString("\n\n")
	b.WriteString("Supported actions: nav, click, type, hover, scroll, wait.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("1. The first event must be a nav action. Use the value TARGET_URL_PLACEHOLDER if the target URL is unknown.\n")
	b.WriteString("2. 'selector' is a precise CSS selector.\n")
	b.WriteString("3. 'timestamp' is seconds from the start, non-decreasing.\n")
	b.WriteString("4. Set 'glowEffect' true on the moments worth highlighting.\n")
	b.WriteString("5. Set 'zoomTarget' to a CSS selector when the camera should push in.\n\n")
	b.WriteString(`Respond with STRICT JSON: {"events":[{"id","timestamp","action","selector","value","description","zoomTarget","glowEffect"}],"durationSeconds":<number>}. Return ONLY JSON, no preamble.`)
	return b.String()
}

func userPrompt(instruction string) string {
	return fmt.Sprintf("User instructions: %q", instruction)
}
