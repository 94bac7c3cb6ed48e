package timeline

import (
	"sort"
	"strings"
)

// Action identifies one kind of scheduled interaction.
type Action string

const (
	ActionNav    Action = "nav"
	ActionClick  Action = "click"
	ActionType   Action = "type"
	ActionHover  Action = "hover"
	ActionScroll Action = "scroll"
	ActionWait   Action = "wait"
)

var knownActions = map[Action]struct{}{
	ActionNav:    {},
	ActionClick:  {},
	ActionType:   {},
	ActionHover:  {},
	ActionScroll: {},
	ActionWait:   {},
}

// Known reports whether the action is one the pipeline understands.
// Unknown actions are logged and skipped by the recorder, never fatal.
func (a Action) Known() bool {
	_, ok := knownActions[Action(strings.ToLower(strings.TrimSpace(string(a))))]
	return ok
}

// PlaceholderTargetURL is the sentinel the generative service emits when it
// does not know the job's real target. Normalize rewrites it.
const PlaceholderTargetURL = "TARGET_URL_PLACEHOLDER"

// Event is one scheduled action. JSON tags are the generative-service wire
// names; the planner decodes model output directly into this type.
type Event struct {
	ID          string  `json:"id"`
	Timestamp   float64 `json:"timestamp"`
	Action      Action  `json:"action"`
	Selector    string  `json:"selector,omitempty"`
	Value       string  `json:"value,omitempty"`
	Description string  `json:"description"`
	ZoomTarget  string  `json:"zoomTarget,omitempty"`
	GlowEffect  bool    `json:"glowEffect,omitempty"`
}

// Timeline is the full plan for one job. Produced once by the planner and
// immutable afterwards.
type Timeline struct {
	JobID           string  `json:"jobId"`
	ConceptID       string  `json:"conceptId"`
	MusicURL        string  `json:"musicUrl"`
	VoiceoverURL    string  `json:"voiceoverUrl,omitempty"`
	DurationSeconds float64 `json:"durationSeconds"`
	Events          []Event `json:"events"`
}

// Sorted reports whether events are ordered by non-decreasing timestamp.
func (t *Timeline) Sorted() bool {
	return sort.SliceIsSorted(t.Events, func(i, j int) bool {
		return t.Events[i].Timestamp < t.Events[j].Timestamp
	})
}

// End returns the timestamp of the last event, or zero when empty.
func (t *Timeline) End() float64 {
	if len(t.Events) == 0 {
		return 0
	}
	return t.Events[len(t.Events)-1].Timestamp
}
