package timeline

import (
	"fmt"
	"sort"
	"strings"
)

// Normalize repairs a freshly generated timeline in place so the downstream
// stages can rely on its invariants:
//
//  1. events are stably sorted by non-decreasing timestamp,
//  2. the first event is a nav to targetURL (a synthetic one is prepended
//     when missing; the generator's placeholder value is overwritten),
//  3. every timestamp lies within [0, DurationSeconds] — negatives clamp to
//     zero and an under-reported duration is raised to the last timestamp.
//
// Out-of-policy gaps between events are accepted as-is; pacing guidance is
// advisory to the generator, not re-validated here.
func (t *Timeline) Normalize(targetURL string) {
	for i := range t.Events {
		if t.Events[i].Timestamp < 0 {
			t.Events[i].Timestamp = 0
		}
	}

	sort.SliceStable(t.Events, func(i, j int) bool {
		return t.Events[i].Timestamp < t.Events[j].Timestamp
	})

	t.ensureLeadNav(targetURL)

	if end := t.End(); t.DurationSeconds < end {
		t.DurationSeconds = end
	}
}

func (t *Timeline) ensureLeadNav(targetURL string) {
	if len(t.Events) == 0 || t.Events[0].Action != ActionNav {
		lead := Event{
			ID:          "evt-init",
			Timestamp:   0,
			Action:      ActionNav,
			Value:       targetURL,
			Description: fmt.Sprintf("Navigating to %s", targetURL),
		}
		t.Events = append([]Event{lead}, t.Events...)
		return
	}
	first := &t.Events[0]
	if strings.TrimSpace(first.Value) == "" || first.Value == PlaceholderTargetURL {
		first.Value = targetURL
	}
}

// Validate reports the first invariant violation, if any. The planner always
// normalizes before returning, so a non-nil result indicates a caller bug.
func (t *Timeline) Validate() error {
	if !t.Sorted() {
		return fmt.Errorf("timeline %s: events out of order", t.JobID)
	}
	if len(t.Events) == 0 {
		return fmt.Errorf("timeline %s: no events", t.JobID)
	}
	if t.Events[0].Action != ActionNav {
		return fmt.Errorf("timeline %s: first event is %q, want nav", t.JobID, t.Events[0].Action)
	}
	if t.Events[0].Value == "" || t.Events[0].Value == PlaceholderTargetURL {
		return fmt.Errorf("timeline %s: lead nav has unresolved target", t.JobID)
	}
	for _, evt := range t.Events {
		if evt.Timestamp < 0 || evt.Timestamp > t.DurationSeconds {
			return fmt.Errorf("timeline %s: event %s at %.2fs outside [0, %.2fs]", t.JobID, evt.ID, evt.Timestamp, t.DurationSeconds)
		}
	}
	return nil
}
