package compositor

import (
	"math"
	"testing"

	"github.com/BigBrown10/director-v2/internal/concepts"
	"github.com/BigBrown10/director-v2/internal/timeline"
)

const fps = 30

func demoConcept() concepts.Concept {
	return concepts.Concept{
		ID:             "demo",
		Name:           "Demo",
		Tags:           []string{"bold"},
		Pacing:         concepts.PacingMedium,
		ZoomAggression: 3,
		PrimaryColor:   "#00f3ff",
		AccentColor:    "#ff00ff",
	}
}

func demoTimeline() *timeline.Timeline {
	return &timeline.Timeline{
		JobID:           "job-1",
		ConceptID:       "demo",
		MusicURL:        "https://cdn.example.com/track.mp3",
		DurationSeconds: 12,
		Events: []timeline.Event{
			{ID: "e1", Timestamp: 0, Action: timeline.ActionNav, Value: "https://example.com", Description: "Opening the site"},
			{ID: "e2", Timestamp: 4, Action: timeline.ActionClick, Selector: "#cta", Description: "Clicking the button", ZoomTarget: "#cta"},
			{ID: "e3", Timestamp: 8, Action: timeline.ActionWait, Description: "Letting it settle", GlowEffect: true},
		},
	}
}

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestActiveEventSelection(t *testing.T) {
	tl := demoTimeline()
	total := 12 * fps

	cases := []struct {
		frame int
		want  int
	}{
		{frame: 0, want: 0},
		{frame: 4*fps - 1, want: 0},
		{frame: 4 * fps, want: 1},
		{frame: 8 * fps, want: 2},
		{frame: total - 1, want: 2},
	}
	for _, tc := range cases {
		state := DeriveFrameState(tl, demoConcept(), tc.frame, fps, total)
		if state.ActiveIndex != tc.want {
			t.Fatalf("frame %d: active index %d, want %d", tc.frame, state.ActiveIndex, tc.want)
		}
	}

	empty := &timeline.Timeline{JobID: "job-2", DurationSeconds: 1}
	if got := DeriveFrameState(empty, demoConcept(), 0, fps, fps).ActiveIndex; got != -1 {
		t.Fatalf("empty timeline active index %d, want -1", got)
	}
}

func TestZoomHitsScaleAtKeyframeAndRestsAtEnds(t *testing.T) {
	tl := demoTimeline()
	concept := demoConcept()
	total := 12 * fps

	start := DeriveFrameState(tl, concept, 0, fps, total)
	if !almost(start.Zoom, 1) {
		t.Fatalf("zoom at frame 0 = %f, want 1", start.Zoom)
	}

	atZoom := DeriveFrameState(tl, concept, 4*fps, fps, total)
	want := 1 + 3*0.15
	if !almost(atZoom.Zoom, want) {
		t.Fatalf("zoom at focus keyframe = %f, want %f", atZoom.Zoom, want)
	}

	end := DeriveFrameState(tl, concept, total, fps, total)
	if !almost(end.Zoom, 1) {
		t.Fatalf("zoom at final frame = %f, want 1", end.Zoom)
	}

	// Between rest and focus the camera is strictly between the two scales.
	mid := DeriveFrameState(tl, concept, 6*fps, fps, total)
	if mid.Zoom <= 1 || mid.Zoom >= want {
		t.Fatalf("zoom mid-transition = %f, want within (1, %f)", mid.Zoom, want)
	}
}

func TestZoomPrependsRestWhenFirstEventLate(t *testing.T) {
	tl := &timeline.Timeline{
		JobID:           "job-3",
		DurationSeconds: 10,
		Events: []timeline.Event{
			{ID: "e1", Timestamp: 5, Action: timeline.ActionClick, Selector: "#x", ZoomTarget: "#x"},
		},
	}
	total := 10 * fps
	state := DeriveFrameState(tl, demoConcept(), 0, fps, total)
	if !almost(state.Zoom, 1) {
		t.Fatalf("zoom before first keyframe = %f, want 1", state.Zoom)
	}
}

func TestFlashDecay(t *testing.T) {
	tl := demoTimeline()
	concept := demoConcept()
	total := 12 * fps
	glowStart := 8 * fps

	if got := DeriveFrameState(tl, concept, glowStart, fps, total).FlashOpacity; !almost(got, 0) {
		t.Fatalf("flash at onset = %f, want 0", got)
	}
	peak := DeriveFrameState(tl, concept, glowStart+5, fps, total)
	if !almost(peak.FlashOpacity, 0.2) {
		t.Fatalf("flash at peak = %f, want 0.2", peak.FlashOpacity)
	}
	if peak.FlashColor != concept.PrimaryColor {
		t.Fatalf("flash color %q, want concept primary", peak.FlashColor)
	}
	if got := DeriveFrameState(tl, concept, glowStart+15, fps, total).FlashOpacity; !almost(got, 0) {
		t.Fatalf("flash after decay = %f, want 0", got)
	}
	if got := DeriveFrameState(tl, concept, glowStart+100, fps, total).FlashOpacity; !almost(got, 0) {
		t.Fatalf("flash long after decay = %f, want 0", got)
	}

	// Non-glow active event shows no flash.
	if got := DeriveFrameState(tl, concept, 4*fps+5, fps, total).FlashOpacity; !almost(got, 0) {
		t.Fatalf("flash on non-glow event = %f, want 0", got)
	}
}

func TestHUDSpringEntrance(t *testing.T) {
	tl := demoTimeline()
	concept := demoConcept()
	total := 12 * fps

	onset := DeriveFrameState(tl, concept, 4*fps, fps, total)
	if !onset.HUDVisible || onset.Caption != "Clicking the button" {
		t.Fatalf("HUD not visible with caption: %+v", onset)
	}
	if !almost(onset.HUDOpacity, 0) || !almost(onset.HUDOffsetY, 20) {
		t.Fatalf("HUD at onset opacity=%f offset=%f, want 0 and 20", onset.HUDOpacity, onset.HUDOffsetY)
	}

	settled := DeriveFrameState(tl, concept, 4*fps+fps, fps, total)
	if settled.HUDOpacity < 0.9 {
		t.Fatalf("HUD after 1s opacity=%f, want near 1", settled.HUDOpacity)
	}
	if settled.HUDOffsetY > 2 {
		t.Fatalf("HUD after 1s offset=%f, want near 0", settled.HUDOffsetY)
	}

	// No caption, no HUD.
	bare := &timeline.Timeline{
		JobID:           "job-4",
		DurationSeconds: 5,
		Events:          []timeline.Event{{ID: "e1", Timestamp: 0, Action: timeline.ActionNav, Value: "https://example.com"}},
	}
	if state := DeriveFrameState(bare, concept, fps, fps, 5*fps); state.HUDVisible {
		t.Fatalf("HUD visible without description: %+v", state)
	}
}

func TestMusicEnvelope(t *testing.T) {
	tl := demoTimeline()
	concept := demoConcept()
	total := 12 * fps // 360 frames, normal fade windows

	cases := []struct {
		frame int
		want  float64
	}{
		{0, 0},
		{30, 0.2},
		{60, 0.4},
		{total / 2, 0.4},
		{total - 60, 0.4},
		{total, 0},
	}
	for _, tc := range cases {
		got := DeriveFrameState(tl, concept, tc.frame, fps, total).MusicVolume
		if !almost(got, tc.want) {
			t.Fatalf("music at frame %d = %f, want %f", tc.frame, got, tc.want)
		}
	}
}

func TestMusicEnvelopeShortVideo(t *testing.T) {
	tl := demoTimeline()
	concept := demoConcept()
	total := 60 // shorter than two fade windows: fades shrink to 30 frames

	if got := DeriveFrameState(tl, concept, 30, fps, total).MusicVolume; !almost(got, 0.4) {
		t.Fatalf("short video midpoint = %f, want 0.4", got)
	}
	if got := DeriveFrameState(tl, concept, 0, fps, total).MusicVolume; !almost(got, 0) {
		t.Fatalf("short video start = %f, want 0", got)
	}
	if got := DeriveFrameState(tl, concept, total, fps, total).MusicVolume; !almost(got, 0) {
		t.Fatalf("short video end = %f, want 0", got)
	}
}

func TestMusicSilentWithoutURL(t *testing.T) {
	tl := demoTimeline()
	tl.MusicURL = ""
	if got := DeriveFrameState(tl, demoConcept(), 100, fps, 360).MusicVolume; !almost(got, 0) {
		t.Fatalf("music without url = %f, want 0", got)
	}
}

func TestLetterboxFollowsCinematicTag(t *testing.T) {
	tl := demoTimeline()
	plain := demoConcept()
	if DeriveFrameState(tl, plain, 0, fps, 360).Letterbox {
		t.Fatal("letterbox without cinematic tag")
	}
	cinematic := plain
	cinematic.Tags = []string{"cinematic", "moody"}
	if !DeriveFrameState(tl, cinematic, 0, fps, 360).Letterbox {
		t.Fatal("letterbox missing with cinematic tag")
	}
}

func TestDeriveFrameStateDeterministic(t *testing.T) {
	tl := demoTimeline()
	concept := demoConcept()
	for frame := 0; frame <= 12*fps; frame += 7 {
		a := DeriveFrameState(tl, concept, frame, fps, 12*fps)
		b := DeriveFrameState(tl, concept, frame, fps, 12*fps)
		if a != b {
			t.Fatalf("frame %d: derivation not deterministic: %+v vs %+v", frame, a, b)
		}
	}
}

func TestInterpolateClamps(t *testing.T) {
	in := []float64{0, 10}
	out := []float64{1, 2}
	if got := Interpolate(-5, in, out, nil); !almost(got, 1) {
		t.Fatalf("left clamp = %f", got)
	}
	if got := Interpolate(15, in, out, nil); !almost(got, 2) {
		t.Fatalf("right clamp = %f", got)
	}
	if got := Interpolate(5, in, out, nil); !almost(got, 1.5) {
		t.Fatalf("midpoint = %f", got)
	}
}

func TestSmoothstepEndpoints(t *testing.T) {
	if !almost(Smoothstep(0), 0) || !almost(Smoothstep(1), 1) {
		t.Fatal("smoothstep endpoints wrong")
	}
	if !almost(Smoothstep(0.5), 0.5) {
		t.Fatalf("smoothstep midpoint = %f", Smoothstep(0.5))
	}
}
