package compositor

import (
	"github.com/BigBrown10/director-v2/internal/concepts"
	"github.com/BigBrown10/director-v2/internal/timeline"
)

const (
	hudStiffness = 100
	hudDamping   = 10

	flashPeakFrame  = 5
	flashDecayFrame = 15
	flashPeak       = 0.2

	musicPlateau   = 0.4
	musicFadeSpan  = 60.0
	hudEntryOffset = 20.0
)

// FrameState is the fully derived overlay state for one output frame. It is a
// pure function of the timeline, concept, and frame position, so rendering
// the same inputs twice yields identical videos.
type FrameState struct {
	Frame       int
	ActiveIndex int
	Caption     string

	Zoom         float64
	FlashOpacity float64
	FlashColor   string

	HUDVisible bool
	HUDOpacity float64
	HUDOffsetY float64

	MusicVolume float64
	Letterbox   bool
}

// DeriveFrameState computes the overlay state at a frame. The timeline's
// events must be sorted; the planner guarantees that.
func DeriveFrameState(tl *timeline.Timeline, concept concepts.Concept, frame, fps, totalFrames int) FrameState {
	state := FrameState{
		Frame:       frame,
		ActiveIndex: activeEventIndex(tl.Events, frame, fps),
		Zoom:        zoomAt(tl.Events, concept, frame, fps, totalFrames),
		MusicVolume: musicVolumeAt(tl.MusicURL, frame, totalFrames),
		Letterbox:   concept.HasTag("cinematic"),
	}

	if state.ActiveIndex < 0 {
		return state
	}
	active := tl.Events[state.ActiveIndex]
	relative := float64(frame) - active.Timestamp*float64(fps)

	if active.GlowEffect {
		state.FlashOpacity = Interpolate(relative,
			[]float64{0, flashPeakFrame, flashDecayFrame},
			[]float64{0, flashPeak, 0}, nil)
		state.FlashColor = concept.PrimaryColor
	}

	if active.Description != "" {
		state.HUDVisible = true
		state.HUDOpacity = clamp01(springPosition(relative/float64(fps), hudStiffness, hudDamping))
		state.HUDOffsetY = Interpolate(state.HUDOpacity, []float64{0, 1}, []float64{hudEntryOffset, 0}, nil)
		state.Caption = active.Description
	}

	return state
}

// activeEventIndex returns the index of the last event whose start frame is
// at or before the given frame, or -1 before the first event.
func activeEventIndex(events []timeline.Event, frame, fps int) int {
	active := -1
	for i, evt := range events {
		if evt.Timestamp*float64(fps) <= float64(frame) {
			active = i
		}
	}
	return active
}

// zoomAt interpolates the camera scale across event keyframes. Events with a
// zoom target pull the camera to the concept's zoom scale; everything else
// rests at 1. The camera always starts and ends at rest.
func zoomAt(events []timeline.Event, concept concepts.Concept, frame, fps, totalFrames int) float64 {
	keyframes := make([]float64, 0, len(events)+2)
	values := make([]float64, 0, len(events)+2)
	for _, evt := range events {
		keyframes = append(keyframes, evt.Timestamp*float64(fps))
		if evt.ZoomTarget != "" {
			values = append(values, concept.ZoomScale())
		} else {
			values = append(values, 1)
		}
	}
	if len(keyframes) == 0 || keyframes[0] > 0 {
		keyframes = append([]float64{0}, keyframes...)
		values = append([]float64{1}, values...)
	}
	keyframes = append(keyframes, float64(totalFrames))
	values = append(values, 1)

	return Interpolate(float64(frame), keyframes, values, Smoothstep)
}

// musicVolumeAt shapes the envelope: linear fade in, plateau, linear fade
// out. Very short videos shrink the fade windows so they never overlap.
func musicVolumeAt(musicURL string, frame, totalFrames int) float64 {
	if musicURL == "" {
		return 0
	}
	total := float64(totalFrames)
	fade := musicFadeSpan
	if total < 2*musicFadeSpan {
		fade = total / 2
	}
	return Interpolate(float64(frame),
		[]float64{0, fade, total - fade, total},
		[]float64{0, musicPlateau, musicPlateau, 0}, nil)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
