package concepts

import (
	"math/rand"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultID is the sentinel a caller sends when it has no concept preference.
const DefaultID = "default"

// Styling carries the caller-supplied styling fields used to synthesize a
// concept when no catalog entry matches the requested id.
type Styling struct {
	Name           string
	Description    string
	Tags           []string
	Pacing         Pacing
	ZoomAggression int
	FontFamily     string
	PrimaryColor   string
	AccentColor    string
	MusicKeywords  []string
	VoiceStyle     string
	AnimationCurve string
}

func (s *Styling) identifying() bool {
	return s != nil && (strings.TrimSpace(s.Name) != "" || strings.TrimSpace(s.Description) != "" || len(s.Tags) > 0)
}

var titleCaser = cases.Title(language.English)

// Resolve maps a requested concept id onto a concrete profile. A catalog hit
// is returned verbatim. A sentinel/empty id without identifying styling picks
// a uniformly random catalog entry. Anything else synthesizes a concept from
// the supplied styling with neutral defaults. Resolution never fails.
func Resolve(requestedID string, fallback *Styling) Concept {
	requestedID = strings.TrimSpace(requestedID)
	if c, ok := Lookup(requestedID); ok {
		return c
	}
	if (requestedID == "" || requestedID == DefaultID) && !fallback.identifying() {
		return catalog[rand.Intn(len(catalog))]
	}
	return synthesize(requestedID, fallback)
}

func synthesize(id string, s *Styling) Concept {
	if s == nil {
		s = &Styling{}
	}
	c := Concept{
		ID:             id,
		Name:           strings.TrimSpace(s.Name),
		Description:    strings.TrimSpace(s.Description),
		Tags:           append([]string(nil), s.Tags...),
		Pacing:         s.Pacing,
		ZoomAggression: s.ZoomAggression,
		FontFamily:     s.FontFamily,
		PrimaryColor:   s.PrimaryColor,
		AccentColor:    s.AccentColor,
		MusicKeywords:  append([]string(nil), s.MusicKeywords...),
		VoiceStyle:     s.VoiceStyle,
		AnimationCurve: s.AnimationCurve,
	}
	if c.ID == "" || c.ID == DefaultID {
		c.ID = "custom"
	}
	if c.Name == "" {
		c.Name = titleCaser.String(strings.ReplaceAll(c.ID, "-", " "))
	}
	if c.Pacing != PacingFast && c.Pacing != PacingSlow {
		c.Pacing = PacingMedium
	}
	if c.ZoomAggression < 1 || c.ZoomAggression > 5 {
		c.ZoomAggression = 2
	}
	if c.FontFamily == "" {
		c.FontFamily = "sans-serif"
	}
	if c.PrimaryColor == "" {
		c.PrimaryColor = "#00f3ff"
	}
	if c.AccentColor == "" {
		c.AccentColor = "#ff00ff"
	}
	if len(c.MusicKeywords) == 0 {
		c.MusicKeywords = []string{"ambient", "background"}
	}
	if c.VoiceStyle == "" {
		c.VoiceStyle = "neutral"
	}
	if c.AnimationCurve == "" {
		c.AnimationCurve = "ease-in-out"
	}
	c.Palette = Palette{Primary: c.PrimaryColor, Accent: c.AccentColor, Background: "#000000"}
	return c
}
