package concepts

// Pacing is the qualitative tempo governing expected inter-event gaps.
type Pacing string

const (
	PacingFast   Pacing = "fast"
	PacingMedium Pacing = "medium"
	PacingSlow   Pacing = "slow"
)

// Palette groups the colors a concept paints overlays with.
type Palette struct {
	Primary    string
	Accent     string
	Background string
}

// Concept is a named styling/pacing profile guiding both plan generation and
// compositing. ZoomAggression runs 1 (subtle) to 5 (aggressive punch-ins).
type Concept struct {
	ID             string
	Name           string
	Description    string
	Tags           []string
	Pacing         Pacing
	ZoomAggression int
	Palette        Palette
	FontFamily     string
	PrimaryColor   string
	AccentColor    string
	MusicKeywords  []string
	VoiceStyle     string
	AnimationCurve string
}

// HasTag reports whether the concept carries the given mood tag.
func (c Concept) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ZoomScale is the full-frame scale applied at a zoom focus moment.
func (c Concept) ZoomScale() float64 {
	aggression := c.ZoomAggression
	if aggression < 1 {
		aggression = 1
	}
	return 1 + float64(aggression)*0.15
}

var catalog = []Concept{
	{
		ID:             "apple-minimal",
		Name:           "Minimalist Tech",
		Description:    "Clean, white space, smooth transitions, focus on product details. Inspired by Apple.",
		Tags:           []string{"clean", "minimal", "tech", "white"},
		Pacing:         PacingSlow,
		ZoomAggression: 2,
		Palette:        Palette{Primary: "#000000", Accent: "#0071e3", Background: "#f5f5f7"},
		FontFamily:     "San Francisco, Inter, sans-serif",
		PrimaryColor:   "#1d1d1f",
		AccentColor:    "#0071e3",
		MusicKeywords:  []string{"ambient", "technology", "piano", "calm"},
		VoiceStyle:     "professional",
		AnimationCurve: "ease-in-out",
	},
	{
		ID:             "nike-energy",
		Name:           "High Energy Sports",
		Description:    "Fast cuts, bold typography, high contrast. Inspired by Nike.",
		Tags:           []string{"energy", "bold", "sports", "contrast"},
		Pacing:         PacingFast,
		ZoomAggression: 5,
		Palette:        Palette{Primary: "#ffffff", Accent: "#cf0a2c", Background: "#000000"},
		FontFamily:     "Impact, Bebas Neue, sans-serif",
		PrimaryColor:   "#ffffff",
		AccentColor:    "#cf0a2c",
		MusicKeywords:  []string{"upbeat", "electronic", "drums", "intense"},
		VoiceStyle:     "energetic",
		AnimationCurve: "cubic-bezier(0.175, 0.885, 0.32, 1.275)",
	},
	{
		ID:             "slack-playful",
		Name:           "Playful SaaS",
		Description:    "Colorful, friendly, bouncy animations. Inspired by Slack/Asana.",
		Tags:           []string{"playful", "colorful", "saas", "friendly"},
		Pacing:         PacingMedium,
		ZoomAggression: 3,
		Palette:        Palette{Primary: "#4a154b", Accent: "#36c5f0", Background: "#ffffff"},
		FontFamily:     "Circular, Lato, sans-serif",
		PrimaryColor:   "#4a154b",
		AccentColor:    "#36c5f0",
		MusicKeywords:  []string{"happy", "acoustic", "whistle", "upbeat"},
		VoiceStyle:     "friendly",
		AnimationCurve: "ease-out",
	},
	{
		ID:             "stripe-developer",
		Name:           "Developer Focus",
		Description:    "Gradient backgrounds, code snippets, precise motion. Inspired by Stripe.",
		Tags:           []string{"developer", "gradient", "precise", "tech"},
		Pacing:         PacingMedium,
		ZoomAggression: 2,
		Palette:        Palette{Primary: "#635bff", Accent: "#00d4ff", Background: "#f6f9fc"},
		FontFamily:     "Inter, Roboto Mono, monospace",
		PrimaryColor:   "#635bff",
		AccentColor:    "#00d4ff",
		MusicKeywords:  []string{"synthwave", "future", "digital", "modern"},
		VoiceStyle:     "technical",
		AnimationCurve: "ease-in-out",
	},
	{
		ID:             "netflix-cinematic",
		Name:           "Cinematic Dark",
		Description:    "Dark mode, dramatic lighting, suspenseful pacing. Inspired by Netflix trailers.",
		Tags:           []string{"cinematic", "dark", "dramatic"},
		Pacing:         PacingSlow,
		ZoomAggression: 3,
		Palette:        Palette{Primary: "#e50914", Accent: "#ffffff", Background: "#141414"},
		FontFamily:     "Bebas Neue, sans-serif",
		PrimaryColor:   "#e50914",
		AccentColor:    "#ffffff",
		MusicKeywords:  []string{"cinematic", "orchestral", "dramatic", "suspense"},
		VoiceStyle:     "narrator",
		AnimationCurve: "ease-in-out",
	},
	{
		ID:             "spotify-duotone",
		Name:           "Duotone Vibes",
		Description:    "Heavy color overlays, bold typography, rhythm-synced. Inspired by Spotify Wrapped.",
		Tags:           []string{"duotone", "music", "bold", "colorful"},
		Pacing:         PacingFast,
		ZoomAggression: 4,
		Palette:        Palette{Primary: "#1db954", Accent: "#191414", Background: "#191414"},
		FontFamily:     "Montserrat, sans-serif",
		PrimaryColor:   "#1db954",
		AccentColor:    "#ff0090",
		MusicKeywords:  []string{"pop", "dance", "beat", "groovy"},
		VoiceStyle:     "casual",
		AnimationCurve: "linear",
	},
	{
		ID:             "fintech-trust",
		Name:           "Fintech Trust",
		Description:    "Secure blues, solid lines, reassuring motion. Inspired by PayPal/Chase.",
		Tags:           []string{"finance", "trust", "blue", "secure"},
		Pacing:         PacingMedium,
		ZoomAggression: 1,
		Palette:        Palette{Primary: "#003087", Accent: "#009cde", Background: "#ffffff"},
		FontFamily:     "Arial, sans-serif",
		PrimaryColor:   "#003087",
		AccentColor:    "#009cde",
		MusicKeywords:  []string{"corporate", "inspiring", "calm", "piano"},
		VoiceStyle:     "reassuring",
		AnimationCurve: "ease-in",
	},
	{
		ID:             "luxury-fashion",
		Name:           "Luxury Elegant",
		Description:    "Serif fonts, gold accents, slow pans. Inspired by Vogue/Gucci.",
		Tags:           []string{"luxury", "elegant", "gold", "fashion"},
		Pacing:         PacingSlow,
		ZoomAggression: 1,
		Palette:        Palette{Primary: "#d4af37", Accent: "#000000", Background: "#ffffff"},
		FontFamily:     "Playfair Display, serif",
		PrimaryColor:   "#d4af37",
		AccentColor:    "#000000",
		MusicKeywords:  []string{"classical", "elegant", "violins", "piano"},
		VoiceStyle:     "sophisticated",
		AnimationCurve: "ease-in-out",
	},
	{
		ID:             "gaming-rgb",
		Name:           "RGB Gamer",
		Description:    "Neon colors, glitch effects, rapid movement. Inspired by Razer/Logitech G.",
		Tags:           []string{"gaming", "neon", "glitch", "rgb"},
		Pacing:         PacingFast,
		ZoomAggression: 5,
		Palette:        Palette{Primary: "#00ff00", Accent: "#ff00ff", Background: "#000000"},
		FontFamily:     "Orbitron, sans-serif",
		PrimaryColor:   "#00ff00",
		AccentColor:    "#ff00ff",
		MusicKeywords:  []string{"dubstep", "cyberpunk", "electronic", "bass"},
		VoiceStyle:     "intense",
		AnimationCurve: "steps(5)",
	},
	{
		ID:             "nature-eco",
		Name:           "Eco Friendly",
		Description:    "Greens, browns, organic shapes, gentle motion. Inspired by Patagonia.",
		Tags:           []string{"eco", "nature", "organic", "green"},
		Pacing:         PacingSlow,
		ZoomAggression: 1,
		Palette:        Palette{Primary: "#2e7d32", Accent: "#8d6e63", Background: "#f1f8e9"},
		FontFamily:     "Lora, serif",
		PrimaryColor:   "#2e7d32",
		AccentColor:    "#8d6e63",
		MusicKeywords:  []string{"acoustic", "folk", "nature", "guitar"},
		VoiceStyle:     "calm",
		AnimationCurve: "ease-in-out",
	},
	{
		ID:             "news-broadcast",
		Name:           "Breaking News",
		Description:    "Red/White/Blue, tickers, urgent motion. Inspired by CNN/BBC.",
		Tags:           []string{"news", "broadcast", "urgent"},
		Pacing:         PacingMedium,
		ZoomAggression: 3,
		Palette:        Palette{Primary: "#cc0000", Accent: "#0000cc", Background: "#ffffff"},
		FontFamily:     "Helvetica, sans-serif",
		PrimaryColor:   "#cc0000",
		AccentColor:    "#0000cc",
		MusicKeywords:  []string{"news", "orchestral", "tension", "alert"},
		VoiceStyle:     "authoritative",
		AnimationCurve: "linear",
	},
	{
		ID:             "social-viral",
		Name:           "TikTok Viral",
		Description:    "Vertical-friendly, snappy, text-heavy overlays. Inspired by TikTok trends.",
		Tags:           []string{"social", "viral", "tiktok", "snappy"},
		Pacing:         PacingFast,
		ZoomAggression: 4,
		Palette:        Palette{Primary: "#ff0050", Accent: "#00f2ea", Background: "#000000"},
		FontFamily:     "Proxima Nova, sans-serif",
		PrimaryColor:   "#ff0050",
		AccentColor:    "#00f2ea",
		MusicKeywords:  []string{"viral", "pop", "upbeat", "short"},
		VoiceStyle:     "casual",
		AnimationCurve: "spring",
	},
	{
		ID:             "corporate-blue",
		Name:           "Corporate Professional",
		Description:    "Standard blue, clean lines, safe and reliable. Inspired by IBM/Microsoft.",
		Tags:           []string{"corporate", "professional", "blue", "safe"},
		Pacing:         PacingMedium,
		ZoomAggression: 2,
		Palette:        Palette{Primary: "#006699", Accent: "#333333", Background: "#ffffff"},
		FontFamily:     "Segoe UI, sans-serif",
		PrimaryColor:   "#006699",
		AccentColor:    "#333333",
		MusicKeywords:  []string{"corporate", "business", "neutral", "background"},
		VoiceStyle:     "professional",
		AnimationCurve: "ease-in-out",
	},
	{
		ID:             "retro-vaporwave",
		Name:           "Retro Vaporwave",
		Description:    "Pink/Cyan, grid lines, 80s nostalgia. Inspired by 80s aesthetic.",
		Tags:           []string{"retro", "vaporwave", "80s", "nostalgia"},
		Pacing:         PacingSlow,
		ZoomAggression: 2,
		Palette:        Palette{Primary: "#ff71ce", Accent: "#01cdfe", Background: "#2b213a"},
		FontFamily:     "VCR OSD Mono, monospace",
		PrimaryColor:   "#ff71ce",
		AccentColor:    "#01cdfe",
		MusicKeywords:  []string{"synthwave", "vaporwave", "chill", "lofi"},
		VoiceStyle:     "relaxed",
		AnimationCurve: "ease-in-out",
	},
	{
		ID:             "startup-rocket",
		Name:           "Startup Launch",
		Description:    "Orange/Purple gradient, ascending motion. Inspired by Product Hunt launches.",
		Tags:           []string{"startup", "launch", "rocket", "orange"},
		Pacing:         PacingFast,
		ZoomAggression: 4,
		Palette:        Palette{Primary: "#ff6154", Accent: "#5433ff", Background: "#ffffff"},
		FontFamily:     "Helvetica Neue, sans-serif",
		PrimaryColor:   "#ff6154",
		AccentColor:    "#5433ff",
		MusicKeywords:  []string{"energetic", "motivational", "success", "rock"},
		VoiceStyle:     "enthusiastic",
		AnimationCurve: "ease-out",
	},
	{
		ID:             "medical-care",
		Name:           "Medical Care",
		Description:    "Soft blue/green, clean white, sterile but caring. Inspired by Mayo Clinic.",
		Tags:           []string{"medical", "care", "health", "clean"},
		Pacing:         PacingSlow,
		ZoomAggression: 1,
		Palette:        Palette{Primary: "#00a3e0", Accent: "#4caf50", Background: "#ffffff"},
		FontFamily:     "Open Sans, sans-serif",
		PrimaryColor:   "#00a3e0",
		AccentColor:    "#4caf50",
		MusicKeywords:  []string{"calm", "ambient", "healing", "soft"},
		VoiceStyle:     "gentle",
		AnimationCurve: "ease-in-out",
	},
	{
		ID:             "cyber-security",
		Name:           "Cyber Security",
		Description:    "Dark blue, lock icons, matrix code effects. Inspired by Norton/McAfee.",
		Tags:           []string{"security", "cyber", "lock", "code"},
		Pacing:         PacingMedium,
		ZoomAggression: 3,
		Palette:        Palette{Primary: "#ffce00", Accent: "#000000", Background: "#1b1b1b"},
		FontFamily:     "Consolas, monospace",
		PrimaryColor:   "#ffce00",
		AccentColor:    "#ffffff",
		MusicKeywords:  []string{"tension", "electronic", "hacker", "tech"},
		VoiceStyle:     "serious",
		AnimationCurve: "linear",
	},
	{
		ID:             "education-learn",
		Name:           "Education Learning",
		Description:    "Primary colors, simple shapes, chalkboard textures. Inspired by Khan Academy.",
		Tags:           []string{"education", "learning", "school", "simple"},
		Pacing:         PacingSlow,
		ZoomAggression: 2,
		Palette:        Palette{Primary: "#14bf96", Accent: "#5d5c61", Background: "#ffffff"},
		FontFamily:     "Comic Sans MS, sans-serif",
		PrimaryColor:   "#14bf96",
		AccentColor:    "#5d5c61",
		MusicKeywords:  []string{"acoustic", "playful", "learning", "kids"},
		VoiceStyle:     "teacher",
		AnimationCurve: "ease-in-out",
	},
	{
		ID:             "industrial-heavy",
		Name:           "Industrial Heavy",
		Description:    "Greys, oranges, metallic textures. Inspired by CAT/Bosch.",
		Tags:           []string{"industrial", "heavy", "construction", "strong"},
		Pacing:         PacingSlow,
		ZoomAggression: 1,
		Palette:        Palette{Primary: "#ff9900", Accent: "#333333", Background: "#e0e0e0"},
		FontFamily:     "Impact, sans-serif",
		PrimaryColor:   "#ff9900",
		AccentColor:    "#333333",
		MusicKeywords:  []string{"rock", "drums", "heavy", "power"},
		VoiceStyle:     "strong",
		AnimationCurve: "linear",
	},
	{
		ID:             "crypto-future",
		Name:           "Crypto Future",
		Description:    "Purple/Gold gradients, blockchain nodes, futuristic. Inspired by Coinbase/Binance.",
		Tags:           []string{"crypto", "future", "blockchain", "money"},
		Pacing:         PacingFast,
		ZoomAggression: 4,
		Palette:        Palette{Primary: "#f7931a", Accent: "#627eea", Background: "#121d33"},
		FontFamily:     "Exo 2, sans-serif",
		PrimaryColor:   "#f7931a",
		AccentColor:    "#627eea",
		MusicKeywords:  []string{"electronic", "future", "money", "fast"},
		VoiceStyle:     "visionary",
		AnimationCurve: "ease-in-out",
	},
}

// Catalog returns a copy of the full concept catalog in stable order.
func Catalog() []Concept {
	cp := make([]Concept, len(catalog))
	copy(cp, catalog)
	return cp
}

// Lookup returns the catalog entry for id, if present.
func Lookup(id string) (Concept, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Concept{}, false
}
