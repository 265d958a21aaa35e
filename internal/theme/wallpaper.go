package theme

import (
	"fmt"
	"strings"
)

// WallpaperKind discriminates the Wallpaper variants.
type WallpaperKind string

const (
	KindGradient   WallpaperKind = "gradient" // named gradient token
	KindExpression WallpaperKind = "css"      // raw CSS gradient or color
	KindVideo      WallpaperKind = "video"    // video URL
	KindSpecial    WallpaperKind = "special"  // named animated effect
)

// Wallpaper is the background selection.
type Wallpaper struct {
	Kind  WallpaperKind
	Value string
}

func Gradient(token string) Wallpaper      { return Wallpaper{Kind: KindGradient, Value: token} }
func Expression(css string) Wallpaper      { return Wallpaper{Kind: KindExpression, Value: css} }
func Video(url string) Wallpaper           { return Wallpaper{Kind: KindVideo, Value: url} }
func Special(name string) Wallpaper        { return Wallpaper{Kind: KindSpecial, Value: name} }
func (w Wallpaper) IsZero() bool           { return w.Kind == "" && w.Value == "" }
func (w Wallpaper) Equal(o Wallpaper) bool { return w.Kind == o.Kind && w.Value == o.Value }

// Encode returns the persisted form "<kind>:<value>".
func (w Wallpaper) Encode() string {
	return string(w.Kind) + ":" + w.Value
}

func (w Wallpaper) String() string { return w.Encode() }

// ParseWallpaper decodes the persisted form written by Encode.
func ParseWallpaper(s string) (Wallpaper, error) {
	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		return Wallpaper{}, fmt.Errorf("wallpaper %q: missing kind", s)
	}
	switch k := WallpaperKind(kind); k {
	case KindGradient, KindExpression, KindVideo, KindSpecial:
		if value == "" {
			return Wallpaper{}, fmt.Errorf("wallpaper %q: empty value", s)
		}
		return Wallpaper{Kind: k, Value: value}, nil
	}
	return Wallpaper{}, fmt.Errorf("wallpaper %q: unknown kind %q", s, kind)
}

// Legacy wallpaper values were stored untagged.
const (
	LegacyVideoSentinel = "video"
	LegacyVideoURL      = "https://cdn.scena.ai/project/9626/3831bf105bab4a399b35e79c5a8b4f1d3cfc4fe5ea48812f948fa55c90792dc4.mp4"

	AnimatedGradient = "gradient"
	OrbitingPlanets  = "orbiting-planets"
)

// migrateWallpaper converts an untagged legacy value into a Wallpaper. The
// sentinel "video" becomes the fallback video URL; it is never returned
// as-is.
func migrateWallpaper(raw string) (Wallpaper, bool) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return Wallpaper{}, false
	case raw == LegacyVideoSentinel:
		return Video(LegacyVideoURL), true
	case raw == AnimatedGradient:
		return Gradient(raw), true
	case raw == OrbitingPlanets:
		return Special(raw), true
	case strings.HasPrefix(raw, "https://"), strings.HasPrefix(raw, "http://"):
		return Video(raw), true
	default:
		return Expression(raw), true
	}
}

// resolveWallpaper decodes a stored value. migrated is true when the value
// was in the legacy untagged form and should be rewritten.
func resolveWallpaper(stored string) (w Wallpaper, migrated bool, ok bool) {
	if w, err := ParseWallpaper(stored); err == nil {
		return w, false, true
	}
	w, ok = migrateWallpaper(stored)
	return w, ok, ok
}

// WallpaperOption is one entry of the wallpaper picker.
type WallpaperOption struct {
	Label     string
	Wallpaper Wallpaper
}

var lightGradients = []string{
	"linear-gradient(45deg, #ff9a9e 0%, #fad0c4 100%)",
	"linear-gradient(45deg, #a18cd1 0%, #fbc2eb 100%)",
	"linear-gradient(45deg, #fad0c4 0%, #ffd1ff 100%)",
	"linear-gradient(45deg, #f6d365 0%, #fda085 100%)",
	"linear-gradient(45deg, #c1dfc4 0%, #deecdd 100%)",
	"linear-gradient(45deg, #667eea 0%, #764ba2 100%)",
	"linear-gradient(45deg, #ff9a9e 0%, #fecfef 100%)",
	"linear-gradient(45deg, #fa709a 0%, #fee140 100%)",
	"linear-gradient(45deg, #dfe9f3 0%, #ffffff 100%)",
	"linear-gradient(45deg, #5ee7df 0%, #b490ca 100%)",
}

var darkGradients = []string{
	"linear-gradient(45deg, #6a11cb 0%, #2575fc 100%)",
	"linear-gradient(45deg, #13547a 0%, #80d0c7 100%)",
	"linear-gradient(45deg, #ed6ea0 0%, #ec8c69 100%)",
	"linear-gradient(45deg, #000428 0%, #004e92 100%)",
	"linear-gradient(45deg, #0f2027 0%, #203a43 50%, #2c5364 100%)",
	"linear-gradient(45deg, #373b44 0%, #4286f4 100%)",
	"linear-gradient(45deg, #7028e4 0%, #e5b2ca 100%)",
	"linear-gradient(45deg, #1e3c72 0%, #2a5298 100%)",
	"linear-gradient(45deg, #a8edea 0%, #fed6e3 100%)",
	"linear-gradient(45deg, #0250c5 0%, #d43f8d 100%)",
}

var videoWallpapers = []string{
	DefaultVideoURL,
	"https://cdn.dribbble.com/userupload/13498087/file/original-b120f6a1a15d71e493f8d4b2d13b0296.mp4",
	"https://cdn.dribbble.com/userupload/16718734/file/original-f2df9314dbf922d5452d7a8a5885d744.mp4",
	"https://cdn.dribbble.com/userupload/43797830/file/original-b9bafe56dd75a7ae175f827cfc662738.mp4",
	"https://cdn.dribbble.com/userupload/16365364/file/original-dcc3ad4c0f5802c6670d36fcca720e5e.mp4",
	"https://cdn.dribbble.com/userupload/43797856/file/original-46c91cbdf46a3cbc3f30a85f061ed817.mp4",
}

// GradientOptions lists the animated gradient, the gradients that suit
// mode and the special effects.
func GradientOptions(mode Mode) []WallpaperOption {
	gradients := lightGradients
	if mode == Dark {
		gradients = darkGradients
	}
	opts := make([]WallpaperOption, 0, len(gradients)+2)
	opts = append(opts, WallpaperOption{Label: "Animated gradient", Wallpaper: Gradient(AnimatedGradient)})
	for i, g := range gradients {
		opts = append(opts, WallpaperOption{Label: fmt.Sprintf("Gradient %d", i+1), Wallpaper: Expression(g)})
	}
	opts = append(opts, WallpaperOption{Label: "Orbiting planets", Wallpaper: Special(OrbitingPlanets)})
	return opts
}

// VideoOptions lists the video wallpapers.
func VideoOptions() []WallpaperOption {
	opts := make([]WallpaperOption, len(videoWallpapers))
	for i, url := range videoWallpapers {
		opts[i] = WallpaperOption{Label: fmt.Sprintf("Video %d", i+1), Wallpaper: Video(url)}
	}
	return opts
}

// AccentColors is the accent palette offered by the settings form.
var AccentColors = []string{
	"#101733", "#ED1B2F", "#AE2070", "#FF6525", "#FFB300",
	"#49C16C", "#0078D4", "#6C6CE5", "#FFFFFF",
}
