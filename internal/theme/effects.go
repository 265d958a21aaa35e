package theme

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Style properties and classes derived from the preferences.
const (
	PropAccent    = "--accent-color"
	PropAccentRGB = "--accent-color-rgb"
	ClassDark     = "dark"
)

// Effects receives the derived style side effects. Implementations must
// not call back into the Manager.
type Effects interface {
	SetProperty(name, value string)
	SetClass(name string, on bool)
}

// ParseHex parses "#rrggbb", "rrggbb" or the "#rgb" shorthand.
func ParseHex(hex string) (colorful.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return colorful.Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	return colorful.Hex("#" + h)
}

// RGBTriplet returns "r, g, b" for a hex color, or "0, 0, 0" when it
// cannot be parsed.
func RGBTriplet(hex string) string {
	c, err := ParseHex(hex)
	if err != nil {
		return "0, 0, 0"
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("%d, %d, %d", r, g, b)
}

func applyEffects(p Preferences, effects []Effects) {
	accent := p.Accent()
	rgb := RGBTriplet(accent)
	for _, e := range effects {
		e.SetClass(ClassDark, p.Mode == Dark)
		e.SetProperty(PropAccent, accent)
		e.SetProperty(PropAccentRGB, rgb)
	}
}

// StyleSheet is an in-memory document root: custom properties plus class
// toggles. It renders as a CSS block for web front ends.
type StyleSheet struct {
	mu      sync.RWMutex
	props   map[string]string
	classes map[string]bool
}

// NewStyleSheet returns an empty style sheet.
func NewStyleSheet() *StyleSheet {
	return &StyleSheet{props: make(map[string]string), classes: make(map[string]bool)}
}

func (s *StyleSheet) SetProperty(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.props[name] = value
}

func (s *StyleSheet) SetClass(name string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.classes[name] = true
		return
	}
	delete(s.classes, name)
}

// Property returns the current value of a custom property.
func (s *StyleSheet) Property(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.props[name]
}

// HasClass reports whether the class is set on the root.
func (s *StyleSheet) HasClass(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classes[name]
}

// CSS renders the root rule, e.g.
//
//	:root.dark {
//	  --accent-color: #FFFFFF;
//	  --accent-color-rgb: 255, 255, 255;
//	}
func (s *StyleSheet) CSS() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	classes := make([]string, 0, len(s.classes))
	for c := range s.classes {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	names := make([]string, 0, len(s.props))
	for n := range s.props {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root")
	for _, c := range classes {
		b.WriteString("." + c)
	}
	b.WriteString(" {\n")
	for _, n := range names {
		fmt.Fprintf(&b, "  %s: %s;\n", n, s.props[n])
	}
	b.WriteString("}\n")
	return b.String()
}
