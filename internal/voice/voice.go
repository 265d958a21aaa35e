// Package voice describes the speech voice catalog and the policy folio uses
// to pick a voice when the user has not chosen one.
package voice

import "strings"

// Voice is one entry of the platform voice catalog. ID is what folio
// persists; for most backends it is the voice name.
type Voice struct {
	ID   string
	Name string
	Lang string // BCP 47 style tag, e.g. "vi-VN" or "en-us"
}

// Catalog is the platform's list of voices. Some platforms populate it
// asynchronously, so Voices may be empty on the first call.
type Catalog interface {
	Voices() []Voice
	// OnChange registers fn to run when the catalog contents change and
	// returns a function that removes the registration.
	OnChange(fn func()) (remove func())
}

// Multilingual is a cross-language voice the settings form offers in
// addition to the voices of the active language.
const Multilingual = "Microsoft Rémy Multilingue Online (Natural) - French (France)"

type tier struct {
	locale    string
	preferred func(Voice) bool
	hints     []string
}

var tiers = map[string]tier{
	"vi": {
		locale: "vi-VN",
		preferred: func(v Voice) bool {
			return strings.Contains(v.Name, "Nam Minh") || v.Name == "Google Tiếng Việt"
		},
		hints: []string{"nam", "male"},
	},
	"en": {
		locale: "en-US",
		preferred: func(v Voice) bool {
			return v.Name == "Microsoft David - English (United States)"
		},
		hints: []string{"male"},
	},
}

// Locale maps a language code to the locale speech is requested in.
// Anything other than "en" is treated as Vietnamese.
func Locale(lang string) string {
	if strings.EqualFold(lang, "en") {
		return "en-US"
	}
	return "vi-VN"
}

// MatchesLocale reports whether a voice language tag belongs to locale.
// "en-us", "en_US" and "en-US" all match "en-US"; a bare "vi" matches "vi-VN".
func MatchesLocale(tag, locale string) bool {
	tag = normalizeTag(tag)
	locale = normalizeTag(locale)
	if tag == "" || locale == "" {
		return false
	}
	if strings.HasPrefix(tag, locale) {
		return true
	}
	base, _, _ := strings.Cut(locale, "-")
	return tag == base
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
}

// Fallback picks a voice for lang from voices: the preferred named voice,
// then a voice whose name matches the gender/locale hints, then the first
// voice of the locale. It returns false when nothing matches, which means
// "let the platform pick".
func Fallback(voices []Voice, lang string) (Voice, bool) {
	t, ok := tiers[baseLang(lang)]
	if !ok {
		t = tiers["vi"]
	}

	for _, v := range voices {
		if MatchesLocale(v.Lang, t.locale) && t.preferred(v) {
			return v, true
		}
	}
	for _, v := range voices {
		if !MatchesLocale(v.Lang, t.locale) {
			continue
		}
		name := strings.ToLower(v.Name)
		for _, hint := range t.hints {
			if strings.Contains(name, hint) {
				return v, true
			}
		}
	}
	for _, v := range voices {
		if MatchesLocale(v.Lang, t.locale) {
			return v, true
		}
	}
	return Voice{}, false
}

// Default runs Fallback for the primary language and then for secondary.
// An empty result means the platform default voice.
func Default(voices []Voice, primary, secondary string) string {
	if v, ok := Fallback(voices, primary); ok {
		return v.ID
	}
	if secondary != "" && baseLang(secondary) != baseLang(primary) {
		if v, ok := Fallback(voices, secondary); ok {
			return v.ID
		}
	}
	return ""
}

// Find returns the voice with the given id.
func Find(voices []Voice, id string) (Voice, bool) {
	if id == "" {
		return Voice{}, false
	}
	for _, v := range voices {
		if v.ID == id {
			return v, true
		}
	}
	return Voice{}, false
}

// ForLanguage lists the voices offered for lang in the settings form: the
// multilingual voice first when the platform has it, then every voice of
// the language in catalog order.
func ForLanguage(voices []Voice, lang string) []Voice {
	out := make([]Voice, 0, len(voices))
	base := baseLang(lang)
	var multi *Voice
	for i := range voices {
		v := voices[i]
		if v.Name == Multilingual {
			multi = &voices[i]
		}
		if strings.HasPrefix(normalizeTag(v.Lang), base) {
			out = append(out, v)
		}
	}
	if multi != nil {
		if _, present := Find(out, multi.ID); !present {
			out = append([]Voice{*multi}, out...)
		}
	}
	return out
}

func baseLang(lang string) string {
	base, _, _ := strings.Cut(normalizeTag(lang), "-")
	return base
}
