package format

import (
	"path/filepath"
	"strings"

	"valkyrie/internal/vocab"
)

const (
	// LanguageValkyrie is the language id of .valk documents.
	LanguageValkyrie = "valkyrie"
	// LanguageRunic is the language id of .runic documents.
	LanguageRunic = "runic"
)

// Profile is the default vocabulary and direction for a language id.
type Profile struct {
	Language   string
	Vocabulary *vocab.Vocabulary
	Direction  Direction
}

var extensions = map[string]string{
	".valk":  LanguageValkyrie,
	".runic": LanguageRunic,
}

// ProfileFor returns the defaults of a language id.
func ProfileFor(language string) (Profile, bool) {
	switch language {
	case LanguageValkyrie:
		return Profile{Language: language, Vocabulary: vocab.Rune(), Direction: ToKeywords}, true
	case LanguageRunic:
		return Profile{Language: language, Vocabulary: vocab.Runic(), Direction: ToGlyphs}, true
	}
	return Profile{}, false
}

// LanguageForPath maps a file extension to a language id.
func LanguageForPath(path string) (string, bool) {
	lang, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// IsSourcePath reports whether path has a recognised extension.
func IsSourcePath(path string) bool {
	_, ok := LanguageForPath(path)
	return ok
}

// Options applies the profile on top of base layout settings.
func (p Profile) Options(base Options) Options {
	base.Vocabulary = p.Vocabulary
	base.Direction = p.Direction
	return base
}
