// Package fallback produces the canned content served when the AI backend
// is unreachable or out of quota. Output is deterministic and available in
// English and Hindi.
package fallback

import (
	"strings"

	"golang.org/x/text/language"
)

type Lang int

const (
	English Lang = iota
	Hindi
)

var (
	supported = []language.Tag{language.English, language.Hindi}
	matcher   = language.NewMatcher(supported)
)

// ResolveLanguage maps a UI language name ("Hindi") or a BCP 47 tag
// ("hi-IN", "en-GB") to the closest supported language. Anything else is
// English.
func ResolveLanguage(s string) Lang {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "english":
		return English
	case "hindi", "हिन्दी", "हिंदी":
		return Hindi
	}
	tag, err := language.Parse(s)
	if err != nil {
		return English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return English
	}
	return Lang(idx)
}

// Name is the language name the backend expects in request payloads.
func (l Lang) Name() string {
	if l == Hindi {
		return "Hindi"
	}
	return "English"
}

func pick(l Lang, en, hi string) string {
	if l == Hindi {
		return hi
	}
	return en
}
