package tokenizer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ErrUnknownLanguage is returned for a language code with no alphabet.
var ErrUnknownLanguage = errors.New("unknown language")

// Language is a corpus language code.
type Language string

const (
	English  Language = "en"
	Latin    Language = "latin"
	Russian  Language = "ru"
	Cyrillic Language = "cyrillic"
)

// alphabet describes which runes form words in a language and whether a
// word may carry one apostrophe-joined suffix ("don't", "I'm").
type alphabet struct {
	isLetter     func(r rune) bool
	contractions bool
}

var alphabets = map[Language]alphabet{
	English: {
		isLetter:     func(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') },
		contractions: true,
	},
	Latin: {
		isLetter:     func(r rune) bool { return unicode.IsLetter(r) && unicode.Is(unicode.Latin, r) },
		contractions: true,
	},
	Russian: {
		isLetter: func(r rune) bool {
			return (r >= 'а' && r <= 'я') || (r >= 'А' && r <= 'Я') || r == 'ё' || r == 'Ё'
		},
	},
	Cyrillic: {
		isLetter: func(r rune) bool { return unicode.IsLetter(r) && unicode.Is(unicode.Cyrillic, r) },
	},
}

// ParseLanguage normalizes a language code and checks it is supported.
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := alphabets[lang]; !ok {
		return "", fmt.Errorf("%w %q (expected %s)", ErrUnknownLanguage, s, strings.Join(languageNames(), "|"))
	}
	return lang, nil
}

// Languages returns the supported language codes in sorted order.
func Languages() []Language {
	names := languageNames()
	out := make([]Language, len(names))
	for i, n := range names {
		out[i] = Language(n)
	}
	return out
}

func languageNames() []string {
	names := make([]string, 0, len(alphabets))
	for l := range alphabets {
		names = append(names, string(l))
	}
	sort.Strings(names)
	return names
}
