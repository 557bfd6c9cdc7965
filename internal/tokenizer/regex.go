package tokenizer

import (
	"unicode"
	"unicode/utf8"
)

// matcher reports the end offset of a token starting at byte offset i of s,
// or i when it does not match there.
type matcher func(s string, i int) int

// RegexTokenizer segments text with an ordered list of matchers tried at
// each position: word, number, then a single punctuation character. The
// first matcher that consumes input wins and scanning resumes after the
// token. Runes no matcher accepts (whitespace, letters outside the
// alphabet) are skipped.
type RegexTokenizer struct {
	matchers []matcher
}

// NewRegexTokenizer returns the tokenizer for lang.
func NewRegexTokenizer(lang Language) (*RegexTokenizer, error) {
	lang, err := ParseLanguage(string(lang))
	if err != nil {
		return nil, err
	}
	a := alphabets[lang]

	return &RegexTokenizer{
		matchers: []matcher{
			wordMatcher(a),
			matchNumber,
			matchPunct,
		},
	}, nil
}

// Regex tokenizes text with the rules for lang.
func Regex(text string, lang Language) ([]string, error) {
	t, err := NewRegexTokenizer(lang)
	if err != nil {
		return nil, err
	}
	return t.Tokenize(text), nil
}

// Tokenize implements Tokenizer.
func (t *RegexTokenizer) Tokenize(text string) []string {
	tokens := []string{}
	for i := 0; i < len(text); {
		end := i
		for _, m := range t.matchers {
			if end = m(text, i); end > i {
				break
			}
		}
		if end > i {
			tokens = append(tokens, text[i:end])
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return tokens
}

// wordMatcher matches a run of alphabet letters. With contractions enabled
// the run may continue with one apostrophe followed by more letters.
func wordMatcher(a alphabet) matcher {
	return func(s string, i int) int {
		end := skipWhile(s, i, a.isLetter)
		if end == i || !a.contractions {
			return end
		}
		if end < len(s) && s[end] == '\'' {
			if suffix := skipWhile(s, end+1, a.isLetter); suffix > end+1 {
				return suffix
			}
		}
		return end
	}
}

// matchNumber matches digits with single '.' or ',' separators between
// digit groups: "42", "3.14", "1,000,000".
func matchNumber(s string, i int) int {
	end := skipWhile(s, i, unicode.IsDigit)
	if end == i {
		return i
	}
	for end < len(s) && (s[end] == '.' || s[end] == ',') {
		next := skipWhile(s, end+1, unicode.IsDigit)
		if next == end+1 {
			break
		}
		end = next
	}
	return end
}

// matchPunct matches one rune that is not a letter, digit or space.
func matchPunct(s string, i int) int {
	r, size := utf8.DecodeRuneInString(s[i:])
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return i
	}
	return i + size
}

func skipWhile(s string, i int, pred func(rune) bool) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !pred(r) {
			break
		}
		i += size
	}
	return i
}
