package text

import (
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/unicode/norm"
)

var (
	lineBreakTag  = regexp2.MustCompile(`<br\s*/?>`, regexp2.None)
	speakerPrompt = regexp2.MustCompile(`^[\p{L}\p{N}_]+\s*:\s*:\s*`, regexp2.None)

	punctuation = strings.NewReplacer(
		"‘", "'", // left single quotation mark
		"’", "'", // right single quotation mark
		"‛", "'", // single high-reversed-9 quotation mark
		"ʼ", "'", // modifier letter apostrophe
		"—", "-", // em dash
	)
)

// Normalize cleans one corpus line:
//  1. NFKC normalization.
//  2. ASCII control characters (0x00-0x1F, 0x7F) other than whitespace removed.
//  3. Curly apostrophes → ' and em dashes → -.
//  4. <br>, <br/> and <br /> tags removed, &amp; → &.
//  5. Whitespace runs collapsed to one space, edges trimmed.
//  6. A leading speaker prompt such as "SPEAKER1: :" stripped.
//
// The steps are reapplied until the line stops changing, so
// Normalize(Normalize(s)) == Normalize(s). The result may be empty.
func Normalize(s string) string {
	for {
		next := normalizePass(s)
		if next == s {
			return next
		}
		s = next
	}
}

func normalizePass(s string) string {
	s = norm.NFKC.String(s)
	s = stripControl(s)
	s = punctuation.Replace(s)
	s = replaceAll(lineBreakTag, s, "")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.Join(strings.Fields(s), " ")
	return replaceAll(speakerPrompt, s, "")
}

// stripControl keeps \t \n \v \f \r so the whitespace collapse still sees
// them as separators.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if (r < 0x20 && (r < '\t' || r > '\r')) || r == 0x7F {
			return -1
		}
		return r
	}, s)
}

// replaceAll leaves s untouched if the pattern fails to evaluate.
func replaceAll(re *regexp2.Regexp, s, repl string) string {
	out, err := re.Replace(s, repl, -1, -1)
	if err != nil {
		return s
	}
	return out
}

// CleanLines normalizes every line and drops the ones that end up empty.
func CleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if c := Normalize(l); c != "" {
			out = append(out, c)
		}
	}
	return out
}
