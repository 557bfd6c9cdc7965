package tokenizer

import "strings"

// Whitespace splits text on any run of whitespace. Empty or
// whitespace-only input yields an empty slice.
func Whitespace(text string) []string {
	return strings.Fields(text)
}
