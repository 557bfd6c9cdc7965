// Package tokenizer provides the word-level segmenters trained alongside
// the BPE vocabulary: a whitespace splitter and a language-aware rule
// tokenizer that separates words, numbers and punctuation.
package tokenizer

// Tokenizer splits text into string tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// WhitespaceTokenizer splits on runs of Unicode whitespace.
type WhitespaceTokenizer struct{}

// Tokenize implements Tokenizer.
func (WhitespaceTokenizer) Tokenize(text string) []string {
	return Whitespace(text)
}
