package pipeline

import (
	"errors"
	"fmt"

	"github.com/example/go-subword-vocab/internal/tokenizer"
)

// ErrLanguageCount is returned when the language list cannot be matched to
// the corpus files.
var ErrLanguageCount = errors.New("language count does not match corpus files")

// PairCorpora assigns a language to each file. languages must either hold
// one entry per file, in order, or a single entry that applies to all.
func PairCorpora(files, languages []string) ([]Corpus, error) {
	if len(files) == 0 {
		return nil, ErrNoCorpora
	}

	switch len(languages) {
	case len(files), 1:
	default:
		return nil, fmt.Errorf("%w: %d files, %d languages", ErrLanguageCount, len(files), len(languages))
	}

	corpora := make([]Corpus, len(files))
	for i, path := range files {
		raw := languages[0]
		if len(languages) > 1 {
			raw = languages[i]
		}

		lang, err := tokenizer.ParseLanguage(raw)
		if err != nil {
			return nil, fmt.Errorf("corpus %q: %w", path, err)
		}
		corpora[i] = Corpus{Path: path, Language: lang}
	}

	return corpora, nil
}
