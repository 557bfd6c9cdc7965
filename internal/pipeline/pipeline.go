// Package pipeline runs the full vocabulary training flow for one or more
// corpora: load, clean, split, tokenize and learn BPE merges on the
// training partition.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/go-subword-vocab/internal/bpe"
	"github.com/example/go-subword-vocab/internal/corpus"
	"github.com/example/go-subword-vocab/internal/text"
	"github.com/example/go-subword-vocab/internal/tokenizer"
	"golang.org/x/sync/errgroup"
)

// ErrNoCorpora is returned when Run is given nothing to train on.
var ErrNoCorpora = errors.New("no corpora given")

// Corpus is one input file and the language of its text.
type Corpus struct {
	Path     string
	Language tokenizer.Language
}

// Options configures a run.
type Options struct {
	Split     corpus.SplitOptions
	MaxMerges int
	// Shards is passed to the BPE trainer for sharded pair counting.
	Shards int
	// TopTokens is how many of the most frequent regex tokens to report.
	TopTokens int
	// Concurrency bounds how many corpora are processed at once.
	// Values < 1 mean one at a time.
	Concurrency int
	Logger      *slog.Logger
}

// Result summarizes the run for one corpus.
type Result struct {
	Path     string
	Language tokenizer.Language

	Load    corpus.LoadStats
	Cleaned int // non-empty lines after normalization

	Train int
	Val   int
	Test  int

	WhitespaceTokens int
	RegexTokens      int
	TopTokens        []tokenizer.TokenCount

	Symbols      int // training stream length in bytes
	FinalSymbols int // stream length after all merges
	Rules        *bpe.MergeRuleSet

	Elapsed time.Duration
}

// Merges returns the number of learned merge rules.
func (r Result) Merges() int { return r.Rules.Len() }

// Run processes every corpus and returns the results in input order. The
// first failure cancels the remaining corpora.
func Run(ctx context.Context, corpora []Corpus, opts Options) ([]Result, error) {
	if len(corpora) == 0 {
		return nil, ErrNoCorpora
	}
	if err := opts.Split.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxMerges < 0 {
		return nil, fmt.Errorf("%w: %d", bpe.ErrInvalidBudget, opts.MaxMerges)
	}

	results := make([]Result, len(corpora))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for i, c := range corpora {
		g.Go(func() error {
			res, err := RunCorpus(ctx, c, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// RunCorpus processes a single corpus.
func RunCorpus(ctx context.Context, c Corpus, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("corpus", c.Path, "lang", string(c.Language))
	start := time.Now()

	regexTok, err := tokenizer.NewRegexTokenizer(c.Language)
	if err != nil {
		return Result{}, fmt.Errorf("corpus %q: %w", c.Path, err)
	}

	raw, stats, err := corpus.Load(ctx, c.Path)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("corpus loaded", "records", stats.Records, "malformed", stats.Malformed, "missing_text", stats.MissingText)

	cleaned := text.CleanLines(raw)

	parts, err := corpus.Split(cleaned, opts.Split)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// Only the training partition feeds the tokenizers and the trainer.
	trainText := strings.Join(parts.Train, " ")
	wsTokens := tokenizer.Whitespace(trainText)
	reTokens := regexTok.Tokenize(trainText)

	trainer := bpe.NewTrainer(bpe.Options{Shards: opts.Shards, Logger: logger})
	trained, err := trainer.Train(bpe.SymbolsFromString(trainText), opts.MaxMerges)
	if err != nil {
		return Result{}, fmt.Errorf("corpus %q: train bpe: %w", c.Path, err)
	}

	res := Result{
		Path:             c.Path,
		Language:         c.Language,
		Load:             stats,
		Cleaned:          len(cleaned),
		Train:            len(parts.Train),
		Val:              len(parts.Val),
		Test:             len(parts.Test),
		WhitespaceTokens: len(wsTokens),
		RegexTokens:      len(reTokens),
		TopTokens:        tokenizer.TopTokens(reTokens, opts.TopTokens),
		Symbols:          trained.InitialLength,
		FinalSymbols:     trained.FinalLength,
		Rules:            trained.Rules,
		Elapsed:          time.Since(start),
	}

	logger.Info("corpus trained",
		"train", res.Train,
		"val", res.Val,
		"test", res.Test,
		"merges", res.Merges(),
		"compression", trained.Compression(),
		"elapsed", res.Elapsed,
	)

	return res, nil
}
