package bpe

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidBudget is returned for a negative merge budget.
var ErrInvalidBudget = errors.New("merge budget must not be negative")

// progressEvery controls how often the trainer emits a progress record.
const progressEvery = 100

// Options configures a Trainer.
type Options struct {
	// Shards is the number of goroutines used to count pairs on long
	// sequences. Values <= 1 count on the calling goroutine.
	Shards int
	// Logger receives debug progress records. Nil uses slog.Default().
	Logger *slog.Logger
}

// Result is the outcome of one training run.
type Result struct {
	Rules *MergeRuleSet
	// InitialLength and FinalLength are the symbol sequence lengths before
	// the first merge and after the last one.
	InitialLength int
	FinalLength   int
}

// Compression returns InitialLength / FinalLength, or 0 for empty input.
func (r Result) Compression() float64 {
	if r.FinalLength == 0 {
		return 0
	}
	return float64(r.InitialLength) / float64(r.FinalLength)
}

// Trainer learns merge rules. It holds no state between Train calls and is
// safe for concurrent use.
type Trainer struct {
	shards int
	logger *slog.Logger
}

// NewTrainer returns a Trainer configured by opts.
func NewTrainer(opts Options) *Trainer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Trainer{shards: opts.Shards, logger: logger}
}

// Train learns up to maxMerges rules with a default Trainer.
func Train(symbols []Symbol, maxMerges int) (*MergeRuleSet, error) {
	res, err := NewTrainer(Options{}).Train(symbols, maxMerges)
	if err != nil {
		return nil, err
	}
	return res.Rules, nil
}

// Train repeatedly merges the most frequent adjacent pair of symbols until
// maxMerges rules have been learned or no pair is left. symbols must hold
// base ids only and is not modified.
//
// Running out of pairs before the budget is spent is not an error; the
// partial rule set is returned.
func (t *Trainer) Train(symbols []Symbol, maxMerges int) (Result, error) {
	if maxMerges < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidBudget, maxMerges)
	}
	if err := validateBase(symbols); err != nil {
		return Result{}, err
	}

	rules := newMergeRuleSet(min(maxMerges, max(len(symbols)-1, 0)))
	res := Result{Rules: rules, InitialLength: len(symbols), FinalLength: len(symbols)}
	if len(symbols) < 2 || maxMerges == 0 {
		return res, nil
	}

	// Two buffers alternate as source and destination of each rewrite.
	cur := append(make([]Symbol, 0, len(symbols)), symbols...)
	next := make([]Symbol, 0, len(symbols))

	for rank := range maxMerges {
		var counts map[Pair]int
		if t.shards > 1 {
			counts = countPairsSharded(cur, t.shards)
		} else {
			counts = countPairs(cur)
		}
		if len(counts) == 0 {
			t.logger.Debug("bpe: no pairs left", "merges", rank, "length", len(cur))
			break
		}

		pair, count := selectPair(counts)
		rule := rules.add(pair, rules.NextSymbol())
		next = rewrite(next, cur, pair, rule.Result)
		cur, next = next, cur

		if rank < 5 || (rank+1)%progressEvery == 0 || rank == maxMerges-1 {
			t.logger.Debug("bpe: merge",
				"rank", rule.Rank,
				"pair", pair.String(),
				"symbol", int(rule.Result),
				"count", count,
				"length", len(cur),
			)
		}
	}

	res.FinalLength = len(cur)
	return res, nil
}
