// Package doctor provides preflight checks for vocabtrain runs.
package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/example/go-subword-vocab/internal/corpus"
	"github.com/example/go-subword-vocab/internal/pipeline"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// LoadFunc reads a corpus file and reports its statistics.
type LoadFunc func(ctx context.Context, path string) (corpus.LoadStats, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// Settings validates the loaded configuration. Nil skips the check.
	Settings func() error
	// Files and Languages are paired as the train command pairs them.
	Files     []string
	Languages []string
	// Load defaults to reading the whole file with corpus.Load.
	Load LoadFunc
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(w io.Writer, msg string) {
	r.failures = append(r.failures, msg)
	fmt.Fprintf(w, "%s %s\n", FailMark, msg)
}

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(ctx context.Context, cfg Config, w io.Writer) Result {
	var res Result

	// ---- settings ---------------------------------------------------------
	if cfg.Settings != nil {
		if err := cfg.Settings(); err != nil {
			res.fail(w, fmt.Sprintf("settings: %v", err))
		} else {
			fmt.Fprintf(w, "%s settings: ok\n", PassMark)
		}
	}

	// ---- corpora ----------------------------------------------------------
	corpora, err := pipeline.PairCorpora(cfg.Files, cfg.Languages)
	if err != nil {
		res.fail(w, fmt.Sprintf("corpora: %v", err))
		return res
	}
	fmt.Fprintf(w, "%s corpora: %d file(s)\n", PassMark, len(corpora))

	load := cfg.Load
	if load == nil {
		load = loadStats
	}

	for _, c := range corpora {
		stats, err := load(ctx, c.Path)
		switch {
		case err != nil:
			res.fail(w, fmt.Sprintf("corpus %s: %v", c.Path, err))
		case stats.Records == 0:
			res.fail(w, fmt.Sprintf("corpus %s: no usable text in %d line(s)", c.Path, stats.Lines))
		default:
			fmt.Fprintf(w, "%s corpus %s [%s]: %d record(s), %d malformed, %d without text\n",
				PassMark, c.Path, c.Language, stats.Records, stats.Malformed, stats.MissingText)
		}
	}

	return res
}

func loadStats(ctx context.Context, path string) (corpus.LoadStats, error) {
	_, stats, err := corpus.Load(ctx, path)
	return stats, err
}
