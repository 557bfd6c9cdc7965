package doctor_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/go-subword-vocab/internal/corpus"
	"github.com/example/go-subword-vocab/internal/doctor"
	"github.com/example/go-subword-vocab/internal/testutil"
)

func stubLoad(stats corpus.LoadStats, err error) doctor.LoadFunc {
	return func(context.Context, string) (corpus.LoadStats, error) { return stats, err }
}

// ---------------------------------------------------------------------------
// all-pass scenario
// ---------------------------------------------------------------------------

func TestRun_AllChecksPass(t *testing.T) {
	cfg := doctor.Config{
		Settings:  func() error { return nil },
		Files:     []string{"en.jsonl", "ru.jsonl"},
		Languages: []string{"en", "ru"},
		Load:      stubLoad(corpus.LoadStats{Lines: 3, Records: 3}, nil),
	}

	var out strings.Builder

	res := doctor.Run(context.Background(), cfg, &out)
	if res.Failed() {
		t.Fatalf("expected no failures, got: %v", res.Failures())
	}

	if strings.Contains(out.String(), doctor.FailMark) {
		t.Errorf("output contains %s on all-pass run:\n%s", doctor.FailMark, out.String())
	}

	if !strings.Contains(out.String(), "corpus ru.jsonl [ru]: 3 record(s)") {
		t.Errorf("output missing corpus line:\n%s", out.String())
	}
}

func TestRun_SettingsFailure(t *testing.T) {
	cfg := doctor.Config{
		Settings:  func() error { return errors.New("bpe.max_merges must not be negative") },
		Files:     []string{"en.jsonl"},
		Languages: []string{"en"},
		Load:      stubLoad(corpus.LoadStats{Records: 1}, nil),
	}

	var out strings.Builder

	res := doctor.Run(context.Background(), cfg, &out)
	if !res.Failed() {
		t.Fatal("expected failure for invalid settings")
	}

	if !strings.Contains(res.Failures()[0], "max_merges") {
		t.Errorf("failure message = %q", res.Failures()[0])
	}
}

func TestRun_UnknownLanguageStopsCorpusChecks(t *testing.T) {
	loaded := false
	cfg := doctor.Config{
		Files:     []string{"a.jsonl"},
		Languages: []string{"klingon"},
		Load: func(context.Context, string) (corpus.LoadStats, error) {
			loaded = true
			return corpus.LoadStats{}, nil
		},
	}

	var out strings.Builder

	res := doctor.Run(context.Background(), cfg, &out)
	if !res.Failed() {
		t.Fatal("expected failure for unknown language")
	}

	if loaded {
		t.Error("corpus loaded despite pairing failure")
	}
}

func TestRun_NoFilesFails(t *testing.T) {
	var out strings.Builder

	res := doctor.Run(context.Background(), doctor.Config{Languages: []string{"en"}}, &out)
	if !res.Failed() {
		t.Fatal("expected failure with no corpus files")
	}
}

func TestRun_LoadErrorAndEmptyCorpus(t *testing.T) {
	tests := []struct {
		name  string
		stats corpus.LoadStats
		err   error
		want  string
	}{
		{"unreadable", corpus.LoadStats{}, errors.New("permission denied"), "permission denied"},
		{"no text", corpus.LoadStats{Lines: 4, Malformed: 4}, nil, "no usable text in 4 line(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := doctor.Config{
				Files:     []string{"x.jsonl"},
				Languages: []string{"en"},
				Load:      stubLoad(tt.stats, tt.err),
			}

			var out strings.Builder

			res := doctor.Run(context.Background(), cfg, &out)
			if !res.Failed() {
				t.Fatal("expected failure")
			}

			if !strings.Contains(out.String(), doctor.FailMark+" corpus x.jsonl: "+tt.want) {
				t.Errorf("output = %q; want it to mention %q", out.String(), tt.want)
			}
		})
	}
}

func TestRun_DefaultLoaderReadsFile(t *testing.T) {
	path := testutil.WriteCorpus(t, "hello there", "", "general kenobi")
	missing := path + ".missing"

	var out strings.Builder

	res := doctor.Run(context.Background(), doctor.Config{
		Files:     []string{path, missing},
		Languages: []string{"en"},
	}, &out)

	failures := res.Failures()
	if len(failures) != 1 || !strings.Contains(failures[0], missing) {
		t.Fatalf("failures = %v; want only the missing file", failures)
	}

	if !strings.Contains(out.String(), doctor.PassMark+" corpus "+path+" [en]: 2 record(s)") {
		t.Errorf("output missing pass line for %s:\n%s", path, out.String())
	}
}

func TestResult_AddFailure(t *testing.T) {
	var res doctor.Result
	if res.Failed() {
		t.Fatal("zero Result reports failure")
	}

	res.AddFailure("external")

	got := res.Failures()
	if !res.Failed() || len(got) != 1 || got[0] != "external" {
		t.Errorf("Failures() = %v", got)
	}

	got[0] = "mutated"
	if res.Failures()[0] != "external" {
		t.Error("Failures() exposes internal slice")
	}
}
