// Package testutil provides corpus fixtures and skip helpers for tests.
//
// Typical usage:
//
//	func TestMyPipeline(t *testing.T) {
//	    path := testutil.WriteCorpus(t, "first line", "second line")
//	    ...
//	}
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CorpusEnv names the environment variable pointing at a real JSONL corpus
// for integration tests.
const CorpusEnv = "VOCABTRAIN_TEST_CORPUS"

// Raw is written to a JSONL fixture verbatim instead of being marshalled,
// which is how tests inject malformed lines.
type Raw string

// WriteJSONL writes one line per record into a file named name under a
// fresh temporary directory and returns its path. Records are marshalled
// with encoding/json unless they are Raw.
func WriteJSONL(tb testing.TB, name string, records ...any) string {
	tb.Helper()

	var sb strings.Builder
	for _, rec := range records {
		if raw, ok := rec.(Raw); ok {
			sb.WriteString(string(raw))
			sb.WriteByte('\n')
			continue
		}

		b, err := json.Marshal(rec)
		if err != nil {
			tb.Fatalf("marshal fixture record %v: %v", rec, err)
		}
		sb.Write(b)
		sb.WriteByte('\n')
	}

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		tb.Fatalf("write fixture %s: %v", path, err)
	}

	return path
}

// WriteCorpus writes each line as {"text": line} to a temporary
// corpus.jsonl and returns its path.
func WriteCorpus(tb testing.TB, lines ...string) string {
	tb.Helper()

	records := make([]any, len(lines))
	for i, l := range lines {
		records[i] = map[string]string{"text": l}
	}

	return WriteJSONL(tb, "corpus.jsonl", records...)
}

// RequireCorpus skips the test unless CorpusEnv names a readable file and
// returns that path.
func RequireCorpus(tb testing.TB) string {
	tb.Helper()

	path := os.Getenv(CorpusEnv)
	if path == "" {
		tb.Skipf("%s not set; skipping corpus integration test", CorpusEnv)
	}

	if _, err := os.Stat(path); err != nil {
		tb.Skipf("corpus not found at %s=%q", CorpusEnv, path)
	}

	return path
}
