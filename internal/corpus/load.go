// Package corpus reads line-delimited JSON corpora and partitions cleaned
// lines into train, validation and test sets.
package corpus

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// maxLineBytes bounds a single JSONL record.
const maxLineBytes = 64 << 20

// LoadStats counts what happened to each input line.
type LoadStats struct {
	Lines       int `json:"lines"`        // non-blank lines read
	Records     int `json:"records"`      // lines that produced a text
	Malformed   int `json:"malformed"`    // lines that are not a JSON object
	MissingText int `json:"missing_text"` // objects without a non-empty string "text"
}

type record struct {
	Text json.RawMessage `json:"text"`
}

// Load reads the "text" field of every JSON object in the file at path.
// Malformed lines and objects without usable text are skipped and counted.
// A file that cannot be opened or read is an error naming the path.
func Load(ctx context.Context, path string) ([]string, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open corpus %q: %w", path, err)
	}
	defer f.Close()

	texts, stats, err := Read(ctx, f)
	if err != nil {
		return nil, stats, fmt.Errorf("read corpus %q: %w", path, err)
	}
	return texts, stats, nil
}

// Read is Load for an already open stream.
func Read(ctx context.Context, r io.Reader) ([]string, LoadStats, error) {
	var (
		texts []string
		stats LoadStats
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.Lines++

		text, ok, err := decodeText(line)
		switch {
		case err != nil:
			stats.Malformed++
			slog.Debug("corpus: skipping malformed line", "line", lineNo, "error", err)
		case !ok:
			stats.MissingText++
		default:
			stats.Records++
			texts = append(texts, text)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, stats, err
	}

	return texts, stats, nil
}

// decodeText returns the non-empty string "text" field of a JSON object.
func decodeText(line []byte) (string, bool, error) {
	if line[0] != '{' {
		return "", false, fmt.Errorf("not a JSON object")
	}

	var rec record
	if err := json.Unmarshal(line, &rec); err != nil {
		return "", false, err
	}
	if len(rec.Text) == 0 {
		return "", false, nil
	}

	var text string
	if err := json.Unmarshal(rec.Text, &text); err != nil {
		// null, numbers, arrays and objects carry no usable text
		return "", false, nil
	}
	return text, text != "", nil
}
