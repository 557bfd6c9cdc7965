package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/example/go-subword-vocab/internal/corpus"
)

// readInput returns the lines of path, or of stdin when path is "" or "-".
// With jsonl set the "text" field of each record is used instead.
func readInput(ctx context.Context, stdin io.Reader, path string, jsonl bool) ([]string, error) {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	if jsonl {
		lines, _, err := corpus.Read(ctx, r)
		return lines, err
	}

	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}

func inputPath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
