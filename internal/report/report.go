// Package report renders pipeline results for the vocabtrain train command.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/go-subword-vocab/internal/bpe"
	"github.com/example/go-subword-vocab/internal/pipeline"
	"github.com/example/go-subword-vocab/internal/tokenizer"
	"github.com/olekukonko/tablewriter"
)

// Output formats accepted by Write.
const (
	FormatNameTable = "table"
	FormatNameJSON  = "json"
)

// Options controls optional report sections.
type Options struct {
	// Merges is how many of the earliest merge rules to list per corpus.
	Merges int
}

// Write renders results in the named format.
func Write(format string, results []pipeline.Result, opts Options, w io.Writer) error {
	switch format {
	case FormatNameTable:
		FormatTable(results, opts, w)
		return nil
	case FormatNameJSON:
		return FormatJSON(results, opts, w)
	default:
		return fmt.Errorf("unknown report format %q (want %s|%s)", format, FormatNameTable, FormatNameJSON)
	}
}

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable summary table to w, followed by the
// top tokens and the requested merge listing for each corpus.
func FormatTable(results []pipeline.Result, opts Options, w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"CORPUS", "LANG", "LINES", "TRAIN", "VAL", "TEST", "WS TOKENS", "RE TOKENS", "MERGES", "COMPRESSION"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, r := range results {
		table.Append([]string{
			r.Path,
			string(r.Language),
			strconv.Itoa(r.Cleaned),
			strconv.Itoa(r.Train),
			strconv.Itoa(r.Val),
			strconv.Itoa(r.Test),
			strconv.Itoa(r.WhitespaceTokens),
			strconv.Itoa(r.RegexTokens),
			strconv.Itoa(r.Merges()),
			fmt.Sprintf("%.2fx", compression(r)),
		})
	}
	table.Render()

	for _, r := range results {
		if len(r.TopTokens) > 0 {
			fmt.Fprintf(w, "\n%s top tokens: %s\n", r.Path, formatTopTokens(r.TopTokens))
		}

		rules := firstRules(r.Rules, opts.Merges)
		if len(rules) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s merges:\n", r.Path)
		for _, m := range rules {
			fmt.Fprintf(w, "  %4d  %-12s -> %-5d %q\n", m.Rank, m.Pair, m.Result, m.Piece)
		}
	}
}

func formatTopTokens(top []tokenizer.TokenCount) string {
	parts := make([]string, len(top))
	for i, tc := range top {
		parts[i] = fmt.Sprintf("%q×%d", tc.Token, tc.Count)
	}
	return strings.Join(parts, " ")
}

// ---------------------------------------------------------------------------
// JSON
// ---------------------------------------------------------------------------

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Corpora []jsonCorpus `json:"corpora"`
}

type jsonCorpus struct {
	Path      string                 `json:"path"`
	Language  string                 `json:"language"`
	Load      jsonLoad               `json:"load"`
	Split     jsonSplit              `json:"split"`
	Tokens    jsonTokens             `json:"tokens"`
	BPE       jsonBPE                `json:"bpe"`
	ElapsedMS float64                `json:"elapsed_ms"`
	TopTokens []tokenizer.TokenCount `json:"top_tokens,omitempty"`
}

type jsonLoad struct {
	Lines       int `json:"lines"`
	Records     int `json:"records"`
	Malformed   int `json:"malformed"`
	MissingText int `json:"missing_text"`
	Cleaned     int `json:"cleaned"`
}

type jsonSplit struct {
	Train int `json:"train"`
	Val   int `json:"val"`
	Test  int `json:"test"`
}

type jsonTokens struct {
	Whitespace int `json:"whitespace"`
	Regex      int `json:"regex"`
}

type jsonBPE struct {
	Symbols      int         `json:"symbols"`
	FinalSymbols int         `json:"final_symbols"`
	Merges       int         `json:"merges"`
	Compression  float64     `json:"compression"`
	Rules        []mergeLine `json:"rules,omitempty"`
}

type mergeLine struct {
	Rank   int      `json:"rank"`
	Pair   bpe.Pair `json:"-"`
	First  int      `json:"first"`
	Second int      `json:"second"`
	Result int      `json:"result"`
	Piece  string   `json:"piece"`
}

// FormatJSON writes a JSON report of results to w.
func FormatJSON(results []pipeline.Result, opts Options, w io.Writer) error {
	jr := jsonReport{Corpora: make([]jsonCorpus, len(results))}
	for i, r := range results {
		jr.Corpora[i] = jsonCorpus{
			Path:     r.Path,
			Language: string(r.Language),
			Load: jsonLoad{
				Lines:       r.Load.Lines,
				Records:     r.Load.Records,
				Malformed:   r.Load.Malformed,
				MissingText: r.Load.MissingText,
				Cleaned:     r.Cleaned,
			},
			Split:  jsonSplit{Train: r.Train, Val: r.Val, Test: r.Test},
			Tokens: jsonTokens{Whitespace: r.WhitespaceTokens, Regex: r.RegexTokens},
			BPE: jsonBPE{
				Symbols:      r.Symbols,
				FinalSymbols: r.FinalSymbols,
				Merges:       r.Merges(),
				Compression:  compression(r),
				Rules:        firstRules(r.Rules, opts.Merges),
			},
			ElapsedMS: float64(r.Elapsed.Microseconds()) / 1000,
			TopTokens: r.TopTokens,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jr)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func compression(r pipeline.Result) float64 {
	if r.FinalSymbols == 0 {
		return 0
	}
	return float64(r.Symbols) / float64(r.FinalSymbols)
}

// firstRules returns up to n rules in rank order with their byte pieces.
func firstRules(rules *bpe.MergeRuleSet, n int) []mergeLine {
	if n <= 0 || rules.Len() == 0 {
		return nil
	}
	all := rules.Rules()
	all = all[:min(n, len(all))]

	lines := make([]mergeLine, len(all))
	for i, m := range all {
		piece, _ := rules.Bytes(m.Result)
		lines[i] = mergeLine{
			Rank:   m.Rank,
			Pair:   m.Pair,
			First:  int(m.Pair.First),
			Second: int(m.Pair.Second),
			Result: int(m.Result),
			Piece:  string(piece),
		}
	}
	return lines
}
