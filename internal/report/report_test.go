package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/example/go-subword-vocab/internal/bpe"
	"github.com/example/go-subword-vocab/internal/corpus"
	"github.com/example/go-subword-vocab/internal/pipeline"
	"github.com/example/go-subword-vocab/internal/tokenizer"
)

func sampleResults(t *testing.T) []pipeline.Result {
	t.Helper()

	res, err := bpe.NewTrainer(bpe.Options{}).Train(bpe.SymbolsFromString("ababab"), 2)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	return []pipeline.Result{
		{
			Path:             "en.jsonl",
			Language:         tokenizer.English,
			Load:             corpus.LoadStats{Lines: 12, Records: 11, Malformed: 1},
			Cleaned:          10,
			Train:            8,
			Val:              1,
			Test:             1,
			WhitespaceTokens: 40,
			RegexTokens:      52,
			TopTokens:        []tokenizer.TokenCount{{Token: "the", Count: 7}},
			Symbols:          res.InitialLength,
			FinalSymbols:     res.FinalLength,
			Rules:            res.Rules,
			Elapsed:          1500 * time.Microsecond,
		},
		{
			Path:     "ru.jsonl",
			Language: tokenizer.Russian,
		},
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleResults(t), Options{Merges: 1}, &buf)
	out := buf.String()

	for _, want := range []string{"CORPUS", "COMPRESSION", "en.jsonl", "ru.jsonl", "3.00x", "0.00x", `"the"×7`, "(97,98)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "(256,256)") {
		t.Errorf("table listed more merges than requested:\n%s", out)
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(sampleResults(t), Options{Merges: 5}, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var got struct {
		Corpora []struct {
			Path  string `json:"path"`
			Split struct {
				Train int `json:"train"`
			} `json:"split"`
			BPE struct {
				Merges      int     `json:"merges"`
				Compression float64 `json:"compression"`
				Rules       []struct {
					Rank   int    `json:"rank"`
					Result int    `json:"result"`
					Piece  string `json:"piece"`
				} `json:"rules"`
			} `json:"bpe"`
			ElapsedMS float64 `json:"elapsed_ms"`
		} `json:"corpora"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if len(got.Corpora) != 2 {
		t.Fatalf("corpora = %d; want 2", len(got.Corpora))
	}

	en := got.Corpora[0]
	if en.Split.Train != 8 || en.BPE.Merges != 2 || en.BPE.Compression != 3 {
		t.Errorf("en summary = %+v", en)
	}

	if len(en.BPE.Rules) != 2 || en.BPE.Rules[1].Piece != "abab" || en.BPE.Rules[1].Result != 257 {
		t.Errorf("en rules = %+v", en.BPE.Rules)
	}

	if en.ElapsedMS != 1.5 {
		t.Errorf("elapsed_ms = %v; want 1.5", en.ElapsedMS)
	}

	if got.Corpora[1].BPE.Rules != nil {
		t.Errorf("empty corpus should have no rules, got %+v", got.Corpora[1].BPE.Rules)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write("yaml", nil, Options{}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWrite_Dispatch(t *testing.T) {
	for _, format := range []string{FormatNameTable, FormatNameJSON} {
		var buf bytes.Buffer
		if err := Write(format, sampleResults(t), Options{}, &buf); err != nil {
			t.Fatalf("Write(%q): %v", format, err)
		}

		if !strings.Contains(buf.String(), "en.jsonl") {
			t.Errorf("Write(%q) output missing corpus path", format)
		}
	}
}
