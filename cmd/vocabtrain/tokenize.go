package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/example/go-subword-vocab/internal/tokenizer"
	"github.com/spf13/cobra"
)

const (
	modeRegex      = "regex"
	modeWhitespace = "whitespace"
)

func newTokenizeCmd() *cobra.Command {
	var (
		lang  string
		mode  string
		jsonl bool
	)

	cmd := &cobra.Command{
		Use:   "tokenize [file|-]",
		Short: "Split each input line into tokens, one line of tab-separated tokens per input line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if lang == "" && len(cfg.Corpus.Languages) > 0 {
				lang = cfg.Corpus.Languages[0]
			}

			tok, err := newTokenizer(mode, lang)
			if err != nil {
				return err
			}

			lines, err := readInput(cmd.Context(), cmd.InOrStdin(), inputPath(args), jsonl)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, line := range lines {
				if _, err := fmt.Fprintln(w, strings.Join(tok.Tokenize(line), "\t")); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Alphabet for the regex tokenizer (default: first of --languages)")
	cmd.Flags().StringVar(&mode, "mode", modeRegex, "Tokenizer: regex|whitespace")
	cmd.Flags().BoolVar(&jsonl, "jsonl", false, `Read JSONL records and tokenize their "text" field`)

	return cmd
}

func newTokenizer(mode, lang string) (tokenizer.Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case modeWhitespace:
		return tokenizer.WhitespaceTokenizer{}, nil
	case modeRegex, "":
		l, err := tokenizer.ParseLanguage(lang)
		if err != nil {
			return nil, err
		}
		re, err := tokenizer.NewRegexTokenizer(l)
		if err != nil {
			return nil, err
		}
		return re, nil
	default:
		return nil, fmt.Errorf("--mode must be %q or %q, got %q", modeRegex, modeWhitespace, mode)
	}
}
