package main

import (
	"log/slog"

	"github.com/example/go-subword-vocab/internal/config"
	"github.com/example/go-subword-vocab/internal/pipeline"
	"github.com/example/go-subword-vocab/internal/report"
	"github.com/spf13/cobra"
)

func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train [corpus.jsonl...]",
		Short: "Clean, split, tokenize and learn BPE merges for each corpus",
		Long: `Each corpus is a JSONL file whose records carry a "text" field.
Files given as arguments replace --corpus-files. --languages lists one
language per file, in order, or a single language for all of them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			files := cfg.Corpus.Files
			if len(args) > 0 {
				files = args
			}

			corpora, err := pipeline.PairCorpora(files, cfg.Corpus.Languages)
			if err != nil {
				return err
			}

			format, err := config.NormalizeFormat(cfg.Output.Format)
			if err != nil {
				return err
			}

			results, err := pipeline.Run(cmd.Context(), corpora, pipeline.Options{
				Split:       cfg.SplitOptions(),
				MaxMerges:   cfg.BPE.MaxMerges,
				Shards:      cfg.BPE.Shards,
				TopTokens:   cfg.Output.TopTokens,
				Concurrency: cfg.Corpus.Concurrency,
				Logger:      slog.Default(),
			})
			if err != nil {
				return err
			}

			return report.Write(format, results, report.Options{Merges: cfg.Output.Merges}, cmd.OutOrStdout())
		},
	}

	return cmd
}
