package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/go-subword-vocab/internal/doctor"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor [corpus.jsonl...]",
		Short: "Check settings and corpus files before a training run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			files := cfg.Corpus.Files
			if len(args) > 0 {
				files = args
			}

			out := cmd.OutOrStdout()
			result := doctor.Run(cmd.Context(), doctor.Config{
				Settings:  cfg.Validate,
				Files:     files,
				Languages: cfg.Corpus.Languages,
			}, out)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(out, "doctor checks passed")

			return nil
		},
	}

	return cmd
}
