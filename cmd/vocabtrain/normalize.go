package main

import (
	"bufio"
	"fmt"

	"github.com/example/go-subword-vocab/internal/text"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var jsonl bool

	cmd := &cobra.Command{
		Use:   "normalize [file|-]",
		Short: "Print the cleaned form of each input line, dropping lines that clean to nothing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readInput(cmd.Context(), cmd.InOrStdin(), inputPath(args), jsonl)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, line := range text.CleanLines(lines) {
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonl, "jsonl", false, `Read JSONL records and normalize their "text" field`)

	return cmd
}
