package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"guidescan/internal/fasta"
	"guidescan/internal/strand"
)

func newRevCompCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revcomp [sequence...]",
		Short: "Print the reverse complement of each sequence (stdin when none given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				args = []string{fasta.Normalize(string(raw))}
			}
			for _, s := range args {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(strand.ReverseComplement([]byte(s)))); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
