package main

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"guidescan/internal/config"
	"guidescan/internal/guide"
	"guidescan/internal/output"
	"guidescan/internal/pipeline"
)

func newScanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan FASTA records (or a simulated sequence) for guide RNAs",
		Example: `  # Table of SpCas9 guides for every record
  guidescan scan --fasta ref.fa

  # Pipe FASTA in and write GFF3 to stdout
  zcat ref.fa.gz | guidescan scan --fasta - --format gff > guides.gff3

  # Literal PAM, best guides first, diagrams + JSON summary
  guidescan scan --fasta ref.fa --pam NAG --sort score --plot-dir plots --json run.json

  # Simulated 10 kb sequence at 40% GC
  guidescan scan --sim-len 10000 --sim-gc 0.4 --sim-seed 42 --format tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			_, err = pipeline.Run(cmd.Context(), cfg, cmd.OutOrStdout(), a.log)
			return err
		},
	}

	f := cmd.Flags()
	f.StringP("fasta", "f", "", `input FASTA or plain sequence file, gzip ok ("-" for stdin)`)
	f.StringP("pam", "p", "SpCas9", "PAM preset name or pattern over A/C/G/T/N")
	f.IntP("guide-len", "l", guide.DefaultLength, "guide length upstream of the PAM (bp)")
	f.String("format", "table", "output format: "+strings.Join(output.Formats(), ", "))
	f.StringP("out", "o", "-", `output path ("-" for stdout)`)
	f.String("json", "", "optional: write run summary JSON here")
	f.String("plot-dir", "", "optional: write one position diagram per record here")
	f.String("plot-format", "png", "diagram format: png, svg, pdf")
	f.String("sort", output.SortNone, "order within a record: none, position, score")
	f.Float64("min-score", 0, "drop guides scoring below this (0..1)")
	f.IntP("threads", "t", runtime.NumCPU(), "number of worker goroutines")
	f.Int("sim-len", 0, "simulate a random sequence of this length instead of reading FASTA")
	f.Float64("sim-gc", 0.5, "GC fraction of the simulated sequence")
	f.Int64("sim-seed", 0, "simulator seed (0 = time based)")

	// Bind the parameters to viper
	for _, name := range []string{
		"fasta", "pam", "guide-len", "format", "out", "json", "plot-dir", "plot-format",
		"sort", "min-score", "threads", "sim-len", "sim-gc", "sim-seed",
	} {
		_ = a.v.BindPFlag(name, f.Lookup(name))
	}
	return cmd
}
