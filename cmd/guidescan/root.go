package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"guidescan/internal/config"
	"guidescan/internal/logging"
)

// app carries what the commands share; tests swap the logger factory.
type app struct {
	v         *viper.Viper
	log       *zap.Logger
	newLogger func(verbose bool) (*zap.Logger, error)
}

func newApp() *app {
	return &app{v: config.New(), log: zap.NewNop(), newLogger: logging.New}
}

// newRootCmd represents the base command when called without any subcommands.
func newRootCmd(a *app) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "guidescan",
		Short: "Find CRISPR guide-RNA sites next to a PAM on both strands",
		Long: `guidescan scans DNA sequences for a degenerate PAM (N matches any base)
on the forward strand and on the reverse complement, extracts the guide
window immediately upstream of every match, and scores each guide by how
close its GC content is to 50%.`,
		Version:       fmt.Sprintf("%s (commit %s, %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadFile(a.v, cfgFile); err != nil {
				return err
			}
			logger, err := a.newLogger(a.v.GetBool("verbose"))
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.log = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (flags and GUIDESCAN_* env override it)")
	root.PersistentFlags().BoolP("verbose", "v", false, "debug logging to stderr")
	root.PersistentFlags().String("pam-file", "", "YAML file with extra PAM presets")
	_ = a.v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	_ = a.v.BindPFlag("pam-file", root.PersistentFlags().Lookup("pam-file"))

	root.AddCommand(newScanCmd(a), newPAMsCmd(a), newRevCompCmd())
	return root
}
