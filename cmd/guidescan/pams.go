package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"guidescan/internal/motif"
)

func newPAMsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "pams",
		Short:   "List the PAM presets accepted by --pam",
		Aliases: []string{"list-pams"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := motif.Builtin()
			if path := a.v.GetString("pam-file"); path != "" {
				var err error
				if presets, err = presets.LoadPresets(path); err != nil {
					return err
				}
			}
			tbl := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("name", "pattern", "note")
			for _, name := range presets.Names() {
				p, _ := presets.Get(name)
				tbl.Row(p.Name, p.Pattern, p.Note)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
			return err
		},
	}
}
