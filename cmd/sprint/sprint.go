package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/savings-sprint/internal/tui"
	"github.com/Veraticus/savings-sprint/internal/tui/themes"
)

func sprintCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Open the interactive savings dashboard",
		Long: `Open the savings dashboard: progress toward the goal, daily savings for
the last one or two weeks, and keys to adjust the target or period.
Changes are kept only after pressing s.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if theme == "" {
				theme = a.cfg.Theme
			}

			return tui.Run(cmd.Context(), a.tracker(cmd.Context()), a.store,
				tui.WithMoney(a.money),
				tui.WithTheme(themes.GetTheme(theme)),
			)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "color theme (default or catppuccin-mocha)")
	return cmd
}
