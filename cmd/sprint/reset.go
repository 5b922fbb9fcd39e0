package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/goal"
	"github.com/Veraticus/savings-sprint/internal/model"
)

func resetCmd() *cobra.Command {
	var (
		force     bool
		resetGoal bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all transactions",
		Long: `Reset deletes every recorded transaction. The savings goal is kept unless
--goal is given, in which case it returns to its defaults.

This cannot be undone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			count, err := a.store.GetTransactionCount(ctx)
			if err != nil {
				return err
			}
			if count == 0 && !resetGoal {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No transactions found. Nothing to reset."))
				return nil
			}

			if !force {
				reader := cli.NewLineReader(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, confirmErr := reader.Confirm(ctx, fmt.Sprintf(
					"Are you sure you want to delete all %d transactions? This cannot be undone.", count))
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing deleted"))
					return nil
				}
			}

			removed, err := a.store.ClearTransactions(ctx)
			if err != nil {
				return err
			}
			slog.Info("Cleared transactions", "count", removed, "goal_reset", resetGoal)
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted %d transactions", removed)))

			if resetGoal {
				store := goal.NewStore(a.store, timeNow)
				if err := store.Save(ctx, model.DefaultGoal(timeNow())); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Savings goal reset to defaults"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&resetGoal, "goal", false, "also reset the savings goal")
	return cmd
}
