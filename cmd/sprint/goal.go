package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/goal"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/tui/components"
)

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Show or change the savings goal",
		Long: `Show the savings goal and its progress for the current period, or change
the target amount and the period it is tracked over.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGoalShow(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the goal and its progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGoalShow(cmd)
		},
	})
	cmd.AddCommand(goalSetCmd())
	cmd.AddCommand(goalAdjustCmd())
	cmd.AddCommand(goalPeriodCmd())

	return cmd
}

func runGoalShow(cmd *cobra.Command) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	txns, err := a.allTransactions(cmd.Context())
	if err != nil {
		return err
	}

	snap, err := a.tracker(cmd.Context()).Refresh(cmd.Context(), txns)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning("A new period started but could not be saved: "+err.Error()))
	}
	renderGoal(cmd.OutOrStdout(), snap, a.money)
	return nil
}

func renderGoal(w io.Writer, snap goal.Snapshot, money *cli.Money) {
	stats := snap.Stats
	saved := cli.IncomeStyle
	if stats.CurrentSavings < 0 {
		saved = cli.ExpenseStyle
	}

	body := strings.Join([]string{
		fmt.Sprintf("Period     %s, started %s, %d days left",
			components.PeriodLabel(snap.Goal),
			snap.Goal.StartDate.In(snap.Now.Location()).Format("2 Jan 2006"),
			goal.DaysRemaining(snap.Goal, snap.Now)),
		fmt.Sprintf("Target     %s", money.Format(stats.GoalAmount)),
		fmt.Sprintf("Income     %s", cli.IncomeStyle.Render(money.Format(stats.TotalIncome))),
		fmt.Sprintf("Expenses   %s", cli.ExpenseStyle.Render(money.Format(stats.TotalExpenses))),
		fmt.Sprintf("Saved      %s", saved.Render(money.Format(stats.CurrentSavings))),
		fmt.Sprintf("Remaining  %s", money.Format(stats.Remaining)),
		fmt.Sprintf("Progress   %s %.0f%%", cli.Bar(max(stats.Progress, 0), 100, 30), stats.Progress),
	}, "\n")

	fmt.Fprintln(w, cli.RenderBox(cli.TargetIcon+" Savings goal", body))
	if stats.Achieved {
		fmt.Fprintln(w, cli.FormatSuccess(cli.TrophyIcon+" Goal reached for this period!"))
	}
	if snap.RolledOver {
		fmt.Fprintln(w, cli.FormatInfo("A new period has started"))
	}
}

// withTracker runs fn against the persisted goal and saves the result.
func withTracker(cmd *cobra.Command, fn func(*goal.Tracker) error) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	tracker := a.tracker(cmd.Context())
	if err := fn(tracker); err != nil {
		return err
	}
	if err := tracker.Save(cmd.Context()); err != nil {
		return err
	}

	g := tracker.Goal()
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Goal saved: %s %s",
		a.money.Format(g.Amount), strings.ToLower(components.PeriodLabel(g)))))
	return nil
}

func goalSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <amount>",
		Short: "Set the target amount",
		Long: fmt.Sprintf(`Set the target amount. Anything that is not a digit is ignored, and the
result is kept between %d and %d.`, model.MinGoalAmount, model.MaxGoalAmount),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd, func(t *goal.Tracker) error {
				t.SetAmountInput(args[0])
				return nil
			})
		},
	}
}

func goalAdjustCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <delta>",
		Short: "Raise or lower the target",
		Example: `  sprint goal adjust 500
  sprint goal adjust -- -500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
			if err != nil {
				return fmt.Errorf("delta must be a number, got %q", args[0])
			}
			return withTracker(cmd, func(t *goal.Tracker) error {
				t.AdjustAmount(delta)
				return nil
			})
		},
	}
}

func goalPeriodCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:       "period <weekly|monthly|custom>",
		Short:     "Change the goal period; a new period starts now",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.PeriodWeekly), string(model.PeriodMonthly), string(model.PeriodCustom)},
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := model.ParseGoalPeriod(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("days") && days <= 0 {
				return fmt.Errorf("days must be positive, got %d", days)
			}
			return withTracker(cmd, func(t *goal.Tracker) error {
				t.ChangePeriod(period, days)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "length of a custom period in days")
	return cmd
}
