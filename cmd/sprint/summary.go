package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/ledger"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/tui/themes"
)

const chartWidth = 30

func summaryCmd() *cobra.Command {
	var (
		month int
		year  int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals and spending by category",
		Long: `Show income, expenses and balance for one calendar month (the current
month by default) next to the all-time totals, and chart spending by category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := timeNow()
			if month == 0 {
				month = int(now.Month())
			}
			if year == 0 {
				year = now.Year()
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("month must be 1..12, got %d", month)
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			txns, err := a.allTransactions(cmd.Context())
			if err != nil {
				return err
			}

			scope := txns
			if !all {
				scope = ledger.Apply(txns, monthFilter(year, time.Month(month)))
			}

			renderSummary(cmd.OutOrStdout(), a.money,
				ledger.Summarize(txns),
				ledger.MonthTotals(txns, year, time.Month(month)),
				time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local),
				ledger.CategoryBreakdown(scope))
			return nil
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "month 1..12 (default current)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "year (default current)")
	cmd.Flags().BoolVar(&all, "all", false, "chart categories over all time instead of the month")
	return cmd
}

func monthFilter(year int, month time.Month) ledger.Filter {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return ledger.Filter{From: model.FormatDate(first), To: model.FormatDate(last)}
}

func renderSummary(w io.Writer, money *cli.Money, overall, monthly ledger.Totals, month time.Time, breakdown []ledger.CategoryTotal) {
	totals := func(t ledger.Totals) string {
		balance := cli.IncomeStyle
		if t.Balance < 0 {
			balance = cli.ExpenseStyle
		}
		return fmt.Sprintf("Income   %s\nExpenses %s\nBalance  %s",
			cli.IncomeStyle.Render(money.Format(t.Income)),
			cli.ExpenseStyle.Render(money.Format(t.Expense)),
			balance.Render(money.Format(t.Balance)))
	}

	fmt.Fprintln(w, cli.RenderBox(cli.WalletIcon+" All time", totals(overall)))
	fmt.Fprintln(w, cli.RenderBox(cli.ChartIcon+" "+month.Format("January 2006"), totals(monthly)))

	expenses := ledger.ExpenseCategories(breakdown)
	if len(expenses) == 0 {
		fmt.Fprintln(w, cli.FormatInfo("No expenses to chart"))
		return
	}

	peak := expenses[0].Expense
	nameWidth := 0
	for _, c := range expenses {
		nameWidth = max(nameWidth, len([]rune(c.Category)))
	}

	var b strings.Builder
	for _, c := range expenses {
		name := c.Category + strings.Repeat(" ", nameWidth-len([]rune(c.Category)))
		bar := cli.Bar(c.Expense, peak, chartWidth)
		fmt.Fprintf(&b, "%s %s %s %s\n",
			themes.GetCategoryIcon(c.Category),
			name,
			cli.ExpenseStyle.Render(bar+strings.Repeat(" ", chartWidth-len([]rune(bar)))),
			money.Format(c.Expense))
	}
	fmt.Fprintln(w, cli.FormatTitle("Spending by category"))
	fmt.Fprint(w, b.String())
}

func categoriesCmd() *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the categories transactions can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			switch typ {
			case ledger.TypeAll:
				printCategories(w, model.TypeIncome)
				fmt.Fprintln(w)
				printCategories(w, model.TypeExpense)
			case string(model.TypeIncome), string(model.TypeExpense):
				printCategories(w, model.TransactionType(typ))
			default:
				return fmt.Errorf("type must be all, income or expense, got %q", typ)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", ledger.TypeAll, "all, income or expense")
	return cmd
}

func printCategories(w io.Writer, typ model.TransactionType) {
	title := "Expense categories"
	if typ == model.TypeIncome {
		title = "Income categories"
	}
	fmt.Fprintln(w, cli.FormatTitle(title))
	for _, name := range model.CategoriesByType(typ) {
		fmt.Fprintf(w, "  %s %s\n", themes.GetCategoryIcon(name), name)
	}
}
