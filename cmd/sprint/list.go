package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/ledger"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/tui/themes"
)

func listCmd() *cobra.Command {
	var (
		filter   ledger.Filter
		sortBy   string
		desc     bool
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions",
		Example: `  sprint list --type expense --month 03
  sprint list --query rent --sort amount --desc
  sprint list --page 2 --page-size 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := filter.Validate(); err != nil {
				return err
			}
			field, err := ledger.ParseSortField(sortBy)
			if err != nil {
				return err
			}
			size, err := ledger.ValidatePageSize(pageSize)
			if err != nil {
				return err
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

			matched := ledger.Sort(ledger.Apply(txns, filter), field, desc)
			p := ledger.Paginate(matched, page, size)
			renderPage(cmd.OutOrStdout(), p, a.money)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Type, "type", "t", ledger.TypeAll, "all, income or expense")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "match text in note or category")
	cmd.Flags().StringVarP(&filter.Month, "month", "m", ledger.TypeAll, "month 01..12 or all")
	cmd.Flags().StringVar(&filter.From, "from", "", "earliest date, yyyy-mm-dd")
	cmd.Flags().StringVar(&filter.To, "to", "", "latest date, yyyy-mm-dd")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", string(ledger.SortByDate), "date, amount, category or type")
	cmd.Flags().BoolVar(&desc, "desc", true, "sort descending")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", ledger.DefaultPageSize, "rows per page (5, 10, 20 or 50)")

	return cmd
}

func renderPage(w io.Writer, p ledger.Page, money *cli.Money) {
	if p.TotalItems == 0 {
		fmt.Fprintln(w, cli.FormatInfo("No transactions match"))
		return
	}

	rows := make([][]string, 0, len(p.Items))
	for _, txn := range p.Items {
		amount := money.Format(txn.Amount)
		if txn.Type == model.TypeExpense {
			amount = "-" + amount
		}
		rows = append(rows, []string{
			txn.Date,
			string(txn.Type),
			themes.GetCategoryIcon(txn.Category) + " " + txn.Category,
			amount,
			cli.Truncate(txn.Note, 32),
			txn.ID,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(cli.SubtleColor)).
		Headers("Date", "Type", "Category", "Amount", "Note", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cli.TableHeaderStyle
			}
			style := cli.TableCellStyle
			if col == 3 {
				if p.Items[row].Type == model.TypeIncome {
					return style.Foreground(cli.IncomeColor)
				}
				return style.Foreground(cli.ExpenseColor)
			}
			return style
		})

	fmt.Fprintln(w, t.String())
	footer := fmt.Sprintf("Showing %d-%d of %d · page %d of %d",
		p.FirstIndex(), p.LastIndex(), p.TotalItems, p.Number, p.TotalPages)
	switch {
	case p.HasNext():
		footer += fmt.Sprintf(" · next: --page %d", p.Number+1)
	case p.HasPrev():
		footer += fmt.Sprintf(" · previous: --page %d", p.Number-1)
	}
	fmt.Fprintln(w, cli.SubtleStyle.Render(footer))
}
