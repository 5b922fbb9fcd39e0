package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/common"
	"github.com/Veraticus/savings-sprint/internal/model"
)

// transactionFlags are shared by add and edit.
type transactionFlags struct {
	typ      string
	amount   string
	category string
	note     string
	date     string
}

func (f *transactionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.typ, "type", "t", "", "income or expense")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount, e.g. 1250 or 12.50")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category (see 'sprint categories')")
	cmd.Flags().StringVarP(&f.note, "note", "n", "", "free-form note")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "date as yyyy-mm-dd (default today)")
}

func addCmd() *cobra.Command {
	var flags transactionFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Example: `  sprint add --type expense --amount 450 --category "Food & Dining" --note lunch
  sprint add -t income -a 65000 -c Salary -d 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			txn, err := flags.build(model.Transaction{ID: model.NewTransactionID()}, nil, timeNow())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("category") {
				detector, detectErr := newDetector()
				if detectErr != nil {
					return detectErr
				}
				if match, ok := detector.Categorize(txn); ok {
					txn.Category = match.Category
				}
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.store.AddTransaction(cmd.Context(), &txn); err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			slog.Debug("Transaction added", "id", txn.ID, "type", txn.Type, "amount", txn.Amount)
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s %s (%s) on %s",
				txn.Type, a.money.Format(txn.Amount), txn.Category, txn.Date)))
			fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("id: "+txn.ID))
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func editCmd() *cobra.Command {
	var flags transactionFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a recorded transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			existing, err := a.store.GetTransaction(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("No transaction with id %s", args[0]), err)
				}
				return err
			}

			txn, err := flags.build(*existing, cmd.Flags().Changed, timeNow())
			if err != nil {
				return err
			}

			if err := a.store.UpdateTransaction(cmd.Context(), &txn); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated %s: %s %s (%s) on %s",
				txn.ID, txn.Type, a.money.Format(txn.Amount), txn.Category, txn.Date)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			txn, err := a.store.GetTransaction(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("No transaction with id %s", args[0]), err)
				}
				return err
			}

			if !yes {
				reader := cli.NewLineReader(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, confirmErr := reader.Confirm(cmd.Context(), fmt.Sprintf("Delete %s %s (%s) on %s?",
					txn.Type, a.money.Format(txn.Amount), txn.Category, txn.Date))
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing deleted"))
					return nil
				}
			}

			if err := a.store.DeleteTransaction(cmd.Context(), txn.ID); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted "+txn.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// build applies the flags to base. With a nil changed func every flag is
// applied; otherwise only flags the user set.
func (f *transactionFlags) build(base model.Transaction, changed func(string) bool, now time.Time) (model.Transaction, error) {
	set := func(name string) bool { return changed == nil || changed(name) }
	txn := base

	if set("type") {
		typ := model.TransactionType(strings.ToLower(strings.TrimSpace(f.typ)))
		if !typ.IsValid() {
			return txn, common.NewUserError(fmt.Sprintf("Type must be income or expense, got %q", f.typ), nil)
		}
		txn.Type = typ
	}

	if set("amount") {
		amount, err := model.ParseAmount(f.amount)
		if err != nil {
			return txn, common.NewUserError("Amount must be a positive number", err)
		}
		if amount == 0 {
			return txn, common.NewUserError("Amount must be greater than zero", nil)
		}
		txn.Amount = amount
	}

	if set("category") {
		txn.Category = strings.TrimSpace(f.category)
	}
	if txn.Category == "" {
		txn.Category = model.OtherCategory
	}
	if !model.IsValidCategory(txn.Type, txn.Category) {
		return txn, common.NewUserError(fmt.Sprintf("%q is not an %s category; choose one of: %s",
			txn.Category, txn.Type, strings.Join(model.CategoriesByType(txn.Type), ", ")), nil)
	}

	if set("note") {
		txn.Note = strings.TrimSpace(f.note)
	}

	if set("date") {
		date, err := parseDateFlag(f.date, now)
		if err != nil {
			return txn, common.NewUserError(err.Error(), nil)
		}
		txn.Date = date
	}

	return txn, nil
}
