package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/common"
	"github.com/Veraticus/savings-sprint/internal/model"
)

// jsonTransaction is one element of a browser-exported transaction array.
// Amounts may be JSON numbers or numeric strings.
type jsonTransaction struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Category string           `json:"category"`
	Note     string           `json:"note"`
	Date     string           `json:"date"`
	Amount   *decimal.Decimal `json:"amount"`
}

func importJSONCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-json <file>",
		Short: "Import a JSON array of transactions",
		Long: `Import transactions from a JSON array such as the one the browser version
of the tracker keeps under its "transactions" key. Use - to read stdin.
Entries whose id is already stored are skipped; invalid entries are reported
and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0]) // #nosec G304
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			txns, rejected, err := decodeTransactions(in)
			if err != nil {
				return err
			}
			detector, err := newDetector()
			if err != nil {
				return err
			}
			detector.Apply(txns)
			for _, msg := range rejected {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(msg))
			}
			if len(txns) == 0 {
				return common.NewUserError("No valid transactions found to import", common.ErrNoTransactions)
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be imported", len(txns))))
				return nil
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			inserted, err := saveInBatches(cmd.Context(), a.store, txns, nil)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions (%d already present, %d rejected)",
				inserted, len(txns)-inserted, len(rejected))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "validate and report without saving")
	return cmd
}

func exportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json",
		Short: "Write all transactions as a JSON array to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			txns, err := a.allTransactions(cmd.Context())
			if err != nil {
				return err
			}
			if txns == nil {
				txns = []model.Transaction{}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(txns)
		},
	}
}

// decodeTransactions parses the array and validates each entry. Invalid
// entries are returned as messages; duplicate IDs keep the first entry.
func decodeTransactions(r io.Reader) ([]model.Transaction, []string, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, common.NewUserError("Input is not a JSON array of transactions", err)
	}

	var (
		txns     []model.Transaction
		rejected []string
		seen     = make(map[string]bool)
	)
	for i, msg := range raw {
		var jt jsonTransaction
		if err := json.Unmarshal(msg, &jt); err != nil {
			rejected = append(rejected, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}

		txn, err := jt.toModel()
		if err != nil {
			rejected = append(rejected, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		if seen[txn.ID] {
			slog.Debug("Skipping repeated id in input", "id", txn.ID)
			continue
		}
		seen[txn.ID] = true
		txns = append(txns, txn)
	}
	return txns, rejected, nil
}

func (jt jsonTransaction) toModel() (model.Transaction, error) {
	typ := model.TransactionType(strings.ToLower(strings.TrimSpace(jt.Type)))
	if !typ.IsValid() {
		return model.Transaction{}, fmt.Errorf("unknown type %q", jt.Type)
	}

	if jt.Amount == nil {
		return model.Transaction{}, fmt.Errorf("%w: missing", model.ErrInvalidAmount)
	}
	amount, err := model.AmountFromDecimal(*jt.Amount)
	if err != nil {
		return model.Transaction{}, err
	}

	txn := model.Transaction{
		ID:       strings.TrimSpace(jt.ID),
		Type:     typ,
		Amount:   amount,
		Category: strings.TrimSpace(jt.Category),
		Note:     strings.TrimSpace(jt.Note),
		Date:     strings.TrimSpace(jt.Date),
	}
	if txn.ID == "" {
		txn.ID = model.NewTransactionID()
	}
	if !model.IsValidCategory(typ, txn.Category) {
		txn.Category = model.OtherCategory
	}
	if _, ok := txn.ParsedDate(); !ok {
		// Full ISO timestamps are accepted by keeping their date part.
		if len(txn.Date) > len(model.DateLayout) {
			txn.Date = txn.Date[:len(model.DateLayout)]
		}
		if _, ok := txn.ParsedDate(); !ok {
			return model.Transaction{}, fmt.Errorf("date %q is not yyyy-mm-dd", jt.Date)
		}
	}
	return txn, nil
}
