package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/common"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/ofx"
	"github.com/Veraticus/savings-sprint/internal/service"
)

const (
	parseConcurrency = 4
	saveBatchSize    = 100
)

// fileResult is the outcome of parsing one file. A parse error only
// affects its own file.
type fileResult struct {
	err       error
	statement *ofx.Statement
	path      string
}

func importOFXCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Import transactions from OFX/QFX bank exports",
		Long: `Import transactions from OFX or QFX files exported by your bank.
Debits become expenses and credits become income. Transactions already
imported (same FITID) are skipped.`,
		Example: `  sprint import-ofx ~/Downloads/statement.ofx
  sprint import-ofx ~/Downloads/*.qfx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandPatterns(args)
			if err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Import")
			ctx := handler.HandleInterrupts(cmd.Context())

			slog.Info("Importing OFX files", "file_count", len(files), "dry_run", dryRun)

			detector, err := newDetector()
			if err != nil {
				return err
			}

			results, err := parseFiles(ctx, ofx.NewParser(ofx.WithDetector(detector)), files, newFileBar(cmd.ErrOrStderr(), len(files)))
			if err != nil {
				if handler.WasInterrupted() {
					return nil
				}
				return err
			}

			txns := collectTransactions(cmd.OutOrStdout(), results)
			if len(txns) == 0 {
				return common.NewUserError("No transactions found to import", common.ErrNoTransactions)
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be imported", len(txns))))
				return nil
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			inserted, err := saveInBatches(ctx, a.store, txns, handler)
			if err != nil {
				if handler.WasInterrupted() {
					return nil
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions (%d already present)",
				inserted, len(txns)-inserted)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "parse and report without saving")
	return cmd
}

// expandPatterns resolves globs, keeping literal paths that exist.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr != nil {
				slog.Warn("No files found matching pattern", "pattern", pattern)
				continue
			}
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No files found to import", common.ErrUnsupportedFile)
	}
	return files, nil
}

func newFileBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Parsing files...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

// parseFiles parses files concurrently. Results keep the input order.
func parseFiles(ctx context.Context, parser *ofx.Parser, files []string, bar *progressbar.ProgressBar) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parseConcurrency)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = fileResult{path: path}
			results[i].statement, results[i].err = parseFile(ctx, parser, path)
			if errors.Is(results[i].err, context.Canceled) {
				return results[i].err
			}

			if bar != nil {
				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to update progress bar", "error", err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func parseFile(ctx context.Context, parser *ofx.Parser, path string) (*ofx.Statement, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return parser.ParseFile(ctx, f)
}

// collectTransactions reports per-file outcomes and merges the statements,
// dropping repeated IDs across files.
func collectTransactions(w io.Writer, results []fileResult) []model.Transaction {
	var txns []model.Transaction
	seen := make(map[string]bool)

	for _, r := range results {
		name := filepath.Base(r.path)
		if r.err != nil {
			slog.Error("Failed to parse OFX file", "file", r.path, "error", r.err)
			fmt.Fprintln(w, cli.FormatError(fmt.Sprintf("%s: %v", name, r.err)))
			continue
		}

		added := 0
		for _, txn := range r.statement.Transactions {
			if seen[txn.ID] {
				continue
			}
			seen[txn.ID] = true
			txns = append(txns, txn)
			added++
		}

		fmt.Fprintf(w, "  %s %s: %d transactions", cli.SuccessIcon, name, added)
		if r.statement.Skipped > 0 {
			fmt.Fprintf(w, ", %d zero-amount skipped", r.statement.Skipped)
		}
		fmt.Fprintln(w)
	}
	return txns
}

// saveInBatches stores txns in chunks so an interrupt keeps whole batches.
func saveInBatches(ctx context.Context, store service.TransactionStore, txns []model.Transaction, handler *cli.InterruptHandler) (int, error) {
	inserted := 0
	for start := 0; start < len(txns); start += saveBatchSize {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}

		end := min(start+saveBatchSize, len(txns))
		n, err := store.SaveTransactions(ctx, txns[start:end])
		if err != nil {
			return inserted, fmt.Errorf("failed to save transactions: %w", err)
		}
		inserted += n
		if handler != nil {
			handler.SetImported(inserted)
		}
	}
	return inserted, nil
}
