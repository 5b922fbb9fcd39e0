package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/savings-sprint/internal/cli"
	"github.com/Veraticus/savings-sprint/internal/common"
	"github.com/Veraticus/savings-sprint/internal/config"
	"github.com/Veraticus/savings-sprint/internal/service"
	"github.com/Veraticus/savings-sprint/internal/sheets"
)

const defaultTokenFile = "$HOME/.config/sprint/sheets-token.json"

func exportSheetsCmd() *cobra.Command {
	var (
		login      bool
		tokenFile  string
		listenAddr string
	)

	cmd := &cobra.Command{
		Use:   "export-sheets",
		Short: "Publish the savings sprint to Google Sheets",
		Long: `Write the current goal, its period totals and the daily savings series to a
Google Sheets spreadsheet. Authenticate with a service account
(sheets.service_account_path) or with OAuth2 client credentials plus a
refresh token; run with --login once to obtain and store the token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tokenFile = config.ExpandPath(tokenFile)

			if login {
				token, err := sheets.Login(ctx, sheets.LoginConfig{
					ClientID:     firstSet(viper.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID")),
					ClientSecret: firstSet(viper.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")),
					TokenFile:    tokenFile,
					ListenAddr:   listenAddr,
					OpenURL: func(url string) {
						fmt.Fprintln(cmd.OutOrStdout(), cli.FormatPrompt("Open this URL to authorize access"))
						fmt.Fprintln(cmd.OutOrStdout(), url)
					},
				})
				if err != nil {
					return fmt.Errorf("login failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Authorized; token saved to "+tokenFile))
				if token.RefreshToken != "" {
					viper.Set("sheets.refresh_token", token.RefreshToken)
				}
			} else if viper.GetString("sheets.refresh_token") == "" {
				if token, err := sheets.LoadToken(tokenFile); err == nil && token.RefreshToken != "" {
					viper.Set("sheets.refresh_token", token.RefreshToken)
				} else if err != nil && !errors.Is(err, os.ErrNotExist) {
					slog.Warn("Failed to read saved token", "file", tokenFile, "error", err)
				}
			}

			sheetsCfg, err := config.LoadSheetsConfig(viper.GetViper())
			if err != nil {
				return common.NewUserError("Google Sheets is not configured; set sheets.service_account_path or run with --login", err)
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			txns, err := a.allTransactions(ctx)
			if err != nil {
				return err
			}
			snap, err := a.tracker(ctx).Refresh(ctx, txns)
			if err != nil {
				slog.Warn("Rolled-over goal could not be saved", "error", err)
			}

			writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
			if err != nil {
				return err
			}

			report := &service.SavingsReport{
				GeneratedAt: snap.Now,
				Goal:        snap.Goal,
				Stats:       snap.Stats,
				Daily:       snap.Daily,
			}
			return publish(cmd, writer, report)
		},
	}

	cmd.Flags().BoolVar(&login, "login", false, "run the browser OAuth2 flow first")
	cmd.Flags().StringVar(&tokenFile, "token-file", defaultTokenFile, "where the OAuth2 token is stored")
	cmd.Flags().StringVar(&listenAddr, "listen", "localhost:8080", "address for the OAuth2 callback")
	return cmd
}

// publish writes report through w and reports the outcome.
func publish(cmd *cobra.Command, w service.ReportWriter, report *service.SavingsReport) error {
	if err := w.Write(cmd.Context(), report); err != nil {
		if common.IsRetryable(err) {
			return common.NewUserError("Google Sheets is busy right now; try again in a few minutes", err)
		}
		return fmt.Errorf("failed to export to Google Sheets: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d days of savings to Google Sheets", len(report.Daily))))
	return nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
