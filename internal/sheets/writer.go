package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/savings-sprint/internal/common"
	"github.com/Veraticus/savings-sprint/internal/model"
	"github.com/Veraticus/savings-sprint/internal/service"
)

// Tab names written by the exporter.
const (
	SummaryTab = "Sprint"
	DailyTab   = "Daily"
)

// Writer implements service.ReportWriter for Google Sheets.
type Writer struct {
	api    spreadsheetAPI
	logger *slog.Logger
	config Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	api, err := newGoogleAPI(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return newWriter(api, config, logger), nil
}

func newWriter(api spreadsheetAPI, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{api: api, config: config, logger: logger}
}

// Write replaces the sprint and daily tabs with the report.
func (w *Writer) Write(ctx context.Context, report *service.SavingsReport) error {
	if report == nil {
		return errors.New("nil report")
	}

	w.logger.Info("starting sheets export",
		"period", string(report.Goal.Period),
		"days", len(report.Daily))

	retryOpts := service.RetryOptions{
		MaxAttempts:  max(w.config.RetryAttempts, 1),
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	var spreadsheetID string
	err := common.WithRetry(ctx, func() error {
		id, err := w.api.Ensure(ctx, w.config.SpreadsheetID, w.config.SpreadsheetName, w.config.TimeZone,
			[]string{SummaryTab, DailyTab})
		if err != nil {
			return classifyError(err)
		}
		spreadsheetID = id
		return nil
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	tabs := []struct {
		name   string
		values [][]any
	}{
		{SummaryTab, summaryRows(report)},
		{DailyTab, dailyRows(report.Daily)},
	}
	for _, tab := range tabs {
		err := common.WithRetry(ctx, func() error {
			if err := w.api.Clear(ctx, spreadsheetID, tab.name+"!A:Z"); err != nil {
				return classifyError(err)
			}
			return classifyError(w.api.Update(ctx, spreadsheetID, tab.name+"!A1", tab.values))
		}, retryOpts)
		if err != nil {
			return fmt.Errorf("failed to write %s tab: %w", tab.name, err)
		}
		w.logger.Debug("wrote tab", "tab", tab.name, "rows", len(tab.values))
	}

	if w.config.EnableFormatting {
		if err := w.applyFormatting(ctx, spreadsheetID, len(report.Daily)); err != nil {
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("sheets export completed", "spreadsheet_id", spreadsheetID)
	return nil
}

// classifyError maps API failures onto the retry policy: rate limits back
// off, other client errors fail fast, everything else is retried.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == 429:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return &common.RetryableError{Err: err, Retryable: false}
	default:
		return &common.RetryableError{Err: err, Retryable: true}
	}
}

func summaryRows(report *service.SavingsReport) [][]any {
	stats := report.Stats
	goal := report.Goal

	achieved := "No"
	if stats.Achieved {
		achieved = "Yes"
	}

	return [][]any{
		{"Savings Sprint", report.GeneratedAt.Format("2 Jan 2006 15:04")},
		{},
		{"Goal"},
		{"Period", string(goal.Period)},
		{"Period length (days)", stats.PeriodDays},
		{"Started", goal.StartDate.Format(model.DateLayout)},
		{"Target", goal.Amount},
		{},
		{"Progress"},
		{"Income", stats.TotalIncome},
		{"Expenses", stats.TotalExpenses},
		{"Saved", stats.CurrentSavings},
		{"Remaining", stats.Remaining},
		{"Progress %", fmt.Sprintf("%.1f", stats.Progress)},
		{"Achieved", achieved},
	}
}

func dailyRows(points []model.DailyPoint) [][]any {
	values := make([][]any, 0, len(points)+1)
	values = append(values, []any{"Date", "Day", "Income", "Expenses", "Savings"})
	for _, p := range points {
		values = append(values, []any{p.Date, p.Label, p.Income, p.Expenses, p.Savings})
	}
	return values
}

func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, days int) error {
	ids, err := w.api.SheetIDs(ctx, spreadsheetID)
	if err != nil {
		return err
	}

	currency := &sheets.CellFormat{
		NumberFormat: &sheets.NumberFormat{Type: "CURRENCY", Pattern: w.config.CurrencyPattern},
	}
	bold := &sheets.CellFormat{TextFormat: &sheets.TextFormat{Bold: true}}

	summaryID, dailyID := ids[SummaryTab], ids[DailyTab]
	requests := []*sheets.Request{
		repeatCell(summaryID, 0, 1, 0, 1, &sheets.CellFormat{
			TextFormat: &sheets.TextFormat{Bold: true, FontSize: 16},
		}, "userEnteredFormat.textFormat"),
		repeatCell(summaryID, 6, 7, 1, 2, currency, "userEnteredFormat.numberFormat"),
		repeatCell(summaryID, 9, 13, 1, 2, currency, "userEnteredFormat.numberFormat"),
		repeatCell(dailyID, 0, 1, 0, 5, bold, "userEnteredFormat.textFormat"),
		repeatCell(dailyID, 1, int64(days+1), 2, 5, currency, "userEnteredFormat.numberFormat"),
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        dailyID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	return w.api.BatchUpdate(ctx, spreadsheetID, requests)
}

func repeatCell(sheetID, startRow, endRow, startCol, endCol int64, format *sheets.CellFormat, fields string) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    startRow,
				EndRowIndex:      endRow,
				StartColumnIndex: startCol,
				EndColumnIndex:   endCol,
			},
			Cell:   &sheets.CellData{UserEnteredFormat: format},
			Fields: fields,
		},
	}
}
