package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// spreadsheetAPI is the subset of the Sheets API the writer uses.
type spreadsheetAPI interface {
	Ensure(ctx context.Context, id, title, timeZone string, tabs []string) (string, error)
	Clear(ctx context.Context, id, rng string) error
	Update(ctx context.Context, id, rng string, values [][]any) error
	BatchUpdate(ctx context.Context, id string, requests []*sheets.Request) error
	SheetIDs(ctx context.Context, id string) (map[string]int64, error)
}

type googleAPI struct {
	service *sheets.Service
}

// newGoogleAPI authenticates with a service account or an OAuth2 refresh token.
func newGoogleAPI(ctx context.Context, config Config) (*googleAPI, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}
		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		tokenSource = oauthConfig(config.ClientID, config.ClientSecret, "").TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, tokenSource)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return &googleAPI{service: srv}, nil
}

func (g *googleAPI) Ensure(ctx context.Context, id, title, timeZone string, tabs []string) (string, error) {
	if id != "" {
		existing, err := g.service.Spreadsheets.Get(id).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", id, err)
		}
		return id, g.addMissingTabs(ctx, existing, tabs)
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    title,
			TimeZone: timeZone,
		},
	}
	for _, tab := range tabs {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: tab},
		})
	}

	created, err := g.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}
	return created.SpreadsheetId, nil
}

func (g *googleAPI) addMissingTabs(ctx context.Context, existing *sheets.Spreadsheet, tabs []string) error {
	have := make(map[string]bool, len(existing.Sheets))
	for _, s := range existing.Sheets {
		have[s.Properties.Title] = true
	}

	var requests []*sheets.Request
	for _, tab := range tabs {
		if !have[tab] {
			requests = append(requests, &sheets.Request{
				AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: tab}},
			})
		}
	}
	if len(requests) == 0 {
		return nil
	}
	return g.BatchUpdate(ctx, existing.SpreadsheetId, requests)
}

func (g *googleAPI) Clear(ctx context.Context, id, rng string) error {
	_, err := g.service.Spreadsheets.Values.Clear(id, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

func (g *googleAPI) Update(ctx context.Context, id, rng string, values [][]any) error {
	_, err := g.service.Spreadsheets.Values.Update(id, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}

func (g *googleAPI) BatchUpdate(ctx context.Context, id string, requests []*sheets.Request) error {
	_, err := g.service.Spreadsheets.BatchUpdate(id, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

func (g *googleAPI) SheetIDs(ctx context.Context, id string) (map[string]int64, error) {
	spreadsheet, err := g.service.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int64, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		ids[s.Properties.Title] = s.Properties.SheetId
	}
	return ids, nil
}
