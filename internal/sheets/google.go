package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// GoogleBackend implements Backend against the Google Sheets v4 API,
// authenticated with a service-account credentials file. One instance is
// created at process start and reused for every request.
type GoogleBackend struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewGoogleBackend opens the long-lived authenticated Sheets client. A
// missing or invalid credentials file fails here, which disables the
// persistence path only; the rest of the process keeps running.
func NewGoogleBackend(ctx context.Context, credentialsFile, spreadsheetID string) (*GoogleBackend, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("NewGoogleBackend: no spreadsheet ID configured")
	}
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("NewGoogleBackend: create sheets client: %w", err)
	}
	return &GoogleBackend{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// SheetTitles lists the titles of every sheet in the spreadsheet.
func (g *GoogleBackend) SheetTitles(ctx context.Context) ([]string, error) {
	ss, err := g.svc.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("SheetTitles: get spreadsheet: %w", err)
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		titles = append(titles, sh.Properties.Title)
	}
	return titles, nil
}

// AddSheet creates a new sheet with the given grid capacity hints.
func (g *GoogleBackend) AddSheet(ctx context.Context, title string, rows, cols int64) error {
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{
					Title: title,
					GridProperties: &sheetsapi.GridProperties{
						RowCount:    rows,
						ColumnCount: cols,
					},
				},
			},
		}},
	}
	if _, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("AddSheet: %s: %w", title, err)
	}
	return nil
}

// HeaderRow returns the first row of a sheet as strings, or nil when the
// sheet is empty.
func (g *GoogleBackend) HeaderRow(ctx context.Context, sheet string) ([]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, sheetRange(sheet, "1:1")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("HeaderRow: %s: %w", sheet, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	return toStrings(resp.Values[0]), nil
}

// InsertHeader pushes the existing rows down by one and writes header
// into the new first row.
func (g *GoogleBackend) InsertHeader(ctx context.Context, sheet string, header []string) error {
	id, err := g.sheetID(ctx, sheet)
	if err != nil {
		return fmt.Errorf("InsertHeader: %w", err)
	}

	ins := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			InsertDimension: &sheetsapi.InsertDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    id,
					Dimension:  "ROWS",
					StartIndex: 0,
					EndIndex:   1,
				},
			},
		}},
	}
	if _, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, ins).Context(ctx).Do(); err != nil {
		return fmt.Errorf("InsertHeader: insert row in %s: %w", sheet, err)
	}

	vr := &sheetsapi.ValueRange{Values: [][]interface{}{headerRow(header)}}
	_, err = g.svc.Spreadsheets.Values.Update(g.spreadsheetID, sheetRange(sheet, "A1"), vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("InsertHeader: write header in %s: %w", sheet, err)
	}
	return nil
}

// AppendRow appends one row after the last non-empty row of the sheet.
func (g *GoogleBackend) AppendRow(ctx context.Context, sheet string, row []interface{}) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, sheetRange(sheet, "A1"), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("AppendRow: %s: %w", sheet, err)
	}
	return nil
}

// Rows returns every populated row of a sheet, header included.
func (g *GoogleBackend) Rows(ctx context.Context, sheet string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, sheetRange(sheet, "A:Z")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("Rows: %s: %w", sheet, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, r := range resp.Values {
		rows = append(rows, toStrings(r))
	}
	return rows, nil
}

func (g *GoogleBackend) sheetID(ctx context.Context, title string) (int64, error) {
	ss, err := g.svc.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("sheetID: get spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties.Title == title {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheetID: sheet %q not found", title)
}

// sheetRange quotes the sheet title, which may contain spaces.
func sheetRange(sheet, cells string) string {
	return fmt.Sprintf("'%s'!%s", sheet, cells)
}

func toStrings(cells []interface{}) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, fmt.Sprint(c))
	}
	return out
}
