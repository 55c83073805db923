// Package sheets wraps the Google Sheets API behind the small surface the
// sync layer needs: batched cell writes, single-cell writes, and full
// worksheet reads for bulk import.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// CellUpdate addresses a single cell on a named worksheet.
type CellUpdate struct {
	Sheet  string
	Row    int64
	Column string
	Value  string
}

// Range returns the A1-notation range for the cell.
func (u CellUpdate) Range() string {
	return fmt.Sprintf("'%s'!%s%d:%s%d", u.Sheet, u.Column, u.Row, u.Column, u.Row)
}

// Row is one data row of a worksheet keyed by header name. Number is the
// 1-based spreadsheet row (data starts at 2, row 1 is the header).
type Row struct {
	Number int64
	Values map[string]string
}

// Client is the spreadsheet surface consumed by the sync adapters. The
// batch write is atomic from the caller's perspective: either the whole
// call succeeds or none of the rows may be considered written.
type Client interface {
	BatchUpdate(ctx context.Context, updates []CellUpdate) error
	UpdateCell(ctx context.Context, update CellUpdate) error
	ReadRows(ctx context.Context, sheet string) ([]Row, error)
}

// GoogleClient implements Client against the Google Sheets v4 API using a
// service account credential.
type GoogleClient struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewGoogleClient builds a GoogleClient from a service account JSON blob.
func NewGoogleClient(ctx context.Context, spreadsheetID, serviceAccountJSON string) (*GoogleClient, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON([]byte(serviceAccountJSON)),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleClient{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// BatchUpdate writes all cells in a single values.batchUpdate call.
func (c *GoogleClient) BatchUpdate(ctx context.Context, updates []CellUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	data := make([]*sheetsapi.ValueRange, 0, len(updates))
	for _, u := range updates {
		data = append(data, &sheetsapi.ValueRange{
			Range:  u.Range(),
			Values: [][]interface{}{{u.Value}},
		})
	}

	req := &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	if _, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("batchUpdate of %d cells failed: %w", len(updates), err)
	}
	return nil
}

// UpdateCell writes a single cell.
func (c *GoogleClient) UpdateCell(ctx context.Context, update CellUpdate) error {
	body := &sheetsapi.ValueRange{Values: [][]interface{}{{update.Value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, update.Range(), body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update of %s failed: %w", update.Range(), err)
	}
	return nil
}

// ReadRows fetches a whole worksheet and returns its data rows keyed by the
// header row. Cells beyond the header width are dropped; missing trailing
// cells read as empty strings.
func (c *GoogleClient) ReadRows(ctx context.Context, sheet string) ([]Row, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, fmt.Sprintf("'%s'", sheet)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read of sheet %q failed: %w", sheet, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	header := make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		header = append(header, fmt.Sprint(cell))
	}

	rows := make([]Row, 0, len(resp.Values)-1)
	for i, raw := range resp.Values[1:] {
		values := make(map[string]string, len(header))
		for j, name := range header {
			if name == "" {
				continue
			}
			if j < len(raw) {
				values[name] = fmt.Sprint(raw[j])
			} else {
				values[name] = ""
			}
		}
		rows = append(rows, Row{Number: int64(i + 2), Values: values})
	}
	return rows, nil
}
