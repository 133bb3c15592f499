// Package sheets implements the ledger repository on top of the Google Sheets API.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"hours-reconciliation/internal/domain"
)

const (
	valueInputRaw      = "RAW"
	valueRenderDisplay = "FORMATTED_VALUE"
)

// Repository reads and patches one spreadsheet holding a sheet per period.
type Repository struct {
	srv           *gsheets.Service
	spreadsheetID string
	layout        domain.LedgerLayout
	Log           *slog.Logger
}

// NewRepository opens the Sheets service. credentialsFile may be empty when
// opts already carry authentication.
func NewRepository(ctx context.Context, spreadsheetID, credentialsFile string, layout domain.LedgerLayout, log *slog.Logger, opts ...option.ClientOption) (*Repository, error) {
	if log == nil {
		log = slog.Default()
	}
	if credentialsFile != "" {
		opts = append([]option.ClientOption{
			option.WithCredentialsFile(credentialsFile),
			option.WithScopes(gsheets.SpreadsheetsScope),
		}, opts...)
	}
	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create sheets service: %w", err)
	}
	return &Repository{srv: srv, spreadsheetID: spreadsheetID, layout: layout, Log: log}, nil
}

// GetLedger reads the layout's column block of sheet with display formatting.
func (r *Repository) GetLedger(ctx context.Context, sheet string) (domain.LedgerSnapshot, bool, error) {
	snap := domain.LedgerSnapshot{Sheet: sheet, Layout: r.layout}

	ids, err := r.sheetIDs(ctx)
	if err != nil {
		return snap, false, err
	}
	if _, ok := ids[sheet]; !ok {
		return snap, false, nil
	}

	rng := fmt.Sprintf("%s!%s1:%s", quoteSheet(sheet),
		domain.ColumnLetter(r.layout.FirstColumn()), domain.ColumnLetter(r.layout.LastColumn()))
	resp, err := r.srv.Spreadsheets.Values.Get(r.spreadsheetID, rng).
		ValueRenderOption(valueRenderDisplay).
		Context(ctx).
		Do()
	if err != nil {
		return snap, false, fmt.Errorf("could not read %s: %w", rng, err)
	}

	snap.Rows = parseLedgerRows(resp.Values, r.layout)
	r.Log.Debug("ledger read", slog.String("sheet", sheet), slog.Int("rows", len(snap.Rows)))
	return snap, true, nil
}

// parseLedgerRows keeps every row with a non-empty date cell. Row numbers are
// 1-based and count the rows without a date too.
func parseLedgerRows(values [][]interface{}, layout domain.LedgerLayout) []domain.LedgerRow {
	first := layout.FirstColumn()
	rows := make([]domain.LedgerRow, 0, len(values))
	for i, raw := range values {
		cell := func(col int) string {
			idx := col - first
			if idx < 0 || idx >= len(raw) || raw[idx] == nil {
				return ""
			}
			return strings.TrimSpace(fmt.Sprint(raw[idx]))
		}
		date := cell(layout.DateColumn)
		if date == "" {
			continue
		}
		rows = append(rows, domain.LedgerRow{
			Row:     i + 1,
			Date:    date,
			Primary: domain.Interval{In: cell(layout.PrimaryInColumn), Out: cell(layout.PrimaryOutColumn)},
			Bonus:   domain.Interval{In: cell(layout.BonusInColumn), Out: cell(layout.BonusOutColumn)},
		})
	}
	return rows
}

// ApplyPatches writes every patch in a single values batch as literal values.
func (r *Repository) ApplyPatches(ctx context.Context, sheet string, patches []domain.CellPatch) error {
	if len(patches) == 0 {
		return nil
	}
	data := make([]*gsheets.ValueRange, 0, len(patches))
	for _, p := range patches {
		data = append(data, &gsheets.ValueRange{
			Range:  quoteSheet(sheet) + "!" + p.A1(),
			Values: [][]interface{}{{p.Value}},
		})
	}
	_, err := r.srv.Spreadsheets.Values.BatchUpdate(r.spreadsheetID, &gsheets.BatchUpdateValuesRequest{
		ValueInputOption: valueInputRaw,
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("could not patch %s: %w", sheet, err)
	}
	r.Log.Info("ledger patched", slog.String("sheet", sheet), slog.Int("cells", len(patches)))
	return nil
}

// ReplaceChangeReport drops any previous report sheet named title and renders
// records into a fresh one, all in one batch.
func (r *Repository) ReplaceChangeReport(ctx context.Context, title string, records []domain.ChangeRecord, generatedAt time.Time) error {
	ids, err := r.sheetIDs(ctx)
	if err != nil {
		return err
	}

	var requests []*gsheets.Request
	if id, ok := ids[title]; ok {
		requests = append(requests, deleteSheet(id))
	}
	requests = append(requests, BuildReportRequests(newSheetID(ids), title, records, generatedAt)...)

	if err := r.batchUpdate(ctx, requests); err != nil {
		return fmt.Errorf("could not write report %q: %w", title, err)
	}
	r.Log.Info("report sheet replaced", slog.String("title", title), slog.Int("rows", len(records)))
	return nil
}

// DeleteChangeReport removes the report sheet; a missing sheet is not an error.
func (r *Repository) DeleteChangeReport(ctx context.Context, title string) error {
	ids, err := r.sheetIDs(ctx)
	if err != nil {
		return err
	}
	id, ok := ids[title]
	if !ok {
		return nil
	}
	if err := r.batchUpdate(ctx, []*gsheets.Request{deleteSheet(id)}); err != nil {
		return fmt.Errorf("could not delete report %q: %w", title, err)
	}
	r.Log.Info("report sheet deleted", slog.String("title", title))
	return nil
}

func (r *Repository) sheetIDs(ctx context.Context) (map[string]int64, error) {
	ss, err := r.srv.Spreadsheets.Get(r.spreadsheetID).
		Fields("sheets.properties(sheetId,title)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("could not list sheets: %w", err)
	}
	ids := make(map[string]int64, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			ids[s.Properties.Title] = s.Properties.SheetId
		}
	}
	return ids, nil
}

func (r *Repository) batchUpdate(ctx context.Context, requests []*gsheets.Request) error {
	_, err := r.srv.Spreadsheets.BatchUpdate(r.spreadsheetID, &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

func deleteSheet(id int64) *gsheets.Request {
	return &gsheets.Request{DeleteSheet: &gsheets.DeleteSheetRequest{
		SheetId:         id,
		ForceSendFields: []string{"SheetId"},
	}}
}

// newSheetID picks a positive id no existing sheet uses.
func newSheetID(existing map[string]int64) int64 {
	used := make(map[int64]bool, len(existing))
	for _, id := range existing {
		used[id] = true
	}
	for {
		id := int64(uuid.New().ID() & 0x7fffffff)
		if id != 0 && !used[id] {
			return id
		}
	}
}

func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
