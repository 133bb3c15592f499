package sheets

import (
	"fmt"
	"time"

	gsheets "google.golang.org/api/sheets/v4"

	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/timeparse"
)

// Report sheet geometry, 0-based.
const (
	titleRow      = 0
	groupRow      = 2
	headerRow     = 3
	firstDataRow  = 4
	reportColumns = 6

	colDate      = 0
	colLedgerIn  = 1
	colLedgerOut = 2
	colFactIn    = 3
	colFactOut   = 4
	colDiff      = 5

	timePattern = "[h]:mm"
	diffPattern = "+[h]:mm;-[h]:mm;0:00"
)

var (
	colorRed      = &gsheets.Color{Red: 0.80}
	colorGreen    = &gsheets.Color{Green: 0.60}
	bgLedger      = &gsheets.Color{Red: 0.93, Green: 0.93, Blue: 0.93}
	bgSource      = &gsheets.Color{Red: 1.00, Green: 0.98, Blue: 0.85}
	bgLedgerBlank = &gsheets.Color{Red: 1.00, Green: 0.90, Blue: 0.90}

	columnHeaders = []string{"Date", "In", "Out", "In", "Out", "Diff"}
)

// BuildReportRequests renders records into a new sheet with the given id.
// Times are written as day fractions so the diff column can be a live
// formula that stays blank on any incomplete pair.
func BuildReportRequests(sheetID int64, title string, records []domain.ChangeRecord, generatedAt time.Time) []*gsheets.Request {
	lastDataRow := firstDataRow + len(records) // exclusive
	totalRow := lastDataRow + 1

	requests := []*gsheets.Request{
		{AddSheet: &gsheets.AddSheetRequest{Properties: &gsheets.SheetProperties{
			SheetId: sheetID,
			Title:   title,
			GridProperties: &gsheets.GridProperties{
				RowCount:       int64(totalRow + 10),
				ColumnCount:    reportColumns,
				FrozenRowCount: firstDataRow,
			},
		}}},
		updateRow(sheetID, titleRow, colDate, []*gsheets.CellData{
			stringCell("Report date: "+generatedAt.Format(timeparse.DateLayout), &gsheets.CellFormat{TextFormat: &gsheets.TextFormat{Bold: true}}),
		}),
		updateRow(sheetID, groupRow, colLedgerIn, []*gsheets.CellData{
			stringCell("Ledger", groupFormat(bgLedger)),
			stringCell("", groupFormat(bgLedger)),
			stringCell("Source", groupFormat(bgSource)),
			stringCell("", groupFormat(bgSource)),
		}),
		mergeCells(sheetID, groupRow, colLedgerIn, colLedgerOut+1),
		mergeCells(sheetID, groupRow, colFactIn, colFactOut+1),
		headerRowRequest(sheetID),
	}
	if len(records) == 0 {
		return requests
	}

	rows := make([]*gsheets.RowData, 0, len(records))
	for i, rec := range records {
		rows = append(rows, dataRow(rec, firstDataRow+i+1))
	}
	requests = append(requests,
		&gsheets.Request{UpdateCells: &gsheets.UpdateCellsRequest{
			Start:  &gsheets.GridCoordinate{SheetId: sheetID, RowIndex: firstDataRow, ColumnIndex: colDate},
			Rows:   rows,
			Fields: "userEnteredValue,userEnteredFormat",
		}},
		updateRow(sheetID, int64(totalRow), colFactOut, []*gsheets.CellData{
			stringCell("Total:", &gsheets.CellFormat{TextFormat: &gsheets.TextFormat{Bold: true}}),
			formulaCell(
				fmt.Sprintf(`=IF(COUNT(F%d:F%d)=0,"",SUM(F%d:F%d))`, firstDataRow+1, lastDataRow, firstDataRow+1, lastDataRow),
				&gsheets.CellFormat{
					NumberFormat: &gsheets.NumberFormat{Type: "TIME", Pattern: diffPattern},
					TextFormat:   &gsheets.TextFormat{Bold: true},
				},
			),
		}),
	)
	return append(requests, conditionalRules(sheetID, lastDataRow, totalRow)...)
}

func dataRow(rec domain.ChangeRecord, n int) *gsheets.RowData {
	return &gsheets.RowData{Values: []*gsheets.CellData{
		stringCell(rec.DateLabel, nil),
		timeCell(rec.LedgerIn, bgLedger),
		timeCell(rec.LedgerOut, bgLedger),
		timeCell(rec.FactIn, bgSource),
		timeCell(rec.FactOut, bgSource),
		formulaCell(diffFormula(n), &gsheets.CellFormat{
			NumberFormat: &gsheets.NumberFormat{Type: "TIME", Pattern: diffPattern},
		}),
	}}
}

// diffFormula is (source out - source in) - (ledger out - ledger in) for
// 1-based sheet row n, blank unless all four times are present.
func diffFormula(n int) string {
	return fmt.Sprintf(`=IF(AND(B%[1]d<>"",C%[1]d<>"",D%[1]d<>"",E%[1]d<>""),(E%[1]d-D%[1]d)-(C%[1]d-B%[1]d),"")`, n)
}

func conditionalRules(sheetID int64, lastDataRow, totalRow int) []*gsheets.Request {
	first := firstDataRow + 1
	column := func(col int64) *gsheets.GridRange {
		return &gsheets.GridRange{
			SheetId:          sheetID,
			StartRowIndex:    firstDataRow,
			EndRowIndex:      int64(lastDataRow),
			StartColumnIndex: col,
			EndColumnIndex:   col + 1,
		}
	}
	total := &gsheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    int64(totalRow),
		EndRowIndex:      int64(totalRow + 1),
		StartColumnIndex: colDiff,
		EndColumnIndex:   colDiff + 1,
	}
	ledgerCells := &gsheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    firstDataRow,
		EndRowIndex:      int64(lastDataRow),
		StartColumnIndex: colLedgerIn,
		EndColumnIndex:   colLedgerOut + 1,
	}
	t := totalRow + 1

	rules := []struct {
		rng     *gsheets.GridRange
		formula string
		format  *gsheets.CellFormat
	}{
		{column(colFactIn), fmt.Sprintf("=AND(ISNUMBER($D%[1]d),ISNUMBER($B%[1]d),$D%[1]d<$B%[1]d)", first), textColor(colorRed)},
		{column(colFactIn), fmt.Sprintf("=AND(ISNUMBER($D%[1]d),ISNUMBER($B%[1]d),$D%[1]d>$B%[1]d)", first), textColor(colorGreen)},
		{column(colFactOut), fmt.Sprintf("=AND(ISNUMBER($E%[1]d),ISNUMBER($C%[1]d),$E%[1]d<$C%[1]d)", first), textColor(colorRed)},
		{column(colFactOut), fmt.Sprintf("=AND(ISNUMBER($E%[1]d),ISNUMBER($C%[1]d),$E%[1]d>$C%[1]d)", first), textColor(colorGreen)},
		{column(colDiff), fmt.Sprintf("=AND(ISNUMBER($F%[1]d),$F%[1]d<0)", first), textColor(colorRed)},
		{column(colDiff), fmt.Sprintf("=AND(ISNUMBER($F%[1]d),$F%[1]d>0)", first), textColor(colorGreen)},
		{total, fmt.Sprintf("=AND(ISNUMBER($F%[1]d),$F%[1]d<0)", t), textColor(colorRed)},
		{total, fmt.Sprintf("=AND(ISNUMBER($F%[1]d),$F%[1]d>0)", t), textColor(colorGreen)},
		{ledgerCells, fmt.Sprintf(`=AND($B%[1]d="",$C%[1]d="",OR($D%[1]d<>"",$E%[1]d<>""))`, first), &gsheets.CellFormat{BackgroundColor: bgLedgerBlank}},
	}

	out := make([]*gsheets.Request, 0, len(rules))
	for i, r := range rules {
		out = append(out, &gsheets.Request{AddConditionalFormatRule: &gsheets.AddConditionalFormatRuleRequest{
			Index: int64(i),
			Rule: &gsheets.ConditionalFormatRule{
				Ranges: []*gsheets.GridRange{r.rng},
				BooleanRule: &gsheets.BooleanRule{
					Condition: &gsheets.BooleanCondition{
						Type:   "CUSTOM_FORMULA",
						Values: []*gsheets.ConditionValue{{UserEnteredValue: r.formula}},
					},
					Format: r.format,
				},
			},
		}})
	}
	return out
}

func headerRowRequest(sheetID int64) *gsheets.Request {
	cells := make([]*gsheets.CellData, 0, len(columnHeaders))
	for i, h := range columnHeaders {
		format := &gsheets.CellFormat{TextFormat: &gsheets.TextFormat{Bold: true}, HorizontalAlignment: "CENTER"}
		switch i {
		case colLedgerIn, colLedgerOut:
			format.BackgroundColor = bgLedger
		case colFactIn, colFactOut:
			format.BackgroundColor = bgSource
		}
		cells = append(cells, stringCell(h, format))
	}
	return updateRow(sheetID, headerRow, colDate, cells)
}

func updateRow(sheetID, row, col int64, cells []*gsheets.CellData) *gsheets.Request {
	return &gsheets.Request{UpdateCells: &gsheets.UpdateCellsRequest{
		Start:  &gsheets.GridCoordinate{SheetId: sheetID, RowIndex: row, ColumnIndex: col},
		Rows:   []*gsheets.RowData{{Values: cells}},
		Fields: "userEnteredValue,userEnteredFormat",
	}}
}

func mergeCells(sheetID, row, startCol, endCol int64) *gsheets.Request {
	return &gsheets.Request{MergeCells: &gsheets.MergeCellsRequest{
		MergeType: "MERGE_ALL",
		Range: &gsheets.GridRange{
			SheetId:          sheetID,
			StartRowIndex:    row,
			EndRowIndex:      row + 1,
			StartColumnIndex: startCol,
			EndColumnIndex:   endCol,
		},
	}}
}

func groupFormat(bg *gsheets.Color) *gsheets.CellFormat {
	return &gsheets.CellFormat{
		BackgroundColor:     bg,
		HorizontalAlignment: "CENTER",
		TextFormat:          &gsheets.TextFormat{Bold: true},
	}
}

func textColor(c *gsheets.Color) *gsheets.CellFormat {
	return &gsheets.CellFormat{TextFormat: &gsheets.TextFormat{ForegroundColor: c}}
}

func stringCell(s string, format *gsheets.CellFormat) *gsheets.CellData {
	cell := &gsheets.CellData{UserEnteredFormat: format}
	if s != "" {
		cell.UserEnteredValue = &gsheets.ExtendedValue{StringValue: &s}
	}
	return cell
}

func formulaCell(formula string, format *gsheets.CellFormat) *gsheets.CellData {
	return &gsheets.CellData{
		UserEnteredValue:  &gsheets.ExtendedValue{FormulaValue: &formula},
		UserEnteredFormat: format,
	}
}

// timeCell writes HH:MM as a day fraction; text that is not a time stays text.
func timeCell(v string, bg *gsheets.Color) *gsheets.CellData {
	format := &gsheets.CellFormat{
		BackgroundColor: bg,
		NumberFormat:    &gsheets.NumberFormat{Type: "TIME", Pattern: timePattern},
	}
	m, ok := timeparse.Minutes(v)
	if !ok {
		return stringCell(v, format)
	}
	frac := float64(m) / (24 * 60)
	return &gsheets.CellData{
		UserEnteredValue:  &gsheets.ExtendedValue{NumberValue: &frac},
		UserEnteredFormat: format,
	}
}
