package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/timeparse"
)

const maxXLSRows = 100000

// requiredColumns must all be present in a tabular export's header row.
var requiredColumns = []string{domain.FieldDate, domain.FieldTimeIn, domain.FieldTimeOut}

// Month/year token in a file name such as "attendance_1.26.xlsx" or "report 01-2026.xls".
var filePeriodRe = regexp.MustCompile(`(?:^|\D)(0?[1-9]|1[0-2])[./_-](\d{4}|\d{2})(?:\D|$)`)

// TabularReader reads attendance exports laid out as a single sheet whose
// first row is the header.
type TabularReader struct{}

// NewTabularReader creates a new reader instance.
func NewTabularReader() *TabularReader {
	return &TabularReader{}
}

// Read parses an .xlsx, .xls or .csv export into a RawDocument keyed by the
// source headers.
func (r *TabularReader) Read(ctx context.Context, path string) (*domain.RawDocument, error) {
	kind, err := tabularKind(path)
	if err != nil {
		return nil, err
	}

	var grid [][]string
	switch kind {
	case domain.SourceKindXLSX:
		grid, err = readXLSX(path)
	case domain.SourceKindXLS:
		grid, err = readXLS(path)
	case domain.SourceKindCSV:
		grid, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("failed to read header from %s: worksheet is empty", path)
	}

	headers := make([]string, len(grid[0]))
	present := make(map[string]bool, len(headers))
	for i, h := range grid[0] {
		headers[i] = strings.TrimSpace(timeparse.StripBidi(h))
		present[headers[i]] = true
	}
	var missing []string
	for _, c := range requiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.ColumnsError{Path: path, Missing: missing}
	}

	doc := &domain.RawDocument{
		Meta: domain.DocumentMeta{
			SourcePath: path,
			SourceKind: kind,
			ParserMode: domain.ParserModeTable,
			Headers:    headers,
		},
	}
	doc.Meta.Month, doc.Meta.Year = periodFromFileName(path)

	for _, record := range grid[1:] {
		row := make(domain.RawRow, len(headers))
		blank := true
		for i, h := range headers {
			if h == "" {
				continue
			}
			var v string
			if i < len(record) {
				v = renderCell(h, strings.TrimSpace(record[i]))
			}
			if v != "" {
				blank = false
			}
			row[h] = v
		}
		if !blank {
			doc.Rows = append(doc.Rows, row)
		}
	}
	return doc, nil
}

func tabularKind(path string) (domain.SourceKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return domain.SourceKindXLSX, nil
	case ".xls":
		return domain.SourceKindXLS, nil
	case ".csv":
		return domain.SourceKindCSV, nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no worksheet found in %s", path)
	}
	// Raw values keep date and time serials unformatted; renderCell owns their rendering.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("error reading rows from %s: %w", path, err)
	}
	return rows, nil
}

func readXLS(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer file.Close()

	wb, err := xls.OpenReader(file, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to parse workbook %s: %w", path, err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found in %s", path)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("no worksheet found in %s", path)
	}

	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow) && i < maxXLSRows; i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			for len(cells) < c {
				cells = append(cells, "")
			}
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}
		rows = append(rows, record)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// renderCell turns spreadsheet serials in the date and time columns into
// readable text; everything else passes through.
func renderCell(header, v string) string {
	if v == "" || strings.Contains(v, ":") {
		return v
	}
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	switch header {
	case domain.FieldDate:
		if serial >= 20000 && serial <= 80000 {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t.Format(timeparse.DateLayout)
			}
		}
	case domain.FieldTimeIn, domain.FieldTimeOut:
		if (serial >= 0 && serial < 1) || (serial >= 20000 && serial <= 80000) {
			return timeparse.ExcelSerialTime(serial)
		}
	}
	return v
}

// periodFromFileName reads the month/year token of the file's base name.
func periodFromFileName(path string) (month, year int) {
	m := filePeriodRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0, 0
	}
	month, _ = strconv.Atoi(m[1])
	year, _ = strconv.Atoi(m[2])
	if len(m[2]) == 2 {
		year += 2000
	}
	return month, year
}
