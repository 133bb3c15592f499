package gateway

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"hours-reconciliation/internal/domain"
)

// StagingWriter persists canonical entries as the local staging workbook.
type StagingWriter struct{}

// NewStagingWriter creates a new writer instance.
func NewStagingWriter() *StagingWriter {
	return &StagingWriter{}
}

// WriteStaging replaces the workbook at path with entries. The workbook is
// built in a temporary file in the same directory and renamed into place, so
// a failed run leaves any previous file as it was.
func (w *StagingWriter) WriteStaging(ctx context.Context, path string, entries []domain.CanonicalEntry) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(domain.CanonicalColumns))
	for i, c := range domain.CanonicalColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write staging header: %w", err)
	}
	for i, e := range entries {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address staging row %d: %w", i+2, err)
		}
		row := []interface{}{e.Date, e.TimeIn, e.TimeOut, e.Site, e.Notes}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return fmt.Errorf("failed to write staging row %d: %w", i+2, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write staging workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close staging workbook: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	committed = true
	return nil
}
