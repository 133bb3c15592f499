package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for input-shape failures. None of them is retried.
var (
	ErrUnsupportedFormat   = errors.New("unsupported source format")
	ErrMissingColumns      = errors.New("required columns missing")
	ErrNoValidRows         = errors.New("no valid rows to write after normalization")
	ErrNoExtractableRows   = errors.New("no rows could be extracted from the document")
	ErrLedgerSheetNotFound = errors.New("ledger sheet not found")
	ErrIncompleteConfig    = errors.New("incomplete configuration")
)

// ColumnsError lists the required headers a tabular source lacks.
type ColumnsError struct {
	Path    string
	Missing []string
}

func (e *ColumnsError) Error() string {
	return fmt.Sprintf("%s does not contain the expected columns: %s", e.Path, strings.Join(e.Missing, ", "))
}

func (e *ColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}
