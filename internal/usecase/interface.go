package usecase

import (
	"context"
	"time"

	"hours-reconciliation/internal/domain"
)

// The usecase layer depends on these interfaces, not on concrete adapters.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go

// SourceRepository extracts the rows of one attendance document.
type SourceRepository interface {
	ReadSource(ctx context.Context, path string) (*domain.RawDocument, error)
}

// StagingRepository persists the canonical entries of a run.
type StagingRepository interface {
	WriteStaging(ctx context.Context, path string, entries []domain.CanonicalEntry) error
}

// LedgerRepository is the remote spreadsheet holding one sheet per period.
type LedgerRepository interface {
	// GetLedger returns found=false, not an error, when the sheet does not exist.
	GetLedger(ctx context.Context, sheet string) (domain.LedgerSnapshot, bool, error)
	ApplyPatches(ctx context.Context, sheet string, patches []domain.CellPatch) error
	ReplaceChangeReport(ctx context.Context, title string, records []domain.ChangeRecord, generatedAt time.Time) error
	DeleteChangeReport(ctx context.Context, title string) error
}
