package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/usecase"
	mock_usecase "hours-reconciliation/internal/usecase/mocks"
)

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func csvDocument(rows ...domain.RawRow) *domain.RawDocument {
	return &domain.RawDocument{
		Meta: domain.DocumentMeta{SourcePath: "/data/export.csv", SourceKind: domain.SourceKindCSV, ParserMode: domain.ParserModeTable},
		Rows: rows,
	}
}

func TestNormalizeUseCase_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		doc        *domain.RawDocument
		sourceErr  error
		stagingErr error
		wantWrite  bool
		want       []domain.CanonicalEntry
		wantErr    error
	}{
		{
			name:      "rows staged in canonical order",
			doc:       csvDocument(domain.RawRow{"תאריך": "02.01.2026", "כניסה": "7:00", "יציאה": "15:00"}, domain.RawRow{"תאריך": "01.01.2026", "כניסה": "08:00"}),
			wantWrite: true,
			want: []domain.CanonicalEntry{
				{Date: "01.01.2026", TimeIn: "08:00"},
				{Date: "02.01.2026", TimeIn: "07:00", TimeOut: "15:00"},
			},
		},
		{
			name:    "no valid rows leaves staging untouched",
			doc:     csvDocument(domain.RawRow{"תאריך": "", "כניסה": "07:00"}),
			wantErr: domain.ErrNoValidRows,
		},
		{
			name:      "source error",
			sourceErr: domain.ErrUnsupportedFormat,
			wantErr:   domain.ErrUnsupportedFormat,
		},
		{
			name:       "staging error",
			doc:        csvDocument(domain.RawRow{"תאריך": "01.01.2026", "כניסה": "08:00"}),
			stagingErr: errors.New("disk full"),
			wantWrite:  true,
			wantErr:    errors.New("disk full"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := mock_usecase.NewMockSourceRepository(ctrl)
			staging := mock_usecase.NewMockStagingRepository(ctrl)

			source.EXPECT().ReadSource(gomock.Any(), "/data/export.csv").Return(tt.doc, tt.sourceErr)
			if tt.wantWrite {
				staging.EXPECT().WriteStaging(gomock.Any(), "local_data.xlsx", gomock.Any()).Return(tt.stagingErr)
			}

			uc := usecase.NewNormalizeUseCase(source, staging, quietLog)
			got, _, err := uc.Run(context.Background(), "/data/export.csv", "local_data.xlsx")

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.Nil(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestReconciliationUseCase_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 1, 31, 18, 0, 0, 0, time.UTC)
	layout := domain.DefaultLedgerLayout

	tests := []struct {
		name        string
		rows        []domain.RawRow
		ledger      []domain.LedgerRow
		ledgerFound bool
		dryRun      bool
		expect      func(l *mock_usecase.MockLedgerRepository)
		want        domain.ReconciliationSummary
		wantChanges int
		wantMissing []string
		wantErr     error
	}{
		{
			name: "gap-fill and discrepancy report",
			rows: []domain.RawRow{
				{"תאריך": "05.01.2026", "כניסה": "07:00", "יציאה": "15:30"},
			},
			ledger:      []domain.LedgerRow{{Row: 6, Date: "05.01.2026", Primary: domain.Interval{In: "07:30"}}},
			ledgerFound: true,
			expect: func(l *mock_usecase.MockLedgerRepository) {
				gomock.InOrder(
					l.EXPECT().ApplyPatches(gomock.Any(), "1.26", []domain.CellPatch{{Row: 6, Column: layout.PrimaryOutColumn, Value: "15:30"}}).Return(nil),
					l.EXPECT().ReplaceChangeReport(gomock.Any(), "Changes 1.26", gomock.Len(1), now).Return(nil),
				)
			},
			want: domain.ReconciliationSummary{
				Sheet: "1.26", ReportTitle: "Changes 1.26", SourceEntries: 1, SourceDates: 1, MatchedDates: 1,
				FilledCells: 1, ChangedRows: 1, TotalDiffMinutes: 30, TotalDiff: "+0:30", PatchesApplied: true,
			},
			wantChanges: 1,
		},
		{
			name: "clean run deletes the report",
			rows: []domain.RawRow{
				{"תאריך": "01.01.2026", "כניסה": "08:00", "יציאה": "17:00"},
			},
			ledger:      []domain.LedgerRow{{Row: 2, Date: "01.01.2026"}},
			ledgerFound: true,
			expect: func(l *mock_usecase.MockLedgerRepository) {
				l.EXPECT().ApplyPatches(gomock.Any(), "1.26", gomock.Len(2)).Return(nil)
				l.EXPECT().DeleteChangeReport(gomock.Any(), "Changes 1.26").Return(nil)
			},
			want: domain.ReconciliationSummary{
				Sheet: "1.26", ReportTitle: "Changes 1.26", SourceEntries: 1, SourceDates: 1, MatchedDates: 1,
				FilledCells: 2, PatchesApplied: true, ReportDeleted: true,
			},
		},
		{
			name: "missing date keeps the report",
			rows: []domain.RawRow{
				{"תאריך": "03.01.2026", "כניסה": "07:00", "יציאה": "15:00"},
			},
			ledger:      []domain.LedgerRow{{Row: 2, Date: "01.01.2026"}},
			ledgerFound: true,
			expect: func(l *mock_usecase.MockLedgerRepository) {
				l.EXPECT().ReplaceChangeReport(gomock.Any(), "Changes 1.26", gomock.Len(0), now).Return(nil)
			},
			want: domain.ReconciliationSummary{
				Sheet: "1.26", ReportTitle: "Changes 1.26", SourceEntries: 1, SourceDates: 1,
			},
			wantMissing: []string{"03.01.2026"},
		},
		{
			name: "dry run writes nothing",
			rows: []domain.RawRow{
				{"תאריך": "05.01.2026", "כניסה": "07:00", "יציאה": "15:30"},
			},
			ledger:      []domain.LedgerRow{{Row: 6, Date: "05.01.2026", Primary: domain.Interval{In: "07:30"}}},
			ledgerFound: true,
			dryRun:      true,
			expect:      func(l *mock_usecase.MockLedgerRepository) {},
			want: domain.ReconciliationSummary{
				Sheet: "1.26", ReportTitle: "Changes 1.26", SourceEntries: 1, SourceDates: 1, MatchedDates: 1,
				FilledCells: 1, ChangedRows: 1, TotalDiffMinutes: 30, TotalDiff: "+0:30", DryRun: true,
			},
			wantChanges: 1,
		},
		{
			name: "missing ledger sheet is fatal",
			rows: []domain.RawRow{
				{"תאריך": "05.01.2026", "כניסה": "07:00", "יציאה": "15:30"},
			},
			ledgerFound: false,
			expect:      func(l *mock_usecase.MockLedgerRepository) {},
			wantErr:     domain.ErrLedgerSheetNotFound,
		},
		{
			name: "patch failure stops before the report",
			rows: []domain.RawRow{
				{"תאריך": "01.01.2026", "כניסה": "08:00", "יציאה": "17:00"},
			},
			ledger:      []domain.LedgerRow{{Row: 2, Date: "01.01.2026"}},
			ledgerFound: true,
			expect: func(l *mock_usecase.MockLedgerRepository) {
				l.EXPECT().ApplyPatches(gomock.Any(), "1.26", gomock.Any()).Return(errors.New("quota exceeded"))
			},
			wantErr: errors.New("quota exceeded"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := mock_usecase.NewMockSourceRepository(ctrl)
			staging := mock_usecase.NewMockStagingRepository(ctrl)
			ledger := mock_usecase.NewMockLedgerRepository(ctrl)

			source.EXPECT().ReadSource(gomock.Any(), "/data/export.csv").Return(csvDocument(tt.rows...), nil)
			staging.EXPECT().WriteStaging(gomock.Any(), "local_data.xlsx", gomock.Any()).Return(nil)
			snap := domain.LedgerSnapshot{Sheet: "1.26", Layout: layout, Rows: tt.ledger}
			ledger.EXPECT().GetLedger(gomock.Any(), "1.26").Return(snap, tt.ledgerFound, nil)
			tt.expect(ledger)

			uc := usecase.NewReconciliationUseCase(usecase.NewNormalizeUseCase(source, staging, quietLog), ledger, quietLog)
			got, err := uc.Run(context.Background(), usecase.Request{
				Source:      "/data/export.csv",
				StagingPath: "local_data.xlsx",
				Sheet:       "1.26",
				ReportTitle: "Changes 1.26",
				DryRun:      tt.dryRun,
				Now:         now,
			})

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, got)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tt.want, got.Summary)
			assert.Len(t, got.Changes, tt.wantChanges)
			if tt.wantMissing == nil {
				assert.Empty(t, got.MissingFromLedger)
			} else {
				assert.Equal(t, tt.wantMissing, got.MissingFromLedger)
			}
			assert.Equal(t, len(got.Patches), got.Summary.FilledCells)
		})
	}
}

func TestReconciliationUseCase_LedgerReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_usecase.NewMockSourceRepository(ctrl)
	staging := mock_usecase.NewMockStagingRepository(ctrl)
	ledger := mock_usecase.NewMockLedgerRepository(ctrl)

	source.EXPECT().ReadSource(gomock.Any(), gomock.Any()).Return(csvDocument(domain.RawRow{"תאריך": "01.01.2026", "כניסה": "08:00"}), nil)
	staging.EXPECT().WriteStaging(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	ledger.EXPECT().GetLedger(gomock.Any(), "2.26").Return(domain.LedgerSnapshot{}, false, errors.New("permission denied"))

	uc := usecase.NewReconciliationUseCase(usecase.NewNormalizeUseCase(source, staging, nil), ledger, nil)
	_, err := uc.Run(context.Background(), usecase.Request{Source: "a.csv", StagingPath: "b.xlsx", Sheet: "2.26"})

	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrLedgerSheetNotFound))
}
