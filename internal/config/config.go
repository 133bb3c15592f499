package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"hours-reconciliation/internal/domain"
)

// Config holds environment-driven configuration.
type Config struct {
	Source struct {
		File        string // SOURCE_FILE
		StagingPath string // default: local_data.xlsx
	}
	Ledger struct {
		SpreadsheetID   string // GSHEET_ID
		CredentialsFile string // default: service_key.json
		Sheet           string // empty means the current month as M.YY
		ReportPrefix    string // default: "Changes "
	}
	Debug struct {
		Verbose bool // DEBUG, raises the log level
		PDF     bool
		SaveRaw bool
	}
	PDF struct {
		StripBidi     bool // default: on
		ReverseHebrew bool
	}
	Sync struct {
		Timezone string // e.g., UTC (default), Asia/Jerusalem
	}
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config

	cfg.Source.File = os.Getenv("SOURCE_FILE")
	cfg.Source.StagingPath = envOr("STAGING_PATH", "local_data.xlsx")

	cfg.Ledger.SpreadsheetID = os.Getenv("GSHEET_ID")
	cfg.Ledger.CredentialsFile = envOr("GOOGLE_JSON_FILE", "service_key.json")
	cfg.Ledger.Sheet = strings.TrimSpace(os.Getenv("LEDGER_SHEET"))
	cfg.Ledger.ReportPrefix = "Changes "
	if v, ok := os.LookupEnv("REPORT_SHEET_PREFIX"); ok {
		cfg.Ledger.ReportPrefix = v
	}

	cfg.Debug.Verbose = envBool("DEBUG", false)
	cfg.Debug.PDF = envBool("DEBUG_PDF", false)
	cfg.Debug.SaveRaw = envBool("DEBUG_SAVE_RAW", false)
	cfg.PDF.StripBidi = envBool("PDF_STRIP_BIDI", true)
	cfg.PDF.ReverseHebrew = envBool("PDF_REVERSE_HEBREW", false)

	cfg.Sync.Timezone = envOr("SYNC_TZ", "UTC")
	if _, err := time.LoadLocation(cfg.Sync.Timezone); err != nil {
		return cfg, fmt.Errorf("SYNC_TZ: %w", err)
	}

	return cfg, nil
}

// RequireLedger checks the settings needed to reach the remote ledger.
func (c Config) RequireLedger() error {
	if c.Ledger.SpreadsheetID == "" {
		return fmt.Errorf("%w: GSHEET_ID is required", domain.ErrIncompleteConfig)
	}
	if c.Ledger.CredentialsFile == "" {
		return fmt.Errorf("%w: GOOGLE_JSON_FILE is required", domain.ErrIncompleteConfig)
	}
	return nil
}

// Location returns the configured timezone, UTC when it cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Sync.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LedgerSheet returns the configured period sheet, or the month of now as M.YY.
func (c Config) LedgerSheet(now time.Time) string {
	if c.Ledger.Sheet != "" {
		return c.Ledger.Sheet
	}
	return PeriodSheet(now)
}

// ReportTitle names the change report belonging to a period sheet.
func (c Config) ReportTitle(sheet string) string {
	return c.Ledger.ReportPrefix + sheet
}

// PeriodSheet formats the ledger sheet name of the month holding t, e.g. "1.26".
func PeriodSheet(t time.Time) string {
	return fmt.Sprintf("%d.%02d", int(t.Month()), t.Year()%100)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
