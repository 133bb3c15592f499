package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"hours-reconciliation/internal/domain"
	"hours-reconciliation/internal/extract"
)

const debugSampleSize = 10

// SourceOptions toggle the optional diagnostics and PDF text cleanup.
type SourceOptions struct {
	DebugPDF bool // log extractor state for PDF sources
	SaveRaw  bool // write <source>.raw.json next to the source
	Extract  extract.Options
}

// DocumentRepository reads a source document of any supported kind into a RawDocument.
type DocumentRepository struct {
	tabular  *TabularReader
	layout   *PDFLayoutReader
	pipeline *extract.Pipeline
	opts     SourceOptions
	Log      *slog.Logger
}

// NewDocumentRepository wires the tabular and PDF readers.
func NewDocumentRepository(opts SourceOptions, log *slog.Logger) *DocumentRepository {
	if log == nil {
		log = slog.Default()
	}
	return &DocumentRepository{
		tabular:  NewTabularReader(),
		layout:   NewPDFLayoutReader(),
		pipeline: extract.NewPipeline(opts.Extract),
		opts:     opts,
		Log:      log,
	}
}

// ReadSource picks a reader from the file extension and extracts the document.
func (r *DocumentRepository) ReadSource(ctx context.Context, path string) (*domain.RawDocument, error) {
	var (
		doc *domain.RawDocument
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls", ".csv":
		doc, err = r.tabular.Read(ctx, path)
	case ".pdf":
		doc, err = r.readPDF(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}

	r.Log.Info("source extracted",
		slog.String("path", path),
		slog.String("kind", string(doc.Meta.SourceKind)),
		slog.String("mode", string(doc.Meta.ParserMode)),
		slog.Int("rows", len(doc.Rows)),
	)

	if r.opts.SaveRaw {
		dump, err := writeRawDump(path, doc)
		if err != nil {
			r.Log.Warn("raw dump failed", slog.String("path", dump), slog.String("error", err.Error()))
		} else {
			r.Log.Info("raw dump written", slog.String("path", dump))
		}
	}
	return doc, nil
}

func (r *DocumentRepository) readPDF(ctx context.Context, path string) (*domain.RawDocument, error) {
	layout, err := r.layout.ReadLayout(ctx, path)
	if err != nil {
		return nil, err
	}

	out, err := r.pipeline.Run(layout)
	if r.opts.DebugPDF && out != nil {
		r.logAttempts(out, len(layout.Pages))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to extract rows from %s: %w", path, err)
	}

	doc := out.Document
	doc.Meta.SourcePath = path
	return &doc, nil
}

func (r *DocumentRepository) logAttempts(out *extract.Outcome, pages int) {
	for _, res := range out.Attempts {
		headers := res.Headers
		if len(headers) > debugSampleSize {
			headers = headers[:debugSampleSize]
		}
		r.Log.Debug("pdf extraction attempt",
			slog.String("mode", string(res.Mode)),
			slog.Int("pages", pages),
			slog.Int("month", out.Period.Month),
			slog.Int("year", out.Period.Year),
			slog.Any("headers", headers),
			slog.Int("records", len(res.Rows)),
			slog.Int("issues", len(res.Issues)),
		)
		for i, row := range res.Rows {
			if i == debugSampleSize {
				break
			}
			r.Log.Debug("pdf sample row", slog.Any("row", row))
		}
		for i, issue := range res.Issues {
			if i == debugSampleSize {
				break
			}
			r.Log.Debug("pdf unparsed line", slog.String("reason", issue.Reason), slog.String("line", issue.Line))
		}
	}
}

// writeRawDump stores doc as indented JSON next to the source and returns the dump path.
func writeRawDump(source string, doc *domain.RawDocument) (string, error) {
	dump := source + ".raw.json"
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return dump, fmt.Errorf("failed to encode raw document: %w", err)
	}
	if err := os.WriteFile(dump, data, 0o644); err != nil {
		return dump, fmt.Errorf("failed to write %s: %w", dump, err)
	}
	return dump, nil
}
