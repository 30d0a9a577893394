package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/report"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/storage"
)

const (
	filenamePrefix = "hr_audit_"
	filenameLayout = "20060102_150405"

	contentTypeJSON = "application/json"
	contentTypePDF  = "application/pdf"
)

type Exporter struct {
	storage storage.FileStorage
	now     func() time.Time
}

type Option func(*Exporter)

// WithClock overrides the clock used for default file names.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

func NewExporter(fs storage.FileStorage, opts ...Option) *Exporter {
	e := &Exporter{storage: fs, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exporter) Export(ctx context.Context, format string, r rule.ComplianceAuditReport, filename string) (string, error) {
	switch strings.ToLower(format) {
	case rule.ExportFormatJSON:
		return e.ExportJSON(ctx, r, filename)
	case rule.ExportFormatPDF:
		return e.ExportPDF(ctx, r, filename)
	default:
		return "", fmt.Errorf("%w: %q", report.ErrUnsupportedFormat, format)
	}
}

// ExportJSON writes the report as indented JSON.
func (e *Exporter) ExportJSON(ctx context.Context, r rule.ComplianceAuditReport, filename string) (string, error) {
	body, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	path, err := e.storage.Upload(ctx, bytes.NewReader(body), e.filename(filename, ".json"), contentTypeJSON)
	if err != nil {
		return "", fmt.Errorf("failed to store json report: %w", err)
	}
	return path, nil
}

// ExportPDF renders a summary page followed by the violation list.
func (e *Exporter) ExportPDF(ctx context.Context, r rule.ComplianceAuditReport, filename string) (string, error) {
	var buf bytes.Buffer
	if err := renderPDF(&buf, r); err != nil {
		return "", fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	path, err := e.storage.Upload(ctx, &buf, e.filename(filename, ".pdf"), contentTypePDF)
	if err != nil {
		return "", fmt.Errorf("failed to store pdf report: %w", err)
	}
	return path, nil
}

func (e *Exporter) URL(ctx context.Context, path string) (string, error) {
	return e.storage.GetURL(ctx, path, 0)
}

func (e *Exporter) filename(name, ext string) string {
	if name == "" {
		return filenamePrefix + e.now().UTC().Format(filenameLayout) + ext
	}
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	return name
}

var _ report.ReportExporter = (*Exporter)(nil)
