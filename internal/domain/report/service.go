package report

import (
	"context"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
)

// ReportExporter persists compliance audit reports and returns the stored path.
type ReportExporter interface {
	// Export dispatches on format ("json" or "pdf"). An empty filename gets a timestamped default.
	Export(ctx context.Context, format string, r rule.ComplianceAuditReport, filename string) (string, error)

	ExportJSON(ctx context.Context, r rule.ComplianceAuditReport, filename string) (string, error)
	ExportPDF(ctx context.Context, r rule.ComplianceAuditReport, filename string) (string, error)

	// URL resolves a stored path to a downloadable URL
	URL(ctx context.Context, path string) (string, error)
}
