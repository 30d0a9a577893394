package report

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/report"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2026, 3, 15, 10, 15, 0, 0, time.UTC)

func sampleReport(n int) rule.ComplianceAuditReport {
	r := rule.ComplianceAuditReport{
		Timestamp:        generatedAt,
		EmployeesAudited: n + 2,
		Violations:       []rule.EmployeeViolations{},
		Summary: rule.AuditSummary{
			AttendanceViolations:      n,
			PerformanceReviewsOverdue: 1,
		},
	}
	for i := 0; i < n; i++ {
		r.Violations = append(r.Violations, rule.EmployeeViolations{
			EmployeeID:   "emp-" + string(rune('a'+i%26)),
			EmployeeName: "Ana Absent",
			Violations:   []string{"Excessive absences: 6 days", "Performance review overdue"},
		})
	}
	return r
}

func newTestExporter(t *testing.T) (*Exporter, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewLocalStorage(dir, "http://localhost:8080/exports")
	require.NoError(t, err)
	return NewExporter(fs, WithClock(func() time.Time { return generatedAt })), dir
}

func TestExportJSON_DefaultFilename(t *testing.T) {
	e, dir := newTestExporter(t)

	path, err := e.ExportJSON(context.Background(), sampleReport(1), "")

	require.NoError(t, err)
	assert.Equal(t, "hr_audit_20260315_101500.json", path)

	body, err := os.ReadFile(filepath.Join(dir, path))
	require.NoError(t, err)
	var decoded rule.ComplianceAuditReport
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, 3, decoded.EmployeesAudited)
	require.Len(t, decoded.Violations, 1)
	assert.Equal(t, "Ana Absent", decoded.Violations[0].EmployeeName)
	assert.Contains(t, string(body), "\n  \"employees_audited\": 3")
}

func TestExportJSON_AppendsExtension(t *testing.T) {
	e, _ := newTestExporter(t)

	path, err := e.ExportJSON(context.Background(), sampleReport(0), "march")

	require.NoError(t, err)
	assert.Equal(t, "march.json", path)

	url, err := e.URL(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/exports/march.json", url)
}

func TestExportPDF(t *testing.T) {
	e, dir := newTestExporter(t)

	// Enough rows to spill onto a second page.
	path, err := e.Export(context.Background(), "PDF", sampleReport(60), "")

	require.NoError(t, err)
	assert.Equal(t, "hr_audit_20260315_101500.pdf", path)

	body, err := os.ReadFile(filepath.Join(dir, path))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(body[:5]))
}

func TestExportPDF_NoViolations(t *testing.T) {
	e, _ := newTestExporter(t)

	path, err := e.ExportPDF(context.Background(), sampleReport(0), "empty.pdf")

	require.NoError(t, err)
	assert.Equal(t, "empty.pdf", path)
}

func TestExport_UnsupportedFormat(t *testing.T) {
	e, _ := newTestExporter(t)

	_, err := e.Export(context.Background(), "xml", sampleReport(0), "")

	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

type failingStorage struct{ storage.FileStorage }

func (failingStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	return "", errors.New("disk full")
}

func TestExport_StorageFailure(t *testing.T) {
	e := NewExporter(failingStorage{})

	_, err := e.ExportJSON(context.Background(), sampleReport(1), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
