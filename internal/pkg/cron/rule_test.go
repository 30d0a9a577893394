package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-policy-engine/internal/service/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRuleService struct {
	rule.RuleService
	report rule.ComplianceAuditReport
	err    error
	calls  int
}

func (s *stubRuleService) RunComplianceAudit(ctx context.Context) (rule.ComplianceAuditReport, error) {
	s.calls++
	return s.report, s.err
}

type stubAuditLogger struct {
	audit.AuditLogger
	flushes int
	err     error
}

func (l *stubAuditLogger) Flush(ctx context.Context) error {
	l.flushes++
	return l.err
}

func newRuleJobs(t *testing.T, svc *stubRuleService, logger *stubAuditLogger) (*RuleJobs, *storage.LocalStorage) {
	t.Helper()
	fs, err := storage.NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	exporter := report.NewExporter(fs, report.WithClock(func() time.Time {
		return time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC)
	}))
	return NewRuleJobs(svc, logger, exporter, 24*time.Hour, time.Minute), fs
}

func TestRuleJobs_Register(t *testing.T) {
	jobs, _ := newRuleJobs(t, &stubRuleService{}, &stubAuditLogger{})
	s := NewScheduler()

	jobs.RegisterJobs(s)

	assert.Equal(t, []string{JobComplianceAudit, JobFlushAuditLog}, s.Jobs())
}

func TestRuleJobs_RegisterSkipsDisabledAudit(t *testing.T) {
	fs, err := storage.NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	jobs := NewRuleJobs(&stubRuleService{}, &stubAuditLogger{}, report.NewExporter(fs), 0, time.Minute)
	s := NewScheduler()

	jobs.RegisterJobs(s)

	assert.Equal(t, []string{JobFlushAuditLog}, s.Jobs())
}

func TestRuleJobs_ComplianceAuditExportsReport(t *testing.T) {
	svc := &stubRuleService{report: rule.ComplianceAuditReport{
		EmployeesAudited: 4,
		Violations:       []rule.EmployeeViolations{},
	}}
	jobs, fs := newRuleJobs(t, svc, &stubAuditLogger{})

	require.NoError(t, jobs.ComplianceAudit(context.Background()))

	assert.Equal(t, 1, svc.calls)
	exists, err := fs.Exists(context.Background(), "hr_audit_20260315_020000.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRuleJobs_ComplianceAuditFailure(t *testing.T) {
	svc := &stubRuleService{err: errors.New("connection refused")}
	jobs, fs := newRuleJobs(t, svc, &stubAuditLogger{})

	err := jobs.ComplianceAudit(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	exists, _ := fs.Exists(context.Background(), "hr_audit_20260315_020000.json")
	assert.False(t, exists)
}

func TestRuleJobs_FlushAuditLog(t *testing.T) {
	logger := &stubAuditLogger{}
	jobs, _ := newRuleJobs(t, &stubRuleService{}, logger)

	require.NoError(t, jobs.FlushAuditLog(context.Background()))
	assert.Equal(t, 1, logger.flushes)

	logger.err = errors.New("sink unavailable")
	assert.ErrorContains(t, jobs.FlushAuditLog(context.Background()), "sink unavailable")
}
