package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/report"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
)

const (
	JobComplianceAudit = "compliance_audit"
	JobFlushAuditLog   = "flush_audit_log"
)

type RuleJobs struct {
	ruleService   rule.RuleService
	auditLogger   audit.AuditLogger
	exporter      report.ReportExporter
	auditInterval time.Duration
	flushInterval time.Duration
}

func NewRuleJobs(
	ruleService rule.RuleService,
	auditLogger audit.AuditLogger,
	exporter report.ReportExporter,
	auditInterval time.Duration,
	flushInterval time.Duration,
) *RuleJobs {
	return &RuleJobs{
		ruleService:   ruleService,
		auditLogger:   auditLogger,
		exporter:      exporter,
		auditInterval: auditInterval,
		flushInterval: flushInterval,
	}
}

func (j *RuleJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{Name: JobComplianceAudit, Interval: j.auditInterval, Fn: j.ComplianceAudit, Delayed: true})
	scheduler.AddJob(Job{Name: JobFlushAuditLog, Interval: j.flushInterval, Fn: j.FlushAuditLog, Delayed: true})
}

// ComplianceAudit runs the batch audit and stores a JSON copy of the report.
func (j *RuleJobs) ComplianceAudit(ctx context.Context) error {
	slog.Info("Cron: Starting compliance audit job")

	result, err := j.ruleService.RunComplianceAudit(ctx)
	if err != nil {
		return fmt.Errorf("compliance audit: %w", err)
	}

	path, err := j.exporter.ExportJSON(ctx, result, "")
	if err != nil {
		return fmt.Errorf("export compliance audit: %w", err)
	}

	slog.Info("Cron: Compliance audit job completed",
		"employees_audited", result.EmployeesAudited,
		"employees_with_violations", len(result.Violations),
		"path", path,
	)
	return nil
}

func (j *RuleJobs) FlushAuditLog(ctx context.Context) error {
	if err := j.auditLogger.Flush(ctx); err != nil {
		return fmt.Errorf("flush audit log: %w", err)
	}
	return nil
}
