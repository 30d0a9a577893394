package rule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
	"golang.org/x/sync/errgroup"
)

type employeeFindings struct {
	violations        []string
	attendance        bool
	reviewOverdue     bool
	trainingMissing   bool
	retirementReached bool
}

// RunComplianceAudit evaluates every active employee. Employees are checked
// concurrently but the report keeps the order the repository returned them in.
func (s *RuleService) RunComplianceAudit(ctx context.Context) (rule.ComplianceAuditReport, error) {
	started := s.now()

	employees, err := s.data.Employees.GetActive(ctx)
	if err != nil {
		return rule.ComplianceAuditReport{}, fmt.Errorf("failed to get active employees: %w", err)
	}

	findings := make([]employeeFindings, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, emp := range employees {
		g.Go(func() error {
			f, err := s.auditEmployee(gctx, emp)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			findings[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rule.ComplianceAuditReport{}, err
	}

	report := rule.ComplianceAuditReport{
		Timestamp:        started,
		EmployeesAudited: len(employees),
		Violations:       []rule.EmployeeViolations{},
	}
	for i, f := range findings {
		if f.attendance {
			report.Summary.AttendanceViolations++
		}
		if f.reviewOverdue {
			report.Summary.PerformanceReviewsOverdue++
		}
		if f.trainingMissing {
			report.Summary.TrainingNonCompliant++
		}
		if f.retirementReached {
			report.Summary.RetirementEligible++
		}
		if len(f.violations) > 0 {
			report.Violations = append(report.Violations, rule.EmployeeViolations{
				EmployeeID:   employees[i].ID,
				EmployeeName: employees[i].FullName(),
				Violations:   f.violations,
			})
		}
	}

	details := fmt.Sprintf("Audited %d employees, found %d with violations", report.EmployeesAudited, len(report.Violations))
	s.audit.Record(audit.RuleComplianceAudit, audit.ActionCompleted, details, nil)
	slog.Info("Compliance audit completed",
		"employees_audited", report.EmployeesAudited,
		"employees_with_violations", len(report.Violations),
		"duration", s.now().Sub(started).String(),
	)

	return report, nil
}

func (s *RuleService) auditEmployee(ctx context.Context, emp employee.Employee) (employeeFindings, error) {
	var f employeeFindings

	attendance, err := s.AnalyzeAttendance(ctx, emp.ID, rule.DefaultAttendancePeriodDays)
	if err != nil {
		return f, err
	}
	if len(attendance.Violations) > 0 {
		f.attendance = true
		f.violations = append(f.violations, attendance.Violations...)
	}

	review, err := s.reviewStatus(ctx, emp)
	if err != nil {
		return f, err
	}
	if review.Overdue {
		f.reviewOverdue = true
		f.violations = append(f.violations, "Performance review overdue")
	}

	training, err := s.trainingCompliance(ctx, emp.ID)
	if err != nil {
		return f, err
	}
	if !training.Compliant {
		f.trainingMissing = true
		f.violations = append(f.violations, fmt.Sprintf("Training non-compliant: %d hours missing", training.MissingHours))
	}

	if s.retirementEligibility(emp).Eligible {
		f.retirementReached = true
		f.violations = append(f.violations, "Eligible for retirement")
	}

	return f, nil
}
