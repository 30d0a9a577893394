package rule

import (
	"context"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
)

// DefaultAttendancePeriodDays is the trailing window the compliance audit inspects.
const DefaultAttendancePeriodDays = 30

// RuleService evaluates HR actions against the company policy.
// Every evaluation that reaches a verdict is recorded in the audit trail.
type RuleService interface {
	ValidateLeaveRequest(ctx context.Context, in LeaveRequestInput) (LeaveValidationResult, error)
	ValidateSalaryAdjustment(ctx context.Context, in SalaryAdjustmentInput) (SalaryValidationResult, error)
	ValidatePromotion(ctx context.Context, employeeID, newPositionID string) (PromotionValidationResult, error)

	// AnalyzeAttendance inspects the periodDays days ending today.
	AnalyzeAttendance(ctx context.Context, employeeID string, periodDays int) (AttendanceAnalysis, error)

	CheckReviewDue(ctx context.Context, employeeID string) (ReviewStatus, error)
	CheckTrainingCompliance(ctx context.Context, employeeID string) (TrainingCompliance, error)
	CheckRetirementEligibility(ctx context.Context, employeeID string) (RetirementEligibility, error)

	// RunComplianceAudit checks every active employee.
	RunComplianceAudit(ctx context.Context) (ComplianceAuditReport, error)

	// RecentAuditEntries returns at most limit entries, oldest first.
	RecentAuditEntries(limit int) []audit.Entry
}
