package audit

import "time"

// Entry is one rule decision in the audit trail.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	RuleName   string    `json:"rule_name"`
	Action     string    `json:"action"`
	Details    string    `json:"details"`
	EmployeeID *string   `json:"employee_id"`
}

// Rule names recorded by the engine.
const (
	RuleLeaveValidation     = "leave_validation"
	RuleSalaryValidation    = "salary_validation"
	RulePromotionValidation = "promotion_validation"
	RuleAttendanceAnalysis  = "attendance_analysis"
	RuleComplianceAudit     = "compliance_audit"
)

// Actions recorded by the engine.
const (
	ActionValidated = "validated"
	ActionApproved  = "approved"
	ActionRejected  = "rejected"
	ActionCompleted = "completed"
)
