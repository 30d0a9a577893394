package rule

import (
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/leave"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/policy"
	"github.com/shopspring/decimal"
)

// ValidationResult is the common part of every validator verdict.
// Invalidity is data: a rejected action still comes back as a result, not an error.
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
	Warnings   []string `json:"warnings"`
}

func NewValidationResult() ValidationResult {
	return ValidationResult{Valid: true, Violations: []string{}, Warnings: []string{}}
}

// Violate records a policy breach and marks the result invalid.
func (r *ValidationResult) Violate(msg string) {
	r.Valid = false
	r.Violations = append(r.Violations, msg)
}

// Warn records a non-blocking remark.
func (r *ValidationResult) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

type LeaveValidationResult struct {
	ValidationResult
	AutoApprove bool `json:"auto_approve"`
}

type SalaryValidationResult struct {
	ValidationResult
	CurrentSalary     decimal.Decimal  `json:"current_salary"`
	AdjustmentPct     float64          `json:"adjustment_pct"`
	PositionLevel     policy.Level     `json:"position_level,omitempty"`
	RecommendedSalary *decimal.Decimal `json:"recommended_salary"`
}

// Criterion names a promotion requirement.
type Criterion string

const (
	CriterionTenure               Criterion = "tenure"
	CriterionPerformance          Criterion = "performance"
	CriterionManagementExperience Criterion = "management_experience"
	CriterionTraining             Criterion = "training"
)

type PromotionValidationResult struct {
	ValidationResult
	RequirementsMet map[Criterion]bool `json:"requirements_met"`
}

type AttendancePatterns struct {
	NoData              bool          `json:"no_data,omitempty"`
	AttendanceRate      float64       `json:"attendance_rate"`
	LateRate            float64       `json:"late_rate"`
	AbsentDays          int           `json:"absent_days"`
	TotalDays           int           `json:"total_days"`
	ConsecutiveAbsences [][]time.Time `json:"consecutive_absences,omitempty"`
}

type AttendanceAnalysis struct {
	Violations      []string           `json:"violations"`
	Patterns        AttendancePatterns `json:"patterns"`
	Recommendations []string           `json:"recommendations"`
}

type ReviewStatus struct {
	Due               bool       `json:"due"`
	Overdue           bool       `json:"overdue"`
	LastReviewDate    *time.Time `json:"last_review_date"`
	DaysSinceReview   *int       `json:"days_since_review"`
	RecommendedAction *string    `json:"recommended_action"`
}

type TrainingCompliance struct {
	Compliant       bool     `json:"compliant"`
	HoursCompleted  int      `json:"hours_completed"`
	HoursRequired   int      `json:"hours_required"`
	MissingHours    int      `json:"missing_hours"`
	Recommendations []string `json:"recommendations"`
}

type RetirementEligibility struct {
	Eligible       bool       `json:"eligible"`
	Age            *int       `json:"age"`
	YearsOfService *float64   `json:"years_of_service"`
	RetirementDate *time.Time `json:"retirement_date"`
}

type EmployeeViolations struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Violations   []string `json:"violations"`
}

type AuditSummary struct {
	AttendanceViolations     int `json:"attendance_violations"`
	PerformanceReviewsOverdue int `json:"performance_reviews_overdue"`
	TrainingNonCompliant     int `json:"training_non_compliant"`
	RetirementEligible       int `json:"retirement_eligible"`
}

// ComplianceAuditReport aggregates every compliance check over the active workforce.
// Employees without findings are omitted from Violations.
type ComplianceAuditReport struct {
	Timestamp        time.Time            `json:"timestamp"`
	EmployeesAudited int                  `json:"employees_audited"`
	Violations       []EmployeeViolations `json:"violations"`
	Summary          AuditSummary         `json:"summary"`
}

// LeaveRequestInput is a proposed leave request.
type LeaveRequestInput struct {
	EmployeeID    string
	LeaveType     leave.LeaveType
	StartDate     time.Time
	EndDate       time.Time
	DaysRequested int
}

type AdjustmentType string

const (
	AdjustmentIncrease AdjustmentType = "increase"
	AdjustmentDecrease AdjustmentType = "decrease"
)

// SalaryAdjustmentInput is a proposed new salary.
type SalaryAdjustmentInput struct {
	EmployeeID     string
	NewSalary      decimal.Decimal
	AdjustmentType AdjustmentType
}
