package rule

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/leave"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ValidateLeaveRequest struct {
	EmployeeID    string `json:"employee_id"`
	LeaveType     string `json:"leave_type"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	DaysRequested int    `json:"days_requested"`
}

func (r *ValidateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if _, err := leave.ParseLeaveType(r.LeaveType); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: " + strings.Join(leave.LeaveTypeValues, ", "),
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	if r.DaysRequested <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days_requested",
			Message: "days_requested must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Input converts a validated request into evaluator input.
func (r *ValidateLeaveRequest) Input() LeaveRequestInput {
	leaveType, _ := leave.ParseLeaveType(r.LeaveType)
	start, _ := time.Parse(time.DateOnly, r.StartDate)
	end, _ := time.Parse(time.DateOnly, r.EndDate)
	return LeaveRequestInput{
		EmployeeID:    strings.TrimSpace(r.EmployeeID),
		LeaveType:     leaveType,
		StartDate:     start,
		EndDate:       end,
		DaysRequested: r.DaysRequested,
	}
}

type ValidateSalaryRequest struct {
	EmployeeID     string           `json:"employee_id"`
	NewSalary      *decimal.Decimal `json:"new_salary"`
	AdjustmentType string           `json:"adjustment_type"`
}

func (r *ValidateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.NewSalary == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "new_salary",
			Message: "new_salary is required",
		})
	} else if !r.NewSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "new_salary",
			Message: "new_salary must be a positive amount",
		})
	}
	if r.AdjustmentType != "" &&
		!validator.IsInSlice(r.AdjustmentType, []string{string(AdjustmentIncrease), string(AdjustmentDecrease)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "adjustment_type",
			Message: "adjustment_type must be one of: increase, decrease",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Input converts a validated request into evaluator input. The adjustment type defaults to increase.
func (r *ValidateSalaryRequest) Input() SalaryAdjustmentInput {
	adjustment := AdjustmentType(r.AdjustmentType)
	if adjustment == "" {
		adjustment = AdjustmentIncrease
	}
	in := SalaryAdjustmentInput{
		EmployeeID:     strings.TrimSpace(r.EmployeeID),
		AdjustmentType: adjustment,
	}
	if r.NewSalary != nil {
		in.NewSalary = *r.NewSalary
	}
	return in
}

type ValidatePromotionRequest struct {
	EmployeeID    string `json:"employee_id"`
	NewPositionID string `json:"new_position_id"`
}

func (r *ValidatePromotionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.NewPositionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_position_id",
			Message: "new_position_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ExportAuditRequest selects the export format and an optional file name for an audit report.
type ExportAuditRequest struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
}

const (
	ExportFormatJSON = "json"
	ExportFormatPDF  = "pdf"
)

func (r *ExportAuditRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Format != "" && !validator.IsInSlice(r.Format, []string{ExportFormatJSON, ExportFormatPDF}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: json, pdf",
		})
	}
	if !validator.IsValidFilename(r.Filename) {
		errs = append(errs, validator.ValidationError{
			Field:   "filename",
			Message: "filename must be a plain file name",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ExportAuditResponse describes a stored audit report.
type ExportAuditResponse struct {
	Filename string                `json:"filename"`
	URL      string                `json:"url"`
	Report   ComplianceAuditReport `json:"report"`
}
