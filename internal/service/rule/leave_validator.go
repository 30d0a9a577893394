package rule

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/leave"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
)

func (s *RuleService) ValidateLeaveRequest(ctx context.Context, in rule.LeaveRequestInput) (rule.LeaveValidationResult, error) {
	result := rule.LeaveValidationResult{ValidationResult: rule.NewValidationResult()}

	emp, err := s.data.Employees.GetByID(ctx, in.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			result.Violate("Employee not found")
			return result, nil
		}
		return rule.LeaveValidationResult{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	start, end := dateOf(in.StartDate), dateOf(in.EndDate)

	probationEnd := dateOf(emp.HireDate).AddDate(0, 0, s.policy.ProbationPeriodDays)
	if start.Before(probationEnd) {
		result.Violate(fmt.Sprintf("Employee in probation period until %s", probationEnd.Format("2006-01-02")))
	}

	switch in.LeaveType {
	case leave.LeaveTypeAnnual:
		if err := s.checkLeaveCap(ctx, &result, in, start.Year(), s.policy.MaxAnnualLeaveDays, "annual"); err != nil {
			return rule.LeaveValidationResult{}, err
		}
	case leave.LeaveTypeSick:
		if err := s.checkLeaveCap(ctx, &result, in, start.Year(), s.policy.MaxSickLeaveDays, "sick"); err != nil {
			return rule.LeaveValidationResult{}, err
		}
	}

	if in.LeaveType == leave.LeaveTypeAnnual && in.DaysRequested <= autoApproveMaxDays {
		latest, err := s.latestScore(ctx, emp.ID)
		if err != nil {
			return rule.LeaveValidationResult{}, err
		}
		if latest != nil && *latest >= autoApproveMinScore {
			result.AutoApprove = true
			result.Warn("Auto-approved based on good performance")
		}
	}

	open, err := s.data.Leaves.GetOpenByEmployeeID(ctx, emp.ID)
	if err != nil {
		return rule.LeaveValidationResult{}, fmt.Errorf("failed to get open leave requests: %w", err)
	}
	for _, existing := range open {
		if existing.Overlaps(start, end) {
			result.Violate(fmt.Sprintf("Overlapping with existing leave request #%s", existing.ID))
			break
		}
	}

	action := audit.ActionValidated
	if !result.Valid {
		action = audit.ActionRejected
	}
	s.record(audit.RuleLeaveValidation, action,
		fmt.Sprintf("Leave request for %d days: %s", in.DaysRequested, outcome(result.Violations, "Valid")),
		emp.ID)

	return result, nil
}

func (s *RuleService) checkLeaveCap(ctx context.Context, result *rule.LeaveValidationResult, in rule.LeaveRequestInput, year, limit int, label string) error {
	taken, err := s.data.Leaves.SumApprovedDays(ctx, in.EmployeeID, in.LeaveType, year)
	if err != nil {
		return fmt.Errorf("failed to sum approved %s leave: %w", label, err)
	}
	if total := taken + in.DaysRequested; total > limit {
		result.Violate(fmt.Sprintf("Exceeds %s leave limit: %d > %d", label, total, limit))
	}
	return nil
}
