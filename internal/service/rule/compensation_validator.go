package rule

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
	"github.com/shopspring/decimal"
)

func (s *RuleService) ValidateSalaryAdjustment(ctx context.Context, in rule.SalaryAdjustmentInput) (rule.SalaryValidationResult, error) {
	result := rule.SalaryValidationResult{ValidationResult: rule.NewValidationResult()}

	emp, err := s.data.Employees.GetByID(ctx, in.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			result.Violate("Employee not found")
			return result, nil
		}
		return rule.SalaryValidationResult{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	current := decimal.Zero
	latest, err := s.data.Payrolls.GetLatestByEmployeeID(ctx, emp.ID)
	switch {
	case errors.Is(err, payroll.ErrPayrollNotFound):
		result.Warn("No previous salary data found")
	case err != nil:
		return rule.SalaryValidationResult{}, fmt.Errorf("failed to get latest payroll: %w", err)
	default:
		current = latest.BasicSalary
	}
	result.CurrentSalary = current

	// Without a current salary the percentage is zero, so neither increase limit applies.
	pct := decimal.Zero
	if current.IsPositive() {
		pct = in.NewSalary.Sub(current).Div(current)
	}
	result.AdjustmentPct = pct.InexactFloat64()

	if in.AdjustmentType == rule.AdjustmentIncrease {
		minPct := decimal.NewFromFloat(s.policy.MinSalaryIncreasePct)
		maxPct := decimal.NewFromFloat(s.policy.MaxSalaryIncreasePct)
		if pct.LessThan(minPct) {
			result.Warn(fmt.Sprintf("Increase below minimum policy: %s < %s",
				percent(result.AdjustmentPct), percent(s.policy.MinSalaryIncreasePct)))
		} else if pct.GreaterThan(maxPct) {
			result.Violate(fmt.Sprintf("Increase exceeds maximum policy: %s > %s",
				percent(result.AdjustmentPct), percent(s.policy.MaxSalaryIncreasePct)))
			recommended := current.Mul(decimal.NewFromInt(1).Add(maxPct)).Round(2)
			result.RecommendedSalary = &recommended
		}
	}

	if err := s.checkSalaryBand(ctx, &result, emp, in.NewSalary); err != nil {
		return rule.SalaryValidationResult{}, err
	}

	if pct.GreaterThan(decimal.NewFromFloat(largeIncreasePct)) {
		latestScore, err := s.latestScore(ctx, emp.ID)
		if err != nil {
			return rule.SalaryValidationResult{}, err
		}
		if latestScore == nil || *latestScore < largeIncreaseMinScore {
			result.Violate("Large salary increase requires performance score ≥ 4.0")
		}
	}

	action := audit.ActionApproved
	if !result.Valid {
		action = audit.ActionRejected
	}
	s.record(audit.RuleSalaryValidation, action,
		fmt.Sprintf("Salary adjustment to %s (%s): %s", money(in.NewSalary), percent(result.AdjustmentPct), outcome(result.Violations, "Valid")),
		emp.ID)

	return result, nil
}

func (s *RuleService) checkSalaryBand(ctx context.Context, result *rule.SalaryValidationResult, emp employee.Employee, newSalary decimal.Decimal) error {
	if emp.PositionID == nil {
		result.Warn("No position assigned: salary band check skipped")
		return nil
	}
	pos, err := s.data.Positions.GetByID(ctx, *emp.PositionID)
	if err != nil {
		if errors.Is(err, position.ErrPositionNotFound) {
			result.Warn("Position not found: salary band check skipped")
			return nil
		}
		return fmt.Errorf("failed to get position by ID: %w", err)
	}

	level := PositionLevel(pos.Title)
	result.PositionLevel = level
	band, ok := s.policy.Band(level)
	if !ok {
		return nil
	}

	if newSalary.LessThan(band.Min) {
		result.Violate(fmt.Sprintf("Salary below band minimum for %s: %s < %s", level, money(newSalary), money(band.Min)))
	} else if newSalary.GreaterThan(band.Max) {
		result.Violate(fmt.Sprintf("Salary exceeds band maximum for %s: %s > %s", level, money(newSalary), money(band.Max)))
	}
	return nil
}
