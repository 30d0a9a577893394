package rule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
)

func (s *RuleService) ValidatePromotion(ctx context.Context, employeeID, newPositionID string) (rule.PromotionValidationResult, error) {
	result := rule.PromotionValidationResult{
		ValidationResult: rule.NewValidationResult(),
		RequirementsMet:  map[rule.Criterion]bool{},
	}

	emp, err := s.data.Employees.GetByID(ctx, employeeID)
	if err != nil && !errors.Is(err, employee.ErrEmployeeNotFound) {
		return rule.PromotionValidationResult{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	empFound := err == nil

	target, err := s.data.Positions.GetByID(ctx, newPositionID)
	if err != nil && !errors.Is(err, position.ErrPositionNotFound) {
		return rule.PromotionValidationResult{}, fmt.Errorf("failed to get position by ID: %w", err)
	}
	if !empFound || err != nil {
		result.Violate("Employee or position not found")
		return result, nil
	}

	today := s.today()
	tenureDays := daysBetween(emp.HireDate, today)

	minTenure := s.policy.MinTenureForPromotionDays
	result.RequirementsMet[rule.CriterionTenure] = tenureDays >= minTenure
	if !result.RequirementsMet[rule.CriterionTenure] {
		result.Violate(fmt.Sprintf("Insufficient tenure: %d days < %d days required", tenureDays, minTenure))
	}

	latest, err := s.latestScore(ctx, emp.ID)
	if err != nil {
		return rule.PromotionValidationResult{}, err
	}
	result.RequirementsMet[rule.CriterionPerformance] = latest != nil && *latest >= promotionMinScore
	if !result.RequirementsMet[rule.CriterionPerformance] {
		got := "No data"
		if latest != nil {
			got = score(*latest)
		}
		result.Violate(fmt.Sprintf("Performance requirement not met: %s < %s", got, score(promotionMinScore)))
	}

	if strings.Contains(strings.ToLower(target.Title), managerTitleKeyword) {
		years := float64(tenureDays) / daysPerYear
		minYears := s.policy.MinExperienceYearsForManager
		result.RequirementsMet[rule.CriterionManagementExperience] = years >= minYears
		if !result.RequirementsMet[rule.CriterionManagementExperience] {
			result.Violate(fmt.Sprintf("Insufficient experience for management: %.1f years < %s years", years, score(minYears)))
		}
	}

	hours, err := s.trainingHours(ctx, emp.ID, today.Year())
	if err != nil {
		return rule.PromotionValidationResult{}, err
	}
	required := s.policy.MandatoryTrainingHoursPerYear
	result.RequirementsMet[rule.CriterionTraining] = hours >= required
	if !result.RequirementsMet[rule.CriterionTraining] {
		result.Warn(fmt.Sprintf("Training hours below recommended: %d < %d", hours, required))
	}

	action := audit.ActionApproved
	if !result.Valid {
		action = audit.ActionRejected
	}
	s.record(audit.RulePromotionValidation, action,
		fmt.Sprintf("Promotion to %s: %s", target.Title, outcome(result.Violations, "Eligible")),
		emp.ID)

	return result, nil
}
