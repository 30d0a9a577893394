package rule

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/performance"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
)

// CheckReviewDue reports an unknown employee as not due.
func (s *RuleService) CheckReviewDue(ctx context.Context, employeeID string) (rule.ReviewStatus, error) {
	emp, err := s.data.Employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return rule.ReviewStatus{}, nil
		}
		return rule.ReviewStatus{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return s.reviewStatus(ctx, emp)
}

// CheckTrainingCompliance only reads training records, so an unknown employee has zero hours.
func (s *RuleService) CheckTrainingCompliance(ctx context.Context, employeeID string) (rule.TrainingCompliance, error) {
	return s.trainingCompliance(ctx, employeeID)
}

// CheckRetirementEligibility reports an unknown employee as not eligible.
func (s *RuleService) CheckRetirementEligibility(ctx context.Context, employeeID string) (rule.RetirementEligibility, error) {
	emp, err := s.data.Employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return rule.RetirementEligibility{}, nil
		}
		return rule.RetirementEligibility{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return s.retirementEligibility(emp), nil
}

// reviewStatus measures time since the latest review, or since hire when there is none.
func (s *RuleService) reviewStatus(ctx context.Context, emp employee.Employee) (rule.ReviewStatus, error) {
	var status rule.ReviewStatus

	last := dateOf(emp.HireDate)
	review, err := s.data.Reviews.GetLatestByEmployeeID(ctx, emp.ID)
	switch {
	case err == nil:
		last = dateOf(review.ReviewDate)
	case !errors.Is(err, performance.ErrReviewNotFound):
		return rule.ReviewStatus{}, fmt.Errorf("failed to get latest performance review: %w", err)
	}

	days := daysBetween(last, s.today())
	status.LastReviewDate = &last
	status.DaysSinceReview = &days

	frequency := s.policy.PerformanceReviewFrequencyDays
	grace := s.policy.ReviewGracePeriodDays
	var action string
	switch {
	case days >= frequency+grace:
		status.Due, status.Overdue = true, true
		action = "Schedule immediate performance review"
	case days >= frequency:
		status.Due = true
		action = "Schedule performance review"
	case days >= frequency-grace:
		action = "Performance review coming due"
	}
	if action != "" {
		status.RecommendedAction = &action
	}

	return status, nil
}

func (s *RuleService) trainingCompliance(ctx context.Context, employeeID string) (rule.TrainingCompliance, error) {
	hours, err := s.trainingHours(ctx, employeeID, s.today().Year())
	if err != nil {
		return rule.TrainingCompliance{}, err
	}

	required := s.policy.MandatoryTrainingHoursPerYear
	result := rule.TrainingCompliance{
		Compliant:       hours >= required,
		HoursCompleted:  hours,
		HoursRequired:   required,
		MissingHours:    max(0, required-hours),
		Recommendations: []string{},
	}
	if !result.Compliant {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("Complete %d additional training hours", result.MissingHours))
	}
	return result, nil
}

// retirementEligibility is not evaluable without a date of birth.
func (s *RuleService) retirementEligibility(emp employee.Employee) rule.RetirementEligibility {
	var result rule.RetirementEligibility
	if emp.DOB == nil {
		return result
	}

	today := s.today()
	dob := dateOf(*emp.DOB)
	age := ageOn(dob, today)
	years := float64(daysBetween(emp.HireDate, today)) / daysPerYear
	retirement := dob.AddDate(s.policy.RetirementAge, 0, 0)

	result.Age = &age
	result.YearsOfService = &years
	result.RetirementDate = &retirement
	result.Eligible = age >= s.policy.RetirementAge
	return result
}
