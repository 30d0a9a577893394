package rule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/performance"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/policy"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/training"
)

// Thresholds that are fixed business rules rather than configurable policy.
const (
	autoApproveMaxDays     = 3
	autoApproveMinScore    = 4.0
	largeIncreasePct       = 0.10
	largeIncreaseMinScore  = 4.0
	promotionMinScore      = 3.5
	managerTitleKeyword    = "manager"
	minAttendanceRate      = 0.90
	maxLateRate            = 0.20
	maxAbsentDays          = 5
	improvementPlanRate    = 0.80
	minConsecutiveAbsences = 3
	daysPerYear            = 365.25
)

type RuleService struct {
	data        rule.DataAccessor
	policy      policy.Policy
	audit       audit.AuditLogger
	now         func() time.Time
	concurrency int
}

type Option func(*RuleService)

// WithClock overrides the source of "today". Dates are evaluated in the clock's location.
func WithClock(now func() time.Time) Option {
	return func(s *RuleService) {
		s.now = now
	}
}

// WithConcurrency bounds how many employees the compliance audit evaluates at once.
func WithConcurrency(n int) Option {
	return func(s *RuleService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewRuleService(data rule.DataAccessor, p policy.Policy, auditLogger audit.AuditLogger, opts ...Option) *RuleService {
	s := &RuleService{
		data:        data,
		policy:      p.Clone(),
		audit:       auditLogger,
		now:         time.Now,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns a copy of the policy the service evaluates against.
func (s *RuleService) Policy() policy.Policy {
	return s.policy.Clone()
}

func (s *RuleService) RecentAuditEntries(limit int) []audit.Entry {
	return s.audit.Recent(limit)
}

func (s *RuleService) today() time.Time {
	return dateOf(s.now())
}

func (s *RuleService) record(ruleName, action, details string, employeeID string) {
	s.audit.Record(ruleName, action, details, &employeeID)
}

// latestScore returns nil when the employee has no review or the review has no overall score.
func (s *RuleService) latestScore(ctx context.Context, employeeID string) (*float64, error) {
	review, err := s.data.Reviews.GetLatestByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, performance.ErrReviewNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest performance review: %w", err)
	}
	return review.OverallScore, nil
}

func (s *RuleService) trainingHours(ctx context.Context, employeeID string, year int) (int, error) {
	records, err := s.data.Trainings.GetCompletedByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		return 0, fmt.Errorf("failed to get completed training records: %w", err)
	}
	return training.TotalHours(records), nil
}

var _ rule.RuleService = (*RuleService)(nil)
