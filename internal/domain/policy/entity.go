package policy

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Level is the salary band a position title falls into.
type Level string

const (
	LevelEntry    Level = "entry"
	LevelJunior   Level = "junior"
	LevelMid      Level = "mid"
	LevelSenior   Level = "senior"
	LevelManager  Level = "manager"
	LevelDirector Level = "director"
)

// Levels lists every band level, lowest first.
var Levels = []Level{LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelManager, LevelDirector}

type SalaryBand struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// UnmarshalYAML reads min/max as literal text so amounts never pass through float64.
func (b *SalaryBand) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Min string `yaml:"min"`
		Max string `yaml:"max"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	min, err := decimal.NewFromString(raw.Min)
	if err != nil {
		return fmt.Errorf("salary band min %q: %w", raw.Min, err)
	}
	max, err := decimal.NewFromString(raw.Max)
	if err != nil {
		return fmt.Errorf("salary band max %q: %w", raw.Max, err)
	}
	b.Min, b.Max = min, max
	return nil
}

// Policy holds the HR thresholds every evaluator reads. It is built once at
// startup and never mutated; evaluators receive a copy.
type Policy struct {
	MaxAnnualLeaveDays             int     `yaml:"max_annual_leave_days"`
	MaxSickLeaveDays               int     `yaml:"max_sick_leave_days"`
	MinTenureForPromotionDays      int     `yaml:"min_tenure_for_promotion_days"`
	MinExperienceYearsForManager   float64 `yaml:"min_experience_years_for_manager"`
	MaxOvertimeMonthlyHours        int     `yaml:"max_overtime_monthly_hours"`
	PerformanceReviewFrequencyDays int     `yaml:"performance_review_frequency_days"`
	ReviewGracePeriodDays          int     `yaml:"review_grace_period_days"`
	ProbationPeriodDays            int     `yaml:"probation_period_days"`
	MinSalaryIncreasePct           float64 `yaml:"min_salary_increase_pct"`
	MaxSalaryIncreasePct           float64 `yaml:"max_salary_increase_pct"`
	MandatoryTrainingHoursPerYear  int     `yaml:"mandatory_training_hours_per_year"`
	RetirementAge                  int     `yaml:"retirement_age"`

	SalaryBands map[Level]SalaryBand `yaml:"salary_bands"`
}

// Default returns the built-in company policy.
func Default() Policy {
	return Policy{
		MaxAnnualLeaveDays:             25,
		MaxSickLeaveDays:               15,
		MinTenureForPromotionDays:      365,
		MinExperienceYearsForManager:   3,
		MaxOvertimeMonthlyHours:        40,
		PerformanceReviewFrequencyDays: 365,
		ReviewGracePeriodDays:          30,
		ProbationPeriodDays:            90,
		MinSalaryIncreasePct:           0.03,
		MaxSalaryIncreasePct:           0.15,
		MandatoryTrainingHoursPerYear:  40,
		RetirementAge:                  65,
		SalaryBands: map[Level]SalaryBand{
			LevelEntry:    band(35000, 50000),
			LevelJunior:   band(45000, 65000),
			LevelMid:      band(60000, 85000),
			LevelSenior:   band(80000, 120000),
			LevelManager:  band(100000, 150000),
			LevelDirector: band(140000, 200000),
		},
	}
}

func band(min, max int64) SalaryBand {
	return SalaryBand{Min: decimal.NewFromInt(min), Max: decimal.NewFromInt(max)}
}

// Band returns the salary band for level.
func (p Policy) Band(level Level) (SalaryBand, bool) {
	b, ok := p.SalaryBands[level]
	return b, ok
}

// Clone returns a deep copy so callers never share the band table.
func (p Policy) Clone() Policy {
	out := p
	out.SalaryBands = make(map[Level]SalaryBand, len(p.SalaryBands))
	for level, b := range p.SalaryBands {
		out.SalaryBands[level] = b
	}
	return out
}

func (p Policy) Validate() error {
	nonNegative := map[string]float64{
		"max_annual_leave_days":             float64(p.MaxAnnualLeaveDays),
		"max_sick_leave_days":               float64(p.MaxSickLeaveDays),
		"min_tenure_for_promotion_days":     float64(p.MinTenureForPromotionDays),
		"min_experience_years_for_manager":  p.MinExperienceYearsForManager,
		"max_overtime_monthly_hours":        float64(p.MaxOvertimeMonthlyHours),
		"performance_review_frequency_days": float64(p.PerformanceReviewFrequencyDays),
		"review_grace_period_days":          float64(p.ReviewGracePeriodDays),
		"probation_period_days":             float64(p.ProbationPeriodDays),
		"min_salary_increase_pct":           p.MinSalaryIncreasePct,
		"max_salary_increase_pct":           p.MaxSalaryIncreasePct,
		"mandatory_training_hours_per_year": float64(p.MandatoryTrainingHoursPerYear),
		"retirement_age":                    float64(p.RetirementAge),
	}
	for field, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidPolicy, field)
		}
	}
	if p.MinSalaryIncreasePct > p.MaxSalaryIncreasePct {
		return fmt.Errorf("%w: min_salary_increase_pct exceeds max_salary_increase_pct", ErrInvalidPolicy)
	}
	for _, level := range Levels {
		b, ok := p.SalaryBands[level]
		if !ok {
			return fmt.Errorf("%w: salary band %q is missing", ErrInvalidPolicy, level)
		}
		if b.Min.GreaterThan(b.Max) {
			return fmt.Errorf("%w: salary band %q min exceeds max", ErrInvalidPolicy, level)
		}
	}
	return nil
}
