package performance

import "time"

// Review scores are on a 0-5 scale and may be missing.
type Review struct {
	ID              string
	EmployeeID      string
	ReviewerID      *string
	GoalsScore      *float64
	CompetencyScore *float64
	OverallScore    *float64
	ReviewDate      time.Time
}
