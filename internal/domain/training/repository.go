package training

import "context"

type TrainingRepository interface {
	// GetCompletedByEmployeeAndYear returns completed records whose completion_date falls in year.
	GetCompletedByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]Record, error)
}
