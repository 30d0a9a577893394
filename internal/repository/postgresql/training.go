package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/training"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/database"
)

type trainingRepositoryImpl struct {
	db database.Querier
}

func NewTrainingRepository(db database.Querier) training.TrainingRepository {
	return &trainingRepositoryImpl{db: db}
}

// GetCompletedByEmployeeAndYear implements training.TrainingRepository.
func (r *trainingRepositoryImpl) GetCompletedByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]training.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tr.id, tr.employee_id, tr.program_id, tr.status, tr.completion_date, tp.duration_hours
		FROM training_records tr
		JOIN training_programs tp ON tp.id = tr.program_id
		WHERE tr.employee_id = $1
			AND tr.status = $2
			AND EXTRACT(YEAR FROM tr.completion_date) = $3
		ORDER BY tr.completion_date ASC, tr.id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, string(training.StatusCompleted), year)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed training records: %w", err)
	}
	defer rows.Close()

	var records []training.Record
	for rows.Next() {
		var (
			rec    training.Record
			status string
		)
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.ProgramID, &status, &rec.CompletionDate, &rec.DurationHours); err != nil {
			return nil, fmt.Errorf("failed to scan training record: %w", err)
		}
		rec.Status = training.Status(status)
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
