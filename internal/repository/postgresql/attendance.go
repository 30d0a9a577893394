package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db database.Querier
}

func NewAttendanceRepository(db database.Querier) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// GetByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, status, total_hours
		FROM attendances
		WHERE employee_id = $1
			AND date >= $2
			AND date <= $3
		ORDER BY date ASC, id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var (
			a      attendance.Attendance
			status string
		)
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Date, &status, &a.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		if a.Status, err = attendance.ParseStatus(status); err != nil {
			return nil, err
		}
		records = append(records, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
