package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/leave"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db database.Querier
}

func NewLeaveRequestRepository(db database.Querier) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// SumApprovedDays implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SumApprovedDays(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days_requested), 0)::int
		FROM leave_requests
		WHERE employee_id = $1
			AND leave_type = $2
			AND status = $3
			AND EXTRACT(YEAR FROM start_date) = $4
	`

	var total int
	err := q.QueryRow(ctx, query, employeeID, string(leaveType), string(leave.LeaveRequestStatusApproved), year).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum approved leave days: %w", err)
	}

	return total, nil
}

// GetOpenByEmployeeID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetOpenByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, start_date, end_date, days_requested, status, approved_by, created_at
		FROM leave_requests
		WHERE employee_id = $1
			AND status IN ($2, $3)
		ORDER BY start_date ASC, id ASC
	`

	rows, err := q.Query(ctx, query, employeeID,
		string(leave.LeaveRequestStatusPending), string(leave.LeaveRequestStatusApproved))
	if err != nil {
		return nil, fmt.Errorf("failed to get open leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var (
			req       leave.LeaveRequest
			leaveType string
			status    string
		)
		err := rows.Scan(
			&req.ID,
			&req.EmployeeID,
			&leaveType,
			&req.StartDate,
			&req.EndDate,
			&req.DaysRequested,
			&status,
			&req.ApprovedBy,
			&req.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		if req.LeaveType, err = leave.ParseLeaveType(leaveType); err != nil {
			return nil, err
		}
		req.Status = leave.LeaveRequestStatus(status)
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}
