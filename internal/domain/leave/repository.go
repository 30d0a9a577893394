package leave

import (
	"context"
)

// LeaveRequestRepository - read interface for leave_requests table
type LeaveRequestRepository interface {
	// SumApprovedDays totals days_requested of approved requests of one type whose start_date falls in year.
	SumApprovedDays(ctx context.Context, employeeID string, leaveType LeaveType, year int) (int, error)
	// GetOpenByEmployeeID returns pending and approved requests ordered by start_date, id.
	GetOpenByEmployeeID(ctx context.Context, employeeID string) ([]LeaveRequest, error)
}
