package leave

import (
	"fmt"
	"time"
)

type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "annual"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypePaternity LeaveType = "paternity"
	LeaveTypeUnpaid    LeaveType = "unpaid"
)

var LeaveTypeValues = []string{
	string(LeaveTypeAnnual),
	string(LeaveTypeSick),
	string(LeaveTypeMaternity),
	string(LeaveTypePaternity),
	string(LeaveTypeUnpaid),
}

// ParseLeaveType accepts the stored code ("annual") and the display label ("Annual Leave").
func ParseLeaveType(s string) (LeaveType, error) {
	switch s {
	case "annual", "Annual", "Annual Leave", "ANNUAL":
		return LeaveTypeAnnual, nil
	case "sick", "Sick", "Sick Leave", "SICK":
		return LeaveTypeSick, nil
	case "maternity", "Maternity", "Maternity Leave", "MATERNITY":
		return LeaveTypeMaternity, nil
	case "paternity", "Paternity", "Paternity Leave", "PATERNITY":
		return LeaveTypePaternity, nil
	case "unpaid", "Unpaid", "Unpaid Leave", "UNPAID":
		return LeaveTypeUnpaid, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLeaveType, s)
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID            string
	EmployeeID    string
	LeaveType     LeaveType
	StartDate     time.Time
	EndDate       time.Time
	DaysRequested int
	Status        LeaveRequestStatus
	ApprovedBy    *string
	CreatedAt     time.Time
}

// Overlaps reports whether the request shares at least one day with [start, end].
// Both intervals are inclusive.
func (r LeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !start.After(r.EndDate)
}
