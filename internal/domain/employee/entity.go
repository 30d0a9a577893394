package employee

import (
	"fmt"
	"time"
)

type Employee struct {
	ID               string
	EmployeeCode     string
	FirstName        string
	LastName         string
	Email            string
	DOB              *time.Time
	HireDate         time.Time
	DepartmentID     *string
	PositionID       *string
	ManagerID        *string
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName joins first and last name the way reports print it.
func (e Employee) FullName() string {
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusInactive   EmploymentStatus = "inactive"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
	EmploymentStatusOnLeave    EmploymentStatus = "on_leave"
)

// ParseEmploymentStatus maps a stored value onto the closed set of statuses.
func ParseEmploymentStatus(s string) (EmploymentStatus, error) {
	switch EmploymentStatus(s) {
	case EmploymentStatusActive, EmploymentStatusInactive, EmploymentStatusTerminated, EmploymentStatusOnLeave:
		return EmploymentStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEmploymentStatus, s)
}
