package payroll

import "context"

type PayrollRepository interface {
	// GetLatestByEmployeeID returns ErrPayrollNotFound when the employee has no payroll history.
	GetLatestByEmployeeID(ctx context.Context, employeeID string) (Payroll, error)
}
