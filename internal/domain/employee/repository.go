package employee

import "context"

// EmployeeRepository is the read side of the employees table used by the rule engine.
type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when no row matches.
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetActive returns every employee whose status is active, ordered by id.
	GetActive(ctx context.Context) ([]Employee, error)
}
