package postgresql

import (
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/database"
)

// NewDataAccessor wires every read repository the rule engine needs onto one querier.
func NewDataAccessor(db database.Querier) rule.DataAccessor {
	return rule.DataAccessor{
		Employees:   NewEmployeeRepository(db),
		Positions:   NewPositionRepository(db),
		Leaves:      NewLeaveRequestRepository(db),
		Payrolls:    NewPayrollRepository(db),
		Reviews:     NewPerformanceReviewRepository(db),
		Attendances: NewAttendanceRepository(db),
		Trainings:   NewTrainingRepository(db),
	}
}
