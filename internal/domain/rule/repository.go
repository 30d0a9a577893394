package rule

import (
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/leave"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/performance"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/training"
)

// DataAccessor groups the read-only queries the evaluators run against HR data.
type DataAccessor struct {
	Employees   employee.EmployeeRepository
	Positions   position.PositionRepository
	Leaves      leave.LeaveRequestRepository
	Payrolls    payroll.PayrollRepository
	Reviews     performance.ReviewRepository
	Attendances attendance.AttendanceRepository
	Trainings   training.TrainingRepository
}
