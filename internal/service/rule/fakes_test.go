package rule

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/leave"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/performance"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/policy"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/training"
	auditsvc "github.com/cmlabs-hris/hris-policy-engine/internal/service/audit"
)

// today is the fixed evaluation date for every test in this package.
var today = date(2026, time.March, 15)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

// store is an in-memory HR data set implementing every repository the engine reads.
type store struct {
	mu          sync.Mutex
	employees   map[string]employee.Employee
	positions   map[string]position.Position
	leaves      []leave.LeaveRequest
	payrolls    []payroll.Payroll
	reviews     []performance.Review
	attendances []attendance.Attendance
	trainings   []training.Record
	err         error
}

func newStore() *store {
	return &store{
		employees: map[string]employee.Employee{},
		positions: map[string]position.Position{},
	}
}

func (s *store) accessor() rule.DataAccessor {
	return rule.DataAccessor{
		Employees:   employeeRepo{s},
		Positions:   positionRepo{s},
		Leaves:      leaveRepo{s},
		Payrolls:    payrollRepo{s},
		Reviews:     reviewRepo{s},
		Attendances: attendanceRepo{s},
		Trainings:   trainingRepo{s},
	}
}

func (s *store) addEmployee(e employee.Employee) {
	if e.EmploymentStatus == "" {
		e.EmploymentStatus = employee.EmploymentStatusActive
	}
	s.employees[e.ID] = e
}

func (s *store) addAttendance(employeeID string, day time.Time, status attendance.Status) {
	s.attendances = append(s.attendances, attendance.Attendance{
		ID:         employeeID + day.Format("20060102"),
		EmployeeID: employeeID,
		Date:       day,
		Status:     status,
	})
}

func (s *store) addTraining(employeeID string, hours int, completed time.Time) {
	s.trainings = append(s.trainings, training.Record{
		ID:             employeeID + completed.Format("20060102"),
		EmployeeID:     employeeID,
		Status:         training.StatusCompleted,
		CompletionDate: &completed,
		DurationHours:  &hours,
	})
}

func (s *store) addReview(employeeID string, overall *float64, on time.Time) {
	s.reviews = append(s.reviews, performance.Review{
		ID:           employeeID + on.Format("20060102"),
		EmployeeID:   employeeID,
		OverallScore: overall,
		ReviewDate:   on,
	})
}

type employeeRepo struct{ s *store }

func (r employeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return employee.Employee{}, r.s.err
	}
	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r employeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	var out []employee.Employee
	for _, e := range r.s.employees {
		if e.EmploymentStatus == employee.EmploymentStatusActive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type positionRepo struct{ s *store }

func (r positionRepo) GetByID(_ context.Context, id string) (position.Position, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.positions[id]
	if !ok {
		return position.Position{}, position.ErrPositionNotFound
	}
	return p, nil
}

type leaveRepo struct{ s *store }

func (r leaveRepo) SumApprovedDays(_ context.Context, employeeID string, leaveType leave.LeaveType, year int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := 0
	for _, l := range r.s.leaves {
		if l.EmployeeID == employeeID && l.LeaveType == leaveType &&
			l.Status == leave.LeaveRequestStatusApproved && l.StartDate.Year() == year {
			total += l.DaysRequested
		}
	}
	return total, nil
}

func (r leaveRepo) GetOpenByEmployeeID(_ context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []leave.LeaveRequest
	for _, l := range r.s.leaves {
		if l.EmployeeID == employeeID && l.Status != leave.LeaveRequestStatusRejected {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

type payrollRepo struct{ s *store }

func (r payrollRepo) GetLatestByEmployeeID(_ context.Context, employeeID string) (payroll.Payroll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *payroll.Payroll
	for i, p := range r.s.payrolls {
		if p.EmployeeID == employeeID && (latest == nil || p.PayPeriodEnd.After(latest.PayPeriodEnd)) {
			latest = &r.s.payrolls[i]
		}
	}
	if latest == nil {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return *latest, nil
}

type reviewRepo struct{ s *store }

func (r reviewRepo) GetLatestByEmployeeID(_ context.Context, employeeID string) (performance.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *performance.Review
	for i, rv := range r.s.reviews {
		if rv.EmployeeID == employeeID && (latest == nil || rv.ReviewDate.After(latest.ReviewDate)) {
			latest = &r.s.reviews[i]
		}
	}
	if latest == nil {
		return performance.Review{}, performance.ErrReviewNotFound
	}
	return *latest, nil
}

type attendanceRepo struct{ s *store }

func (r attendanceRepo) GetByEmployeeAndRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID && !a.Date.Before(start) && !a.Date.After(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

type trainingRepo struct{ s *store }

func (r trainingRepo) GetCompletedByEmployeeAndYear(_ context.Context, employeeID string, year int) ([]training.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []training.Record
	for _, t := range r.s.trainings {
		if t.EmployeeID == employeeID && t.Status == training.StatusCompleted &&
			t.CompletionDate != nil && t.CompletionDate.Year() == year {
			out = append(out, t)
		}
	}
	return out, nil
}

func newTestService(s *store) (*RuleService, *auditsvc.Logger) {
	logger := auditsvc.NewLogger(100)
	svc := NewRuleService(s.accessor(), policy.Default(), logger,
		WithClock(func() time.Time { return today.Add(10 * time.Hour) }),
	)
	return svc, logger
}
