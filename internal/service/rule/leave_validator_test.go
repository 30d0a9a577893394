package rule

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/leave"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaveStore() *store {
	s := newStore()
	s.addEmployee(employee.Employee{ID: "emp-1", FirstName: "Ana", LastName: "Lee", HireDate: date(2020, 1, 6)})
	return s
}

func annualRequest(days int) rule.LeaveRequestInput {
	start := date(2026, 4, 6)
	return rule.LeaveRequestInput{
		EmployeeID:    "emp-1",
		LeaveType:     leave.LeaveTypeAnnual,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, days-1),
		DaysRequested: days,
	}
}

func TestValidateLeaveRequest_Valid(t *testing.T) {
	svc, logger := newTestService(leaveStore())

	result, err := svc.ValidateLeaveRequest(context.Background(), annualRequest(5))

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Violations)
	assert.False(t, result.AutoApprove)

	entries := logger.Recent(10)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.RuleLeaveValidation, entries[0].RuleName)
	assert.Equal(t, audit.ActionValidated, entries[0].Action)
	assert.Equal(t, "Leave request for 5 days: Valid", entries[0].Details)
}

func TestValidateLeaveRequest_EmployeeNotFound(t *testing.T) {
	svc, logger := newTestService(newStore())

	result, err := svc.ValidateLeaveRequest(context.Background(), annualRequest(2))

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Employee not found"}, result.Violations)
	assert.Empty(t, logger.Recent(10))
}

func TestValidateLeaveRequest_Probation(t *testing.T) {
	s := newStore()
	s.addEmployee(employee.Employee{ID: "emp-1", HireDate: date(2026, 2, 1)})
	svc, _ := newTestService(s)

	result, err := svc.ValidateLeaveRequest(context.Background(), annualRequest(2))

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Violations, "Employee in probation period until 2026-05-02")
}

func TestValidateLeaveRequest_AnnualCap(t *testing.T) {
	cases := []struct {
		name    string
		taken   int
		request int
		valid   bool
	}{
		{"under cap", 10, 5, true},
		{"exactly at cap", 20, 5, true},
		{"one over cap", 21, 5, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := leaveStore()
			s.leaves = append(s.leaves, leave.LeaveRequest{
				ID:            "old",
				EmployeeID:    "emp-1",
				LeaveType:     leave.LeaveTypeAnnual,
				StartDate:     date(2026, 1, 5),
				EndDate:       date(2026, 1, 5).AddDate(0, 0, c.taken-1),
				DaysRequested: c.taken,
				Status:        leave.LeaveRequestStatusApproved,
			})
			svc, _ := newTestService(s)

			result, err := svc.ValidateLeaveRequest(context.Background(), annualRequest(c.request))

			require.NoError(t, err)
			assert.Equal(t, c.valid, result.Valid, result.Violations)
			if !c.valid {
				assert.Contains(t, result.Violations, "Exceeds annual leave limit: 26 > 25")
			}
		})
	}
}

func TestValidateLeaveRequest_AnnualCapIgnoresOtherYears(t *testing.T) {
	s := leaveStore()
	s.leaves = append(s.leaves, leave.LeaveRequest{
		ID:            "last-year",
		EmployeeID:    "emp-1",
		LeaveType:     leave.LeaveTypeAnnual,
		StartDate:     date(2025, 6, 2),
		EndDate:       date(2025, 6, 27),
		DaysRequested: 24,
		Status:        leave.LeaveRequestStatusApproved,
	})
	svc, _ := newTestService(s)

	result, err := svc.ValidateLeaveRequest(context.Background(), annualRequest(5))

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateLeaveRequest_SickCap(t *testing.T) {
	s := leaveStore()
	s.leaves = append(s.leaves, leave.LeaveRequest{
		ID:            "sick",
		EmployeeID:    "emp-1",
		LeaveType:     leave.LeaveTypeSick,
		StartDate:     date(2026, 2, 2),
		EndDate:       date(2026, 2, 13),
		DaysRequested: 12,
		Status:        leave.LeaveRequestStatusApproved,
	})
	svc, _ := newTestService(s)
	in := annualRequest(4)
	in.LeaveType = leave.LeaveTypeSick

	result, err := svc.ValidateLeaveRequest(context.Background(), in)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Exceeds sick leave limit: 16 > 15"}, result.Violations)
}

func TestValidateLeaveRequest_AutoApprove(t *testing.T) {
	cases := []struct {
		name      string
		days      int
		leaveType leave.LeaveType
		score     *float64
		want      bool
	}{
		{"all conditions met", 3, leave.LeaveTypeAnnual, ptr(4.0), true},
		{"too many days", 4, leave.LeaveTypeAnnual, ptr(4.5), false},
		{"not annual leave", 2, leave.LeaveTypeUnpaid, ptr(4.5), false},
		{"score too low", 2, leave.LeaveTypeAnnual, ptr(3.9), false},
		{"no overall score", 2, leave.LeaveTypeAnnual, nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := leaveStore()
			s.addReview("emp-1", c.score, date(2025, 12, 1))
			svc, _ := newTestService(s)
			in := annualRequest(c.days)
			in.LeaveType = c.leaveType

			result, err := svc.ValidateLeaveRequest(context.Background(), in)

			require.NoError(t, err)
			assert.Equal(t, c.want, result.AutoApprove)
			assert.True(t, result.Valid)
			if c.want {
				assert.Equal(t, []string{"Auto-approved based on good performance"}, result.Warnings)
			} else {
				assert.Empty(t, result.Warnings)
			}
		})
	}
}

func TestValidateLeaveRequest_AutoApproveWithoutReview(t *testing.T) {
	svc, _ := newTestService(leaveStore())

	result, err := svc.ValidateLeaveRequest(context.Background(), annualRequest(1))

	require.NoError(t, err)
	assert.False(t, result.AutoApprove)
}

func TestValidateLeaveRequest_Overlap(t *testing.T) {
	cases := []struct {
		name     string
		existing [2]int
		status   leave.LeaveRequestStatus
		overlap  bool
	}{
		{"ends on first requested day", [2]int{1, 6}, leave.LeaveRequestStatusPending, true},
		{"starts on last requested day", [2]int{10, 14}, leave.LeaveRequestStatusApproved, true},
		{"contains request", [2]int{1, 30}, leave.LeaveRequestStatusApproved, true},
		{"ends the day before", [2]int{1, 5}, leave.LeaveRequestStatusApproved, false},
		{"starts the day after", [2]int{11, 14}, leave.LeaveRequestStatusPending, false},
		{"rejected request", [2]int{6, 10}, leave.LeaveRequestStatusRejected, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := leaveStore()
			s.leaves = append(s.leaves, leave.LeaveRequest{
				ID:            "42",
				EmployeeID:    "emp-1",
				LeaveType:     leave.LeaveTypeUnpaid,
				StartDate:     date(2026, 4, c.existing[0]),
				EndDate:       date(2026, 4, c.existing[1]),
				DaysRequested: 1,
				Status:        c.status,
			})
			svc, _ := newTestService(s)

			// Requested interval is April 6 to April 10.
			result, err := svc.ValidateLeaveRequest(context.Background(), annualRequest(5))

			require.NoError(t, err)
			assert.Equal(t, !c.overlap, result.Valid)
			if c.overlap {
				assert.Equal(t, []string{"Overlapping with existing leave request #42"}, result.Violations)
			}
		})
	}
}

func TestValidateLeaveRequest_ReportsFirstOverlapOnly(t *testing.T) {
	s := leaveStore()
	for _, id := range []string{"a", "b"} {
		s.leaves = append(s.leaves, leave.LeaveRequest{
			ID:         id,
			EmployeeID: "emp-1",
			LeaveType:  leave.LeaveTypeUnpaid,
			StartDate:  date(2026, 4, 7),
			EndDate:    date(2026, 4, 8),
			Status:     leave.LeaveRequestStatusPending,
		})
	}
	svc, _ := newTestService(s)

	result, err := svc.ValidateLeaveRequest(context.Background(), annualRequest(5))

	require.NoError(t, err)
	assert.Len(t, result.Violations, 1)
}

func TestValidateLeaveRequest_AccumulatesViolations(t *testing.T) {
	s := newStore()
	s.addEmployee(employee.Employee{ID: "emp-1", HireDate: date(2026, 3, 1)})
	s.leaves = append(s.leaves, leave.LeaveRequest{
		ID:            "7",
		EmployeeID:    "emp-1",
		LeaveType:     leave.LeaveTypeAnnual,
		StartDate:     date(2026, 4, 6),
		EndDate:       date(2026, 4, 30),
		DaysRequested: 25,
		Status:        leave.LeaveRequestStatusApproved,
	})
	svc, logger := newTestService(s)

	result, err := svc.ValidateLeaveRequest(context.Background(), annualRequest(5))

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Len(t, result.Violations, 3)
	assert.Equal(t, audit.ActionRejected, logger.Recent(1)[0].Action)
}

func TestValidateLeaveRequest_PropagatesStoreErrors(t *testing.T) {
	s := leaveStore()
	s.err = errors.New("connection reset")
	svc, _ := newTestService(s)

	_, err := svc.ValidateLeaveRequest(context.Background(), annualRequest(2))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
