package rule

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillAttendance writes one record per day for the days before today, using statuses in order.
func fillAttendance(s *store, employeeID string, statuses ...attendance.Status) {
	for i, status := range statuses {
		s.addAttendance(employeeID, today.AddDate(0, 0, -(len(statuses)-i)), status)
	}
}

func repeat(status attendance.Status, n int) []attendance.Status {
	out := make([]attendance.Status, n)
	for i := range out {
		out[i] = status
	}
	return out
}

func TestAnalyzeAttendance_NoData(t *testing.T) {
	s := newStore()
	s.addEmployee(employee.Employee{ID: "emp-1", HireDate: date(2020, 1, 1)})
	svc, logger := newTestService(s)

	result, err := svc.AnalyzeAttendance(context.Background(), "emp-1", 30)

	require.NoError(t, err)
	assert.True(t, result.Patterns.NoData)
	assert.Empty(t, result.Violations)
	assert.Empty(t, result.Recommendations)
	assert.Empty(t, logger.Recent(10))
}

func TestAnalyzeAttendance_InvalidPeriod(t *testing.T) {
	svc, _ := newTestService(newStore())

	_, err := svc.AnalyzeAttendance(context.Background(), "emp-1", 0)

	assert.ErrorIs(t, err, rule.ErrInvalidPeriod)
}

func TestAnalyzeAttendance_GoodRecord(t *testing.T) {
	s := newStore()
	statuses := append(repeat(attendance.StatusPresent, 18), attendance.StatusLate, attendance.StatusHalfDay)
	fillAttendance(s, "emp-1", statuses...)
	svc, logger := newTestService(s)

	result, err := svc.AnalyzeAttendance(context.Background(), "emp-1", 30)

	require.NoError(t, err)
	assert.Empty(t, result.Violations)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 20, result.Patterns.TotalDays)
	assert.InDelta(t, 0.95, result.Patterns.AttendanceRate, 1e-9)
	assert.InDelta(t, 0.05, result.Patterns.LateRate, 1e-9)

	entry := logger.Recent(1)[0]
	assert.Equal(t, audit.RuleAttendanceAnalysis, entry.RuleName)
	assert.Equal(t, audit.ActionCompleted, entry.Action)
	assert.Equal(t, "Attendance violations: 0, Rate: 95.0%", entry.Details)
}

func TestAnalyzeAttendance_Violations(t *testing.T) {
	s := newStore()
	// 10 records: 4 present, 3 late, 3 absent spread apart.
	fillAttendance(s, "emp-1",
		attendance.StatusAbsent, attendance.StatusPresent, attendance.StatusLate,
		attendance.StatusAbsent, attendance.StatusPresent, attendance.StatusLate,
		attendance.StatusAbsent, attendance.StatusPresent, attendance.StatusLate,
		attendance.StatusPresent,
	)
	svc, _ := newTestService(s)

	result, err := svc.AnalyzeAttendance(context.Background(), "emp-1", 30)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Low attendance rate: 70.0%",
		"Excessive late arrivals: 30.0%",
	}, result.Violations)
	assert.Equal(t, []string{
		"Schedule attendance counseling",
		"Consider performance improvement plan",
	}, result.Recommendations)
	assert.Empty(t, result.Patterns.ConsecutiveAbsences)
	assert.Equal(t, 3, result.Patterns.AbsentDays)
}

func TestAnalyzeAttendance_ConsecutiveAbsences(t *testing.T) {
	s := newStore()
	statuses := append(repeat(attendance.StatusPresent, 27), repeat(attendance.StatusAbsent, 3)...)
	fillAttendance(s, "emp-1", statuses...)
	svc, _ := newTestService(s)

	result, err := svc.AnalyzeAttendance(context.Background(), "emp-1", 30)

	require.NoError(t, err)
	assert.Empty(t, result.Violations)
	require.Len(t, result.Patterns.ConsecutiveAbsences, 1)
	assert.Len(t, result.Patterns.ConsecutiveAbsences[0], 3)
	assert.Equal(t, []string{"Investigate reasons for consecutive absences"}, result.Recommendations)
}

func TestAnalyzeAttendance_ExcessiveAbsences(t *testing.T) {
	s := newStore()
	statuses := append(repeat(attendance.StatusPresent, 24), repeat(attendance.StatusAbsent, 6)...)
	fillAttendance(s, "emp-1", statuses...)
	svc, _ := newTestService(s)

	result, err := svc.AnalyzeAttendance(context.Background(), "emp-1", 30)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Low attendance rate: 80.0%",
		"Excessive absences: 6 days",
	}, result.Violations)
	assert.Equal(t, []string{
		"Schedule attendance counseling",
		"Investigate reasons for consecutive absences",
	}, result.Recommendations)
}

func TestAnalyzeAttendance_IgnoresRecordsOutsideWindow(t *testing.T) {
	s := newStore()
	s.addAttendance("emp-1", today.AddDate(0, 0, -31), attendance.StatusAbsent)
	s.addAttendance("emp-1", today.AddDate(0, 0, -30), attendance.StatusPresent)
	svc, _ := newTestService(s)

	result, err := svc.AnalyzeAttendance(context.Background(), "emp-1", 30)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Patterns.TotalDays)
	assert.Equal(t, 0, result.Patterns.AbsentDays)
}

func TestConsecutiveRuns(t *testing.T) {
	d := date(2026, 2, 2)
	day := func(offset int) time.Time { return d.AddDate(0, 0, offset) }

	// Input is unsorted on purpose.
	runs := ConsecutiveRuns([]time.Time{day(5), day(0), day(2), day(7), day(1), day(4), day(6)}, 3)

	require.Len(t, runs, 2)
	assert.Equal(t, []time.Time{day(0), day(1), day(2)}, runs[0])
	assert.Equal(t, []time.Time{day(4), day(5), day(6), day(7)}, runs[1])
}

func TestConsecutiveRuns_DropsShortRuns(t *testing.T) {
	d := date(2026, 2, 27)

	runs := ConsecutiveRuns([]time.Time{d, d.AddDate(0, 0, 1), d.AddDate(0, 0, 5)}, 3)
	assert.Empty(t, runs)

	// Runs continue across month ends.
	runs = ConsecutiveRuns([]time.Time{d, d.AddDate(0, 0, 1), d.AddDate(0, 0, 2)}, 3)
	require.Len(t, runs, 1)
	assert.Equal(t, date(2026, 3, 1), runs[0][2])

	assert.Empty(t, ConsecutiveRuns(nil, 3))
}
