package rule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
)

func (s *RuleService) AnalyzeAttendance(ctx context.Context, employeeID string, periodDays int) (rule.AttendanceAnalysis, error) {
	if periodDays <= 0 {
		return rule.AttendanceAnalysis{}, rule.ErrInvalidPeriod
	}

	result := rule.AttendanceAnalysis{
		Violations:      []string{},
		Recommendations: []string{},
	}

	end := s.today()
	start := end.AddDate(0, 0, -periodDays)
	records, err := s.data.Attendances.GetByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return rule.AttendanceAnalysis{}, fmt.Errorf("failed to get attendance records: %w", err)
	}
	if len(records) == 0 {
		result.Patterns.NoData = true
		return result, nil
	}

	var present, late int
	var absences []time.Time
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			present++
		case attendance.StatusLate:
			late++
		case attendance.StatusAbsent:
			absences = append(absences, dateOf(r.Date))
		case attendance.StatusHalfDay:
		}
	}

	total := len(records)
	attendanceRate := float64(present+late) / float64(total)
	lateRate := float64(late) / float64(total)
	result.Patterns = rule.AttendancePatterns{
		AttendanceRate: attendanceRate,
		LateRate:       lateRate,
		AbsentDays:     len(absences),
		TotalDays:      total,
	}

	if attendanceRate < minAttendanceRate {
		result.Violations = append(result.Violations, fmt.Sprintf("Low attendance rate: %s", percent1(attendanceRate)))
	}
	if lateRate > maxLateRate {
		result.Violations = append(result.Violations, fmt.Sprintf("Excessive late arrivals: %s", percent1(lateRate)))
	}
	if len(absences) > maxAbsentDays {
		result.Violations = append(result.Violations, fmt.Sprintf("Excessive absences: %d days", len(absences)))
	}

	if len(result.Violations) > 0 {
		result.Recommendations = append(result.Recommendations, "Schedule attendance counseling")
		if attendanceRate < improvementPlanRate {
			result.Recommendations = append(result.Recommendations, "Consider performance improvement plan")
		}
	}

	if len(absences) >= minConsecutiveAbsences {
		if runs := ConsecutiveRuns(absences, minConsecutiveAbsences); len(runs) > 0 {
			result.Patterns.ConsecutiveAbsences = runs
			result.Recommendations = append(result.Recommendations, "Investigate reasons for consecutive absences")
		}
	}

	s.record(audit.RuleAttendanceAnalysis, audit.ActionCompleted,
		fmt.Sprintf("Attendance violations: %d, Rate: %s", len(result.Violations), percent1(attendanceRate)),
		employeeID)

	return result, nil
}

// ConsecutiveRuns sorts dates and groups them into maximal runs of calendar-consecutive
// days, keeping only runs of at least minLen days.
func ConsecutiveRuns(dates []time.Time, minLen int) [][]time.Time {
	if len(dates) == 0 {
		return nil
	}

	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var runs [][]time.Time
	current := []time.Time{sorted[0]}
	for _, d := range sorted[1:] {
		if daysBetween(current[len(current)-1], d) == 1 {
			current = append(current, d)
			continue
		}
		if len(current) >= minLen {
			runs = append(runs, current)
		}
		current = []time.Time{d}
	}
	if len(current) >= minLen {
		runs = append(runs, current)
	}
	return runs
}
