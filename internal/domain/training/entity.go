package training

import "time"

type Status string

const (
	StatusEnrolled   Status = "enrolled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusDropped    Status = "dropped"
	StatusFailed     Status = "failed"
)

type Program struct {
	ID            string
	Name          string
	Code          string
	DurationHours *int
}

// Record joins a training record with the duration of its program.
type Record struct {
	ID             string
	EmployeeID     string
	ProgramID      string
	Status         Status
	CompletionDate *time.Time
	DurationHours  *int
}

// TotalHours sums program durations, skipping programs without one.
func TotalHours(records []Record) int {
	total := 0
	for _, r := range records {
		if r.DurationHours != nil {
			total += *r.DurationHours
		}
	}
	return total
}
