package audit

import "context"

// AuditLogger is the bounded in-process audit trail the rule engine writes to.
type AuditLogger interface {
	Record(ruleName, action, details string, employeeID *string) Entry
	// Recent returns the newest limit entries, oldest first.
	Recent(limit int) []Entry
	Flush(ctx context.Context) error
}
