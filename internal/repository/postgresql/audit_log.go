package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type auditLogSink struct {
	db database.TxQuerier
}

// NewAuditLogSink stores flushed audit entries in rule_audit_logs.
func NewAuditLogSink(db database.TxQuerier) audit.Sink {
	return &auditLogSink{db: db}
}

// Write inserts the batch in one transaction. Entries already stored are skipped,
// so a retried flush does not duplicate rows.
func (s *auditLogSink) Write(ctx context.Context, entries []audit.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO rule_audit_logs (id, logged_at, rule_name, action, details, employee_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	return WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		for _, e := range entries {
			if _, err := tx.Exec(ctx, query, e.ID, e.Timestamp, e.RuleName, e.Action, e.Details, e.EmployeeID); err != nil {
				return fmt.Errorf("failed to insert audit entry %s: %w", e.ID, err)
			}
		}
		return nil
	})
}
