package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	goredis "github.com/redis/go-redis/v9"
)

type auditStreamSink struct {
	client goredis.Cmdable
	stream string
}

// NewAuditStreamSink appends flushed audit entries to a Redis stream.
func NewAuditStreamSink(client goredis.Cmdable, stream string) audit.Sink {
	return &auditStreamSink{client: client, stream: stream}
}

// Write appends the batch in a single MULTI/EXEC so a batch lands whole or not at all.
func (s *auditStreamSink) Write(ctx context.Context, entries []audit.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	for _, e := range entries {
		values := map[string]interface{}{
			"id":        e.ID,
			"timestamp": e.Timestamp.UTC().Format(time.RFC3339Nano),
			"rule_name": e.RuleName,
			"action":    e.Action,
			"details":   e.Details,
		}
		// Entries not tied to an employee carry no employee_id field.
		if e.EmployeeID != nil {
			values["employee_id"] = *e.EmployeeID
		}
		pipe.XAdd(ctx, &goredis.XAddArgs{Stream: s.stream, Values: values})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append audit entries to stream %s: %w", s.stream, err)
	}
	return nil
}
