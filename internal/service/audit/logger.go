package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/google/uuid"
)

const defaultRecentLimit = 100

// Logger keeps the most recent rule decisions in memory and forwards them to an
// optional Sink. It is safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	ring     []audit.Entry
	next     int
	size     int
	pending  []audit.Entry
	dropped  int
	sink     audit.Sink
	now      func() time.Time
	flushMux sync.Mutex
}

type Option func(*Logger)

// WithSink makes Flush forward pending entries to sink.
func WithSink(sink audit.Sink) Option {
	return func(l *Logger) {
		l.sink = sink
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		l.now = now
	}
}

func NewLogger(capacity int, opts ...Option) *Logger {
	if capacity <= 0 {
		capacity = 1000
	}
	l := &Logger{
		ring: make([]audit.Entry, capacity),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record appends one entry. When the ring is full the oldest entry is evicted.
func (l *Logger) Record(ruleName, action, details string, employeeID *string) audit.Entry {
	entry := audit.Entry{
		ID:        newEntryID(),
		Timestamp: l.now().UTC(),
		RuleName:  ruleName,
		Action:    action,
		Details:   details,
	}
	if employeeID != nil {
		id := *employeeID
		entry.EmployeeID = &id
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.ring[l.next] = entry
	l.next = (l.next + 1) % len(l.ring)
	if l.size < len(l.ring) {
		l.size++
	}

	if l.sink != nil {
		if len(l.pending) >= len(l.ring) {
			l.pending = l.pending[1:]
			l.dropped++
		}
		l.pending = append(l.pending, entry)
	}

	return entry
}

// Recent returns the newest limit entries, oldest first. A non-positive limit means 100.
func (l *Logger) Recent(limit int) []audit.Entry {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limit > l.size {
		limit = l.size
	}
	out := make([]audit.Entry, 0, limit)
	start := (l.next - limit + len(l.ring)) % len(l.ring)
	for i := 0; i < limit; i++ {
		out = append(out, l.ring[(start+i)%len(l.ring)])
	}
	return out
}

// Len reports how many entries are currently retained.
func (l *Logger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Dropped reports how many pending entries were discarded before reaching the sink.
func (l *Logger) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Flush writes pending entries to the sink. On failure the entries stay pending
// and are retried on the next call.
func (l *Logger) Flush(ctx context.Context) error {
	if l.sink == nil {
		return nil
	}

	l.flushMux.Lock()
	defer l.flushMux.Unlock()

	l.mu.Lock()
	batch := make([]audit.Entry, len(l.pending))
	copy(batch, l.pending)
	l.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	if err := l.sink.Write(ctx, batch); err != nil {
		return fmt.Errorf("failed to flush %d audit entries: %w", len(batch), err)
	}

	l.mu.Lock()
	l.pending = removeFlushed(l.pending, batch)
	l.mu.Unlock()

	slog.Debug("Audit entries flushed", "count", len(batch))
	return nil
}

// removeFlushed drops the written prefix. Entries evicted from pending while the
// write was in flight shift the prefix, so match on the last written ID.
func removeFlushed(pending, written []audit.Entry) []audit.Entry {
	last := written[len(written)-1].ID
	for i, e := range pending {
		if e.ID == last {
			rest := make([]audit.Entry, len(pending)-i-1)
			copy(rest, pending[i+1:])
			return rest
		}
	}
	// Every written entry was already evicted by newer ones.
	return pending
}

func newEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
