package audit

import "context"

// Sink receives flushed audit entries. It only stores, it never answers queries.
type Sink interface {
	Write(ctx context.Context, entries []Entry) error
}
