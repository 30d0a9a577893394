package performance

import "context"

type ReviewRepository interface {
	// GetLatestByEmployeeID returns the review with the greatest review_date, or ErrReviewNotFound.
	GetLatestByEmployeeID(ctx context.Context, employeeID string) (Review, error)
}
