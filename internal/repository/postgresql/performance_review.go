package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/performance"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type performanceReviewRepositoryImpl struct {
	db database.Querier
}

func NewPerformanceReviewRepository(db database.Querier) performance.ReviewRepository {
	return &performanceReviewRepositoryImpl{db: db}
}

// GetLatestByEmployeeID implements performance.ReviewRepository.
func (r *performanceReviewRepositoryImpl) GetLatestByEmployeeID(ctx context.Context, employeeID string) (performance.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, reviewer_id, goals_score, competency_score, overall_score, review_date
		FROM performance_reviews
		WHERE employee_id = $1
		ORDER BY review_date DESC, id DESC
		LIMIT 1
	`

	var review performance.Review
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&review.ID,
		&review.EmployeeID,
		&review.ReviewerID,
		&review.GoalsScore,
		&review.CompetencyScore,
		&review.OverallScore,
		&review.ReviewDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return performance.Review{}, performance.ErrReviewNotFound
		}
		return performance.Review{}, fmt.Errorf("failed to get latest performance review: %w", err)
	}

	return review, nil
}
