package rule

import "errors"

var (
	ErrInvalidPeriod = errors.New("period_days must be positive")
)
