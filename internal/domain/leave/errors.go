package leave

import "errors"

var (
	ErrInvalidLeaveType = errors.New("invalid leave type")
)
