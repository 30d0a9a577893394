package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrInvalidEmploymentStatus = errors.New("invalid employment status")
)
