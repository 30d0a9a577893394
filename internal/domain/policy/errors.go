package policy

import "errors"

var ErrInvalidPolicy = errors.New("invalid policy")
