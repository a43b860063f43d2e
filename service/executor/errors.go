package executor

import "errors"

var (
	ErrNilInvocation = errors.New("invocation is nil")
)
