package ir

import (
	"errors"
)

var (
	ErrParse       = errors.New("parse error")
	ErrNotObject   = errors.New("not an object")
	ErrUnsupported = errors.New("unsupported value")
)
