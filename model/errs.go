package model

import "errors"

var (
	ErrNotObject   = errors.New("model is not an object")
	ErrReservedKey = errors.New("bad reserved key")
)
