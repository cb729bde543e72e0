package editor

import "errors"

var (
	ErrIncomplete         = errors.New("not enough data to update the page model")
	ErrUnsupportedCommand = errors.New("unsupported command")
	ErrItemData           = errors.New("invalid item data")
	ErrNotFound           = errors.New("item not found")
)
