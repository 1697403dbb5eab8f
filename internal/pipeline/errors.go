package pipeline

import "errors"

var (
	ErrEmptyTheme = errors.New("theme must not be empty")
	ErrCardCount  = errors.New("card count must be between 1 and 20")
)
