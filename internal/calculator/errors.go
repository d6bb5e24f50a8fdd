package calculator

import "errors"

var (
	ErrNotInEntryMode = errors.New("inputs are locked while results are shown; reset first")
	ErrNoResult       = errors.New("no result has been calculated")
)
