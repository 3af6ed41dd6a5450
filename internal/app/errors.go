package app

import "errors"

// ErrNoModel returned when the socket being rendered has no counter model.
var ErrNoModel = errors.New("no counter model")

// ErrBadCount returned when a broadcast count is not a number.
var ErrBadCount = errors.New("broadcast count is not a number")
