package types

import "errors"

// Sexagenary errors.
var (
	ErrInvalidPair = errors.New("invalid stem-branch pair")
)

// Search errors.
var (
	ErrInvalidYearRange = errors.New("invalid year range")
)

// Cache errors.
var (
	ErrAlreadyAttached = errors.New("cache already attached")
)
