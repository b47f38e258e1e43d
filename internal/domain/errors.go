package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every input rejection raised by the core.
// Callers test with errors.Is(err, ErrValidation).
var ErrValidation = errors.New("validation failed")

var (
	ErrEmptyPrefix = fmt.Errorf("%w: internal and external prefixes must be non-empty", ErrValidation)
	ErrNotInteger  = fmt.Errorf("%w: maxHistory must be an integer", ErrValidation)
	ErrOutOfRange  = fmt.Errorf("%w: maxHistory out of range", ErrValidation)
	ErrInvalidEdge = fmt.Errorf("%w: edge must be left or right", ErrValidation)
)
