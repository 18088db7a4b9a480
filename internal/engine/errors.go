package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-daterange/internal/config"
)

// ErrInvalidArgument is matched by every *InvalidArgumentError.
var ErrInvalidArgument = errors.New(config.ErrInvalidArgument)

// ErrRangeTooLarge is wrapped in the *RequestError returned when a range
// would exceed Generator.Limit.
var ErrRangeTooLarge = errors.New(config.ErrRangeTooLarge)

// InvalidArgumentError reports a granularity outside the closed set.
// It signals a caller bug, not bad data.
type InvalidArgumentError struct {
	Value string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %q", config.ErrInvalidArgument, config.ErrInvalidFrequency, e.Value)
}

// Is lets errors.Is(err, ErrInvalidArgument) succeed.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// RequestError describes a rejected field of a Request (unparseable date,
// unknown frequency). Outer layers map it to a usage error.
type RequestError struct {
	Field string
	Value string
	Err   error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
