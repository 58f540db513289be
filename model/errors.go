package model

import (
	"github.com/pkg/errors"
)

var (
	// ValidationError is the root cause of every rejected configuration
	// or request value. Test with errors.Is.
	ValidationError = errors.New("validation failed")

	maskAny = errors.WithStack
)

// InvalidArgument creates a ValidationError with the given reason.
func InvalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ValidationError, format, args...)
}
