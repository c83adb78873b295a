// forum/errors.go
package forum

import (
	"errors"
	"fmt"
)

// ErrThreadNotFound is returned when a thread id does not resolve to a
// stored thread.
var ErrThreadNotFound = errors.New("thread not found")

// ValidationError rejects input before any store call. Its message is safe
// to show to users: category only, never the offending text.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
