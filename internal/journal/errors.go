package journal

import "fmt"

// ValidationError reports malformed or inconsistent request input. The
// request boundary maps it to a 400 response with the message as payload.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
