package services

import "strings"

// ValidationError carries the field-level messages of a write rejected
// by a store constraint. Handlers map it to a 400 response listing the
// messages in order.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}
