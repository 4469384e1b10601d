package config

import "fmt"

// ErrInvalidField signals a configuration field that failed validation.
type ErrInvalidField struct {
	Field  string
	Reason string
}

// Error implements error.
func (e ErrInvalidField) Error() string {
	return fmt.Sprintf("invalid config field %q: %s", e.Field, e.Reason)
}
