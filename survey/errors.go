package survey

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks a bad parameter set. Nothing is generated.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvariant marks generated data that breaks a column invariant.
	ErrInvariant = errors.New("invariant violation")
)

// ConfigError names the offending parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

func configErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InvariantError is an internal defect: a generator produced a column that
// does not hold. Row is -1 when the whole column is wrong.
type InvariantError struct {
	Column string
	Row    int
	Reason string
}

func (e *InvariantError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("%s: column %q: %s", ErrInvariant, e.Column, e.Reason)
	}
	return fmt.Sprintf("%s: column %q row %d: %s", ErrInvariant, e.Column, e.Row, e.Reason)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

func invariantErrorf(column string, row int, format string, args ...any) error {
	return &InvariantError{Column: column, Row: row, Reason: fmt.Sprintf(format, args...)}
}
