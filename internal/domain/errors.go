package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every *ParseError via errors.Is.
	ErrParse = errors.New("parse error")
	// ErrNotFound is returned when a named output format, event or slice does not exist.
	ErrNotFound = errors.New("not found")
)

// ParseError reports a malformed time or duration string.
type ParseError struct {
	Kind  string
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s %q", e.Kind, e.Input)
}

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
