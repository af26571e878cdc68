package syntax

import (
	"errors"
	"fmt"
)

// ErrParse is the category of malformed-source failures.
var ErrParse = errors.New("parse error")

// ParseError reports malformed source at its first error location.
type ParseError struct {
	Filename string
	Position Position
	Snippet  string
	Missing  bool
}

func (e *ParseError) Error() string {
	what := "unexpected"
	if e.Missing {
		what = "missing"
	}
	if e.Snippet == "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Position.Line, e.Position.Column+1, ErrParse)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s %q", e.Filename, e.Position.Line, e.Position.Column+1, ErrParse, what, e.Snippet)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
