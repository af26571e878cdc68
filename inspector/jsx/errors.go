package jsx

import (
	"errors"
	"fmt"

	"github.com/viant/entrysplit/syntax"
)

var (
	// ErrMissingInjectionPoint is returned when a unit has no marker.
	ErrMissingInjectionPoint = errors.New("no injection point found")
	// ErrAmbiguousInjectionPoint is returned when more than one marker is found.
	ErrAmbiguousInjectionPoint = errors.New("ambiguous injection point")
	// ErrInvalidInjectionPoint is returned for a marker missing required props or children.
	ErrInvalidInjectionPoint = errors.New("invalid injection point")
)

func locationError(sentinel error, filename string, node *syntax.Node, format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d:%d: %w: %s", filename, node.From.Line, node.From.Column+1, sentinel, fmt.Sprintf(format, args...))
}
