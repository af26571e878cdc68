package slicer

import (
	"errors"
	"fmt"

	"github.com/viant/entrysplit/analyzer/binding"
)

// ErrNonTopLevelDependency is returned when the mount code depends on a
// binding that only exists inside a function or block of the page.
var ErrNonTopLevelDependency = errors.New("injection point depends on a non top-level binding")

func nonTopLevelError(filename string, b *binding.Binding) error {
	position := b.Identifier.From
	return fmt.Errorf("%s:%d:%d: %w: %s", filename, position.Line, position.Column+1, ErrNonTopLevelDependency, b.Name)
}
