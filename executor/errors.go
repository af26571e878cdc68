package executor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedImport is the category of failed import resolutions.
	ErrUnresolvedImport = errors.New("unresolved import")
	// ErrCyclicImport is the category of import cycles between executed modules.
	ErrCyclicImport = errors.New("import cycle detected")
	// ErrTemplateExecution is the category of exceptions raised by evaluated code.
	ErrTemplateExecution = errors.New("template execution failed")
)

// UnresolvedImportError reports a request no resolver could satisfy.
type UnresolvedImportError struct {
	Request string
	From    string
}

func (e *UnresolvedImportError) Error() string {
	return fmt.Sprintf("%s: cannot find module %q from %s", ErrUnresolvedImport, e.Request, e.From)
}

func (e *UnresolvedImportError) Is(target error) bool {
	return target == ErrUnresolvedImport
}

// CyclicImportError reports a module requested while it was still executing.
type CyclicImportError struct {
	Chain []string
}

func (e *CyclicImportError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCyclicImport, strings.Join(e.Chain, " -> "))
}

func (e *CyclicImportError) Is(target error) bool {
	return target == ErrCyclicImport
}

// TemplateExecutionError is an exception raised by evaluated code, located in
// the original source through the source map chain. Line and Column are
// 1-based; both are zero when no frame could be located.
type TemplateExecutionError struct {
	Filename string
	Line     int
	Column   int
	Message  string
	Cause    error
}

func (e *TemplateExecutionError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s: %s", e.Filename, ErrTemplateExecution, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", e.Filename, e.Line, e.Column, ErrTemplateExecution, e.Message)
}

func (e *TemplateExecutionError) Is(target error) bool {
	return target == ErrTemplateExecution
}

func (e *TemplateExecutionError) Unwrap() error {
	return e.Cause
}

// TransformError reports source the module transform rejected.
type TransformError struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%s:%d:%d: failed to transform: %s", e.Filename, e.Line, e.Column, e.Message)
}
