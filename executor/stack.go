package executor

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/dop251/goja"
	"github.com/viant/entrysplit/mapping"
)

// frame matches "at fn (file:line:col(pc))" and "at file:line:col(pc)".
var frame = regexp.MustCompile(`at (?:\S+ \()?(.+?):(\d+):(\d+)\(\d+\)`)

type stackFrame struct {
	filename string
	line     int
	column   int
}

func stackFrames(stack string) []stackFrame {
	var ret []stackFrame
	for _, match := range frame.FindAllStringSubmatch(stack, -1) {
		line, _ := strconv.Atoi(match[2])
		column, _ := strconv.Atoi(match[3])
		ret = append(ret, stackFrame{filename: match[1], line: line, column: column})
	}
	return ret
}

// ExecutionError converts an exception raised by evaluated code into a
// TemplateExecutionError located at the innermost frame of an executed
// module, mapped back to its original source. Other errors pass through.
func (s *Session) ExecutionError(err error) error {
	var exception *goja.Exception
	if !errors.As(err, &exception) {
		return err
	}
	ret := &TemplateExecutionError{Message: exception.Error(), Cause: err}
	if value := exception.Value(); value != nil {
		ret.Message = value.String()
	}
	for _, f := range stackFrames(exception.String()) {
		codeMap, ok := s.maps[f.filename]
		if !ok {
			continue
		}
		// the wrapper head takes the first line
		line, column := f.line-1, f.column-1
		ret.Filename, ret.Line, ret.Column = f.filename, line, column+1
		if source, origLine, origColumn, ok := mapping.Lookup(codeMap, line, column); ok {
			ret.Filename, ret.Line, ret.Column = source, origLine, origColumn+1
		}
		return ret
	}
	return ret
}
