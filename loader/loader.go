package loader

import (
	"context"
	"fmt"

	"github.com/viant/entrysplit/ctxlog"
	"github.com/viant/entrysplit/slicer"
)

// Template is the static slice of one unit with the options to render it.
type Template struct {
	Output   string
	Filename string
	Code     []byte
	Map      []byte
	Props    map[string]interface{}
}

// TemplateHandler receives the template of every transformed unit.
type TemplateHandler func(ctx context.Context, template *Template) error

// Loader transforms page units.
type Loader struct {
	slicer  *slicer.Slicer
	handler TemplateHandler
}

// New creates a loader delivering templates to handler.
func New(handler TemplateHandler, opts ...slicer.Option) *Loader {
	return &Loader{slicer: slicer.New(opts...), handler: handler}
}

// Transform splits source and returns the module slice with its map. The
// template is delivered to the handler first; a unit either yields both or
// fails as a whole.
func (l *Loader) Transform(ctx context.Context, source []byte, inputMap []byte, options *Options) ([]byte, []byte, error) {
	if options == nil || options.Output == "" {
		return nil, nil, ErrMissingOutput
	}
	output, err := l.slicer.Split(ctx, options.Filename, source, inputMap)
	if err != nil {
		return nil, nil, err
	}
	templateMap, err := encodeMap(output.Template)
	if err != nil {
		return nil, nil, err
	}
	moduleMap, err := encodeMap(output.Module)
	if err != nil {
		return nil, nil, err
	}
	template := &Template{
		Output:   options.Output,
		Filename: options.Filename,
		Code:     []byte(output.Template.Code),
		Map:      templateMap,
		Props:    options.Props,
	}
	if l.handler != nil {
		if err := l.handler(ctx, template); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", options.Filename, err)
		}
	}
	ctxlog.FromContext(ctx).Debug("transformed unit", "filename", options.Filename, "output", options.Output)
	return []byte(output.Module.Code), moduleMap, nil
}

func encodeMap(result *slicer.Result) ([]byte, error) {
	if result.Map == nil {
		return nil, nil
	}
	return result.Map.JSON()
}
