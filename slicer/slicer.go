package slicer

import (
	"context"
	"time"

	"github.com/viant/entrysplit/analyzer"
	"github.com/viant/entrysplit/ctxlog"
	"github.com/viant/entrysplit/inspector"
	"github.com/viant/entrysplit/inspector/jsx"
)

// Output holds both slices of one unit.
type Output struct {
	Module   *Result
	Template *Result
	Point    *jsx.InjectionPoint
}

// Slicer splits page units. It holds no per-unit state and is safe for
// concurrent use.
type Slicer struct {
	options *Options
	factory *inspector.Factory
}

// New creates a Slicer.
func New(opts ...Option) *Slicer {
	options := NewOptions(opts...)
	factory := inspector.NewFactory(
		[]analyzer.Option{analyzer.WithJSXFactory(options.JSXFactory)},
		jsx.WithMarkers(options.Markers),
		jsx.WithAllowMultiple(options.AllowMultiple),
	)
	return &Slicer{options: options, factory: factory}
}

// Split parses source and returns both slices, or an error and no slice.
func (s *Slicer) Split(ctx context.Context, filename string, source []byte, inputMap []byte) (*Output, error) {
	started := time.Now()
	unit, err := s.factory.InspectSource(ctx, filename, source)
	if err != nil {
		return nil, err
	}
	options := *s.options
	options.InputMap = inputMap
	module, err := Module(unit.Model, unit.Point, &options)
	if err != nil {
		return nil, err
	}
	template, err := Template(unit.Model, unit.Point, &options)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("split unit",
		"filename", filename,
		"form", unit.Point.Form,
		"hydratable", unit.Point.Hydratable,
		"moduleBindings", module.Retained.Len(),
		"templateBindings", template.Retained.Len(),
		"elapsed", time.Since(started))
	return &Output{Module: module, Template: template, Point: unit.Point}, nil
}

// Split is a convenience wrapper splitting with default options.
func Split(ctx context.Context, filename string, source []byte, inputMap []byte, opts ...Option) (*Output, error) {
	return New(opts...).Split(ctx, filename, source, inputMap)
}
