package slicer

import "github.com/viant/entrysplit/inspector/jsx"

// DefaultRenderSource is the module the legacy form mounts with.
const DefaultRenderSource = "react-dom"

// Options configures slicing.
type Options struct {
	// SourceMap enables source map generation for both slices.
	SourceMap bool
	// InputMap is the map of the unit's source; the template map is chained to it.
	InputMap []byte
	// RenderSource is the module importing the legacy render entry point.
	RenderSource  string
	Markers       *jsx.Markers
	AllowMultiple bool
	JSXFactory    string
}

// Option configures Options.
type Option func(o *Options)

// WithSourceMap toggles source map generation.
func WithSourceMap(enabled bool) Option {
	return func(o *Options) {
		o.SourceMap = enabled
	}
}

// WithInputMap sets the unit's input source map.
func WithInputMap(data []byte) Option {
	return func(o *Options) {
		o.InputMap = data
	}
}

// WithRenderSource sets the legacy render module.
func WithRenderSource(source string) Option {
	return func(o *Options) {
		o.RenderSource = source
	}
}

// WithMarkers sets the marker vocabulary.
func WithMarkers(markers *jsx.Markers) Option {
	return func(o *Options) {
		o.Markers = markers
	}
}

// WithAllowMultiple uses the first marker when a unit has several.
func WithAllowMultiple(allow bool) Option {
	return func(o *Options) {
		o.AllowMultiple = allow
	}
}

// WithJSXFactory sets the identifier JSX compiles against.
func WithJSXFactory(name string) Option {
	return func(o *Options) {
		o.JSXFactory = name
	}
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) *Options {
	result := &Options{SourceMap: true, RenderSource: DefaultRenderSource, Markers: jsx.DefaultMarkers(), JSXFactory: "React"}
	for _, opt := range opts {
		opt(result)
	}
	return result
}
