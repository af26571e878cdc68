package executor

import (
	"github.com/viant/afs"
	"github.com/viant/entrysplit/inspector/repository"
)

// Options configures a Session.
type Options struct {
	// NodeEnv is exposed to evaluated code as process.env.NODE_ENV.
	NodeEnv     string
	JSXFactory  string
	JSXFragment string
	// FS serves modules missing from the graph.
	FS       afs.Service
	Detector *repository.Detector
	Builtins map[string]*Builtin
}

// Option configures Options.
type Option func(o *Options)

// WithNodeEnv sets process.env.NODE_ENV.
func WithNodeEnv(env string) Option {
	return func(o *Options) {
		o.NodeEnv = env
	}
}

// WithJSX sets the classic JSX factory and fragment expressions.
func WithJSX(factory, fragment string) Option {
	return func(o *Options) {
		o.JSXFactory = factory
		o.JSXFragment = fragment
	}
}

// WithFS sets the file system fallback.
func WithFS(fs afs.Service) Option {
	return func(o *Options) {
		o.FS = fs
	}
}

// WithDetector sets the package resolver for bare requests.
func WithDetector(detector *repository.Detector) Option {
	return func(o *Options) {
		o.Detector = detector
	}
}

// WithBuiltin registers source as the module served for request.
func WithBuiltin(request, name string, source []byte) Option {
	return func(o *Options) {
		o.Builtins[request] = &Builtin{Name: name, Source: source}
	}
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) *Options {
	result := &Options{
		NodeEnv:     "production",
		JSXFactory:  "React.createElement",
		JSXFragment: "React.Fragment",
		Builtins:    DefaultBuiltins(),
	}
	for _, opt := range opts {
		opt(result)
	}
	if result.FS == nil {
		result.FS = afs.New()
	}
	if result.Detector == nil {
		result.Detector = repository.New()
	}
	return result
}
