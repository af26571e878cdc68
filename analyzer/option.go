package analyzer

// DefaultJSXFactory is the identifier classic-runtime JSX compiles against.
const DefaultJSXFactory = "React"

type options struct {
	jsxFactory string
}

// Option configures model building.
type Option func(*options)

// WithJSXFactory sets the identifier every JSX element implicitly references
// (the root of the factory expression, e.g. "React" for React.createElement).
// An empty name disables implicit references.
func WithJSXFactory(name string) Option {
	return func(o *options) {
		o.jsxFactory = name
	}
}

func newOptions(opts []Option) *options {
	result := &options{jsxFactory: DefaultJSXFactory}
	for _, opt := range opts {
		opt(result)
	}
	return result
}
