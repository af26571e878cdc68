package jsx

// Markers is the marker vocabulary recognised in a unit.
type Markers struct {
	// Sources lists the modules the markers are imported from.
	Sources []string `yaml:"sources"`
	// Extended is the exported name of the multi-child marker.
	Extended string `yaml:"extended"`
	// Legacy is the exported name of the single-child marker.
	Legacy string `yaml:"legacy"`
}

// DefaultMarkers returns the injector package vocabulary.
func DefaultMarkers() *Markers {
	return &Markers{
		Sources:  []string{"@nearmap/react-entry-loader/injectors", "react-entry-loader/injectors"},
		Extended: "Module",
		Legacy:   "Renderer",
	}
}

func (m *Markers) isSource(source string) bool {
	for _, candidate := range m.Sources {
		if candidate == source {
			return true
		}
	}
	return false
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithMarkers replaces the marker vocabulary.
func WithMarkers(markers *Markers) Option {
	return func(i *Inspector) {
		if markers != nil {
			i.markers = markers
		}
	}
}

// WithAllowMultiple makes the first marker in document order win instead of failing.
func WithAllowMultiple(allow bool) Option {
	return func(i *Inspector) {
		i.allowMultiple = allow
	}
}
