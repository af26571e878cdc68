package jsx

import (
	"github.com/viant/entrysplit/analyzer/binding"
	"github.com/viant/entrysplit/syntax"
)

// Form identifies the marker variant an injection point was declared with.
type Form string

const (
	// Extended is the multi-child marker with onLoad and hydratable props.
	Extended Form = "extended"
	// Legacy is the single-child marker mounted into a container id.
	Legacy Form = "legacy"
)

// InjectionPoint is the marker sub-tree deferred to a runtime mount,
// normalised across both marker forms.
type InjectionPoint struct {
	Form    Form
	Element *Element
	Marker  *binding.Binding
	// OnLoad is the mount callback expression; nil for the legacy form.
	OnLoad     *syntax.Node
	OnLoadProp *Prop
	Children   []*syntax.Node
	Hydratable bool
	// ContainerID is the legacy mount target id.
	ContainerID string
}

// Seeds returns the expressions the runtime module depends on.
func (p *InjectionPoint) Seeds() []*syntax.Node {
	var result []*syntax.Node
	if p.OnLoad != nil {
		result = append(result, p.OnLoad)
	}
	return append(result, p.Children...)
}

// Removed returns the regions the template drops: the onLoad wiring, and the
// children unless the markup must be hydrated.
func (p *InjectionPoint) Removed() []*syntax.Node {
	var result []*syntax.Node
	if p.OnLoadProp != nil {
		result = append(result, p.OnLoadProp.Node)
	}
	if p.Form == Legacy || !p.Hydratable {
		result = append(result, p.Children...)
	}
	return result
}
