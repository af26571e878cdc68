package jsx

import (
	"fmt"
	"strings"

	"github.com/viant/entrysplit/analyzer"
	"github.com/viant/entrysplit/analyzer/binding"
	"github.com/viant/entrysplit/syntax"
)

// Inspector finds the injection point of a page unit.
type Inspector struct {
	markers       *Markers
	allowMultiple bool
}

// NewInspector creates an Inspector with the default marker vocabulary.
func NewInspector(opts ...Option) *Inspector {
	result := &Inspector{markers: DefaultMarkers()}
	for _, opt := range opts {
		opt(result)
	}
	return result
}

// candidate is a marker element matched by binding, before validation.
type candidate struct {
	form    Form
	element *Element
	marker  *binding.Binding
}

// Locate traverses the program once and returns its single injection point.
func (i *Inspector) Locate(model *analyzer.Model) (*InjectionPoint, error) {
	filename := model.Tree.Filename
	var found []*candidate
	syntax.Walk(model.Tree.Root, func(n *syntax.Node) bool {
		if n.Kind != syntax.KindJSXElement && n.Kind != syntax.KindJSXSelfClosing && n.Kind != syntax.KindCall {
			return true
		}
		element := ElementOf(n)
		if element == nil || element.Name == nil {
			return true
		}
		if form, marker := i.match(model, element.Name); marker != nil {
			found = append(found, &candidate{form: form, element: element, marker: marker})
		}
		return true
	})

	if len(found) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrMissingInjectionPoint)
	}
	for _, other := range found[1:] {
		if other.form != found[0].form {
			return nil, locationError(ErrAmbiguousInjectionPoint, filename, other.element.Node,
				"%s and %s markers in one unit", found[0].form, other.form)
		}
		if !i.allowMultiple {
			return nil, locationError(ErrAmbiguousInjectionPoint, filename, other.element.Node,
				"%d %s markers found", len(found), found[0].form)
		}
	}

	first := found[0]
	switch first.form {
	case Legacy:
		return i.legacy(filename, first)
	default:
		return i.extended(filename, first)
	}
}

// match resolves an element name to a marker import. Aliased imports match,
// shadowed names do not.
func (i *Inspector) match(model *analyzer.Model, name *syntax.Node) (Form, *binding.Binding) {
	var target *binding.Binding
	exported := ""
	switch name.Kind {
	case syntax.KindIdentifier:
		target = model.Resolve(name)
		if target != nil {
			exported = target.Imported
		}
	case syntax.KindMember, syntax.KindNestedIdentifier:
		named := name.NamedChildren()
		if len(named) != 2 || named[0].Kind != syntax.KindIdentifier {
			return "", nil
		}
		target = model.Resolve(named[0])
		if target == nil || target.Imported != "*" {
			return "", nil
		}
		exported = named[1].Text()
	}
	if target == nil || target.Kind != binding.Import || !i.markers.isSource(target.Source) {
		return "", nil
	}
	switch exported {
	case i.markers.Extended:
		return Extended, target
	case i.markers.Legacy:
		return Legacy, target
	}
	return "", nil
}

func (i *Inspector) extended(filename string, c *candidate) (*InjectionPoint, error) {
	element := c.element
	point := &InjectionPoint{Form: Extended, Element: element, Marker: c.marker, Children: element.Children}
	onLoad := element.Prop("onLoad")
	if onLoad == nil || onLoad.Value == nil {
		return nil, locationError(ErrInvalidInjectionPoint, filename, element.Node, "%s requires an onLoad callback", element.Name.Text())
	}
	point.OnLoad = onLoad.Value
	point.OnLoadProp = onLoad
	if hydratable := element.Prop("hydratable"); hydratable != nil {
		switch {
		case hydratable.Value == nil:
			point.Hydratable = true
		case hydratable.Value.Unwrap().Kind == syntax.KindTrue:
			point.Hydratable = true
		case hydratable.Value.Unwrap().Kind == syntax.KindFalse:
		default:
			return nil, locationError(ErrInvalidInjectionPoint, filename, hydratable.Node, "hydratable must be a boolean literal")
		}
	}
	return point, nil
}

func (i *Inspector) legacy(filename string, c *candidate) (*InjectionPoint, error) {
	element := c.element
	id := element.Prop("id")
	if id == nil || id.Value == nil {
		return nil, locationError(ErrInvalidInjectionPoint, filename, element.Node, "%s requires an id", element.Name.Text())
	}
	containerID, ok := stringLiteral(id.Value)
	if !ok {
		return nil, locationError(ErrInvalidInjectionPoint, filename, id.Node, "id must be a string literal")
	}
	if len(element.Children) != 1 {
		return nil, locationError(ErrInvalidInjectionPoint, filename, element.Node, "%s requires exactly one child, got %d", element.Name.Text(), len(element.Children))
	}
	return &InjectionPoint{
		Form:        Legacy,
		Element:     element,
		Marker:      c.marker,
		Children:    element.Children,
		ContainerID: containerID,
	}, nil
}

func stringLiteral(n *syntax.Node) (string, bool) {
	n = n.Unwrap()
	if value, ok := n.StringValue(); ok {
		return value, true
	}
	if n.Type == "template_string" && !strings.Contains(n.Text(), "${") {
		text := n.Text()
		return text[1 : len(text)-1], true
	}
	return "", false
}
