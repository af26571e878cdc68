package jsx

import (
	"strconv"
	"strings"

	"github.com/viant/entrysplit/syntax"
)

// Element is a view over a JSX element or a compiled createElement call.
type Element struct {
	Node     *syntax.Node // jsx_element, jsx_self_closing_element or call_expression
	Opening  *syntax.Node // opening tag; the call itself for the compiled form
	Name     *syntax.Node // tag name or first call argument
	Props    []*Prop
	Children []*syntax.Node
	// Arguments and PropsArg are set for the compiled form only.
	Arguments *syntax.Node
	PropsArg  *syntax.Node
	Call      bool
}

// Prop is one attribute or object property of an element.
type Prop struct {
	Name  string
	Node  *syntax.Node // jsx_attribute, pair or shorthand property
	Value *syntax.Node // expression; nil for a bare JSX boolean attribute
}

// Prop returns the named prop, or nil.
func (e *Element) Prop(name string) *Prop {
	for _, prop := range e.Props {
		if prop.Name == name {
			return prop
		}
	}
	return nil
}

// SelfClosing reports whether a JSX element has no closing tag.
func (e *Element) SelfClosing() bool {
	return !e.Call && e.Node.Kind == syntax.KindJSXSelfClosing
}

// ElementOf returns the element view of n, or nil when n is neither JSX nor a createElement call.
func ElementOf(n *syntax.Node) *Element {
	switch n.Kind {
	case syntax.KindJSXElement:
		opening := n.ChildByField("open_tag")
		if opening == nil {
			opening = n.ChildOfKind(syntax.KindJSXOpening)
		}
		if opening == nil {
			return nil
		}
		return &Element{
			Node:     n,
			Opening:  opening,
			Name:     opening.ChildByField("name"),
			Props:    jsxProps(opening),
			Children: jsxChildren(n),
		}
	case syntax.KindJSXSelfClosing:
		return &Element{Node: n, Opening: n, Name: n.ChildByField("name"), Props: jsxProps(n)}
	case syntax.KindCall:
		if !isCreateElement(n.ChildByField("function")) {
			return nil
		}
		args := n.ChildByField("arguments")
		if args == nil {
			return nil
		}
		named := args.NamedChildren()
		if len(named) == 0 {
			return nil
		}
		element := &Element{Node: n, Opening: n, Name: named[0], Arguments: args, Call: true}
		if len(named) > 1 {
			element.PropsArg = named[1]
			element.Props = objectProps(named[1].Unwrap())
		}
		if len(named) > 2 {
			element.Children = named[2:]
		}
		return element
	}
	return nil
}

func isCreateElement(callee *syntax.Node) bool {
	if callee == nil {
		return false
	}
	switch callee.Kind {
	case syntax.KindIdentifier:
		return callee.Text() == "createElement"
	case syntax.KindMember:
		property := callee.ChildByField("property")
		return property != nil && property.Text() == "createElement"
	}
	return false
}

func jsxProps(opening *syntax.Node) []*Prop {
	var result []*Prop
	for _, attr := range opening.Children {
		if attr.Kind != syntax.KindJSXAttribute {
			continue
		}
		named := attr.NamedChildren()
		if len(named) == 0 {
			continue
		}
		prop := &Prop{Name: named[0].Text(), Node: attr}
		if len(named) > 1 {
			value := named[1]
			if value.Kind == syntax.KindJSXExpression {
				if inner := value.NamedChildren(); len(inner) == 1 {
					value = inner[0]
				}
			}
			prop.Value = value
		}
		result = append(result, prop)
	}
	return result
}

func objectProps(object *syntax.Node) []*Prop {
	if object == nil || object.Kind != syntax.KindObject {
		return nil
	}
	var result []*Prop
	for _, child := range object.NamedChildren() {
		switch child.Kind {
		case syntax.KindPair:
			key := child.ChildByField("key")
			if key == nil {
				continue
			}
			name := key.Text()
			if value, ok := key.StringValue(); ok {
				name = value
			}
			result = append(result, &Prop{Name: name, Node: child, Value: child.ChildByField("value")})
		case syntax.KindShorthandProperty:
			result = append(result, &Prop{Name: child.Text(), Node: child, Value: child})
		}
	}
	return result
}

// jsxChildren returns the meaningful children between the tags: elements,
// non-empty expressions and non-blank text.
func jsxChildren(element *syntax.Node) []*syntax.Node {
	var result []*syntax.Node
	for _, child := range element.Children {
		if child.Field == "open_tag" || child.Field == "close_tag" || !child.Named {
			continue
		}
		switch child.Kind {
		case syntax.KindJSXOpening, syntax.KindJSXClosing, syntax.KindComment:
			continue
		case syntax.KindJSXText:
			if strings.TrimSpace(child.Text()) == "" {
				continue
			}
		case syntax.KindJSXExpression:
			if len(child.NamedChildren()) == 0 {
				continue
			}
		}
		result = append(result, child)
	}
	return result
}

// ChildExpression returns child as source text usable as a call argument.
func ChildExpression(child *syntax.Node) string {
	switch child.Kind {
	case syntax.KindJSXText:
		return strconv.Quote(JSXText(child.Text()))
	case syntax.KindJSXExpression:
		if inner := child.NamedChildren(); len(inner) == 1 {
			return inner[0].Text()
		}
	}
	return child.Text()
}

// JSXText collapses JSX text the way JSX compilers do: lines are trimmed,
// blank lines dropped and the rest joined with single spaces.
func JSXText(text string) string {
	lines := strings.Split(text, "\n")
	var parts []string
	for i, line := range lines {
		if i > 0 {
			line = strings.TrimLeft(line, " \t")
		}
		if i < len(lines)-1 {
			line = strings.TrimRight(line, " \t")
		}
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
