// Package render serializes the element tree a template's view function
// returns into static markup.
package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"github.com/viant/entrysplit/executor"
)

// Doctype prefixes every rendered document.
const Doctype = "<!DOCTYPE html>"

// ErrNoView is returned when a template has no callable default export.
var ErrNoView = errors.New("template default export is not a view function")

// Renderer renders views executed by one session.
type Renderer struct {
	session *executor.Session
}

// New creates a renderer over session.
func New(session *executor.Session) *Renderer {
	return &Renderer{session: session}
}

// RenderTemplate executes template code and renders its default export.
func (r *Renderer) RenderTemplate(ctx context.Context, filename string, code []byte, sourceMap []byte, props map[string]interface{}) (string, error) {
	exports, err := r.session.Exec(ctx, filename, code, sourceMap)
	if err != nil {
		return "", err
	}
	view := exports.Get("default")
	if view == nil || goja.IsUndefined(view) || goja.IsNull(view) {
		return "", fmt.Errorf("%s: %w", filename, ErrNoView)
	}
	return r.Render(ctx, view, props)
}

// Render calls view with props and returns the document markup.
func (r *Renderer) Render(ctx context.Context, view goja.Value, props map[string]interface{}) (string, error) {
	if _, ok := goja.AssertFunction(view); !ok {
		return "", ErrNoView
	}
	vm := r.session.Runtime()
	value, err := r.props(props)
	if err != nil {
		return "", err
	}
	s := &serializer{
		vm:       vm,
		element:  symbolFor(vm, "react.element"),
		fragment: symbolFor(vm, "react.fragment"),
	}
	if err := s.component(view, value); err != nil {
		return "", r.session.ExecutionError(err)
	}
	return Doctype + Sanitize(s.sb.String()), nil
}

// props converts props into native runtime values by a JSON round trip.
func (r *Renderer) props(props map[string]interface{}) (*goja.Object, error) {
	if props == nil {
		props = map[string]interface{}{}
	}
	data, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("invalid template props: %w", err)
	}
	vm := r.session.Runtime()
	parse, _ := goja.AssertFunction(vm.Get("JSON").ToObject(vm).Get("parse"))
	value, err := parse(goja.Undefined(), vm.ToValue(string(data)))
	if err != nil {
		return nil, err
	}
	return value.ToObject(vm), nil
}

func symbolFor(vm *goja.Runtime, key string) goja.Value {
	value, err := vm.RunString(fmt.Sprintf("Symbol.for(%q)", key))
	if err != nil {
		panic(err)
	}
	return value
}

// serializer writes static markup: no hydration comments, no event handlers.
type serializer struct {
	vm       *goja.Runtime
	element  goja.Value
	fragment goja.Value
	sb       strings.Builder
}

func (s *serializer) node(value goja.Value) error {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return nil
	}
	if _, ok := value.(*goja.Symbol); ok {
		return nil
	}
	object, ok := value.(*goja.Object)
	if !ok {
		switch actual := value.Export().(type) {
		case bool:
		case string:
			s.sb.WriteString(escape(actual))
		default:
			s.sb.WriteString(escape(value.String()))
		}
		return nil
	}
	if _, ok := goja.AssertFunction(object); ok {
		return nil
	}
	if object.ClassName() == "Array" {
		length := int(object.Get("length").ToInteger())
		for i := 0; i < length; i++ {
			if err := s.node(object.Get(fmt.Sprint(i))); err != nil {
				return err
			}
		}
		return nil
	}
	if typeOf := object.Get("$$typeof"); typeOf == nil || !typeOf.StrictEquals(s.element) {
		return fmt.Errorf("objects are not valid as a child (found: object with keys {%s})", strings.Join(object.Keys(), ", "))
	}
	typ := object.Get("type")
	props := s.vm.NewObject()
	if value := object.Get("props"); value != nil && !goja.IsUndefined(value) && !goja.IsNull(value) {
		props = value.ToObject(s.vm)
	}
	switch {
	case typ != nil && typ.StrictEquals(s.fragment):
		return s.node(props.Get("children"))
	case isString(typ):
		return s.intrinsic(typ.String(), props)
	}
	return s.component(typ, props)
}

func isString(value goja.Value) bool {
	if value == nil {
		return false
	}
	_, ok := value.Export().(string)
	return ok
}

// component renders function and class components.
func (s *serializer) component(typ goja.Value, props *goja.Object) error {
	call, ok := goja.AssertFunction(typ)
	if !ok {
		return fmt.Errorf("element type is invalid: %v", typ)
	}
	if isClass(s.vm, typ) {
		instance, err := s.vm.New(typ, props)
		if err != nil {
			return err
		}
		render, ok := goja.AssertFunction(instance.Get("render"))
		if !ok {
			return fmt.Errorf("class component has no render method")
		}
		out, err := render(instance)
		if err != nil {
			return err
		}
		return s.node(out)
	}
	out, err := call(goja.Undefined(), props)
	if err != nil {
		return err
	}
	return s.node(out)
}

func isClass(vm *goja.Runtime, typ goja.Value) bool {
	prototype := typ.ToObject(vm).Get("prototype")
	if prototype == nil || goja.IsUndefined(prototype) || goja.IsNull(prototype) {
		return false
	}
	marker := prototype.ToObject(vm).Get("isReactComponent")
	return marker != nil && marker.ToBoolean()
}

func (s *serializer) intrinsic(tag string, props *goja.Object) error {
	s.sb.WriteByte('<')
	s.sb.WriteString(tag)
	for _, key := range props.Keys() {
		if reservedProps[key] || isEventHandler(key) {
			continue
		}
		value := props.Get(key)
		if key == "style" {
			s.style(value)
			continue
		}
		s.attribute(attributeName(key), value)
	}
	if voidElements[tag] {
		s.sb.WriteString("/>")
		return nil
	}
	s.sb.WriteByte('>')
	if inner := props.Get("dangerouslySetInnerHTML"); inner != nil && !goja.IsUndefined(inner) && !goja.IsNull(inner) {
		if html := inner.ToObject(s.vm).Get("__html"); html != nil && !goja.IsUndefined(html) && !goja.IsNull(html) {
			s.sb.WriteString(html.String())
		}
	} else if err := s.node(props.Get("children")); err != nil {
		return err
	}
	s.sb.WriteString("</")
	s.sb.WriteString(tag)
	s.sb.WriteByte('>')
	return nil
}

func (s *serializer) attribute(name string, value goja.Value) {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return
	}
	if _, ok := value.(*goja.Symbol); ok {
		return
	}
	if _, ok := goja.AssertFunction(value); ok {
		return
	}
	if flag, ok := value.Export().(bool); ok {
		switch {
		case booleanAttributes[strings.ToLower(name)]:
			if flag {
				s.sb.WriteString(" " + name + `=""`)
			}
		case isDataOrAria(name):
			s.sb.WriteString(fmt.Sprintf(` %s="%t"`, name, flag))
		}
		return
	}
	if booleanAttributes[strings.ToLower(name)] && !value.ToBoolean() {
		return
	}
	s.sb.WriteString(" " + name + `="` + escape(value.String()) + `"`)
}

func (s *serializer) style(value goja.Value) {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return
	}
	object, ok := value.(*goja.Object)
	if !ok {
		return
	}
	var declarations []string
	for _, key := range object.Keys() {
		item := object.Get(key)
		if item == nil || goja.IsUndefined(item) || goja.IsNull(item) {
			continue
		}
		var text string
		switch actual := item.Export().(type) {
		case bool:
			continue
		case string:
			text = strings.TrimSpace(actual)
			if text == "" {
				continue
			}
		case int64:
			text = item.String()
			if actual != 0 && !unitless[key] && !strings.HasPrefix(key, "--") {
				text += "px"
			}
		case float64:
			text = item.String()
			if actual != 0 && !unitless[key] && !strings.HasPrefix(key, "--") {
				text += "px"
			}
		default:
			text = item.String()
		}
		declarations = append(declarations, styleName(key)+":"+text)
	}
	if len(declarations) == 0 {
		return
	}
	s.sb.WriteString(` style="` + escape(strings.Join(declarations, ";")) + `"`)
}
