package slicer

import (
	"fmt"
	"strings"

	"github.com/viant/entrysplit/analyzer"
	"github.com/viant/entrysplit/analyzer/binding"
	"github.com/viant/entrysplit/inspector/jsx"
	"github.com/viant/entrysplit/mapping"
	"github.com/viant/entrysplit/syntax"
)

// Template builds the static slice: the original program with the marker
// reduced to its empty-props form, and every declaration only the removed
// wiring used pruned, cascading until nothing else becomes dead.
func Template(model *analyzer.Model, point *jsx.InjectionPoint, options *Options) (*Result, error) {
	filename := model.Tree.Filename
	e := newEmitter(model.Tree.Source)
	statements := Classify(model)

	regions := point.Removed()
	removed := map[*Unit]bool{}
	for changed := true; changed; {
		changed = false
		for _, statement := range statements {
			if !prunable(statement) {
				continue
			}
			for _, u := range statement.Units {
				if removed[u] || u.Node.Contains(point.Element.Node) || !deadUnit(model, u, regions) {
					continue
				}
				removed[u] = true
				regions = append(regions, u.Node)
				changed = true
			}
		}
	}

	edits := []Edit{markerEdit(point)}
	retained := analyzer.NewSet()
	keep := func(u *Unit) bool { return !removed[u] }
	for _, statement := range statements {
		for _, u := range statement.Units {
			if keep(u) {
				for _, b := range u.Bindings {
					retained.Add(b)
				}
			}
		}
		if statement.keepsAll(keep) {
			continue
		}
		if statement.Node.Contains(point.Element.Node) {
			edits = append(edits, declaratorRemovals(statement, keep)...)
			continue
		}
		text := statement.regenerate(keep)
		if text == "" {
			edits = append(edits, e.removal(statement.Node))
			continue
		}
		edits = append(edits, Edit{Start: statement.Node.Start, End: statement.Node.End, Text: text})
	}

	result := &Result{Retained: retained}
	var builder *mapping.Builder
	if options.SourceMap {
		builder = mapping.NewBuilder(filename, filename, model.Tree.Source)
	}
	result.Code = emit(e.apply(edits), "", builder)
	if builder == nil {
		return result, nil
	}
	result.Map = builder.Map()
	if len(options.InputMap) > 0 {
		composed, err := mapping.Compose(result.Map, options.InputMap)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		result.Map = composed
	}
	return result, nil
}

// declaratorRemovals drops removed declarators in place so that the marker
// edit inside a kept sibling still applies. A run of removed declarators is
// cut up to the next kept one, or from the previous kept one when it ends
// the list.
func declaratorRemovals(statement *Statement, keep func(u *Unit) bool) []Edit {
	var edits []Edit
	units := statement.Units
	for i := 0; i < len(units); {
		if keep(units[i]) {
			i++
			continue
		}
		j := i
		for j < len(units) && !keep(units[j]) {
			j++
		}
		switch {
		case j < len(units):
			edits = append(edits, Edit{Start: units[i].Node.Start, End: units[j].Node.Start})
		case i > 0:
			edits = append(edits, Edit{Start: units[i-1].Node.End, End: units[j-1].Node.End})
		}
		i = j
	}
	return edits
}

// prunable excludes exported declarations, which are part of the unit's interface.
func prunable(statement *Statement) bool {
	switch statement.Kind {
	case ImportStatement, DeclarationStatement, FunctionStatement, ClassStatement:
		return !statement.Exported
	}
	return false
}

// deadUnit reports whether every binding of u was read from a removed region
// and from nowhere else.
func deadUnit(model *analyzer.Model, u *Unit, regions []*syntax.Node) bool {
	if len(u.Bindings) == 0 {
		return false
	}
	for _, b := range u.Bindings {
		if !referencedWithin(b, regions) || !model.ExclusiveTo(b, regions...) {
			return false
		}
	}
	return true
}

func referencedWithin(b *binding.Binding, regions []*syntax.Node) bool {
	for _, region := range regions {
		if b.ReferencedWithin(region) {
			return true
		}
	}
	return false
}

// markerEdit rewrites the marker to its empty-props form.
func markerEdit(point *jsx.InjectionPoint) Edit {
	element := point.Element
	name := element.Name.Text()
	if element.Call {
		switch {
		case point.Form == jsx.Legacy:
			props := "null"
			if element.PropsArg != nil {
				props = element.PropsArg.Text()
			}
			return Edit{Start: element.Arguments.Start, End: element.Arguments.End, Text: "(" + name + ", " + props + ")"}
		case point.Hydratable && element.PropsArg != nil:
			return Edit{Start: element.PropsArg.Start, End: element.PropsArg.End, Text: "null"}
		case point.Hydratable:
			return Edit{Start: element.Node.End, End: element.Node.End}
		default:
			return Edit{Start: element.Arguments.Start, End: element.Arguments.End, Text: "(" + name + ", null)"}
		}
	}
	switch {
	case point.Form == jsx.Legacy:
		opening := strings.TrimSpace(element.Opening.Text())
		opening = strings.TrimSuffix(strings.TrimSuffix(opening, ">"), "/")
		return Edit{Start: element.Node.Start, End: element.Node.End, Text: strings.TrimRight(opening, " \t\n") + " />"}
	case point.Hydratable && !element.SelfClosing():
		return Edit{Start: element.Opening.Start, End: element.Opening.End, Text: "<" + name + ">"}
	default:
		return Edit{Start: element.Node.Start, End: element.Node.End, Text: "<" + name + " />"}
	}
}
