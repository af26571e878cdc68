package slicer

import (
	"strconv"
	"strings"

	"github.com/viant/entrysplit/analyzer"
	"github.com/viant/entrysplit/inspector/jsx"
	"github.com/viant/entrysplit/mapping"
	"github.com/viant/entrysplit/syntax"
)

// Result is one serialized slice.
type Result struct {
	Code string
	Map  *mapping.Map
	// Retained holds the top-level bindings whose declarations the slice keeps.
	Retained *analyzer.Set
}

// Module builds the runtime slice: the declarations the injection point's
// onLoad and children need, followed by the mount call.
func Module(model *analyzer.Model, point *jsx.InjectionPoint, options *Options) (*Result, error) {
	filename := model.Tree.Filename
	closure := model.Closure(point.Seeds()...)
	for _, b := range closure.Bindings() {
		if !b.IsTopLevel() {
			return nil, nonTopLevelError(filename, b)
		}
	}
	keep := func(u *Unit) bool {
		for _, b := range u.Bindings {
			if closure.Has(b) {
				return true
			}
		}
		return false
	}

	e := newEmitter(model.Tree.Source)
	retained := analyzer.NewSet()
	var pieces []*Piece
	for _, statement := range Classify(model) {
		switch statement.Kind {
		case ExportDefaultStatement:
			continue
		case OtherStatement:
			if closureBound(model, statement, closure) {
				pieces = append(pieces, e.node(statement.Node))
			}
			continue
		}
		if statement.SideEffect() {
			pieces = append(pieces, e.node(statement.Node))
			continue
		}
		if len(statement.Units) == 0 {
			continue
		}
		switch {
		case statement.keepsAll(keep):
			pieces = append(pieces, e.node(statement.Node))
		default:
			text := statement.regenerate(keep)
			if text == "" {
				continue
			}
			pieces = append(pieces, e.replace(statement.Node.Start, text))
		}
		for _, u := range statement.Units {
			if keep(u) {
				for _, b := range u.Bindings {
					retained.Add(b)
				}
			}
		}
	}

	switch point.Form {
	case jsx.Legacy:
		pieces = append(pieces, legacyMount(model, point, options)...)
	default:
		pieces = append(pieces, mountCall(point.OnLoad, point.Children))
	}

	result := &Result{Retained: retained}
	var builder *mapping.Builder
	if options.SourceMap {
		builder = mapping.NewBuilder(filename, filename, model.Tree.Source)
	}
	result.Code = emit(pieces, "\n", builder) + "\n"
	if builder != nil {
		result.Map = builder.Map()
	}
	return result, nil
}

// closureBound reports whether a statement that declares nothing reads at
// least one closure binding and no top-level binding outside the closure.
func closureBound(model *analyzer.Model, statement *Statement, closure *analyzer.Set) bool {
	bound := false
	for _, b := range model.BindingsWithin(statement.Node) {
		if !b.IsTopLevel() || b.Statement == statement.Node {
			continue
		}
		if !closure.Has(b) {
			return false
		}
		bound = true
	}
	return bound
}

// mountCall synthesizes `onLoad(children...)`.
func mountCall(onLoad *syntax.Node, children []*syntax.Node) *Piece {
	piece := &Piece{}
	var sb strings.Builder
	parens := needsParens(onLoad)
	if parens {
		sb.WriteString("(")
	}
	piece.Marks = append(piece.Marks, Mark{Offset: sb.Len(), Origin: onLoad.From})
	sb.WriteString(onLoad.Text())
	if parens {
		sb.WriteString(")")
	}
	sb.WriteString("(")
	for i, child := range children {
		if i > 0 {
			sb.WriteString(", ")
		}
		piece.Marks = append(piece.Marks, Mark{Offset: sb.Len(), Origin: child.From})
		sb.WriteString(jsx.ChildExpression(child))
	}
	sb.WriteString(");")
	piece.Text = sb.String()
	return piece
}

func needsParens(n *syntax.Node) bool {
	switch n.Kind {
	case syntax.KindIdentifier, syntax.KindMember, syntax.KindCall, syntax.KindParenthesized:
		return false
	}
	return n.Type != "subscript_expression"
}

// legacyMount synthesizes the render import and the render call into the container.
func legacyMount(model *analyzer.Model, point *jsx.InjectionPoint, options *Options) []*Piece {
	local := uniqueName(model, "render")
	specifier := "render"
	if local != "render" {
		specifier = "render as " + local
	}
	imports := &Piece{Text: "import {" + specifier + "} from " + strconv.Quote(options.RenderSource) + ";"}

	child := point.Children[0]
	call := &Piece{}
	var sb strings.Builder
	sb.WriteString(local + "(")
	call.Marks = append(call.Marks, Mark{Offset: sb.Len(), Origin: child.From})
	sb.WriteString(jsx.ChildExpression(child))
	sb.WriteString(", document.getElementById(" + strconv.Quote(point.ContainerID) + "));")
	call.Text = sb.String()
	return []*Piece{imports, call}
}

// uniqueName returns base, or a prefixed variant when an identifier of the
// unit already uses it.
func uniqueName(model *analyzer.Model, base string) string {
	used := map[string]bool{}
	for _, n := range model.Tree.Nodes {
		if n.Kind == syntax.KindIdentifier || n.Kind == syntax.KindShorthandProperty || n.Kind == syntax.KindShorthandPattern {
			used[n.Text()] = true
		}
	}
	if !used[base] {
		return base
	}
	candidate := "_" + base
	for i := 2; used[candidate]; i++ {
		candidate = "_" + base + strconv.Itoa(i)
	}
	return candidate
}
