package analyzer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/viant/entrysplit/analyzer/binding"
	"github.com/viant/entrysplit/syntax"
)

// Build computes the scope tree, declarations and references of a program.
// Declarations are collected in a first pass so hoisted names resolve, then
// every read site is resolved against the innermost enclosing scope.
func Build(tree *syntax.Tree, opts ...Option) *Model {
	o := newOptions(opts)
	model := &Model{
		Tree:       tree,
		scopeOf:    make([]*binding.Scope, len(tree.Nodes)),
		sites:      map[int]*binding.Binding{},
		refs:       map[int]*binding.Reference{},
		jsxFactory: o.jsxFactory,
	}
	b := &builder{model: model, nonRefs: map[int]bool{}}
	model.Program = b.newScope(binding.ProgramScope, tree.Root, nil)
	b.visit(tree.Root, model.Program)
	b.resolve()
	return model
}

type builder struct {
	model   *Model
	nonRefs map[int]bool
}

func (b *builder) newScope(kind binding.ScopeKind, node *syntax.Node, parent *binding.Scope) *binding.Scope {
	id := string(kind)
	if parent != nil {
		id = fmt.Sprintf("%s.%s@%d", parent.ID, kind, node.Start)
	}
	scope := binding.NewScope(id, kind, node, parent)
	b.model.Scopes = append(b.model.Scopes, scope)
	return scope
}

// -----------------------------------------------------------------------------
// Declaration pass
// -----------------------------------------------------------------------------

func (b *builder) visit(n *syntax.Node, scope *binding.Scope) {
	b.model.scopeOf[n.Index] = scope
	switch n.Kind {
	case syntax.KindImport:
		b.declareImport(n, scope)
	case syntax.KindExport:
		b.markExport(n)
	case syntax.KindLexicalDeclaration, syntax.KindVariableDeclaration:
		b.declareVariables(n, scope)
	case syntax.KindFunctionDeclaration:
		b.visitFunction(n, scope, true)
		return
	case syntax.KindFunctionExpression, syntax.KindArrowFunction, syntax.KindMethod:
		b.visitFunction(n, scope, false)
		return
	case syntax.KindClassDeclaration:
		if name := n.ChildByField("name"); name != nil {
			b.bind(name, scope, binding.Class, n)
		}
	case syntax.KindClassExpression:
		if name := n.ChildByField("name"); name != nil {
			inner := b.newScope(binding.ClassScope, n, scope)
			b.bind(name, inner, binding.Class, n)
			b.visitChildren(n, inner)
			return
		}
	case syntax.KindStatementBlock, syntax.KindSwitchBody:
		b.visitChildren(n, b.newScope(binding.BlockScope, n, scope))
		return
	case syntax.KindForStatement:
		b.visitChildren(n, b.newScope(binding.BlockScope, n, scope))
		return
	case syntax.KindForInStatement:
		b.visitForIn(n, scope)
		return
	case syntax.KindCatchClause:
		inner := b.newScope(binding.CatchScope, n, scope)
		if param := n.ChildByField("parameter"); param != nil {
			b.declarePattern(param, inner, binding.Catch, param)
		}
		b.visitChildren(n, inner)
		return
	case syntax.KindJSXOpening, syntax.KindJSXSelfClosing, syntax.KindJSXClosing:
		b.markElementName(n)
	case syntax.KindNestedIdentifier:
		for i, child := range n.NamedChildren() {
			if i > 0 {
				b.nonRefs[child.Index] = true
			}
		}
	}
	if n.Type == "jsx_namespace_name" {
		for _, child := range n.Children {
			b.nonRefs[child.Index] = true
		}
	}
	b.visitChildren(n, scope)
}

func (b *builder) visitChildren(n *syntax.Node, scope *binding.Scope) {
	for _, child := range n.Children {
		b.visit(child, scope)
	}
}

// visitFunction opens a function scope for parameters and body. A declared
// function's name belongs to the enclosing scope, a named expression's name
// to its own scope.
func (b *builder) visitFunction(n *syntax.Node, scope *binding.Scope, declaration bool) {
	inner := b.newScope(binding.FunctionScope, n, scope)
	if name := n.ChildByField("name"); name != nil && name.Kind == syntax.KindIdentifier {
		if declaration {
			b.bind(name, scope, binding.Function, n)
		} else if n.Kind == syntax.KindFunctionExpression {
			b.bind(name, inner, binding.Function, n)
		}
	}
	if param := n.ChildByField("parameter"); param != nil {
		b.declarePattern(param, inner, binding.Param, param)
	}
	if params := n.ChildByField("parameters"); params != nil {
		for _, param := range params.NamedChildren() {
			b.declarePattern(param, inner, binding.Param, param)
		}
	}
	for _, child := range n.Children {
		switch {
		case child.Field == "name" && declaration:
			b.visit(child, scope)
		case child.Field == "body" && child.Kind == syntax.KindStatementBlock:
			b.model.scopeOf[child.Index] = inner
			b.visitChildren(child, inner)
		default:
			b.visit(child, inner)
		}
	}
}

func (b *builder) visitForIn(n *syntax.Node, scope *binding.Scope) {
	inner := b.newScope(binding.BlockScope, n, scope)
	if left := n.ChildByField("left"); left != nil {
		switch {
		case n.HasToken("const"):
			b.declarePattern(left, inner, binding.Const, n)
		case n.HasToken("let"):
			b.declarePattern(left, inner, binding.Let, n)
		case n.HasToken("var"):
			b.declarePattern(left, scope.Function(), binding.Var, n)
		}
	}
	b.visitChildren(n, inner)
}

func (b *builder) declareImport(n *syntax.Node, scope *binding.Scope) {
	source := ""
	if src := n.ChildByField("source"); src != nil {
		source, _ = src.StringValue()
	}
	clause := n.ChildOfKind(syntax.KindImportClause)
	if clause == nil {
		return
	}
	for _, child := range clause.NamedChildren() {
		switch child.Kind {
		case syntax.KindIdentifier:
			b.bindImport(child, scope, child, source, "default")
		case syntax.KindNamespaceImport:
			if local := child.ChildOfKind(syntax.KindIdentifier); local != nil {
				b.bindImport(local, scope, child, source, "*")
			}
		case syntax.KindNamedImports:
			for _, specifier := range child.NamedChildren() {
				if specifier.Kind != syntax.KindImportSpecifier {
					continue
				}
				name := specifier.ChildByField("name")
				local := specifier.ChildByField("alias")
				if local == nil {
					local = name
				}
				if name == nil || local == nil {
					continue
				}
				imported := name.Text()
				if value, ok := name.StringValue(); ok {
					imported = value
				}
				b.nonRefs[name.Index] = true
				b.bindImport(local, scope, specifier, source, imported)
			}
		}
	}
}

func (b *builder) bindImport(local *syntax.Node, scope *binding.Scope, declaration *syntax.Node, source, imported string) {
	declared := b.bind(local, scope, binding.Import, declaration)
	declared.Source = source
	declared.Imported = imported
}

func (b *builder) markExport(n *syntax.Node) {
	clause := n.ChildOfKind(syntax.KindExportClause)
	if clause == nil {
		return
	}
	reexport := n.ChildByField("source") != nil
	for _, specifier := range clause.NamedChildren() {
		for _, child := range specifier.Children {
			if reexport || child.Field == "alias" {
				b.nonRefs[child.Index] = true
			}
		}
	}
}

func (b *builder) declareVariables(n *syntax.Node, scope *binding.Scope) {
	kind := binding.Var
	target := scope.Function()
	switch {
	case n.HasToken("const"):
		kind, target = binding.Const, scope
	case n.HasToken("let"):
		kind, target = binding.Let, scope
	}
	for _, declarator := range n.NamedChildren() {
		if declarator.Kind != syntax.KindDeclarator {
			continue
		}
		if name := declarator.ChildByField("name"); name != nil {
			b.declarePattern(name, target, kind, declarator)
		}
	}
}

// declarePattern binds every identifier a destructuring pattern introduces.
// Default values inside the pattern stay references.
func (b *builder) declarePattern(pattern *syntax.Node, scope *binding.Scope, kind binding.Kind, declaration *syntax.Node) {
	stack := []*syntax.Node{pattern}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n.Kind {
		case syntax.KindIdentifier, syntax.KindShorthandPattern:
			b.bind(n, scope, kind, declaration)
		case syntax.KindObjectPattern, syntax.KindArrayPattern:
			named := n.NamedChildren()
			for i := len(named) - 1; i >= 0; i-- {
				stack = append(stack, named[i])
			}
		case syntax.KindPairPattern:
			if value := n.ChildByField("value"); value != nil {
				stack = append(stack, value)
			}
		case syntax.KindAssignmentPattern, syntax.KindObjectAssignmentPattern:
			if left := n.ChildByField("left"); left != nil {
				stack = append(stack, left)
			}
		case syntax.KindRestPattern:
			stack = append(stack, n.NamedChildren()...)
		}
	}
}

func (b *builder) bind(identifier *syntax.Node, scope *binding.Scope, kind binding.Kind, declaration *syntax.Node) *binding.Binding {
	candidate := &binding.Binding{
		Name:        identifier.Text(),
		Kind:        kind,
		Identifier:  identifier,
		Declaration: declaration,
		Statement:   declaration.TopLevel(),
	}
	declared := scope.Declare(candidate)
	if declared == candidate {
		b.model.Bindings = append(b.model.Bindings, declared)
	}
	b.model.sites[identifier.Index] = declared
	return declared
}

// markElementName excludes intrinsic tag names and closing tags from references.
func (b *builder) markElementName(n *syntax.Node) {
	name := n.ChildByField("name")
	if name == nil || name.Kind != syntax.KindIdentifier {
		return
	}
	if n.Kind == syntax.KindJSXClosing || isIntrinsic(name.Text()) {
		b.nonRefs[name.Index] = true
	}
}

func isIntrinsic(tag string) bool {
	if tag == "" || strings.Contains(tag, "-") {
		return true
	}
	return unicode.IsLower(rune(tag[0]))
}

// -----------------------------------------------------------------------------
// Resolution pass
// -----------------------------------------------------------------------------

func (b *builder) resolve() {
	for _, n := range b.model.Tree.Nodes {
		switch n.Kind {
		case syntax.KindIdentifier, syntax.KindShorthandProperty:
			if _, declared := b.model.sites[n.Index]; declared || b.nonRefs[n.Index] {
				continue
			}
			b.reference(n, n.Text(), false)
		case syntax.KindJSXElement, syntax.KindJSXSelfClosing:
			if b.model.jsxFactory != "" {
				b.reference(n, b.model.jsxFactory, true)
			}
		}
	}
}

func (b *builder) reference(n *syntax.Node, name string, implicit bool) {
	scope := b.model.scopeOf[n.Index]
	target := scope.Lookup(name)
	if target == nil {
		return
	}
	ref := &binding.Reference{Node: n, Scope: scope, Binding: target, Implicit: implicit}
	target.References = append(target.References, ref)
	b.model.References = append(b.model.References, ref)
	if !implicit {
		b.model.refs[n.Index] = ref
	}
}
