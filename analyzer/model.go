package analyzer

import (
	"sort"

	"github.com/viant/entrysplit/analyzer/binding"
	"github.com/viant/entrysplit/syntax"
)

// Model is the scope and binding graph of one parsed program. It is built
// once and never mutated afterwards.
type Model struct {
	Tree       *syntax.Tree
	Program    *binding.Scope
	Scopes     []*binding.Scope
	Bindings   []*binding.Binding   // declaration order
	References []*binding.Reference // document order
	scopeOf    []*binding.Scope
	sites      map[int]*binding.Binding
	refs       map[int]*binding.Reference
	jsxFactory string
}

// ScopeOf returns the innermost scope enclosing node. For a scope-opening
// node (a function, block...) that is the scope it is nested in.
func (m *Model) ScopeOf(node *syntax.Node) *binding.Scope {
	return m.scopeOf[node.Index]
}

// DeclaredBy returns the binding a declaring identifier introduces.
func (m *Model) DeclaredBy(identifier *syntax.Node) *binding.Binding {
	return m.sites[identifier.Index]
}

// Resolve returns the binding an identifier reads, or nil when it is a global or not a reference.
func (m *Model) Resolve(identifier *syntax.Node) *binding.Binding {
	if ref, ok := m.refs[identifier.Index]; ok {
		return ref.Binding
	}
	return nil
}

// ReferencesWithin returns the references located under node, in document order.
func (m *Model) ReferencesWithin(node *syntax.Node) []*binding.Reference {
	start := sort.Search(len(m.References), func(i int) bool {
		return m.References[i].Node.Index >= node.Index
	})
	var result []*binding.Reference
	for i := start; i < len(m.References) && m.References[i].Node.Index <= node.Last; i++ {
		result = append(result, m.References[i])
	}
	return result
}

// BindingsWithin returns the distinct bindings referenced under node.
func (m *Model) BindingsWithin(node *syntax.Node) []*binding.Binding {
	seen := map[*binding.Binding]bool{}
	var result []*binding.Binding
	for _, ref := range m.ReferencesWithin(node) {
		if !seen[ref.Binding] {
			seen[ref.Binding] = true
			result = append(result, ref.Binding)
		}
	}
	return result
}

// TopLevelBindings returns bindings declared in the program scope.
func (m *Model) TopLevelBindings() []*binding.Binding {
	return m.Program.Bindings()
}

// JSXFactory returns the identifier JSX elements implicitly reference.
func (m *Model) JSXFactory() string {
	return m.jsxFactory
}
