package binding

import (
	"slices"

	"github.com/viant/entrysplit/syntax"
)

// Scope is a lexical region owning a name → binding table.
type Scope struct {
	ID       string
	Kind     ScopeKind
	Node     *syntax.Node
	Parent   *Scope
	Children []*Scope
	Depth    int
	bindings map[string]*Binding
	names    []string
}

// NewScope creates a scope nested in parent (nil for the program scope).
func NewScope(id string, kind ScopeKind, node *syntax.Node, parent *Scope) *Scope {
	scope := &Scope{ID: id, Kind: kind, Node: node, Parent: parent, bindings: map[string]*Binding{}}
	if parent != nil {
		scope.Depth = parent.Depth + 1
		parent.Children = append(parent.Children, scope)
	}
	return scope
}

// Declare registers a binding. A redeclaration of the same name keeps the
// first binding and adds the new declaring unit to it.
func (s *Scope) Declare(b *Binding) *Binding {
	if existing, ok := s.bindings[b.Name]; ok {
		if b.Declaration != nil && !slices.Contains(existing.Declarations, b.Declaration) {
			existing.Declarations = append(existing.Declarations, b.Declaration)
		}
		return existing
	}
	if b.Declaration != nil && len(b.Declarations) == 0 {
		b.Declarations = []*syntax.Node{b.Declaration}
	}
	b.Scope = s
	s.bindings[b.Name] = b
	s.names = append(s.names, b.Name)
	return b
}

// Own returns the binding declared directly in this scope.
func (s *Scope) Own(name string) *Binding {
	return s.bindings[name]
}

// Lookup resolves name through the scope chain.
func (s *Scope) Lookup(name string) *Binding {
	for scope := s; scope != nil; scope = scope.Parent {
		if b, ok := scope.bindings[name]; ok {
			return b
		}
	}
	return nil
}

// Bindings returns the scope's bindings in declaration order.
func (s *Scope) Bindings() []*Binding {
	result := make([]*Binding, 0, len(s.names))
	for _, name := range s.names {
		result = append(result, s.bindings[name])
	}
	return result
}

// IsProgram reports whether s is the root scope.
func (s *Scope) IsProgram() bool {
	return s.Parent == nil
}

// Function returns the nearest enclosing function or program scope, the target of var hoisting.
func (s *Scope) Function() *Scope {
	for scope := s; scope != nil; scope = scope.Parent {
		if scope.Kind == FunctionScope || scope.Kind == ProgramScope {
			return scope
		}
	}
	return s
}

/*
program
  └── function Html [10–30]
       └── block (for) [12–18]
*/
