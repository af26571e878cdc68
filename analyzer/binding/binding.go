package binding

import "github.com/viant/entrysplit/syntax"

// Binding ties a declared name to every site that reads it.
type Binding struct {
	Name        string
	Kind        Kind
	Scope       *Scope
	Identifier  *syntax.Node // declaring identifier
	Declaration *syntax.Node // removable declaring unit: specifier, declarator, function, class or parameter
	// Declarations lists every declaring unit of a redeclared var or function, Declaration first.
	Declarations []*syntax.Node
	Statement   *syntax.Node // enclosing top-level statement
	Source      string       // import source for Import bindings
	Imported    string       // imported name for Import bindings ("default", "*" or the exported name)
	References  []*Reference
}

// Reference is a read site of a binding.
type Reference struct {
	Node    *syntax.Node
	Scope   *Scope
	Binding *Binding
	// Implicit marks references synthesized for JSX elements (the factory root).
	Implicit bool
}

// Declares reports whether one of the binding's declaring units contains node.
func (b *Binding) Declares(node *syntax.Node) bool {
	for _, declaration := range b.Declarations {
		if declaration.Contains(node) {
			return true
		}
	}
	return false
}

// IsReferenced reports whether any site reads the binding.
func (b *Binding) IsReferenced() bool {
	return len(b.References) > 0
}

// ReferencedWithin reports whether a reference lies under node.
func (b *Binding) ReferencedWithin(node *syntax.Node) bool {
	for _, ref := range b.References {
		if node.Contains(ref.Node) {
			return true
		}
	}
	return false
}

// IsTopLevel reports whether the binding is declared in the program scope.
func (b *Binding) IsTopLevel() bool {
	return b.Scope != nil && b.Scope.IsProgram()
}

// Chain returns the reference's enclosing scopes up to the program root.
func (r *Reference) Chain() []*Scope {
	var chain []*Scope
	for scope := r.Scope; scope != nil; scope = scope.Parent {
		chain = append(chain, scope)
	}
	return chain
}
