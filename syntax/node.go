package syntax

import "strings"

// Position is a 1-based line and 0-based byte column.
type Position struct {
	Line   int
	Column int
}

// Node is an immutable copy of a tree-sitter node. Index and Last are the
// pre-order indexes of the node and of the last node of its subtree, so
// ancestry checks do not walk parents.
type Node struct {
	Kind     Kind
	Type     string
	Field    string
	Named    bool
	Start    int
	End      int
	From     Position
	To       Position
	Parent   *Node
	Children []*Node
	Index    int
	Last     int
	tree     *Tree
}

// Text returns the source text spanned by the node.
func (n *Node) Text() string {
	return string(n.tree.Source[n.Start:n.End])
}

// Contains reports whether n is an ancestor of other or other itself.
func (n *Node) Contains(other *Node) bool {
	if n == nil || other == nil {
		return false
	}
	return n.Index <= other.Index && other.Index <= n.Last
}

// ChildByField returns the first child tagged with the grammar field name.
func (n *Node) ChildByField(field string) *Node {
	for _, child := range n.Children {
		if child.Field == field {
			return child
		}
	}
	return nil
}

// ChildrenByField returns all children tagged with the grammar field name.
func (n *Node) ChildrenByField(field string) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Field == field {
			result = append(result, child)
		}
	}
	return result
}

// NamedChildren returns named children, skipping comments.
func (n *Node) NamedChildren() []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Named && child.Kind != KindComment {
			result = append(result, child)
		}
	}
	return result
}

// ChildOfKind returns the first child of the given kind.
func (n *Node) ChildOfKind(kind Kind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// HasToken reports whether n has an anonymous child with the given literal text.
func (n *Node) HasToken(token string) bool {
	for _, child := range n.Children {
		if !child.Named && child.Type == token {
			return true
		}
	}
	return false
}

// TopLevel returns the program-level statement enclosing n, or nil for the program itself.
func (n *Node) TopLevel() *Node {
	current := n
	for current.Parent != nil {
		if current.Parent.Kind == KindProgram {
			return current
		}
		current = current.Parent
	}
	return nil
}

// Unwrap strips parentheses around an expression.
func (n *Node) Unwrap() *Node {
	current := n
	for current != nil && current.Kind == KindParenthesized {
		named := current.NamedChildren()
		if len(named) != 1 {
			break
		}
		current = named[0]
	}
	return current
}

// StringValue returns the unquoted value of a string literal node.
func (n *Node) StringValue() (string, bool) {
	if n == nil || n.Kind != KindString {
		return "", false
	}
	text := n.Text()
	if len(text) < 2 {
		return "", false
	}
	return unescaper.Replace(text[1 : len(text)-1]), true
}

var unescaper = strings.NewReplacer(`\"`, `"`, `\'`, `'`, `\\`, `\`, `\n`, "\n", `\t`, "\t")

func (n *Node) String() string {
	return n.Kind.String() + "@" + n.Type
}
