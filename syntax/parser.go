package syntax

import (
	"context"
	"fmt"
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Tree is the parsed program.
type Tree struct {
	Filename string
	Source   []byte
	Root     *Node
	Nodes    []*Node
}

// Language returns the grammar for a file name: TypeScript for .ts, TSX for
// .tsx and JavaScript with JSX otherwise.
func Language(filename string) *sitter.Language {
	switch strings.ToLower(path.Ext(filename)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	case ".tsx":
		return tsx.GetLanguage()
	}
	return javascript.GetLanguage()
}

// Parse parses source into an immutable tree using the grammar of filename.
func Parse(ctx context.Context, filename string, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(Language(filename))

	sitterTree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	defer sitterTree.Close()

	rootNode := sitterTree.RootNode()
	tree := &Tree{Filename: filename, Source: src}
	cursor := sitter.NewTreeCursor(rootNode)
	defer cursor.Close()
	tree.Root = tree.visit(cursor, nil)

	if rootNode.HasError() {
		return nil, tree.parseError(rootNode)
	}
	return tree, nil
}

func (t *Tree) visit(cursor *sitter.TreeCursor, parent *Node) *Node {
	sitterNode := cursor.CurrentNode()
	kind := KindOther
	if sitterNode.IsNamed() {
		// keywords such as "function" or "class" share their type name with named nodes
		kind = KindOf(sitterNode.Type())
	}
	node := &Node{
		Kind:   kind,
		Type:   sitterNode.Type(),
		Field:  cursor.CurrentFieldName(),
		Named:  sitterNode.IsNamed(),
		Start:  int(sitterNode.StartByte()),
		End:    int(sitterNode.EndByte()),
		From:   toPosition(sitterNode.StartPoint()),
		To:     toPosition(sitterNode.EndPoint()),
		Parent: parent,
		Index:  len(t.Nodes),
		tree:   t,
	}
	t.trimLeading(node)
	t.Nodes = append(t.Nodes, node)
	if cursor.GoToFirstChild() {
		for {
			node.Children = append(node.Children, t.visit(cursor, node))
			if !cursor.GoToNextSibling() {
				break
			}
		}
		cursor.GoToParent()
	}
	node.Last = len(t.Nodes) - 1
	return node
}

// trimLeading moves the start of a nested JSX node past the whitespace the
// grammar folds into it.
func (t *Tree) trimLeading(node *Node) {
	if !strings.HasPrefix(node.Type, "jsx_") || node.Type == "jsx_text" {
		return
	}
	for node.Start < node.End {
		switch t.Source[node.Start] {
		case '\n':
			node.From.Line++
			node.From.Column = 0
		case ' ', '\t', '\r', '\f', '\v':
			node.From.Column++
		default:
			return
		}
		node.Start++
	}
}

func toPosition(point sitter.Point) Position {
	return Position{Line: int(point.Row) + 1, Column: int(point.Column)}
}

// parseError locates the first ERROR or MISSING node.
func (t *Tree) parseError(root *sitter.Node) error {
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type() == "ERROR" || n.IsMissing() {
			start := int(n.StartByte())
			end := int(n.EndByte())
			if end > len(t.Source) {
				end = len(t.Source)
			}
			return &ParseError{
				Filename: t.Filename,
				Position: toPosition(n.StartPoint()),
				Snippet:  string(t.Source[start:end]),
				Missing:  n.IsMissing(),
			}
		}
		if !n.HasError() {
			continue
		}
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, n.Child(i))
		}
	}
	return &ParseError{Filename: t.Filename, Position: Position{Line: 1}}
}

// Node returns the node with the given pre-order index.
func (t *Tree) Node(index int) *Node {
	return t.Nodes[index]
}

// Statements returns the top-level statements of the program.
func (t *Tree) Statements() []*Node {
	return t.Root.NamedChildren()
}

// Walk visits every node in pre-order using an explicit stack. Returning
// false from fn skips the node's subtree.
func Walk(root *Node, fn func(n *Node) bool) {
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}
