package slicer

import (
	"strings"

	"github.com/viant/entrysplit/analyzer"
	"github.com/viant/entrysplit/analyzer/binding"
	"github.com/viant/entrysplit/syntax"
)

// StatementKind classifies top-level statements for slicing.
type StatementKind uint8

const (
	OtherStatement StatementKind = iota
	ImportStatement
	DeclarationStatement
	FunctionStatement
	ClassStatement
	ExportDefaultStatement
	ExportNamedStatement
)

var statementKindNames = [...]string{"other", "import", "declaration", "function", "class", "export-default", "export-named"}

func (k StatementKind) String() string {
	if int(k) < len(statementKindNames) {
		return statementKindNames[k]
	}
	return "unknown"
}

// Unit is the removable part of a statement: an import specifier, a
// declarator, or a whole function or class declaration.
type Unit struct {
	Node     *syntax.Node
	Bindings []*binding.Binding
}

// Statement is a classified top-level statement.
type Statement struct {
	Kind StatementKind
	Node *syntax.Node
	// Declaration is the node owning Units; the inner declaration of an export.
	Declaration *syntax.Node
	Units       []*Unit
	// Exported is set for export statements carrying a declaration.
	Exported bool
}

// SideEffect reports whether the statement is an import without bindings.
func (s *Statement) SideEffect() bool {
	return s.Kind == ImportStatement && len(s.Units) == 0
}

// Classify splits the program into classified statements with their units.
func Classify(model *analyzer.Model) []*Statement {
	unitBindings := map[*syntax.Node][]*binding.Binding{}
	for _, b := range model.Program.Bindings() {
		for _, declaration := range b.Declarations {
			unitBindings[declaration] = append(unitBindings[declaration], b)
		}
	}
	unit := func(n *syntax.Node) *Unit {
		return &Unit{Node: n, Bindings: unitBindings[n]}
	}

	var result []*Statement
	for _, node := range model.Tree.Statements() {
		statement := &Statement{Node: node, Declaration: node}
		declaration := node
		if node.Kind == syntax.KindExport {
			switch {
			case node.HasToken("default"):
				statement.Kind = ExportDefaultStatement
				result = append(result, statement)
				continue
			case node.ChildByField("declaration") != nil:
				declaration = node.ChildByField("declaration")
				statement.Declaration = declaration
				statement.Exported = true
			default:
				statement.Kind = ExportNamedStatement
				result = append(result, statement)
				continue
			}
		}
		switch declaration.Kind {
		case syntax.KindImport:
			statement.Kind = ImportStatement
			if clause := declaration.ChildOfKind(syntax.KindImportClause); clause != nil {
				for _, child := range clause.NamedChildren() {
					switch child.Kind {
					case syntax.KindIdentifier, syntax.KindNamespaceImport:
						statement.Units = append(statement.Units, unit(child))
					case syntax.KindNamedImports:
						for _, specifier := range child.NamedChildren() {
							if specifier.Kind == syntax.KindImportSpecifier {
								statement.Units = append(statement.Units, unit(specifier))
							}
						}
					}
				}
			}
		case syntax.KindLexicalDeclaration, syntax.KindVariableDeclaration:
			statement.Kind = DeclarationStatement
			for _, declarator := range declaration.NamedChildren() {
				if declarator.Kind == syntax.KindDeclarator {
					statement.Units = append(statement.Units, unit(declarator))
				}
			}
		case syntax.KindFunctionDeclaration:
			statement.Kind = FunctionStatement
			statement.Units = []*Unit{unit(declaration)}
		case syntax.KindClassDeclaration:
			statement.Kind = ClassStatement
			statement.Units = []*Unit{unit(declaration)}
		default:
			statement.Kind = OtherStatement
		}
		if statement.Exported && statement.Kind != OtherStatement {
			statement.Kind = ExportNamedStatement
		}
		result = append(result, statement)
	}
	return result
}

// regenerate rebuilds a statement from the kept units only. It returns an
// empty string when no unit is kept.
func (s *Statement) regenerate(keep func(u *Unit) bool) string {
	var kept []*Unit
	for _, u := range s.Units {
		if keep(u) {
			kept = append(kept, u)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	prefix := ""
	if s.Exported {
		prefix = "export "
	}
	declaration := s.Declaration
	switch declaration.Kind {
	case syntax.KindImport:
		var head []string
		var named []string
		for _, u := range kept {
			if u.Node.Kind == syntax.KindImportSpecifier {
				named = append(named, u.Node.Text())
				continue
			}
			head = append(head, u.Node.Text())
		}
		if len(named) > 0 {
			head = append(head, "{"+strings.Join(named, ", ")+"}")
		}
		source := declaration.ChildByField("source")
		return prefix + "import " + strings.Join(head, ", ") + " from " + source.Text() + ";"
	case syntax.KindLexicalDeclaration, syntax.KindVariableDeclaration:
		keyword := "var"
		for _, token := range []string{"const", "let"} {
			if declaration.HasToken(token) {
				keyword = token
			}
		}
		var parts []string
		for _, u := range kept {
			parts = append(parts, u.Node.Text())
		}
		return prefix + keyword + " " + strings.Join(parts, ", ") + ";"
	}
	return s.Node.Text()
}

// keepsAll reports whether every unit is kept.
func (s *Statement) keepsAll(keep func(u *Unit) bool) bool {
	for _, u := range s.Units {
		if !keep(u) {
			return false
		}
	}
	return true
}
