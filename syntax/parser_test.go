package syntax

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		description string
		filename    string
		source      string
		expectKinds []Kind
		expectErr   bool
	}{
		{
			description: "module statements",
			filename:    "page.js",
			source:      "import React from 'react';\nconst a = 1, b = 2;\nexport default a;\n",
			expectKinds: []Kind{KindImport, KindLexicalDeclaration, KindExport},
		},
		{
			description: "jsx expression statement",
			filename:    "page.jsx",
			source:      "<div className=\"x\">{y}</div>;\n",
			expectKinds: []Kind{KindExpressionStatement},
		},
		{
			description: "tsx grammar",
			filename:    "page.tsx",
			source:      "const a: number = 1;\nfunction f(x: string) { return <b>{x}</b>; }\n",
			expectKinds: []Kind{KindLexicalDeclaration, KindFunctionDeclaration},
		},
		{
			description: "malformed source",
			filename:    "page.js",
			source:      "const = ;\n",
			expectErr:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			tree, err := Parse(context.Background(), tc.filename, []byte(tc.source))
			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrParse))
				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.Equal(t, 1, parseErr.Position.Line)
				return
			}
			require.NoError(t, err)
			var kinds []Kind
			for _, statement := range tree.Statements() {
				kinds = append(kinds, statement.Kind)
			}
			assert.Equal(t, tc.expectKinds, kinds)
		})
	}
}

func TestNode_Contains(t *testing.T) {
	tree, err := Parse(context.Background(), "a.js", []byte("const a = f(b);\nconst c = 1;\n"))
	require.NoError(t, err)
	statements := tree.Statements()
	require.Len(t, statements, 2)

	var call *Node
	Walk(tree.Root, func(n *Node) bool {
		if n.Kind == KindCall {
			call = n
		}
		return true
	})
	require.NotNil(t, call)
	assert.True(t, statements[0].Contains(call))
	assert.False(t, statements[1].Contains(call))
	assert.False(t, call.Contains(statements[0]))
	assert.Equal(t, statements[0], call.TopLevel())
	assert.Equal(t, "f(b)", call.Text())
	assert.Equal(t, Position{Line: 1, Column: 10}, call.From)
}

func TestParse_NestedJSXRange(t *testing.T) {
	source := "const a = (\n  <div>\n    <App />\n    text\n  </div>\n);\n"
	tree, err := Parse(context.Background(), "a.js", []byte(source))
	require.NoError(t, err)

	var testCases = []struct {
		description string
		nodeType    string
		text        string
		from        Position
	}{
		{description: "self closing child", nodeType: "jsx_self_closing_element", text: "<App />", from: Position{Line: 3, Column: 4}},
		{description: "element", nodeType: "jsx_element", text: "<div>\n    <App />\n    text\n  </div>", from: Position{Line: 2, Column: 2}},
		{description: "opening tag", nodeType: "jsx_opening_element", text: "<div>", from: Position{Line: 2, Column: 2}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			var found *Node
			Walk(tree.Root, func(n *Node) bool {
				if found == nil && n.Type == testCase.nodeType {
					found = n
				}
				return true
			})
			require.NotNil(t, found)
			assert.Equal(t, testCase.text, found.Text())
			assert.Equal(t, testCase.from, found.From)
		})
	}
}

func TestNode_StringValue(t *testing.T) {
	tree, err := Parse(context.Background(), "a.js", []byte(`import x from "./it's";`))
	require.NoError(t, err)
	source := tree.Statements()[0].ChildByField("source")
	require.NotNil(t, source)
	value, ok := source.StringValue()
	assert.True(t, ok)
	assert.Equal(t, "./it's", value)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindDeclarator, KindOf("variable_declarator"))
	assert.Equal(t, KindOther, KindOf("while_statement"))
	assert.True(t, KindArrowFunction.IsFunction())
	assert.True(t, KindStatementBlock.IsScope())
	assert.Equal(t, "declarator", KindDeclarator.String())
}
