package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/entrysplit/analyzer/binding"
	"github.com/viant/entrysplit/syntax"
)

func buildModel(t *testing.T, source string, opts ...Option) *Model {
	t.Helper()
	tree, err := syntax.Parse(context.Background(), "test.js", []byte(source))
	require.NoError(t, err)
	return Build(tree, opts...)
}

func findNode(model *Model, kind syntax.Kind, text string) *syntax.Node {
	for _, n := range model.Tree.Nodes {
		if n.Kind == kind && n.Text() == text {
			return n
		}
	}
	return nil
}

func referenceCount(model *Model, name string) map[string]int {
	result := map[string]int{}
	for _, b := range model.Bindings {
		if b.Name == name {
			result[string(b.Scope.Kind)] += len(b.References)
		}
	}
	return result
}

func TestBuild(t *testing.T) {
	tests := []struct {
		description string
		source      string
		name        string
		expectKind  binding.Kind
		expectScope binding.ScopeKind
		expectRefs  int
	}{
		{
			description: "function declarations are hoisted",
			source:      "function f() { return g(); }\nfunction g() { return 1; }\n",
			name:        "g",
			expectKind:  binding.Function,
			expectScope: binding.ProgramScope,
			expectRefs:  1,
		},
		{
			description: "var in a block hoists to the function scope",
			source:      "function f() { if (true) { var v = 1; } return v; }\n",
			name:        "v",
			expectKind:  binding.Var,
			expectScope: binding.FunctionScope,
			expectRefs:  1,
		},
		{
			description: "let stays in its block",
			source:      "{ let l = 1; l++; }\n",
			name:        "l",
			expectKind:  binding.Let,
			expectScope: binding.BlockScope,
			expectRefs:  1,
		},
		{
			description: "parameter shadows an outer const",
			source:      "const a = 1;\nfunction f(a) { return a; }\n",
			name:        "a",
			expectKind:  binding.Const,
			expectScope: binding.ProgramScope,
			expectRefs:  0,
		},
		{
			description: "destructured names are declared",
			source:      "const {x, y: [z = q], ...rest} = obj;\nconst q = 1;\nz + rest;\n",
			name:        "z",
			expectKind:  binding.Const,
			expectScope: binding.ProgramScope,
			expectRefs:  1,
		},
		{
			description: "aliased import binds the local name",
			source:      "import {Module as M} from 'react-entry-loader/injectors';\n<M />;\n",
			name:        "M",
			expectKind:  binding.Import,
			expectScope: binding.ProgramScope,
			expectRefs:  1,
		},
		{
			description: "closing tag is not a second reference",
			source:      "import Foo from './foo';\n<Foo></Foo>;\n",
			name:        "Foo",
			expectKind:  binding.Import,
			expectScope: binding.ProgramScope,
			expectRefs:  1,
		},
		{
			description: "jsx elements reference the factory",
			source:      "import React from 'react';\n<div><span /></div>;\n",
			name:        "React",
			expectKind:  binding.Import,
			expectScope: binding.ProgramScope,
			expectRefs:  2,
		},
		{
			description: "shorthand property reads the binding",
			source:      "const title = 'x';\nconst props = {title};\n",
			name:        "title",
			expectKind:  binding.Const,
			expectScope: binding.ProgramScope,
			expectRefs:  1,
		},
		{
			description: "catch parameter gets its own scope",
			source:      "try { f(); } catch (err) { log(err); }\n",
			name:        "err",
			expectKind:  binding.Catch,
			expectScope: binding.CatchScope,
			expectRefs:  1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			model := buildModel(t, tc.source)
			var target *binding.Binding
			for _, b := range model.Bindings {
				if b.Name == tc.name && b.Scope.Kind == tc.expectScope {
					target = b
					break
				}
			}
			require.NotNil(t, target, "binding %v not found", tc.name)
			assert.Equal(t, tc.expectKind, target.Kind)
			assert.Equal(t, tc.expectRefs, len(target.References))
			if tc.expectScope == binding.ProgramScope {
				assert.True(t, target.IsTopLevel())
				assert.NotNil(t, target.Statement)
			}
		})
	}
}

func TestBuild_IntrinsicTags(t *testing.T) {
	model := buildModel(t, "const div = 1;\n<div data-x={div}></div>;\n")
	refs := referenceCount(model, "div")
	assert.Equal(t, 1, refs[string(binding.ProgramScope)])
}

func TestBuild_WithoutJSXFactory(t *testing.T) {
	model := buildModel(t, "import React from 'react';\n<div />;\n", WithJSXFactory(""))
	refs := referenceCount(model, "React")
	assert.Equal(t, 0, refs[string(binding.ProgramScope)])
}

func TestModel_Resolve(t *testing.T) {
	model := buildModel(t, "import {a} from './a';\nfunction f() { return a; }\n")
	ret := findNode(model, syntax.KindOther, "return a;")
	require.NotNil(t, ret)
	identifier := ret.NamedChildren()[0]
	resolved := model.Resolve(identifier)
	require.NotNil(t, resolved)
	assert.Equal(t, "a", resolved.Name)
	assert.Equal(t, "./a", resolved.Source)
	assert.Equal(t, "a", resolved.Imported)
	assert.Equal(t, binding.FunctionScope, model.ScopeOf(identifier).Kind)
	assert.Equal(t, resolved, model.DeclaredBy(resolved.Identifier))
	assert.Equal(t, []*binding.Binding{resolved}, model.BindingsWithin(ret))
}

func TestModel_Closure(t *testing.T) {
	tests := []struct {
		description string
		source      string
		seed        string
		expect      []string
	}{
		{
			description: "transitive through declarators and functions",
			source: `import {a, b} from './lib';
const c = a + 1, d = b;
function e() { return c + e(); }
e();
`,
			seed:   "e();",
			expect: []string{"a", "c", "e"},
		},
		{
			description: "locals of the seed are not collected",
			source: `import {render} from './render';
const mount = () => { const local = 1; return render(local); };
mount();
`,
			seed:   "mount();",
			expect: []string{"render", "mount"},
		},
		{
			description: "mutual recursion terminates",
			source: `function even(n) { return n === 0 || odd(n - 1); }
function odd(n) { return n !== 0 && even(n - 1); }
odd(3);
`,
			seed:   "odd(3);",
			expect: []string{"even", "odd"},
		},
		{
			description: "jsx pulls in the factory",
			source: `import React from 'react';
import App from './app';
<App />;
`,
			seed:   "<App />;",
			expect: []string{"React", "App"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			model := buildModel(t, tc.source)
			seed := findNode(model, syntax.KindExpressionStatement, tc.seed)
			require.NotNil(t, seed)
			closure := model.Closure(seed)
			assert.Equal(t, tc.expect, closure.Names())
		})
	}
}

func TestModel_ExclusiveTo(t *testing.T) {
	model := buildModel(t, `import {shared, only} from './lib';
const x = shared;
f(shared, only);
`)
	call := findNode(model, syntax.KindExpressionStatement, "f(shared, only);")
	require.NotNil(t, call)
	byName := map[string]*binding.Binding{}
	for _, b := range model.TopLevelBindings() {
		byName[b.Name] = b
	}
	assert.True(t, model.ExclusiveTo(byName["only"], call))
	assert.False(t, model.ExclusiveTo(byName["shared"], call))
	assert.True(t, model.ExclusiveTo(byName["x"], call))
}

func TestModel_Redeclaration(t *testing.T) {
	model := buildModel(t, `var label = 'old';
var label = next(label);
const user = label;
`)
	bindings := model.TopLevelBindings()
	require.Len(t, bindings, 2)
	label := bindings[0]
	assert.Equal(t, "label", label.Name)
	require.Len(t, label.Declarations, 2)
	assert.Equal(t, label.Declaration, label.Declarations[0])
	assert.Equal(t, "label = next(label)", label.Declarations[1].Text())

	user := findNode(model, syntax.KindDeclarator, "user = label")
	require.NotNil(t, user)
	assert.True(t, model.ExclusiveTo(label, user))
	closure := model.Closure(user)
	assert.Equal(t, []string{"label"}, closure.Names())
}

func TestSet(t *testing.T) {
	model := buildModel(t, "const a = 1, b = 2;\n")
	bindings := model.TopLevelBindings()
	require.Len(t, bindings, 2)
	left := NewSet(bindings[1])
	right := NewSet(bindings[0])
	union := left.Union(right)
	assert.Equal(t, 2, union.Len())
	assert.True(t, union.Has(bindings[0]))
	assert.False(t, left.Has(bindings[0]))
	assert.Equal(t, []string{"a", "b"}, union.Names())
}
