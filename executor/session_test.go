package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/entrysplit/inspector/graph"
)

func newGraph(t *testing.T, sources map[string]string) *graph.Graph {
	ret := graph.New()
	for location, source := range sources {
		entry, err := graph.NewEntry(location, location, []byte(source), nil)
		require.NoError(t, err)
		ret.Put(entry)
	}
	return ret
}

func TestSession_Exec(t *testing.T) {
	var testCases = []struct {
		description string
		graph       map[string]string
		source      string
		expected    interface{}
	}{
		{
			description: "default export",
			source:      "export default 40 + 2;",
			expected:    int64(42),
		},
		{
			description: "graph import",
			graph:       map[string]string{"/app/util.js": "export const greet = (name) => 'hi ' + name;"},
			source:      "import {greet} from './util';\nexport default greet('page');",
			expected:    "hi page",
		},
		{
			description: "index module",
			graph:       map[string]string{"/app/lib/index.jsx": "export default 'lib';"},
			source:      "import lib from './lib';\nexport default lib;",
			expected:    "lib",
		},
		{
			description: "memoized module",
			graph: map[string]string{
				"/app/a.js": "export const box = {};",
				"/app/b.js": "import {box} from './a';\nexport default box;",
			},
			source:   "import {box} from './a';\nimport b from './b';\nexport default box === b;",
			expected: true,
		},
		{
			description: "json module",
			graph:       map[string]string{"/app/data.json": `{"title": "Page 1"}`},
			source:      "import data from './data.json';\nexport default data.title;",
			expected:    "Page 1",
		},
		{
			description: "style import",
			source:      "import './app.css';\nexport default 'styled';",
			expected:    "styled",
		},
		{
			description: "builtin react",
			source:      "import React from 'react';\nexport default React.createElement('div', {id: 'x'}, 'a').props.id;",
			expected:    "x",
		},
		{
			description: "jsx",
			source:      "import React from 'react';\nconst App = () => <b>x</b>;\nexport default (<App page=\"1\" />).props.page;",
			expected:    "1",
		},
		{
			description: "node env",
			source:      "export default process.env.NODE_ENV;",
			expected:    "production",
		},
		{
			description: "filename",
			source:      "export default __filename;",
			expected:    "/app/page.js",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			session := NewSession(newGraph(t, testCase.graph))
			exports, err := session.Exec(context.Background(), "/app/page.js", []byte(testCase.source), nil)
			require.NoError(t, err)
			assert.EqualValues(t, testCase.expected, exports.Get("default").Export())
		})
	}
}

func TestSession_Errors(t *testing.T) {
	var testCases = []struct {
		description string
		graph       map[string]string
		source      string
		check       func(t *testing.T, err error)
	}{
		{
			description: "unresolved relative",
			source:      "import x from './missing';\nexport default x;",
			check: func(t *testing.T, err error) {
				var unresolved *UnresolvedImportError
				require.True(t, errors.As(err, &unresolved))
				assert.Equal(t, "./missing", unresolved.Request)
				assert.ErrorIs(t, err, ErrUnresolvedImport)
			},
		},
		{
			description: "unresolved package",
			source:      "import x from 'left-pad-nowhere';\nexport default x;",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnresolvedImport)
			},
		},
		{
			description: "nested unresolved",
			graph:       map[string]string{"/app/a.js": "import x from './gone';\nexport default x;"},
			source:      "import a from './a';\nexport default a;",
			check: func(t *testing.T, err error) {
				var unresolved *UnresolvedImportError
				require.True(t, errors.As(err, &unresolved))
				assert.Equal(t, "./gone", unresolved.Request)
				assert.Equal(t, "/app", unresolved.From)
			},
		},
		{
			description: "cycle",
			graph: map[string]string{
				"/app/a.js": "import b from './b';\nexport default b;",
				"/app/b.js": "import a from './a';\nexport default a;",
			},
			source: "import a from './a';\nexport default a;",
			check: func(t *testing.T, err error) {
				var cyclic *CyclicImportError
				require.True(t, errors.As(err, &cyclic))
				assert.Equal(t, []string{"/app/a.js", "/app/b.js", "/app/a.js"}, cyclic.Chain)
				assert.ErrorIs(t, err, ErrCyclicImport)
			},
		},
		{
			description: "exception",
			source:      "const a = 1;\nthrow new Error('boom');\nexport default a;",
			check: func(t *testing.T, err error) {
				var execution *TemplateExecutionError
				require.True(t, errors.As(err, &execution))
				assert.Contains(t, execution.Message, "boom")
				assert.Contains(t, execution.Filename, "page.js")
				assert.Equal(t, 2, execution.Line)
				assert.ErrorIs(t, err, ErrTemplateExecution)
			},
		},
		{
			description: "nested exception",
			graph:       map[string]string{"/app/a.js": "export const x = 1;\n\nthrow new TypeError('nested');"},
			source:      "import {x} from './a';\nexport default x;",
			check: func(t *testing.T, err error) {
				var execution *TemplateExecutionError
				require.True(t, errors.As(err, &execution))
				assert.Contains(t, execution.Message, "nested")
				assert.Contains(t, execution.Filename, "a.js")
				assert.Equal(t, 3, execution.Line)
			},
		},
		{
			description: "caught require failure",
			source:      "let fallback = 'none';\ntry { require('./missing'); } catch (e) { fallback = 'caught'; }\nthrow new Error('after ' + fallback);\nexport default fallback;",
			check: func(t *testing.T, err error) {
				var execution *TemplateExecutionError
				require.True(t, errors.As(err, &execution))
				assert.Contains(t, execution.Message, "after caught")
				assert.Equal(t, 3, execution.Line)
				assert.False(t, errors.Is(err, ErrUnresolvedImport))
			},
		},
		{
			description: "rethrown require failure",
			source:      "try { require('./missing'); } catch (e) { throw e; }\nexport default 1;",
			check: func(t *testing.T, err error) {
				var unresolved *UnresolvedImportError
				require.True(t, errors.As(err, &unresolved))
				assert.Equal(t, "./missing", unresolved.Request)
			},
		},
		{
			description: "transform",
			source:      "export default <div>;",
			check: func(t *testing.T, err error) {
				var transform *TransformError
				require.True(t, errors.As(err, &transform))
				assert.Equal(t, "/app/page.js", transform.Filename)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			session := NewSession(newGraph(t, testCase.graph))
			_, err := session.Exec(context.Background(), "/app/page.js", []byte(testCase.source), nil)
			require.Error(t, err)
			testCase.check(t, err)
		})
	}
}

func TestSession_FailuresAreNotCached(t *testing.T) {
	g := newGraph(t, map[string]string{"/app/a.js": "import x from './late';\nexport default x;"})
	session := NewSession(g)
	_, err := session.Exec(context.Background(), "/app/page.js", []byte("import a from './a';\nexport default a;"), nil)
	require.ErrorIs(t, err, ErrUnresolvedImport)

	late, err := graph.NewEntry("/app/late.js", "./late", []byte("export default 'late';"), nil)
	require.NoError(t, err)
	g.Put(late)
	exports, err := session.Exec(context.Background(), "/app/page.js", []byte("import a from './a';\nexport default a;"), nil)
	require.NoError(t, err)
	assert.Equal(t, "late", exports.Get("default").Export())
}

func TestSession_ReplacedModule(t *testing.T) {
	g := newGraph(t, map[string]string{"/app/a.js": "export default 'first';"})
	session := NewSession(g)
	page := []byte("import a from './a';\nexport default a;")
	exports, err := session.Exec(context.Background(), "/app/page.js", page, nil)
	require.NoError(t, err)
	assert.Equal(t, "first", exports.Get("default").Export())

	replaced, err := graph.NewEntry("/app/a.js", "./a", []byte("export default 'second';"), nil)
	require.NoError(t, err)
	g.Put(replaced)
	exports, err = session.Exec(context.Background(), "/app/page.js", page, nil)
	require.NoError(t, err)
	assert.Equal(t, "second", exports.Get("default").Export())
}

func TestSession_LoadedGraph(t *testing.T) {
	root := t.TempDir()
	location := filepath.Join(root, "app.js")
	require.NoError(t, os.WriteFile(location, []byte("export default 'from graph';"), 0o644))
	g, err := graph.Load(context.Background(), afs.New(), root, nil)
	require.NoError(t, err)
	require.NoError(t, os.Remove(location))

	session := NewSession(g)
	exports, err := session.Exec(context.Background(), filepath.Join(root, "page.js"), []byte("import x from './app';\nexport default x;"), nil)
	require.NoError(t, err)
	assert.Equal(t, "from graph", exports.Get("default").Export())
}

func TestSession_FileSystem(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"package.json":                    `{"name": "pages"}`,
		"lib.js":                          "export const lib = 'disk';",
		"node_modules/shout/package.json": `{"name": "shout", "main": "main.js"}`,
		"node_modules/shout/main.js":      "module.exports = (s) => s.toUpperCase();",
	}
	for name, content := range files {
		location := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
	session := NewSession(graph.New())
	source := "import {lib} from './lib';\nimport shout from 'shout';\nexport default shout(lib);"
	exports, err := session.Exec(context.Background(), filepath.Join(root, "page.js"), []byte(source), nil)
	require.NoError(t, err)
	assert.Equal(t, "DISK", exports.Get("default").Export())
}

func TestSession_Builtins(t *testing.T) {
	session := NewSession(nil, WithBuiltin("config", "config.js", []byte("export const mode = 'static';")), WithNodeEnv("development"))
	source := "import {mode} from 'config';\nimport {Module, Renderer} from '@nearmap/react-entry-loader/injectors';\n" +
		"export default [mode, process.env.NODE_ENV, typeof Module, typeof Renderer].join(',');"
	exports, err := session.Exec(context.Background(), "/app/page.js", []byte(source), nil)
	require.NoError(t, err)
	assert.Equal(t, "static,development,function,function", exports.Get("default").Export())
}

func TestSession_Interrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	session := NewSession(nil)
	_, err := session.Exec(ctx, "/app/page.js", []byte("while (true) {}\nexport default 1;"), nil)
	require.Error(t, err)
}
