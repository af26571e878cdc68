package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/entrysplit/executor"
	"github.com/viant/entrysplit/inspector/graph"
	"github.com/viant/entrysplit/inspector/jsx"
)

const hydratablePage = `import React from 'react';
import {hydrate} from '@nearmap/react-entry-loader/render';
import {Module} from '@nearmap/react-entry-loader/injectors';
import App from './app';

const Html = ({title})=> (
  <div id="page2-app" title={title}>
    <Module hydratable onLoad={hydrate('page2-app')}>
      <App page={2} />
    </Module>
  </div>
);

export default Html;
`

const appSource = `import React from 'react';
import './app.css';

const App = ({page})=> <b>App {page}</b>;

export default App;
`

func TestLoader_Transform(t *testing.T) {
	var delivered []*Template
	loader := New(func(ctx context.Context, template *Template) error {
		delivered = append(delivered, template)
		return nil
	})
	options := &Options{Output: "page2.html", Filename: "/app/page2.js", Props: map[string]interface{}{"title": "Page 2"}}
	code, codeMap, err := loader.Transform(context.Background(), []byte(hydratablePage), nil, options)
	require.NoError(t, err)
	assert.Contains(t, string(code), "hydrate('page2-app')(<App page={2} />);")
	assert.NotContains(t, string(code), "export default")
	assert.Contains(t, string(codeMap), `"version":3`)

	require.Len(t, delivered, 1)
	template := delivered[0]
	assert.Equal(t, "page2.html", template.Output)
	assert.Equal(t, "/app/page2.js", template.Filename)
	assert.Contains(t, string(template.Code), "<Module>")
	assert.NotContains(t, string(template.Code), "hydrate")
	assert.Equal(t, "Page 2", template.Props["title"])
}

func TestLoader_TransformErrors(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		options     *Options
		handler     TemplateHandler
		expected    error
	}{
		{
			description: "missing output",
			source:      hydratablePage,
			options:     &Options{Filename: "/app/page2.js"},
			expected:    ErrMissingOutput,
		},
		{
			description: "no marker",
			source:      appSource,
			options:     &Options{Output: "app.html", Filename: "/app/app.js"},
			expected:    jsx.ErrMissingInjectionPoint,
		},
		{
			description: "handler failure",
			source:      hydratablePage,
			options:     &Options{Output: "page2.html", Filename: "/app/page2.js"},
			handler: func(ctx context.Context, template *Template) error {
				return errors.New("emit closed")
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			called := false
			handler := testCase.handler
			if handler == nil {
				handler = func(ctx context.Context, template *Template) error {
					called = true
					return nil
				}
			}
			code, _, err := New(handler).Transform(context.Background(), []byte(testCase.source), nil, testCase.options)
			require.Error(t, err)
			assert.Nil(t, code)
			assert.False(t, called)
			if testCase.expected != nil {
				assert.ErrorIs(t, err, testCase.expected)
			}
		})
	}
}

func TestPlugin_Emit(t *testing.T) {
	root := t.TempDir()
	page := filepath.Join(root, "page2.js")
	app, err := graph.NewEntry(filepath.Join(root, "app.js"), "./app", []byte(appSource), nil)
	require.NoError(t, err)

	plugin := NewPlugin(executor.WithNodeEnv("production"))
	loader := New(plugin.Handle)
	var waitGroup sync.WaitGroup
	for _, output := range []string{"page2.html", "copy.html"} {
		waitGroup.Add(1)
		go func(output string) {
			defer waitGroup.Done()
			options := &Options{Output: output, Filename: page, Props: map[string]interface{}{"title": "Page 2"}}
			_, _, err := loader.Transform(context.Background(), []byte(hydratablePage), nil, options)
			assert.NoError(t, err)
		}(output)
	}
	waitGroup.Wait()
	require.Len(t, plugin.Templates(), 2)

	outDir := filepath.Join(root, "dist")
	assets, err := plugin.Emit(context.Background(), graph.New(app), afs.New(), outDir)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "copy.html", assets[0].Output)

	expected := `<!DOCTYPE html><div id="page2-app" title="Page 2"><b>App 2</b></div>`
	data, err := os.ReadFile(filepath.Join(outDir, "page2.html"))
	require.NoError(t, err)
	assert.Equal(t, expected, string(data))
}

func TestPlugin_EmitFailure(t *testing.T) {
	root := t.TempDir()
	plugin := NewPlugin()
	require.NoError(t, plugin.Handle(context.Background(), &Template{
		Output:   "broken.html",
		Filename: filepath.Join(root, "broken.js"),
		Code:     []byte("import Missing from './missing';\nexport default () => Missing;"),
	}))
	outDir := filepath.Join(root, "dist")
	_, err := plugin.Emit(context.Background(), graph.New(), afs.New(), outDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, executor.ErrUnresolvedImport)
	_, statErr := os.Stat(filepath.Join(outDir, "broken.html"))
	assert.True(t, os.IsNotExist(statErr))
}
