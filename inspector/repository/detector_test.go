package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	for name, content := range files {
		location := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
}

func TestDetector_DetectProject(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json": `{"name": "pages", "version": "1.0.0"}`,
		"src/page.js":  "export default 1;",
	})
	project, err := New().DetectProject(context.Background(), filepath.Join(root, "src", "page.js"))
	require.NoError(t, err)
	assert.Equal(t, "javascript", project.Type)
	assert.Equal(t, "pages", project.Name)
	assert.Equal(t, root, project.RootPath)
	assert.Equal(t, "src/page.js", project.RelativePath)
}

func TestDetector_ResolvePackage(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json":                           `{"name": "pages"}`,
		"node_modules/lodash/package.json":       `{"name": "lodash", "main": "lodash.js"}`,
		"node_modules/lodash/lodash.js":          "module.exports = {};",
		"node_modules/@scope/ui/package.json":    `{"name": "@scope/ui", "exports": {".": {"require": "./cjs/index.js"}}}`,
		"node_modules/bare/index.js":             "module.exports = 1;",
		"src/nested/node_modules/local/index.js": "module.exports = 2;",
	})
	from := filepath.Join(root, "src", "nested")

	var testCases = []struct {
		description string
		request     string
		expected    string
		found       bool
	}{
		{description: "main", request: "lodash", expected: filepath.Join(root, "node_modules/lodash/lodash.js"), found: true},
		{description: "sub path", request: "lodash/fp", expected: filepath.Join(root, "node_modules/lodash/fp"), found: true},
		{description: "scoped exports", request: "@scope/ui", expected: filepath.Join(root, "node_modules/@scope/ui/cjs/index.js"), found: true},
		{description: "no manifest", request: "bare", expected: filepath.Join(root, "node_modules/bare/index.js"), found: true},
		{description: "nearest first", request: "local", expected: filepath.Join(from, "node_modules/local/index.js"), found: true},
		{description: "missing", request: "missing"},
	}
	detector := New()
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, ok, err := detector.ResolvePackage(context.Background(), testCase.request, from)
			require.NoError(t, err)
			assert.Equal(t, testCase.found, ok)
			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestDetector_ResolvePackageErrors(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"node_modules/outside/index.js":         "module.exports = 1;",
		"repo/.git/HEAD":                        "ref: refs/heads/main",
		"repo/node_modules/broken/package.json": `{"name": "broken", "main": `,
		"repo/src/page.js":                      "export default 1;",
	})
	detector := New()
	from := filepath.Join(root, "repo", "src")

	_, ok, err := detector.ResolvePackage(context.Background(), "outside", from)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = detector.ResolvePackage(context.Background(), "outside", root)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = detector.ResolvePackage(context.Background(), "broken", from)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "broken")
}

func TestDetector_DetectRepository(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		".git/config":       "[core]\n\tbare = false\n[remote \"origin\"]\n\turl = git@github.com:acme/pages.git\n",
		"site/package.json": `{"name": "site"}`,
		"site/page.js":      "export default 1;",
	})
	repository, err := New().DetectRepository(context.Background(), filepath.Join(root, "site"))
	require.NoError(t, err)
	assert.Equal(t, "git", repository.Kind)
	assert.Equal(t, root, repository.Root)
	assert.Equal(t, "git@github.com:acme/pages.git", repository.Origin)
	require.NotNil(t, repository.Info)
	assert.Equal(t, "site", repository.Info.Name)
	assert.Equal(t, filepath.Join(root, "site"), repository.Info.RootPath)
}

func TestSplitRequest(t *testing.T) {
	var testCases = []struct {
		description string
		request     string
		name        string
		subPath     string
	}{
		{description: "plain", request: "react", name: "react"},
		{description: "sub path", request: "react-dom/server", name: "react-dom", subPath: "server"},
		{description: "scoped", request: "@nearmap/react-entry-loader/injectors", name: "@nearmap/react-entry-loader", subPath: "injectors"},
		{description: "scope only", request: "@nearmap/x", name: "@nearmap/x"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			name, subPath := SplitRequest(testCase.request)
			assert.Equal(t, testCase.name, name)
			assert.Equal(t, testCase.subPath, subPath)
		})
	}
}
