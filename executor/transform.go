package executor

import (
	"encoding/base64"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// styleExtensions are imports with no script semantics; they execute as
// empty modules.
var styleExtensions = map[string]bool{".css": true, ".scss": true, ".sass": true, ".less": true}

var scriptExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".json"}

func loaderOf(filename string) api.Loader {
	switch strings.ToLower(path.Ext(filename)) {
	case ".ts", ".mts", ".cts":
		return api.LoaderTS
	case ".tsx":
		return api.LoaderTSX
	case ".json":
		return api.LoaderJSON
	}
	return api.LoaderJSX
}

func isStyle(request string) bool {
	return styleExtensions[strings.ToLower(path.Ext(request))]
}

// transform compiles module source to CommonJS. An input map is chained by
// inlining it into the source, which esbuild picks up.
func (s *Session) transform(m *module) ([]byte, []byte, error) {
	source := string(m.source)
	if len(m.sourceMap) > 0 {
		source += "\n//# sourceMappingURL=data:application/json;base64," + base64.StdEncoding.EncodeToString(m.sourceMap) + "\n"
	}
	result := api.Transform(source, api.TransformOptions{
		Loader:      loaderOf(m.filename),
		Format:      api.FormatCommonJS,
		Target:      api.ES2015,
		Sourcemap:   api.SourceMapExternal,
		Sourcefile:  m.filename,
		JSXFactory:  s.options.JSXFactory,
		JSXFragment: s.options.JSXFragment,
		LogLevel:    api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		message := result.Errors[0]
		ret := &TransformError{Filename: m.filename, Message: message.Text}
		if location := message.Location; location != nil {
			ret.Line = location.Line
			ret.Column = location.Column + 1
		}
		return nil, nil, ret
	}
	return result.Code, result.Map, nil
}
