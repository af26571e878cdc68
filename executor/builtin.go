package executor

import (
	"embed"
	"fmt"
	"path"
)

//go:embed builtins
var builtinFS embed.FS

const builtinScheme = "builtin:"

// Builtin is a module compiled into the executor, served for bare requests
// ahead of node_modules.
type Builtin struct {
	Name   string
	Source []byte
}

var builtinRequests = map[string]string{
	"react":                                 "react.js",
	"react-dom":                             "react-dom.js",
	"@nearmap/react-entry-loader/injectors": "injectors.jsx",
	"react-entry-loader/injectors":          "injectors.jsx",
	"@nearmap/react-entry-loader/render":    "render.js",
	"react-entry-loader/render":             "render.js",
}

// DefaultBuiltins returns the embedded request to module registry.
func DefaultBuiltins() map[string]*Builtin {
	loaded := map[string]*Builtin{}
	ret := make(map[string]*Builtin, len(builtinRequests))
	for request, name := range builtinRequests {
		builtin, ok := loaded[name]
		if !ok {
			source, err := builtinFS.ReadFile(path.Join("builtins", name))
			if err != nil {
				panic(fmt.Sprintf("missing builtin %s: %v", name, err))
			}
			builtin = &Builtin{Name: name, Source: source}
			loaded[name] = builtin
		}
		ret[request] = builtin
	}
	return ret
}

func (b *Builtin) location() string {
	return builtinScheme + b.Name
}
