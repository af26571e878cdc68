package executor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/viant/entrysplit/inspector/graph"
)

// module is a resolved request ready to execute.
type module struct {
	key         string
	filename    string
	source      []byte
	sourceMap   []byte
	fingerprint uint64
	empty       bool
}

// resolve maps request, made by a module in dir, to a module. Relative and
// absolute requests try the graph then the file system; bare requests
// try the builtins then node_modules.
func (s *Session) resolve(ctx context.Context, request string, dir string) (*module, error) {
	if isStyle(request) {
		location := request
		if graph.IsRelative(request) || graph.IsAbsolute(request) {
			location = graph.Join(dir, request)
		}
		return &module{key: location, filename: location, empty: true}, nil
	}
	if graph.IsRelative(request) || graph.IsAbsolute(request) {
		if m, err := s.locate(ctx, graph.Join(dir, request)); m != nil || err != nil {
			return m, err
		}
		return nil, &UnresolvedImportError{Request: request, From: dir}
	}
	if builtin, ok := s.options.Builtins[request]; ok {
		location := builtin.location()
		return &module{key: location, filename: location, source: builtin.Source}, nil
	}
	if filepath.IsAbs(dir) {
		location, ok, err := s.options.Detector.ResolvePackage(ctx, request, dir)
		if err != nil {
			return nil, err
		}
		if ok {
			if m, err := s.locate(ctx, location); m != nil || err != nil {
				return m, err
			}
		}
	}
	return nil, &UnresolvedImportError{Request: request, From: dir}
}

// locate tries base, base with each script extension, then base as a
// directory holding an index module.
func (s *Session) locate(ctx context.Context, base string) (*module, error) {
	for _, candidate := range candidates(base) {
		if entry, ok := s.graph.Lookup(candidate); ok {
			return &module{key: entry.Path, filename: entry.Path, source: entry.Source, sourceMap: entry.Map, fingerprint: entry.Fingerprint}, nil
		}
	}
	fs := s.options.FS
	for _, candidate := range candidates(base) {
		if ok, _ := fs.Exists(ctx, candidate); !ok {
			continue
		}
		object, err := fs.Object(ctx, candidate)
		if err != nil || object.IsDir() {
			continue
		}
		source, err := fs.DownloadWithURL(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", candidate, err)
		}
		fingerprint, err := graph.Fingerprint(source)
		if err != nil {
			return nil, err
		}
		location := graph.Key(candidate)
		return &module{key: location, filename: location, source: source, fingerprint: fingerprint}, nil
	}
	return nil, nil
}

func candidates(base string) []string {
	ret := make([]string, 0, 1+2*len(scriptExtensions))
	ret = append(ret, base)
	for _, ext := range scriptExtensions {
		ret = append(ret, base+ext)
	}
	for _, ext := range scriptExtensions {
		ret = append(ret, graph.Join(base, "index"+ext))
	}
	return ret
}
