package graph

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// Match selects the files Load adds to the graph.
type Match func(info os.FileInfo) bool

// Sources matches script sources.
func Sources(info os.FileInfo) bool {
	switch path.Ext(info.Name()) {
	case ".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".json":
		return true
	}
	return false
}

// Load walks root and adds every matching file to a new graph. Directories
// named node_modules are skipped; packages resolve through the repository
// root instead.
func Load(ctx context.Context, fs afs.Service, root string, match Match) (*Graph, error) {
	if match == nil {
		match = Sources
	}
	var locations []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return info.Name() != "node_modules" && info.Name() != ".git", nil
		}
		if match(info) {
			locations = append(locations, url.Join(baseURL, parent, info.Name()))
		}
		return true, nil
	}
	if err := fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	ret := New()
	for _, location := range locations {
		source, err := fs.DownloadWithURL(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", location, err)
		}
		entry, err := NewEntry(location, location, source, nil)
		if err != nil {
			return nil, err
		}
		ret.Put(entry)
	}
	return ret, nil
}
