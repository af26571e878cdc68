// Package builder drives a build: it loads the module graph, splits every
// entry concurrently, writes the module slices and emits the documents.
package builder

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/entrysplit/ctxlog"
	"github.com/viant/entrysplit/executor"
	"github.com/viant/entrysplit/inspector/graph"
	"github.com/viant/entrysplit/inspector/repository"
	"github.com/viant/entrysplit/loader"
	"github.com/viant/entrysplit/slicer"
	"golang.org/x/sync/errgroup"
)

// Module is a written module slice.
type Module struct {
	Source string
	URL    string
	MapURL string
}

// Report lists what a build wrote.
type Report struct {
	Repository *repository.Repository
	Modules    []*Module
	Assets     []*loader.Asset
}

// Build runs config. Module slices replace their pages in the graph, so
// templates importing a page see what the browser will run.
func Build(ctx context.Context, config *Config) (*Report, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	started := time.Now()
	logger := ctxlog.FromContext(ctx)
	fs := afs.New()
	root, err := filepath.Abs(config.Root)
	if err != nil {
		return nil, err
	}
	detector := repository.New()
	repo, err := detector.DetectRepository(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to detect project of %s: %w", root, err)
	}
	g, err := graph.Load(ctx, fs, root, nil)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded module graph", "root", root, "project", repo.Info.Name, "repository", repo.Root, "origin", repo.Origin, "modules", g.Len())

	plugin := loader.NewPlugin(executor.WithNodeEnv(config.NodeEnv), executor.WithDetector(detector))
	l := loader.New(plugin.Handle,
		slicer.WithSourceMap(config.SourceMap),
		slicer.WithMarkers(config.Markers),
		slicer.WithAllowMultiple(config.AllowMultiple),
	)
	modules := make([]*Module, len(config.Entries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(config.Concurrency)
	for i, entry := range config.Entries {
		i, entry := i, entry
		group.Go(func() error {
			module, err := buildEntry(groupCtx, fs, g, l, root, config.OutDir, entry)
			if err != nil {
				return err
			}
			modules[i] = module
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	assets, err := plugin.Emit(ctx, g, fs, config.OutDir)
	if err != nil {
		return nil, err
	}
	logger.Info("build finished", "entries", len(modules), "assets", len(assets), "elapsed", time.Since(started))
	return &Report{Repository: repo, Modules: modules, Assets: assets}, nil
}

func buildEntry(ctx context.Context, fs afs.Service, g *graph.Graph, l *loader.Loader, root, outDir string, entry *Entry) (*Module, error) {
	location := filepath.Join(root, entry.Source)
	var source, inputMap []byte
	if existing, ok := g.Lookup(location); ok {
		source, inputMap = existing.Source, existing.Map
	} else {
		data, err := fs.DownloadWithURL(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %s: %w", entry.Source, err)
		}
		source = data
	}
	code, codeMap, err := l.Transform(ctx, source, inputMap, &loader.Options{Output: entry.Output, Props: entry.Props, Filename: location})
	if err != nil {
		return nil, err
	}
	name := moduleName(entry.Source)
	ret := &Module{Source: entry.Source, URL: url.Join(outDir, name)}
	content := code
	if len(codeMap) > 0 {
		ret.MapURL = ret.URL + ".map"
		content = append([]byte{}, code...)
		if !bytes.HasSuffix(content, []byte("\n")) {
			content = append(content, '\n')
		}
		content = append(content, "//# sourceMappingURL="+name+".map\n"...)
		if err := fs.Upload(ctx, ret.MapURL, file.DefaultFileOsMode, bytes.NewReader(codeMap)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", ret.MapURL, err)
		}
	}
	if err := fs.Upload(ctx, ret.URL, file.DefaultFileOsMode, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", ret.URL, err)
	}
	replaced, err := graph.NewEntry(location, entry.Source, code, codeMap)
	if err != nil {
		return nil, err
	}
	g.Put(replaced)
	ctxlog.FromContext(ctx).Info("built module", "source", entry.Source, "module", ret.URL)
	return ret, nil
}
