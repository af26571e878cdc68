package loader

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/entrysplit/ctxlog"
	"github.com/viant/entrysplit/executor"
	"github.com/viant/entrysplit/inspector/graph"
	"github.com/viant/entrysplit/render"
)

// Asset is an emitted HTML document.
type Asset struct {
	Output  string
	URL     string
	Content []byte
}

// Plugin collects templates while units transform, then renders them once
// the module graph is complete.
type Plugin struct {
	mux       sync.Mutex
	templates map[string]*Template
	options   []executor.Option
}

// NewPlugin creates a plugin whose sessions use opts.
func NewPlugin(opts ...executor.Option) *Plugin {
	return &Plugin{templates: map[string]*Template{}, options: opts}
}

// Handle collects template; a later template for the same output replaces
// the earlier one. It is safe for concurrent use.
func (p *Plugin) Handle(ctx context.Context, template *Template) error {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.templates[template.Output] = template
	return nil
}

// Templates returns the collected templates ordered by output.
func (p *Plugin) Templates() []*Template {
	p.mux.Lock()
	defer p.mux.Unlock()
	ret := make([]*Template, 0, len(p.templates))
	for _, template := range p.templates {
		ret = append(ret, template)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Output < ret[j].Output })
	return ret
}

// Emit renders every collected template in one executor session over g and
// writes the documents under outURL. Nothing is written when a template fails.
func (p *Plugin) Emit(ctx context.Context, g *graph.Graph, fs afs.Service, outURL string) ([]*Asset, error) {
	started := time.Now()
	renderer := render.New(executor.NewSession(g, p.options...))
	var assets []*Asset
	for _, template := range p.Templates() {
		html, err := renderer.RenderTemplate(ctx, template.Filename, template.Code, template.Map, template.Props)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", template.Output, err)
		}
		assets = append(assets, &Asset{Output: template.Output, URL: url.Join(outURL, template.Output), Content: []byte(html)})
	}
	for _, asset := range assets {
		if err := fs.Upload(ctx, asset.URL, file.DefaultFileOsMode, bytes.NewReader(asset.Content)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", asset.URL, err)
		}
	}
	ctxlog.FromContext(ctx).Info("emitted templates", "assets", len(assets), "elapsed", time.Since(started))
	return assets, nil
}
