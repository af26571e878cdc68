package inspector

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/entrysplit/analyzer"
	"github.com/viant/entrysplit/inspector/jsx"
	"github.com/viant/entrysplit/syntax"
)

// Unit is a parsed page unit with its binding model and injection point.
type Unit struct {
	Tree  *syntax.Tree
	Model *analyzer.Model
	Point *jsx.InjectionPoint
}

// Factory parses and inspects page units, picking the grammar by file extension.
type Factory struct {
	analyzerOptions []analyzer.Option
	jsxOptions      []jsx.Option
}

// NewFactory creates a factory; options are forwarded to the model builder and the marker inspector.
func NewFactory(analyzerOptions []analyzer.Option, jsxOptions ...jsx.Option) *Factory {
	return &Factory{analyzerOptions: analyzerOptions, jsxOptions: jsxOptions}
}

// Supported reports whether filename has a parseable page extension.
func (f *Factory) Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx":
		return true
	}
	return false
}

// GetInspector returns the marker inspector for filename.
func (f *Factory) GetInspector(filename string) (*jsx.Inspector, error) {
	if !f.Supported(filename) {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
	return jsx.NewInspector(f.jsxOptions...), nil
}

// InspectSource parses src, builds its binding model and locates the injection point.
func (f *Factory) InspectSource(ctx context.Context, filename string, src []byte) (*Unit, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	tree, err := syntax.Parse(ctx, filename, src)
	if err != nil {
		return nil, err
	}
	model := analyzer.Build(tree, f.analyzerOptions...)
	point, err := inspector.Locate(model)
	if err != nil {
		return nil, err
	}
	return &Unit{Tree: tree, Model: model, Point: point}, nil
}
