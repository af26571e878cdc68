package builder

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/entrysplit/inspector/graph"
	"github.com/viant/entrysplit/inspector/jsx"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is the category of rejected build configurations.
var ErrInvalidConfig = errors.New("invalid build config")

// Config describes one build.
type Config struct {
	Root          string       `yaml:"root"`
	OutDir        string       `yaml:"outDir"`
	Concurrency   int          `yaml:"concurrency"`
	NodeEnv       string       `yaml:"nodeEnv"`
	SourceMap     bool         `yaml:"sourceMap"`
	AllowMultiple bool         `yaml:"allowMultiple"`
	Markers       *jsx.Markers `yaml:"markers"`
	Log           LogConfig    `yaml:"log"`
	Entries       []*Entry     `yaml:"entries"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Entry is a page unit and the document it renders to.
type Entry struct {
	Source string                 `yaml:"source"`
	Output string                 `yaml:"output"`
	Props  map[string]interface{} `yaml:"props"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		Root:        ".",
		OutDir:      "dist",
		Concurrency: 4,
		NodeEnv:     "production",
		SourceMap:   true,
		Markers:     jsx.DefaultMarkers(),
		Log:         LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads a YAML config. Relative root and outDir resolve against
// the config's directory.
func LoadConfig(ctx context.Context, fs afs.Service, location string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", location, err)
	}
	ret := DefaultConfig()
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, location, err)
	}
	dir := filepath.Dir(graph.Key(location))
	if !filepath.IsAbs(ret.Root) {
		ret.Root = filepath.Join(dir, ret.Root)
	}
	if !filepath.IsAbs(ret.OutDir) {
		ret.OutDir = filepath.Join(dir, ret.OutDir)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Validate checks entries are complete and that no two entries write the
// same document or module.
func (c *Config) Validate() error {
	if len(c.Entries) == 0 {
		return fmt.Errorf("%w: no entries", ErrInvalidConfig)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConfig, c.Concurrency)
	}
	outputs := map[string]string{}
	modules := map[string]string{}
	for i, entry := range c.Entries {
		if entry.Source == "" || entry.Output == "" {
			return fmt.Errorf("%w: entry %d requires source and output", ErrInvalidConfig, i)
		}
		if previous, ok := outputs[entry.Output]; ok {
			return fmt.Errorf("%w: %s and %s both output %s", ErrInvalidConfig, previous, entry.Source, entry.Output)
		}
		outputs[entry.Output] = entry.Source
		name := moduleName(entry.Source)
		if previous, ok := modules[name]; ok {
			return fmt.Errorf("%w: %s and %s both build module %s", ErrInvalidConfig, previous, entry.Source, name)
		}
		modules[name] = entry.Source
	}
	return nil
}

// moduleName is the file name a page's module slice is written to.
func moduleName(source string) string {
	base := path.Base(filepath.ToSlash(source))
	return strings.TrimSuffix(base, path.Ext(base)) + ".js"
}
