package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
)

const (
	manifestFile = "package.json"
	nodeModules  = "node_modules"
)

// Detector identifies project root folders and resolves installed packages.
type Detector struct {
	fs      afs.Service
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			manifestFile, // JavaScript/Node projects
			".git",       // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(ctx context.Context, filePath string, baseURL ...string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)
	info := &Project{
		Type:     "unknown",
		RootPath: absPath,
	}
	if rootPath == "" && len(baseURL) > 0 && baseURL[0] != "" {
		info.RootPath = baseURL[0]
	} else if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name = filepath.Base(info.RootPath)
	if projectType == "javascript" {
		manifest, err := d.ReadManifest(ctx, rootPath)
		if err != nil {
			return nil, err
		}
		info.Manifest = manifest
		if manifest.Name != "" {
			info.Name = manifest.Name
		}
	}
	return info, nil
}

// DetectRepository identifies the repository containing the given file path
func (d *Detector) DetectRepository(ctx context.Context, filePath string) (*Repository, error) {
	info, err := d.DetectProject(ctx, filePath)
	if err != nil {
		return nil, err
	}
	if gitRoot := d.findGitRoot(info.RootPath); gitRoot != "" {
		return &Repository{
			Kind:   "git",
			Root:   gitRoot,
			Origin: d.extractGitOrigin(gitRoot),
			Info:   info,
		}, nil
	}
	return &Repository{Kind: info.Type, Root: info.RootPath, Info: info}, nil
}

// ReadManifest parses dir/package.json.
func (d *Detector) ReadManifest(ctx context.Context, dir string) (*Manifest, error) {
	location := filepath.Join(dir, manifestFile)
	data, err := d.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	manifest := &Manifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", location, err)
	}
	return manifest, nil
}

// NodeModules lists the node_modules directories visible from startDir,
// nearest first. The walk ends at boundary when it is an ancestor of
// startDir, and at the file system root otherwise.
func (d *Detector) NodeModules(startDir string, boundary string) []string {
	var ret []string
	dir := startDir
	for {
		if filepath.Base(dir) != nodeModules {
			candidate := filepath.Join(dir, nodeModules)
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				ret = append(ret, candidate)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir || dir == boundary {
			break
		}
		dir = parent
	}
	return ret
}

// ResolvePackage returns the location a bare request maps to inside the
// nearest installed package: the package entry point for "name" and the
// joined path for "name/sub/path". The location may still need an extension.
// Packages outside the git repository holding fromDir are not visible.
func (d *Detector) ResolvePackage(ctx context.Context, request string, fromDir string) (string, bool, error) {
	name, subPath := SplitRequest(request)
	for _, modules := range d.NodeModules(fromDir, d.findGitRoot(fromDir)) {
		packageDir := filepath.Join(modules, filepath.FromSlash(name))
		if info, err := os.Stat(packageDir); err != nil || !info.IsDir() {
			continue
		}
		if subPath != "" {
			return filepath.Join(packageDir, filepath.FromSlash(subPath)), true, nil
		}
		var manifest *Manifest
		if ok, _ := d.fs.Exists(ctx, filepath.Join(packageDir, manifestFile)); ok {
			var err error
			if manifest, err = d.ReadManifest(ctx, packageDir); err != nil {
				return "", false, fmt.Errorf("failed to resolve package %s: %w", name, err)
			}
		}
		return filepath.Join(packageDir, filepath.FromSlash(manifest.Entry())), true, nil
	}
	return "", false, nil
}

// SplitRequest separates the package name of a bare request from its sub
// path. Scoped names keep both segments.
func SplitRequest(request string) (string, string) {
	parts := strings.Split(request, "/")
	count := 1
	if strings.HasPrefix(request, "@") && len(parts) > 1 {
		count = 2
	}
	if len(parts) <= count {
		return request, ""
	}
	return strings.Join(parts[:count], "/"), strings.Join(parts[count:], "/")
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || homeDir == parent {
			break
		}
		dir = parent
	}
	return ""
}

// extractGitOrigin extracts the origin URL from git config
func (d *Detector) extractGitOrigin(gitRoot string) string {
	file, err := os.Open(filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "[remote \"origin\"]") {
			foundRemote = true
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case manifestFile:
		return "javascript"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
