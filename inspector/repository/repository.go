package repository

// Repository describes the version-controlled tree holding a project.
type Repository struct {
	Kind   string
	Root   string
	Origin string
	Info   *Project
}

// Project represents information about a detected project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // Type of project, "javascript" when package.json was found
	Name         string // Name from package.json, or the root directory name
	RelativePath string // Path from project root to the specified file
	Manifest     *Manifest
}

// Manifest holds the package.json fields used for module resolution.
type Manifest struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Main    string            `json:"main"`
	Module  string            `json:"module"`
	Browser interface{}       `json:"browser,omitempty"`
	Exports interface{}       `json:"exports,omitempty"`
	Scripts map[string]string `json:"scripts,omitempty"`
}

// Entry returns the package entry point relative to the package directory.
// The CommonJS main wins over the ES module entry; "index.js" is the default.
func (m *Manifest) Entry() string {
	if m == nil {
		return "index.js"
	}
	if m.Main != "" {
		return m.Main
	}
	if entry, ok := m.Exports.(string); ok && entry != "" {
		return entry
	}
	if exports, ok := m.Exports.(map[string]interface{}); ok {
		if root, ok := exports["."]; ok {
			switch actual := root.(type) {
			case string:
				return actual
			case map[string]interface{}:
				for _, condition := range []string{"require", "default", "node", "import"} {
					if entry, ok := actual[condition].(string); ok {
						return entry
					}
				}
			}
		}
	}
	if m.Module != "" {
		return m.Module
	}
	return "index.js"
}
