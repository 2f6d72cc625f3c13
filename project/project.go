package project

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/dhamidi/kei/js"
)

// Manifest is the subset of package.json the tooling reads.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Type            string            `json:"type"`
	Main            string            `json:"main"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Project represents a JavaScript project rooted at a package.json.
type Project struct {
	RootDir      string
	ManifestPath string
	Manifest     Manifest
}

// Load finds the project containing the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom walks up from dir until it finds a package.json and loads it.
func LoadFrom(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", dir)
	}

	for d := abs; ; d = filepath.Dir(d) {
		manifestPath := filepath.Join(d, "package.json")
		if info, err := os.Stat(manifestPath); err == nil && !info.IsDir() {
			return loadManifest(d, manifestPath)
		}
		if d == filepath.Dir(d) {
			break
		}
	}

	return nil, errors.Errorf("could not detect project: no package.json in %s or any parent", abs)
}

func loadManifest(rootDir, path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	proj := &Project{RootDir: rootDir, ManifestPath: path}
	if err := json.Unmarshal(data, &proj.Manifest); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return proj, nil
}

// IsModule reports whether bare .js files in this project parse as
// modules, per the manifest's type field.
func (p *Project) IsModule() bool {
	return p.Manifest.Type == "module"
}

// SourceTypeOf maps a file path to its parse goal. The extension wins:
// .mjs is always a module and .cjs always a script, regardless of the
// manifest. Bare .js follows the manifest.
func (p *Project) SourceTypeOf(path string) js.SourceType {
	return SourceTypeFor(path, p != nil && p.IsModule())
}

// SourceTypeFor maps a file path to its parse goal given the default
// for bare .js files.
func SourceTypeFor(path string, moduleDefault bool) js.SourceType {
	switch filepath.Ext(path) {
	case ".mjs":
		return js.SourceTypeModule
	case ".cjs":
		return js.SourceTypeScript
	}
	if moduleDefault {
		return js.SourceTypeModule
	}
	return js.SourceTypeScript
}

// IsSourceFile reports whether path names a JavaScript source file.
func IsSourceFile(path string) bool {
	switch filepath.Ext(path) {
	case ".js", ".mjs", ".cjs":
		return true
	}
	return false
}

// SourceFiles returns all JavaScript source files under the project
// root.
func (p *Project) SourceFiles() ([]string, error) {
	return ListSourceFiles(p.RootDir)
}

// ListSourceFiles returns all .js, .mjs, and .cjs files under root,
// skipping node_modules and dot directories.
func ListSourceFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scan source files in %s", root)
	}

	return files, nil
}

// MainFile returns the manifest's main entry resolved against the
// project root, or "" when none is declared.
func (p *Project) MainFile() string {
	if p.Manifest.Main == "" {
		return ""
	}
	return filepath.Join(p.RootDir, p.Manifest.Main)
}

// DependencyNames returns the names of the manifest's runtime
// dependencies, sorted.
func (p *Project) DependencyNames() []string {
	names := make([]string, 0, len(p.Manifest.Dependencies))
	for name := range p.Manifest.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
