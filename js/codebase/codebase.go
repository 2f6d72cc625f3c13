package codebase

import (
	"os"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/kei/js"
	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/project"
)

var log = commonlog.GetLogger("kei.codebase")

type Codebase struct {
	mu        sync.RWMutex
	rootDir   string
	proj      *project.Project
	files     map[string]*FileInfo
	summaries []*js.FileSummary
	cache     *parseCache
}

type FileInfo struct {
	Path     string
	Content  []byte
	Program  ast.Program
	Summary  *js.FileSummary
	ParseErr error
}

func New(rootDir string) *Codebase {
	proj, _ := project.LoadFrom(rootDir)
	return &Codebase{
		rootDir: rootDir,
		proj:    proj,
		files:   make(map[string]*FileInfo),
		cache:   newParseCache(),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// Project returns the enclosing package.json project, or nil when none
// was found above the root. Without one, bare .js files parse as scripts.
func (c *Codebase) Project() *project.Project {
	return c.proj
}

func (c *Codebase) ScanAll() error {
	files, err := project.ListSourceFiles(c.rootDir)
	if err != nil {
		return err
	}
	for _, path := range files {
		c.ScanFile(path)
	}
	log.Debugf("scanned %d files under %s", len(files), c.rootDir)
	return nil
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	return c.UpdateFile(path, content)
}

func (c *Codebase) UpdateFile(path string, content []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.updateFileLocked(path, content)
}

func (c *Codebase) updateFileLocked(path string, content []byte) error {
	sourceType := c.proj.SourceTypeOf(path)
	out := c.cache.parse(path, sourceType, content)

	c.files[path] = &FileInfo{
		Path:     path,
		Content:  content,
		Program:  out.program,
		Summary:  out.summary,
		ParseErr: out.err,
	}

	c.rebuildSummariesLocked()
	return nil
}

func (c *Codebase) rebuildSummariesLocked() {
	var all []*js.FileSummary
	for _, f := range c.files {
		if f.Summary != nil {
			all = append(all, f.Summary)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Path < all[j].Path
	})
	c.summaries = all
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
	c.cache.remove(path)
	c.rebuildSummariesLocked()
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

func (c *Codebase) AllSummaries() []*js.FileSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.summaries
}

// ExportersOf returns the summaries of every file that exports the given
// name, sorted by path.
func (c *Codebase) ExportersOf(name string) []*js.FileSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var found []*js.FileSummary
	for _, sum := range c.summaries {
		for _, exp := range sum.Exports {
			if exp.Exported == name {
				found = append(found, sum)
				break
			}
		}
	}
	return found
}

// BrokenFiles returns the paths of files whose last parse failed, sorted.
func (c *Codebase) BrokenFiles() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var paths []string
	for path, f := range c.files {
		if f.ParseErr != nil {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}
