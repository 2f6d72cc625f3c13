package scanner

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/kei/js"
	"github.com/dhamidi/kei/project"
)

var log = commonlog.GetLogger("kei.scanner")

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Request names the sources one scan covers: a project directory, an
// explicit file list, or a zip archive of sources. Exactly one of the
// three should be set.
type Request struct {
	ID        string
	Path      string
	Files     []string
	ZipFile   string
	CreatedAt time.Time
}

type Result struct {
	ID        string
	Status    Status
	Request   Request
	Summaries []*js.FileSummary
	Error     string
	Errors    []string
	StartedAt time.Time
	EndedAt   time.Time
	Progress  int
	Total     int
}

func (r *Result) ProgressPercent() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Progress * 100) / r.Total
}

// Scanner runs scans one at a time on a background goroutine. Submit
// returns immediately; results are polled by ID.
type Scanner struct {
	mu       sync.RWMutex
	scans    map[string]*Result
	requests chan Request
	nextID   int
}

func New() *Scanner {
	s := &Scanner{
		scans:    make(map[string]*Result),
		requests: make(chan Request, 100),
	}
	go s.run()
	return s
}

func (s *Scanner) run() {
	for req := range s.requests {
		s.processScan(req)
	}
}

type scanOutcome struct {
	summaries []*js.FileSummary
	errors    []string
}

func (s *Scanner) processScan(req Request) {
	s.mu.Lock()
	result := s.scans[req.ID]
	result.Status = StatusInProgress
	result.StartedAt = time.Now()
	s.mu.Unlock()

	var out scanOutcome
	switch {
	case req.Path != "":
		out = s.scanDirectory(req.ID, req.Path)
	case len(req.Files) > 0:
		out = s.scanFiles(req.ID, req.Files, listModuleDefault(req.Files))
	case req.ZipFile != "":
		out = s.scanZip(req.ID, req.ZipFile)
	default:
		out.errors = append(out.errors, "no path, files, or zip file provided")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	result.EndedAt = time.Now()
	result.Summaries = out.summaries
	result.Errors = out.errors
	if len(out.errors) > 0 && len(out.summaries) == 0 {
		result.Status = StatusFailed
		result.Error = out.errors[0]
	} else {
		result.Status = StatusCompleted
	}
	log.Infof("scan %s: %s, %d files, %d errors", req.ID, result.Status, len(out.summaries), len(out.errors))
}

// listModuleDefault finds the nearest manifest above the first file and
// applies its type to the whole list.
func listModuleDefault(files []string) bool {
	if len(files) == 0 {
		return false
	}
	proj, err := project.LoadFrom(filepath.Dir(files[0]))
	return err == nil && proj.IsModule()
}

func (s *Scanner) scanDirectory(id, root string) scanOutcome {
	proj, err := project.LoadFrom(root)
	moduleDefault := err == nil && proj.IsModule()

	var files []string
	var errors []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errors = append(errors, fmt.Sprintf("walk %s: %v", path, err))
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if project.IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		errors = append(errors, fmt.Sprintf("walk %s: %v", root, walkErr))
	}
	sort.Strings(files)

	out := s.scanFiles(id, files, moduleDefault)
	out.errors = append(errors, out.errors...)
	return out
}

func (s *Scanner) scanFiles(id string, files []string, moduleDefault bool) scanOutcome {
	s.mu.Lock()
	s.scans[id].Total = len(files)
	s.mu.Unlock()

	var out scanOutcome
	for i, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			out.errors = append(out.errors, fmt.Sprintf("read %s: %v", file, err))
		} else {
			sum, err := js.SummarizeFile(file, data, project.SourceTypeFor(file, moduleDefault))
			if err != nil {
				out.errors = append(out.errors, fmt.Sprintf("parse %s: %v", file, err))
			} else {
				out.summaries = append(out.summaries, sum)
			}
		}

		s.mu.Lock()
		s.scans[id].Progress = i + 1
		s.mu.Unlock()
	}
	return out
}

func (s *Scanner) scanZip(id, path string) scanOutcome {
	r, err := zip.OpenReader(path)
	if err != nil {
		return scanOutcome{errors: []string{fmt.Sprintf("open zip: %v", err)}}
	}
	defer r.Close()

	moduleDefault := zipModuleDefault(&r.Reader)

	var sources []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if project.IsSourceFile(f.Name) {
			sources = append(sources, f)
		}
	}

	s.mu.Lock()
	s.scans[id].Total = len(sources)
	s.mu.Unlock()

	var out scanOutcome
	for i, f := range sources {
		rc, err := f.Open()
		if err != nil {
			out.errors = append(out.errors, fmt.Sprintf("open %s: %v", f.Name, err))
		} else {
			data, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				out.errors = append(out.errors, fmt.Sprintf("read %s: %v", f.Name, err))
			} else {
				sum, err := js.SummarizeFile(f.Name, data, project.SourceTypeFor(f.Name, moduleDefault))
				if err != nil {
					out.errors = append(out.errors, fmt.Sprintf("parse %s: %v", f.Name, err))
				} else {
					out.summaries = append(out.summaries, sum)
				}
			}
		}

		s.mu.Lock()
		s.scans[id].Progress = i + 1
		s.mu.Unlock()
	}
	return out
}

// zipModuleDefault reads a package.json at the archive root, if any, to
// decide how plain .js entries are treated.
func zipModuleDefault(r *zip.Reader) bool {
	for _, f := range r.File {
		if f.Name != "package.json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return false
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return false
		}
		var manifest project.Manifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			return false
		}
		return manifest.Type == "module"
	}
	return false
}

func (s *Scanner) Submit(req Request) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	req.ID = fmt.Sprintf("%d", s.nextID)
	req.CreatedAt = time.Now()

	s.scans[req.ID] = &Result{
		ID:      req.ID,
		Status:  StatusPending,
		Request: req,
	}

	s.requests <- req
	return req.ID
}

// Get returns a snapshot of the result. The copy keeps callers from
// observing fields the worker is still updating.
func (s *Scanner) Get(id string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scans[id]
	if !ok {
		return nil, false
	}
	snapshot := *result
	return &snapshot, true
}

func (s *Scanner) List() []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]*Result, 0, len(s.scans))
	for _, r := range s.scans {
		snapshot := *r
		results = append(results, &snapshot)
	}
	return results
}

// AllSummaries returns every file summary from completed scans, ordered
// by path.
func (s *Scanner) AllSummaries() []*js.FileSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []*js.FileSummary
	for _, scan := range s.scans {
		if scan.Status == StatusCompleted {
			all = append(all, scan.Summaries...)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Path < all[j].Path
	})
	return all
}

func (s *Scanner) FindFile(path string) *js.FileSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, scan := range s.scans {
		if scan.Status == StatusCompleted {
			for _, sum := range scan.Summaries {
				if sum.Path == path {
					return sum
				}
			}
		}
	}
	return nil
}

// ExportersOf returns the files of completed scans that export the given
// name, ordered by path.
func (s *Scanner) ExportersOf(name string) []*js.FileSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []*js.FileSummary
	for _, scan := range s.scans {
		if scan.Status != StatusCompleted {
			continue
		}
		for _, sum := range scan.Summaries {
			for _, exp := range sum.Exports {
				if exp.Exported == name {
					matches = append(matches, sum)
					break
				}
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Path < matches[j].Path
	})
	return matches
}
