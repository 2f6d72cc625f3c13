package ui

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	spooky "github.com/dgryski/go-spooky"
	lru "github.com/hashicorp/golang-lru"

	"github.com/dhamidi/kei/format"
	"github.com/dhamidi/kei/js"
	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/parser"
	"github.com/dhamidi/kei/js/scanner"
	"github.com/dhamidi/kei/project"
)

//go:embed static
var embeddedFS embed.FS

type Server struct {
	scanner    *scanner.Scanner
	staticFS   fs.FS
	mux        *http.ServeMux
	parseCache *lru.Cache
}

func NewServer() (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))

	cache, err := lru.New(128)
	if err != nil {
		return nil, fmt.Errorf("create parse cache: %w", err)
	}

	s := &Server{
		scanner:    scanner.New(),
		staticFS:   staticFS,
		mux:        http.NewServeMux(),
		parseCache: cache,
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /api/parse", s.handleParse)
	s.mux.HandleFunc("POST /api/format", s.handleFormat)
	s.mux.HandleFunc("POST /scan", s.handleScan)
	s.mux.HandleFunc("GET /scans/{id}", s.handleGetScan)
	s.mux.HandleFunc("GET /api/summaries", s.handleSummaries)
	s.mux.HandleFunc("GET /", s.handleIndex)

	if keiSrc := os.Getenv("KEI_SRC"); keiSrc != "" {
		s.scanner.Submit(preloadRequest(keiSrc))
	}

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// preloadRequest maps the KEI_SRC environment value to a scan request by
// shape: a zip archive, a single source file, or a directory.
func preloadRequest(path string) scanner.Request {
	switch {
	case filepath.Ext(path) == ".zip":
		return scanner.Request{ZipFile: path}
	case project.IsSourceFile(path):
		return scanner.Request{Files: []string{path}}
	default:
		return scanner.Request{Path: path}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, s.staticFS, "index.html")
}

type sourceRequest struct {
	Source     string `json:"source"`
	SourceType string `json:"sourceType"`
}

func (req sourceRequest) goal() js.SourceType {
	if req.SourceType == string(js.SourceTypeModule) {
		return js.SourceTypeModule
	}
	return js.SourceTypeScript
}

type parseResult struct {
	AST   json.RawMessage `json:"ast,omitempty"`
	Error *parseError     `json:"error,omitempty"`
}

type parseError struct {
	Message  string    `json:"message"`
	Category string    `json:"category"`
	Context  string    `json:"context,omitempty"`
	Span     *spanData `json:"span,omitempty"`
}

type spanData struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	key := cacheKey(req.goal(), []byte(req.Source))
	if cached, ok := s.parseCache.Get(key); ok {
		writeJSON(w, cached.([]byte))
		return
	}

	body := renderParse(req.goal(), []byte(req.Source))
	s.parseCache.Add(key, body)
	writeJSON(w, body)
}

func renderParse(sourceType js.SourceType, source []byte) []byte {
	p := parser.New(source)

	var prog ast.Program
	var err error
	if sourceType == js.SourceTypeModule {
		prog, err = p.ParseModule()
	} else {
		prog, err = p.ParseScript()
	}

	var result parseResult
	if err != nil {
		result.Error = errorData(err)
	} else {
		astText, encErr := format.NewASTJSONEncoder(io.Discard, p.Interner()).MarshalText(prog)
		if encErr != nil {
			result.Error = &parseError{Message: encErr.Error(), Category: "internal"}
		} else {
			result.AST = astText
		}
	}

	body, _ := json.Marshal(result)
	return body
}

func errorData(err error) *parseError {
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		return &parseError{
			Message:  synErr.Message,
			Category: synErr.Category.String(),
			Context:  synErr.Context,
			Span: &spanData{
				StartLine:   synErr.Span.Start.Line,
				StartColumn: synErr.Span.Start.Column,
				EndLine:     synErr.Span.End.Line,
				EndColumn:   synErr.Span.End.Column,
			},
		}
	}
	return &parseError{Message: err.Error(), Category: "error"}
}

func cacheKey(sourceType js.SourceType, source []byte) uint64 {
	data := make([]byte, 0, len(sourceType)+1+len(source))
	data = append(data, sourceType...)
	data = append(data, 0)
	data = append(data, source...)
	return spooky.Hash64(data)
}

func writeJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	formatted, err := format.PrintSource([]byte(req.Source), req.goal())
	if err != nil {
		body, _ := json.Marshal(parseResult{Error: errorData(err)})
		writeJSON(w, body)
		return
	}

	body, _ := json.Marshal(struct {
		Formatted string `json:"formatted"`
	}{string(formatted)})
	writeJSON(w, body)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanner.Request

	contentType := r.Header.Get("Content-Type")
	if contentType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
				return
			}
		}

		req.Path = r.FormValue("path")

		if files := r.Form["files"]; len(files) > 0 {
			req.Files = files
		}

		if file, _, err := r.FormFile("zipfile"); err == nil {
			defer file.Close()
			tmpFile, err := os.CreateTemp("", "kei-*.zip")
			if err != nil {
				http.Error(w, "failed to create temp file: "+err.Error(), http.StatusInternalServerError)
				return
			}
			if _, err := io.Copy(tmpFile, file); err != nil {
				tmpFile.Close()
				os.Remove(tmpFile.Name())
				http.Error(w, "failed to save zip file: "+err.Error(), http.StatusInternalServerError)
				return
			}
			tmpFile.Close()
			req.ZipFile = tmpFile.Name()
		}
	}

	if req.Path == "" && len(req.Files) == 0 && req.ZipFile == "" {
		http.Error(w, "must provide path, files, or zipfile", http.StatusBadRequest)
		return
	}

	id := s.scanner.Submit(req)
	http.Redirect(w, r, "/scans/"+id, http.StatusSeeOther)
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, ok := s.scanner.Get(id)
	if !ok {
		http.Error(w, "scan not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("exports"); name != "" {
		files := []string{}
		for _, sum := range s.scanner.ExportersOf(name) {
			files = append(files, sum.Path)
		}
		body, _ := json.Marshal(struct {
			Files []string `json:"files"`
		}{Files: files})
		writeJSON(w, body)
		return
	}

	summaries := s.scanner.AllSummaries()
	docs := make([]json.RawMessage, 0, len(summaries))
	for _, sum := range summaries {
		var buf bytes.Buffer
		if err := format.NewJSONEncoder(&buf).Encode(sum); err != nil {
			continue
		}
		docs = append(docs, json.RawMessage(buf.Bytes()))
	}

	body, _ := json.Marshal(docs)
	writeJSON(w, body)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

// overlayFS prefers the on-disk copy during development and falls back
// to the embedded one in a deployed binary.
func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
