package codebase

import (
	spooky "github.com/dgryski/go-spooky"

	"github.com/dhamidi/kei/js"
	"github.com/dhamidi/kei/js/ast"
	"github.com/dhamidi/kei/js/parser"
)

// parseCache remembers the last parse of each path, keyed by a hash of
// the parse goal and content. Editors resend unchanged documents on
// every save; a matching hash skips the reparse. A changed hash evicts
// the stale entry. Callers hold the codebase lock.
type parseCache struct {
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	hash    uint64
	outcome parseOutcome
}

type parseOutcome struct {
	program ast.Program
	summary *js.FileSummary
	err     error
}

func newParseCache() *parseCache {
	return &parseCache{entries: make(map[string]*cacheEntry)}
}

func (pc *parseCache) parse(path string, sourceType js.SourceType, content []byte) parseOutcome {
	hash := contentHash(sourceType, content)

	if entry, ok := pc.entries[path]; ok && entry.hash == hash {
		return entry.outcome
	}

	out := parseSource(path, sourceType, content)
	pc.entries[path] = &cacheEntry{hash: hash, outcome: out}
	return out
}

func (pc *parseCache) remove(path string) {
	delete(pc.entries, path)
}

func contentHash(sourceType js.SourceType, content []byte) uint64 {
	data := make([]byte, 0, len(sourceType)+1+len(content))
	data = append(data, sourceType...)
	data = append(data, 0)
	data = append(data, content...)
	return spooky.Hash64(data)
}

func parseSource(path string, sourceType js.SourceType, content []byte) parseOutcome {
	p := parser.New(content, parser.WithFile(path), parser.WithComments())

	var prog ast.Program
	var err error
	if sourceType == js.SourceTypeModule {
		prog, err = p.ParseModule()
	} else {
		prog, err = p.ParseScript()
	}
	if err != nil {
		return parseOutcome{err: err}
	}

	sum := js.SummarizeProgram(prog, p.Interner(), p.Comments())
	sum.Path = path
	return parseOutcome{program: prog, summary: sum}
}
