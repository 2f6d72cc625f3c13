package codebase

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/kei/js"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCodebaseScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "fixture", "type": "module"}`)
	writeFile(t, filepath.Join(dir, "index.js"), "import { helper } from \"./lib/util.js\";\nexport function main() { return helper(); }\n")
	writeFile(t, filepath.Join(dir, "lib", "util.js"), "export function helper() { return 1; }\n")
	writeFile(t, filepath.Join(dir, "broken.js"), "function ( {\n")
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "index.js"), "exports.x = (;\n")

	cb := New(dir)
	require.NotNil(t, cb.Project())
	require.NoError(t, cb.ScanAll())

	sums := cb.AllSummaries()
	require.Len(t, sums, 2)
	assert.Equal(t, filepath.Join(dir, "index.js"), sums[0].Path)
	assert.Equal(t, filepath.Join(dir, "lib", "util.js"), sums[1].Path)
	assert.Equal(t, js.SourceTypeModule, sums[0].SourceType)

	broken := cb.GetFile(filepath.Join(dir, "broken.js"))
	require.NotNil(t, broken)
	assert.Error(t, broken.ParseErr)
	assert.Nil(t, broken.Summary)
	assert.Equal(t, []string{filepath.Join(dir, "broken.js")}, cb.BrokenFiles())

	index := cb.GetFile(filepath.Join(dir, "index.js"))
	require.NotNil(t, index)
	assert.NotNil(t, index.Program)
	require.NotNil(t, index.Summary)
	require.Len(t, index.Summary.Imports, 1)
	assert.Equal(t, "./lib/util.js", index.Summary.Imports[0].From)

	assert.Nil(t, cb.GetFile(filepath.Join(dir, "node_modules", "dep", "index.js")))
}

func TestCodebaseUpdateAndRemove(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "fixture"}`)

	cb := New(dir)
	path := filepath.Join(dir, "app.js")

	require.NoError(t, cb.UpdateFile(path, []byte("function run() {}\n")))
	require.Len(t, cb.AllSummaries(), 1)
	assert.Empty(t, cb.BrokenFiles())

	require.NoError(t, cb.UpdateFile(path, []byte("function run( {\n")))
	assert.Empty(t, cb.AllSummaries())
	assert.Equal(t, []string{path}, cb.BrokenFiles())

	require.NoError(t, cb.UpdateFile(path, []byte("function run() {}\n")))
	assert.Len(t, cb.AllSummaries(), 1)
	assert.Empty(t, cb.BrokenFiles())

	cb.RemoveFile(path)
	assert.Nil(t, cb.GetFile(path))
	assert.Empty(t, cb.AllSummaries())
}

func TestCodebaseSourceTypeFromManifest(t *testing.T) {
	source := []byte("import x from \"dep\";\n")

	t.Run("module manifest", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"type": "module"}`)

		cb := New(dir)
		path := filepath.Join(dir, "a.js")
		require.NoError(t, cb.UpdateFile(path, source))

		f := cb.GetFile(path)
		require.NotNil(t, f)
		assert.NoError(t, f.ParseErr)
		require.NotNil(t, f.Summary)
		assert.Equal(t, js.SourceTypeModule, f.Summary.SourceType)
	})

	t.Run("script manifest", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"name": "legacy"}`)

		cb := New(dir)
		path := filepath.Join(dir, "a.js")
		require.NoError(t, cb.UpdateFile(path, source))

		f := cb.GetFile(path)
		require.NotNil(t, f)
		assert.Error(t, f.ParseErr)
	})
}

func TestParseCacheReuse(t *testing.T) {
	pc := newParseCache()
	source := []byte("export function once() {}\n")

	first := pc.parse("a.js", js.SourceTypeModule, source)
	require.NotNil(t, first.summary)

	second := pc.parse("a.js", js.SourceTypeModule, source)
	assert.Same(t, first.summary, second.summary)
	assert.Len(t, pc.entries, 1)

	changed := pc.parse("a.js", js.SourceTypeModule, []byte("export function twice() {}\n"))
	require.NotNil(t, changed.summary)
	assert.NotSame(t, first.summary, changed.summary)
	assert.Equal(t, "twice", changed.summary.Functions[0].Name)
	assert.Len(t, pc.entries, 1)

	asScript := pc.parse("a.js", js.SourceTypeScript, []byte("export function twice() {}\n"))
	assert.Error(t, asScript.err)

	pc.remove("a.js")
	assert.Empty(t, pc.entries)

	fresh := pc.parse("a.js", js.SourceTypeModule, source)
	require.NotNil(t, fresh.summary)
	assert.NotSame(t, first.summary, fresh.summary)
}

func TestCodebaseExportersOf(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"type": "module"}`)

	cb := New(dir)
	require.NoError(t, cb.UpdateFile(filepath.Join(dir, "a.js"), []byte("export const alpha = 1;\n")))
	require.NoError(t, cb.UpdateFile(filepath.Join(dir, "b.js"), []byte("const alpha = 2;\nexport { alpha };\nexport const beta = 3;\n")))

	alpha := cb.ExportersOf("alpha")
	require.Len(t, alpha, 2)
	assert.Equal(t, filepath.Join(dir, "a.js"), alpha[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.js"), alpha[1].Path)

	beta := cb.ExportersOf("beta")
	require.Len(t, beta, 1)
	assert.Equal(t, filepath.Join(dir, "b.js"), beta[0].Path)

	assert.Empty(t, cb.ExportersOf("gamma"))
}

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"type": "module"}`)

	cb := New(dir)
	w := NewFileWatcher(cb)

	path := filepath.Join(dir, "watched.js")
	writeFile(t, path, "export const v = 1;\n")

	w.scan()
	f := cb.GetFile(path)
	require.NotNil(t, f)
	require.NotNil(t, f.Summary)
	assert.Equal(t, "v", f.Summary.Exports[0].Exported)

	writeFile(t, path, "export const v2 = 2;\n")
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	w.scan()
	f = cb.GetFile(path)
	require.NotNil(t, f)
	require.NotNil(t, f.Summary)
	assert.Equal(t, "v2", f.Summary.Exports[0].Exported)

	require.NoError(t, os.Remove(path))
	w.scan()
	assert.Nil(t, cb.GetFile(path))
}

func TestDiagnosticsFor(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "fixture"}`)

	cb := New(dir)
	path := filepath.Join(dir, "bad.js")
	require.NoError(t, cb.UpdateFile(path, []byte("a + ;\n")))

	diags := diagnosticsFor(cb.GetFile(path))
	require.Len(t, diags, 1)
	require.NotNil(t, diags[0].Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
	require.NotNil(t, diags[0].Source)
	assert.Equal(t, "kei", *diags[0].Source)
	assert.Equal(t, protocol.UInteger(0), diags[0].Range.Start.Line)
	assert.Equal(t, protocol.UInteger(4), diags[0].Range.Start.Character)
	assert.NotEmpty(t, diags[0].Message)

	good := filepath.Join(dir, "good.js")
	require.NoError(t, cb.UpdateFile(good, []byte("var ok = 1;\n")))

	diags = diagnosticsFor(cb.GetFile(good))
	require.NotNil(t, diags)
	assert.Empty(t, diags)
}

func TestDocumentSymbols(t *testing.T) {
	source := []byte(`export function top(a, b) {}
const arrow = (x) => x;
const obj = {
	method() {},
	get value() { return 1; },
};
`)

	sum, err := js.Summarize(source, js.SourceTypeModule)
	require.NoError(t, err)

	symbols := documentSymbols(sum)
	require.Len(t, symbols, 4)

	assert.Equal(t, "top", symbols[0].Name)
	assert.Equal(t, protocol.SymbolKindFunction, symbols[0].Kind)
	assert.Equal(t, "function", *symbols[0].Detail)
	assert.Equal(t, protocol.UInteger(0), symbols[0].Range.Start.Line)

	assert.Equal(t, "arrow", symbols[1].Name)
	assert.Equal(t, protocol.SymbolKindFunction, symbols[1].Kind)
	assert.Equal(t, "arrow", *symbols[1].Detail)

	assert.Equal(t, "method", symbols[2].Name)
	assert.Equal(t, protocol.SymbolKindMethod, symbols[2].Kind)

	assert.Equal(t, "value", symbols[3].Name)
	assert.Equal(t, protocol.SymbolKindProperty, symbols[3].Kind)
	assert.Equal(t, "getter", *symbols[3].Detail)
}

func TestLSPInitialize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"type": "module"}`)
	writeFile(t, filepath.Join(dir, "main.js"), "export function main() {}\n")

	ls := NewLSPServer("0.1.0")
	result, err := ls.initialize(nil, &protocol.InitializeParams{RootPath: &dir})
	require.NoError(t, err)

	init, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	require.NotNil(t, init.ServerInfo)
	assert.Equal(t, "kei", init.ServerInfo.Name)

	sync, ok := init.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	require.NotNil(t, sync.OpenClose)
	assert.True(t, *sync.OpenClose)

	require.NotNil(t, ls.codebase)
	assert.Equal(t, dir, ls.codebase.RootDir())
}

func TestLSPDocumentSymbolRequest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"type": "module"}`)

	ls := NewLSPServer("0.1.0")
	rootPath := dir
	_, err := ls.initialize(nil, &protocol.InitializeParams{RootPath: &rootPath})
	require.NoError(t, err)

	path := filepath.Join(dir, "mod.js")
	require.NoError(t, ls.codebase.UpdateFile(path, []byte("export function visible() {}\n")))

	result, err := ls.textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file://" + path},
	})
	require.NoError(t, err)

	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	require.Len(t, symbols, 1)
	assert.Equal(t, "visible", symbols[0].Name)
}

func TestUriToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/project/a.js")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/project/a.js", path)

	path, err = uriToPath("/plain/path.js")
	require.NoError(t, err)
	assert.Equal(t, "/plain/path.js", path)
}
