package scanner

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/kei/js"
)

func waitForScan(t *testing.T, s *Scanner, id string) *Result {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if result, ok := s.Get(id); ok && (result.Status == StatusCompleted || result.Status == StatusFailed) {
			return result
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("scan did not finish in time")
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "demo", "type": "module"}`)
	writeFile(t, filepath.Join(dir, "index.js"), "export function main() {}\n")
	writeFile(t, filepath.Join(dir, "lib", "util.js"), "export const x = 1;\n")
	writeFile(t, filepath.Join(dir, "legacy.cjs"), "exports.value = 1;\n")
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "index.js"), "syntax error here(")
	writeFile(t, filepath.Join(dir, ".cache", "tmp.js"), "also broken(")
	writeFile(t, filepath.Join(dir, "README.md"), "# not source\n")

	s := New()
	id := s.Submit(Request{Path: dir})
	result := waitForScan(t, s, id)

	require.Equal(t, StatusCompleted, result.Status)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Summaries, 3)
	assert.Equal(t, result.Total, result.Progress)
	assert.Equal(t, 100, result.ProgressPercent())

	byName := map[string]*js.FileSummary{}
	for _, sum := range result.Summaries {
		byName[filepath.Base(sum.Path)] = sum
	}
	assert.Equal(t, js.SourceTypeModule, byName["index.js"].SourceType)
	assert.Equal(t, js.SourceTypeScript, byName["legacy.cjs"].SourceType)
}

func TestScanFileListWithErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.js")
	bad := filepath.Join(dir, "bad.js")
	writeFile(t, good, "function ok() {}\n")
	writeFile(t, bad, "function (broken\n")

	s := New()
	id := s.Submit(Request{Files: []string{good, bad, filepath.Join(dir, "missing.js")}})
	result := waitForScan(t, s, id)

	require.Equal(t, StatusCompleted, result.Status)
	require.Len(t, result.Summaries, 1)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Progress)
}

func TestScanEmptyRequestFails(t *testing.T) {
	s := New()
	id := s.Submit(Request{})
	result := waitForScan(t, s, id)

	require.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, "no path, files, or zip file provided", result.Error)
}

func TestScanZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "src.zip")

	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	add := func(name, content string) {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	add("package.json", `{"type": "module"}`)
	add("src/a.js", "export const a = 1;\n")
	add("src/b.cjs", "var b = 2;\n")
	add("docs/readme.txt", "skip me")
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	s := New()
	id := s.Submit(Request{ZipFile: zipPath})
	result := waitForScan(t, s, id)

	require.Equal(t, StatusCompleted, result.Status)
	require.Len(t, result.Summaries, 2)
	assert.Equal(t, js.SourceTypeModule, result.Summaries[0].SourceType)
	assert.Equal(t, js.SourceTypeScript, result.Summaries[1].SourceType)
}

func TestScannerAggregations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"type": "module"}`)
	writeFile(t, filepath.Join(dir, "a.js"), "export function alpha() {}\n")
	writeFile(t, filepath.Join(dir, "b.js"), "export const beta = 1;\nexport function alpha() {}\n")

	s := New()
	id := s.Submit(Request{Path: dir})
	waitForScan(t, s, id)

	all := s.AllSummaries()
	require.Len(t, all, 2)
	assert.True(t, strings.HasSuffix(all[0].Path, "a.js"))
	assert.True(t, strings.HasSuffix(all[1].Path, "b.js"))

	require.NotNil(t, s.FindFile(all[0].Path))
	assert.Nil(t, s.FindFile("no/such/file.js"))

	assert.Len(t, s.ExportersOf("alpha"), 2)
	assert.Len(t, s.ExportersOf("beta"), 1)
	assert.Empty(t, s.ExportersOf("gamma"))

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
}
