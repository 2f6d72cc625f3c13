package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/kei/js"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{
		"name": "fixture",
		"version": "1.2.3",
		"type": "module",
		"main": "src/index.js",
		"dependencies": {"zebra": "^1.0.0", "apple": "^2.0.0"},
		"devDependencies": {"tape": "^5.0.0"}
	}`)

	proj, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, proj.RootDir)
	assert.Equal(t, filepath.Join(dir, "package.json"), proj.ManifestPath)
	assert.Equal(t, "fixture", proj.Manifest.Name)
	assert.Equal(t, "1.2.3", proj.Manifest.Version)
	assert.True(t, proj.IsModule())
	assert.Equal(t, filepath.Join(dir, "src", "index.js"), proj.MainFile())
	assert.Equal(t, []string{"apple", "zebra"}, proj.DependencyNames())
}

func TestLoadFromWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "root"}`)
	nested := filepath.Join(dir, "src", "deep", "deeper")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	proj, err := LoadFrom(nested)
	require.NoError(t, err)
	assert.Equal(t, dir, proj.RootDir)
	assert.Equal(t, "root", proj.Manifest.Name)
}

func TestLoadFromInvalidManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{not json`)

	_, err := LoadFrom(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestSourceTypeFor(t *testing.T) {
	tests := []struct {
		path          string
		moduleDefault bool
		want          js.SourceType
	}{
		{"a.mjs", false, js.SourceTypeModule},
		{"a.mjs", true, js.SourceTypeModule},
		{"a.cjs", false, js.SourceTypeScript},
		{"a.cjs", true, js.SourceTypeScript},
		{"a.js", false, js.SourceTypeScript},
		{"a.js", true, js.SourceTypeModule},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SourceTypeFor(tt.path, tt.moduleDefault), "SourceTypeFor(%q, %v)", tt.path, tt.moduleDefault)
	}
}

func TestSourceTypeOf(t *testing.T) {
	modProj := &Project{Manifest: Manifest{Type: "module"}}
	assert.Equal(t, js.SourceTypeModule, modProj.SourceTypeOf("a.js"))
	assert.Equal(t, js.SourceTypeScript, modProj.SourceTypeOf("a.cjs"))

	scriptProj := &Project{}
	assert.Equal(t, js.SourceTypeScript, scriptProj.SourceTypeOf("a.js"))
	assert.Equal(t, js.SourceTypeModule, scriptProj.SourceTypeOf("a.mjs"))

	var nilProj *Project
	assert.Equal(t, js.SourceTypeScript, nilProj.SourceTypeOf("a.js"))
}

func TestIsSourceFile(t *testing.T) {
	assert.True(t, IsSourceFile("x/a.js"))
	assert.True(t, IsSourceFile("a.mjs"))
	assert.True(t, IsSourceFile("a.cjs"))
	assert.False(t, IsSourceFile("a.ts"))
	assert.False(t, IsSourceFile("a.json"))
	assert.False(t, IsSourceFile("js"))
}

func TestListSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "fixture"}`)
	writeFile(t, filepath.Join(dir, "a.js"), "var a;\n")
	writeFile(t, filepath.Join(dir, "z.mjs"), "export {};\n")
	writeFile(t, filepath.Join(dir, "lib", "util.cjs"), "var u;\n")
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "index.js"), "var d;\n")
	writeFile(t, filepath.Join(dir, ".cache", "gen.js"), "var g;\n")
	writeFile(t, filepath.Join(dir, "README.md"), "docs\n")

	files, err := ListSourceFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.js"),
		filepath.Join(dir, "lib", "util.cjs"),
		filepath.Join(dir, "z.mjs"),
	}, files)
}

func TestSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "fixture"}`)
	writeFile(t, filepath.Join(dir, "only.js"), "var x;\n")

	proj, err := LoadFrom(dir)
	require.NoError(t, err)

	files, err := proj.SourceFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "only.js")}, files)
}

func TestMainFileUnset(t *testing.T) {
	proj := &Project{RootDir: "/x"}
	assert.Equal(t, "", proj.MainFile())
}
