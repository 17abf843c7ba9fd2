package loader

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/parser"
	"github.com/robinvdvleuten/flux/telemetry"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadSingleFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"query.flux": `from(bucket: "b") |> range(start: -1h)`,
	})
	path := filepath.Join(dir, "query.flux")

	result, err := New().Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, DefaultPackage, result.Package.Package)
	assert.Equal(t, dir, result.Package.Path)
	assert.Equal(t, 1, len(result.Package.Files))
	assert.Equal(t, path, result.Package.Files[0].Name)
	assert.Equal(t, path, result.Package.Files[0].Loc.File)
	assert.Equal(t, `from(bucket: "b") |> range(start: -1h)`, result.Sources[path])
}

func TestLoadDirectory(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.flux":    "package alerts\nb = 2",
		"a.flux":    "package alerts\na = 1",
		"c.flux":    "c = 3",
		"notes.txt": "not flux",
	})

	result, err := New().Load(context.Background(), dir)
	assert.NoError(t, err)
	assert.Equal(t, "alerts", result.Package.Package)

	var names []string
	for _, file := range result.Package.Files {
		names = append(names, filepath.Base(file.Name))
	}
	assert.Equal(t, []string{"a.flux", "b.flux", "c.flux"}, names)
	assert.Equal(t, 3, len(result.Sources))
}

func TestLoadPackageMismatch(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.flux": "package y\na = 1",
		"b.flux": "package x\nb = 2",
	})

	_, err := New().Load(context.Background(), dir)
	assert.EqualError(t, err, `file "b.flux" declares package "x", expected "y"`)

	var mismatch *PackageMismatchError
	assert.True(t, stderrors.As(err, &mismatch))
	assert.Equal(t, filepath.Join(dir, "b.flux"), mismatch.Loc.File)
	assert.Equal(t, ast.Position{Line: 1, Column: 1}, mismatch.Loc.Start)
	assert.Equal(t, ast.Position{Line: 1, Column: 10}, mismatch.Loc.End)
}

func TestLoadEmptyDirectory(t *testing.T) {
	dir := writeFiles(t, map[string]string{"readme.md": "# queries"})

	_, err := New().Load(context.Background(), dir)
	assert.EqualError(t, err, "no .flux files in "+dir)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.flux")

	_, err := New().Load(context.Background(), path)
	assert.Error(t, err)
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "failed to read "+path)
}

func TestLoadBytes(t *testing.T) {
	result, err := New().LoadBytes(context.Background(), "<stdin>", []byte("package p\nx = 1"))
	assert.NoError(t, err)
	assert.Equal(t, "p", result.Package.Package)
	assert.Equal(t, "", result.Package.Path)
	assert.Equal(t, "<stdin>", result.Package.Files[0].Name)
	assert.Equal(t, "package p\nx = 1", result.Sources["<stdin>"])
}

func TestLoadKeepsSyntaxErrors(t *testing.T) {
	result, err := New().LoadBytes(context.Background(), "bad.flux", []byte("a = (1 +"))
	assert.NoError(t, err)
	assert.True(t, ast.HasErrors(result.Package))
}

func TestWithMaxDepth(t *testing.T) {
	src := []byte("a = ((((((1))))))")

	result, err := New(WithMaxDepth(3)).LoadBytes(context.Background(), "deep.flux", src)
	assert.NoError(t, err)
	assert.True(t, ast.HasErrors(result.Package))

	result, err = New().LoadBytes(context.Background(), "deep.flux", src)
	assert.NoError(t, err)
	assert.False(t, ast.HasErrors(result.Package))
}

func TestWithInternerSharesNames(t *testing.T) {
	interner := parser.NewInterner(8)
	dir := writeFiles(t, map[string]string{
		"a.flux": "x = tables",
		"b.flux": "y = tables",
	})

	_, err := New(WithInterner(interner)).Load(context.Background(), dir)
	assert.NoError(t, err)
	assert.Equal(t, 3, interner.Size())
}

func TestLoadCanceled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.flux": "a = 1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Load(ctx, dir)
	assert.True(t, stderrors.Is(err, context.Canceled))
}

func TestLoadTelemetry(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.flux": "a = 1",
		"b.flux": "b = 2",
	})

	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(context.Background(), collector)

	_, err := New().Load(ctx, dir)
	assert.NoError(t, err)

	spans := collector.Snapshot()
	assert.Equal(t, 1, len(spans))
	assert.Equal(t, "load "+filepath.Base(dir), spans[0].Name)
	assert.Equal(t, 2, len(spans[0].Children))
}
