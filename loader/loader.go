// Package loader reads Flux sources from disk or memory and parses them into
// an ast.Package.
//
// A path may name a single file or a directory. For a directory every file
// ending in .flux is loaded, in name order, and all of them must declare the
// same package. Files are parsed concurrently against one identifier pool.
//
// Example usage:
//
//	ldr := loader.New(loader.WithMaxDepth(200))
//	result, err := ldr.Load(ctx, "queries/")
//	if err != nil {
//		return err
//	}
//	for _, diag := range ast.Check(result.Package) {
//		fmt.Println(diag)
//	}
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/parser"
	"github.com/robinvdvleuten/flux/telemetry"
)

// Ext is the file extension of Flux sources.
const Ext = ".flux"

// DefaultPackage is the package name of files without a package clause.
const DefaultPackage = "main"

// Loader parses Flux files into packages.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithMaxDepth(100))
type Loader struct {
	maxDepth int
	interner *parser.Interner
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithMaxDepth limits expression nesting in every parsed file.
func WithMaxDepth(n int) Option {
	return func(l *Loader) {
		l.maxDepth = n
	}
}

// WithInterner shares an identifier pool across loads, which keeps names
// canonical between repeated loads in watch mode.
func WithInterner(i *parser.Interner) Option {
	return func(l *Loader) {
		l.interner = i
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{maxDepth: parser.DefaultMaxDepth}
	for _, opt := range opts {
		opt(l)
	}
	if l.interner == nil {
		l.interner = parser.NewInterner(256)
	}
	return l
}

// Result is a loaded package together with the text of its files, which
// error formatters need to show source context.
type Result struct {
	Package *ast.Package
	Sources map[string]string // File name to source text
}

// PackageMismatchError is returned when the files of a directory disagree on
// their package name.
type PackageMismatchError struct {
	Loc      ast.SourceLocation
	File     string
	Got      string
	Expected string
}

func (e *PackageMismatchError) Error() string {
	return fmt.Sprintf("file %q declares package %q, expected %q", e.File, e.Got, e.Expected)
}

// GetLocation returns the location of the offending package clause.
func (e *PackageMismatchError) GetLocation() ast.SourceLocation { return e.Loc }

// Load reads path, a file or a directory of .flux files, and parses it.
func (l *Loader) Load(ctx context.Context, path string) (*Result, error) {
	ctx, timer := telemetry.StartTimer(ctx, "load "+filepath.Base(path))
	defer timer.End()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	files := []string{path}
	dir := filepath.Dir(path)
	if info.IsDir() {
		dir = path
		files, err = sourceFiles(path)
		if err != nil {
			return nil, err
		}
	}

	sources := make([]source, len(files))
	for i, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		sources[i] = source{name: name, text: string(data)}
	}

	return l.parse(ctx, dir, sources)
}

// LoadBytes parses data as a single file called name, for input that does
// not come from disk such as stdin or a REPL line.
func (l *Loader) LoadBytes(ctx context.Context, name string, data []byte) (*Result, error) {
	ctx, timer := telemetry.StartTimer(ctx, "load "+name)
	defer timer.End()

	return l.parse(ctx, "", []source{{name: name, text: string(data)}})
}

type source struct {
	name string
	text string
}

// sourceFiles lists the .flux files directly inside dir.
func sourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files in %s", Ext, dir)
	}
	sort.Strings(files)
	return files, nil
}

func (l *Loader) parse(ctx context.Context, dir string, sources []source) (*Result, error) {
	parsed := make([]*ast.File, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, timer := telemetry.StartTimer(gctx, "parse "+filepath.Base(src.name))
			defer timer.End()

			parsed[i] = parser.ParseFile(src.name, src.text,
				parser.WithMaxDepth(l.maxDepth),
				parser.WithInterner(l.interner),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	name, err := packageName(parsed)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Package: &ast.Package{
			Path:    dir,
			Package: name,
			Files:   parsed,
		},
		Sources: make(map[string]string, len(sources)),
	}
	for _, src := range sources {
		result.Sources[src.name] = src.text
	}
	return result, nil
}

// packageName returns the package shared by files. The first file decides;
// a file without a clause agrees with any package.
func packageName(files []*ast.File) (string, error) {
	expected := ""
	for _, file := range files {
		got := clauseName(file)
		if got == "" {
			continue
		}
		if expected == "" {
			expected = got
			continue
		}
		if got != expected {
			return "", &PackageMismatchError{
				Loc:      file.Package.Loc,
				File:     filepath.Base(file.Name),
				Got:      got,
				Expected: expected,
			}
		}
	}
	if expected == "" {
		expected = DefaultPackage
	}
	return expected, nil
}

func clauseName(file *ast.File) string {
	if file.Package == nil || file.Package.Name == nil {
		return ""
	}
	return file.Package.Name.Name
}
