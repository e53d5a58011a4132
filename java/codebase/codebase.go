package codebase

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/dhamidi/minijavac/java/ast"
	"github.com/dhamidi/minijavac/java/parser"
)

// Codebase keeps the latest parse result of every source file it was shown.
// It is safe for concurrent use.
type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	opts    []parser.Option
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path     string
	Content  []byte
	Unit     *ast.List
	ParseErr *parser.Diagnostic
	Warnings []*parser.Diagnostic
}

// Diagnostics returns the file's warnings followed by its fatal error.
func (f *FileInfo) Diagnostics() []*parser.Diagnostic {
	out := slices.Clone(f.Warnings)
	if f.ParseErr != nil {
		out = append(out, f.ParseErr)
	}
	return out
}

// New returns an empty codebase rooted at rootDir. opts are applied to
// every parse.
func New(rootDir string, opts ...parser.Option) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		opts:    opts,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// IsSource reports whether path names a mini-Java source file.
func IsSource(path string) bool {
	switch filepath.Ext(path) {
	case ".mj", ".java":
		return true
	}
	return false
}

// ScanAll parses every source file below the root, skipping hidden
// directories. Unreadable entries are skipped.
func (c *Codebase) ScanAll() error {
	return filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != c.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSource(path) {
			c.ScanFile(path)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new text of path and stores the result.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	info := c.parse(path, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return info
}

func (c *Codebase) parse(path string, content []byte) *FileInfo {
	info := &FileInfo{
		Path:    path,
		Content: content,
	}
	opts := append(slices.Clone(c.opts),
		parser.WithFile(filepath.Base(path)),
		parser.WithWarningHandler(func(d *parser.Diagnostic) {
			info.Warnings = append(info.Warnings, d)
		}),
	)

	unit, err := parser.Parse(bytes.NewReader(content), opts...)
	var d *parser.Diagnostic
	switch {
	case errors.As(err, &d):
		info.ParseErr = d
	case err != nil:
		info.ParseErr = &parser.Diagnostic{
			Severity: parser.SeverityFatal,
			File:     filepath.Base(path),
			Message:  err.Error(),
		}
	}
	info.Unit = unit
	return info
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the known file paths in sorted order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

type SymbolKind int

const (
	SymbolRecord SymbolKind = iota
	SymbolFunction
	SymbolNative
	SymbolKeyword
)

// Symbol is a top-level declaration of some parsed file, or a keyword.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Path   string
	Line   int
	Detail string
}

// Symbols lists the records and functions declared by all files that parsed,
// ordered by name and then path.
func (c *Codebase) Symbols() []Symbol {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Symbol
	for _, f := range c.files {
		for decl := range f.Unit.All() {
			switch decl := decl.(type) {
			case *ast.RecordDecl:
				out = append(out, Symbol{
					Name:   decl.Name.Name,
					Kind:   SymbolRecord,
					Path:   f.Path,
					Line:   decl.Line,
					Detail: "record " + decl.Name.Name,
				})
			case *ast.FuncDecl:
				kind := SymbolFunction
				if decl.Native {
					kind = SymbolNative
				}
				out = append(out, Symbol{
					Name:   decl.Name.Name,
					Kind:   kind,
					Path:   f.Path,
					Line:   decl.Line,
					Detail: signature(decl),
				})
			}
		}
	}
	slices.SortFunc(out, func(a, b Symbol) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Path, b.Path))
	})
	return out
}

// FindSymbol returns the first declaration named name.
func (c *Codebase) FindSymbol(name string) (Symbol, bool) {
	for _, s := range c.Symbols() {
		if s.Name == name {
			return s, true
		}
	}
	return Symbol{}, false
}

// Completions returns the declarations and word keywords starting with
// prefix. Each name appears once.
func (c *Codebase) Completions(prefix string) []Symbol {
	var out []Symbol
	seen := make(map[string]bool)
	for _, s := range c.Symbols() {
		if strings.HasPrefix(s.Name, prefix) && !seen[s.Name] {
			seen[s.Name] = true
			out = append(out, s)
		}
	}
	for _, kw := range parser.Keywords {
		if !isWord(kw) || !strings.HasPrefix(kw, prefix) || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, Symbol{Name: kw, Kind: SymbolKeyword, Detail: "keyword"})
	}
	return out
}

func isWord(s string) bool {
	return s != "" && (s[0] >= 'a' && s[0] <= 'z' || s[0] >= 'A' && s[0] <= 'Z')
}

// signature renders a function head, e.g. "int max(int a, int b)".
func signature(fn *ast.FuncDecl) string {
	var params []string
	for p := range fn.Params.All() {
		v := p.(*ast.VarDecl)
		params = append(params, v.Type.String()+" "+v.Name.Name)
	}
	return fn.Result.String() + " " + fn.Name.Name + "(" + strings.Join(params, ", ") + ")"
}
