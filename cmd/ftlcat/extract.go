package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// extractConfig holds flags for the extract command.
type extractConfig struct {
	paths        []string
	out          string
	source       string
	includeTests bool
	ftlcatPkg    string
	excludeDirs  string
}

func usageExtract(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `usage: ftlcat extract [options] [paths]

Extract discovers message keys referenced in Go code (Lookup, Format, Has,
Text, TextWithCtx) and optionally syncs them into a source catalog file.

If no paths are provided, scans the current directory.

Modes:
  - Keys only: omit -source; writes unique keys (one per line) to -out or stdout.
  - Sync to catalog: set -source to a .ftl file; appends missing keys with empty
    values under an [extracted] section, writes to -out (default: the source file).

Flags:
`)
	fs.PrintDefaults()
}

func newExtractFlagSet(cfg *extractConfig) *flag.FlagSet {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	fs.Usage = func() { usageExtract(fs) }
	fs.StringVar(&cfg.out, "out", "", "Output file. Default stdout for keys, the source file for sync.")
	fs.StringVar(&cfg.source, "source", "", "Source catalog path (enables sync mode).")
	fs.BoolVar(&cfg.includeTests, "include-tests", false, "Include _test.go files.")
	fs.StringVar(&cfg.ftlcatPkg, "ftlcat-pkg", "github.com/flashdeck/ftlcat", "Import path for ftlcat (detect calls from this package).")
	fs.StringVar(&cfg.excludeDirs, "exclude", "vendor", "Comma-separated dir names to skip (e.g. vendor).")
	return fs
}

func parseExtractFlags(args []string) (*extractConfig, error) {
	var cfg extractConfig
	fs := newExtractFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.paths = fs.Args()
	if len(cfg.paths) == 0 {
		cfg.paths = []string{"."}
	}
	return &cfg, nil
}

// keyExtractor collects message keys from Go files via AST.
type keyExtractor struct {
	ftlcatImport string
	imported     bool // current file imports ftlcat
	keys         map[string]struct{}
	methodArgIdx map[string]int
}

func newKeyExtractor(ftlcatImport string) *keyExtractor {
	return &keyExtractor{
		ftlcatImport: ftlcatImport,
		keys:         make(map[string]struct{}),
		methodArgIdx: map[string]int{
			"Lookup":      0,
			"Format":      0,
			"Has":         0,
			"Text":        1,
			"TextWithCtx": 1,
		},
	}
}

func (e *keyExtractor) extractFromFile(path string, src []byte) error {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return err
	}
	e.imported = e.importsFtlcat(f)
	if !e.imported {
		return nil
	}
	ast.Walk(e, f)
	return nil
}

func (e *keyExtractor) importsFtlcat(file *ast.File) bool {
	for _, imp := range file.Imports {
		if imp.Path == nil {
			continue
		}
		if strings.Trim(imp.Path.Value, `"`) == e.ftlcatImport {
			return true
		}
	}
	return false
}

func (e *keyExtractor) Visit(node ast.Node) ast.Visitor {
	call, ok := node.(*ast.CallExpr)
	if !ok {
		return e
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return e
	}
	idx, ok := e.methodArgIdx[sel.Sel.Name]
	if !ok {
		return e
	}
	if idx >= len(call.Args) {
		return e
	}
	key := e.extractString(call.Args[idx])
	if key != "" {
		e.keys[key] = struct{}{}
	}
	return e
}

func (e *keyExtractor) extractString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.BasicLit:
		if t.Kind == token.STRING {
			s, _ := unquote(t.Value)
			return s
		}
	case *ast.BinaryExpr:
		if t.Op == token.ADD {
			return e.extractString(t.X) + e.extractString(t.Y)
		}
	}
	return ""
}

func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' {
		return s, nil
	}
	// Simple unquote: strip quotes and handle \"
	var b strings.Builder
	for i := 1; i < len(s)-1; i++ {
		if s[i] == '\\' && i+1 < len(s)-1 {
			i++
			if s[i] == '"' {
				b.WriteByte('"')
			} else {
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String(), nil
}

func (e *keyExtractor) sortedKeys() []string {
	out := make([]string, 0, len(e.keys))
	for k := range e.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func runExtract(cfg *extractConfig) error {
	excludeSet := make(map[string]struct{})
	for _, d := range strings.Split(cfg.excludeDirs, ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			excludeSet[d] = struct{}{}
		}
	}
	ext := newKeyExtractor(cfg.ftlcatPkg)
	for _, path := range cfg.paths {
		path = filepath.Clean(path)
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() {
					if _, skip := excludeSet[info.Name()]; skip {
						return filepath.SkipDir
					}
					return nil
				}
				return extractOne(ext, cfg, p)
			})
			if err != nil {
				return err
			}
			continue
		}
		if err := extractOne(ext, cfg, path); err != nil {
			return err
		}
	}

	if cfg.source != "" {
		return runExtractSync(cfg, ext.sortedKeys())
	}

	out := os.Stdout
	if cfg.out != "" {
		f, err := os.Create(cfg.out)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	for _, key := range ext.sortedKeys() {
		fmt.Fprintln(out, key)
	}
	return nil
}

func extractOne(ext *keyExtractor, cfg *extractConfig, path string) error {
	if !strings.HasSuffix(path, ".go") {
		return nil
	}
	if !cfg.includeTests && strings.HasSuffix(path, "_test.go") {
		return nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return ext.extractFromFile(path, src)
}
