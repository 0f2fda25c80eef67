package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flashdeck/ftlcat"
	"github.com/flashdeck/ftlcat/internal/placeholder"
)

// lintConfig holds flags for the lint command.
type lintConfig struct {
	dir    string
	source string
}

func usageLint(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `usage: ftlcat lint [options]

Lint parses every *.ftl catalog under -dir and reports parse errors and
duplicate keys with file and line. With -source set to the source locale
(e.g. en), every other catalog is also checked for keys missing from or
absent in the source, and for placeholder variables that disagree with the
source entry. Exits nonzero when any defect is found, so a broken catalog
does not ship.

Flags:
`)
	fs.PrintDefaults()
}

func newLintFlagSet(cfg *lintConfig) *flag.FlagSet {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	fs.Usage = func() { usageLint(fs) }
	fs.StringVar(&cfg.dir, "dir", ".", "Directory containing <locale>.ftl catalogs.")
	fs.StringVar(&cfg.source, "source", "", "Source locale tag to cross-check the other catalogs against (e.g. en).")
	return fs
}

func parseLintFlags(args []string) (*lintConfig, error) {
	var cfg lintConfig
	fs := newLintFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runLint(cfg *lintConfig) error {
	entries, err := os.ReadDir(cfg.dir)
	if err != nil {
		return err
	}

	catalogs := map[string]*ftlcat.Catalog{}
	defects := 0
	var locales []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".ftl") {
			continue
		}
		locale := strings.TrimSuffix(name, ".ftl")
		catalog, err := ftlcat.ParseFile(filepath.Join(cfg.dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			defects++
			continue
		}
		catalogs[locale] = catalog
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	if cfg.source != "" {
		source, found := catalogs[cfg.source]
		if !found {
			return fmt.Errorf("lint: source catalog %s.ftl not found in %s", cfg.source, cfg.dir)
		}
		for _, locale := range locales {
			if locale == cfg.source {
				continue
			}
			defects += crossCheck(cfg.dir, cfg.source, source, locale, catalogs[locale])
		}
	}

	if defects > 0 {
		return fmt.Errorf("lint: %d defect(s)", defects)
	}
	return nil
}

// crossCheck reports keys and placeholder variables that drifted between the
// source catalog and a translation.
func crossCheck(dir string, sourceLocale string, source *ftlcat.Catalog, locale string, target *ftlcat.Catalog) int {
	defects := 0
	targetPath := filepath.Join(dir, locale+".ftl")

	for _, entry := range source.Entries() {
		value, err := target.Lookup(entry.Key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: key %q missing (defined in %s.ftl line %d)\n", targetPath, entry.Key, sourceLocale, entry.Line)
			defects++
			continue
		}
		sourceVars := placeholder.Names(entry.Value)
		targetVars := placeholder.Names(value)
		if !sameNames(sourceVars, targetVars) {
			fmt.Fprintf(os.Stderr, "%s: key %q placeholders %v disagree with source %v\n", targetPath, entry.Key, targetVars, sourceVars)
			defects++
		}
	}
	for _, key := range target.Keys() {
		if !source.Has(key) {
			fmt.Fprintf(os.Stderr, "%s: key %q not defined in source %s.ftl\n", targetPath, key, sourceLocale)
			defects++
		}
	}
	return defects
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, name := range a {
		seen[name] = struct{}{}
	}
	for _, name := range b {
		if _, ok := seen[name]; !ok {
			return false
		}
	}
	return true
}
