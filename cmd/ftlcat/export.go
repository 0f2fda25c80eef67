package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/flashdeck/ftlcat"
	"github.com/flashdeck/ftlcat/internal/placeholder"
)

// exportConfig holds flags for the export command.
type exportConfig struct {
	source string
	dir    string
	outdir string
}

func usageExport(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `usage: ftlcat export [options]

Export converts catalogs to go-i18n v2 message files (active.<locale>.toml)
so applications built on nicksnyder/go-i18n can consume the same strings.
Placeholder tokens are rewritten from { $name } to the go-i18n template form
{{.name}}.

Flags:
`)
	fs.PrintDefaults()
}

func newExportFlagSet(cfg *exportConfig) *flag.FlagSet {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() { usageExport(fs) }
	fs.StringVar(&cfg.source, "source", "", "Single catalog file to convert (locale inferred from filename).")
	fs.StringVar(&cfg.dir, "dir", "", "Convert every *.ftl catalog under this directory.")
	fs.StringVar(&cfg.outdir, "outdir", "", "Where to write active.<locale>.toml (default: alongside the input).")
	return fs
}

func parseExportFlags(args []string) (*exportConfig, error) {
	var cfg exportConfig
	fs := newExportFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runExport(cfg *exportConfig) error {
	var paths []string
	switch {
	case cfg.source != "":
		paths = []string{cfg.source}
	case cfg.dir != "":
		entries, err := os.ReadDir(cfg.dir)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".ftl") {
				continue
			}
			paths = append(paths, filepath.Join(cfg.dir, entry.Name()))
		}
		if len(paths) == 0 {
			return fmt.Errorf("export: no *.ftl catalogs under %s", cfg.dir)
		}
	default:
		return fmt.Errorf("export: specify -source or -dir")
	}

	for _, path := range paths {
		if err := exportOne(cfg, path); err != nil {
			return err
		}
	}
	return nil
}

func exportOne(cfg *exportConfig, path string) error {
	catalog, err := ftlcat.ParseFile(path)
	if err != nil {
		return err
	}

	locale := strings.TrimSuffix(filepath.Base(path), ".ftl")
	messages := make(map[string]string, catalog.Len())
	for _, entry := range catalog.Entries() {
		messages[entry.Key] = toGoI18nTemplate(entry.Value)
	}

	out, err := toml.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", locale, err)
	}
	outdir := cfg.outdir
	if outdir == "" {
		outdir = filepath.Dir(path)
	}
	outPath := filepath.Join(outdir, "active."+locale+".toml")
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Fprintf(os.Stderr, "ftlcat: wrote %s\n", outPath)
	return nil
}

// toGoI18nTemplate rewrites { $name } tokens to go-i18n's {{.name}} form.
func toGoI18nTemplate(value string) string {
	return placeholder.Replace(value, func(name string) (string, bool) {
		return "{{." + name + "}}", true
	}, nil)
}
