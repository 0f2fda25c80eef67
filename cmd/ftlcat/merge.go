package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/flashdeck/ftlcat"
)

// mergeConfig holds flags for the merge command.
type mergeConfig struct {
	source          string
	targetLocales   string
	targetDir       string
	outdir          string
	translatePrefix string
}

// translationStub is one row handed to a translator: the key, the source
// text, and the target text to fill in (pre-filled when the target catalog
// already has it).
type translationStub struct {
	Key     string `yaml:"key"`
	Section string `yaml:"section,omitempty"`
	Source  string `yaml:"source"`
	Target  string `yaml:"target"`
}

type translationFile struct {
	Locale  string            `yaml:"locale"`
	Entries []translationStub `yaml:"entries"`
}

func usageMerge(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `usage: ftlcat merge [options]

Merge produces per-locale translation stub files from a source catalog. For
each target locale, writes translate.<locale>.yaml with every key from the
source in catalog order; keys already translated in the target catalog keep
their translation, the rest get an empty target for the translator to fill.

Flags:
`)
	fs.PrintDefaults()
}

func newMergeFlagSet(cfg *mergeConfig) *flag.FlagSet {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	fs.Usage = func() { usageMerge(fs) }
	fs.StringVar(&cfg.source, "source", "", "Source catalog file (e.g. resources/locales/en.ftl). Required.")
	fs.StringVar(&cfg.targetLocales, "targetLocales", "", "Comma-separated target locale tags (e.g. es,fr).")
	fs.StringVar(&cfg.targetDir, "targetDir", "", "Directory containing target catalogs; locale inferred from filenames (e.g. es.ftl -> es).")
	fs.StringVar(&cfg.outdir, "outdir", "", "Where to write translate.<locale>.yaml (default: same dir as source).")
	fs.StringVar(&cfg.translatePrefix, "translatePrefix", "translate.", "Filename prefix for output files.")
	return fs
}

func parseMergeFlags(args []string) (*mergeConfig, error) {
	var cfg mergeConfig
	fs := newMergeFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runMerge(cfg *mergeConfig) error {
	if cfg.source == "" {
		return fmt.Errorf("merge: -source is required")
	}
	source, err := ftlcat.ParseFile(cfg.source)
	if err != nil {
		return err
	}

	targets := cfg.targetLocalesList()
	if len(targets) == 0 && cfg.targetDir != "" {
		targets, err = readTargetLocalesFromDir(cfg.targetDir, cfg.source)
		if err != nil {
			return err
		}
	}
	if len(targets) == 0 {
		return fmt.Errorf("merge: specify -targetLocales or -targetDir")
	}

	outdir := cfg.outdir
	if outdir == "" {
		outdir = filepath.Dir(cfg.source)
	}
	prefix := cfg.translatePrefix
	if prefix == "" {
		prefix = "translate."
	}

	for _, locale := range targets {
		outPath := filepath.Join(outdir, prefix+locale+".yaml")
		targetPath := filepath.Join(filepath.Dir(cfg.source), locale+".ftl")
		if cfg.targetDir != "" {
			targetPath = filepath.Join(cfg.targetDir, locale+".ftl")
		}
		// Missing or broken target catalogs are fine: every target falls
		// back to an empty translation.
		target, err := ftlcat.ParseFile(targetPath)
		if err != nil {
			target, _ = ftlcat.New(nil)
		}

		merged := translationFile{Locale: locale}
		for _, entry := range source.Entries() {
			stub := translationStub{
				Key:     entry.Key,
				Section: entry.Section,
				Source:  entry.Value,
			}
			if translated, err := target.Lookup(entry.Key); err == nil {
				stub.Target = translated
			}
			merged.Entries = append(merged.Entries, stub)
		}

		out, err := yaml.Marshal(&merged)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", locale, err)
		}
		if err := os.WriteFile(outPath, out, 0644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Fprintf(os.Stderr, "ftlcat: wrote %s\n", outPath)
	}
	return nil
}

func (c *mergeConfig) targetLocalesList() []string {
	if c.targetLocales == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(c.targetLocales, ",") {
		s = strings.TrimSpace(strings.ToLower(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func readTargetLocalesFromDir(dir, sourcePath string) ([]string, error) {
	sourceBase := filepath.Base(sourcePath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var locales []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".ftl") {
			continue
		}
		if name == sourceBase {
			continue
		}
		locale := strings.TrimSpace(strings.ToLower(strings.TrimSuffix(name, ".ftl")))
		if locale == "" {
			continue
		}
		if _, ok := seen[locale]; ok {
			continue
		}
		seen[locale] = struct{}{}
		locales = append(locales, locale)
	}
	return locales, nil
}
