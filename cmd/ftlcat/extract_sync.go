package main

import (
	"fmt"
	"os"

	"github.com/flashdeck/ftlcat"
)

// runExtractSync reads the source catalog, appends keys the code references
// but the catalog does not define (empty values, [extracted] section), and
// writes the result to cfg.out.
func runExtractSync(cfg *extractConfig, keys []string) error {
	source, err := ftlcat.ParseFile(cfg.source)
	if err != nil {
		return err
	}

	entries := source.Entries()
	added := 0
	for _, key := range keys {
		if key == "" || source.Has(key) {
			continue
		}
		entries = append(entries, ftlcat.Entry{Key: key, Section: "extracted"})
		added++
	}

	merged, err := ftlcat.New(entries)
	if err != nil {
		return fmt.Errorf("merge keys into %s: %w", cfg.source, err)
	}

	outPath := cfg.out
	if outPath == "" {
		outPath = cfg.source
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	defer f.Close()
	if err := merged.Serialize(f); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	if added > 0 {
		fmt.Fprintf(os.Stderr, "ftlcat: added %d key(s) to %s\n", added, outPath)
	}
	return nil
}
