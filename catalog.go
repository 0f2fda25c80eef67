package ftlcat

import (
	"bufio"
	"fmt"
	"io"

	"github.com/flashdeck/ftlcat/internal/placeholder"
)

// Catalog is an immutable mapping from message keys to localized display
// strings for one locale. Insertion order is preserved for serialization;
// lookup is by key. A Catalog is safe for concurrent readers because nothing
// mutates it after construction; replacing strings means building a new
// Catalog and swapping it in wholesale.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// New builds a catalog from entries given in code, applying the same
// invariants as the parser: keys must be non-empty and unique.
func New(entries []Entry) (*Catalog, error) {
	catalog := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, entry := range entries {
		if entry.Key == "" {
			return nil, &ParseError{Line: entry.Line, Text: entry.Value}
		}
		if prev, exists := catalog.index[entry.Key]; exists {
			return nil, &DuplicateKeyError{Key: entry.Key, FirstLine: catalog.entries[prev].Line, Line: entry.Line}
		}
		catalog.index[entry.Key] = len(catalog.entries)
		catalog.entries = append(catalog.entries, entry)
	}
	return catalog, nil
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

func (c *Catalog) Has(key string) bool {
	_, found := c.index[key]
	return found
}

// Keys returns every key in insertion order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, entry := range c.entries {
		keys[i] = entry.Key
	}
	return keys
}

// Entries returns a copy of the catalog entries in insertion order.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Lookup returns the value for key exactly as written in the source, or
// MissingKeyError when the catalog does not define it.
func (c *Catalog) Lookup(key string) (string, error) {
	idx, found := c.index[key]
	if !found {
		return "", &MissingKeyError{Key: key}
	}
	return c.entries[idx].Value, nil
}

// Format looks up key and substitutes { $name } placeholder tokens from
// vars. Unknown variables are left in place; the Store layers the strict
// policy and issue reporting on top of this.
func (c *Catalog) Format(key string, vars map[string]string) (string, error) {
	value, err := c.Lookup(key)
	if err != nil {
		return "", err
	}
	return placeholder.Replace(value, func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}, nil), nil
}

// Serialize writes the catalog back out in the key = value grammar, emitting
// a [section] marker whenever the section changes. Parsing the output yields
// a catalog with identical key to value mappings and sections.
func (c *Catalog) Serialize(w io.Writer) error {
	bw := bufio.NewWriter(w)
	section := ""
	for i, entry := range c.entries {
		if entry.Section != section {
			if i > 0 {
				if _, err := bw.WriteString("\n"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(bw, "[%s]\n", entry.Section); err != nil {
				return err
			}
			section = entry.Section
		}
		if entry.Value == "" {
			if _, err := fmt.Fprintf(bw, "%s =\n", entry.Key); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s = %s\n", entry.Key, entry.Value); err != nil {
			return err
		}
	}
	return bw.Flush()
}
