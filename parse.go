package ftlcat

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseOption adjusts parser behavior.
type ParseOption func(*parseOptions)

type parseOptions struct {
	lastWins bool
}

// LastWins resolves duplicate keys to the later definition instead of
// failing with DuplicateKeyError. The entry keeps the position and section
// of its first occurrence; only the value is taken from the later line.
func LastWins() ParseOption {
	return func(o *parseOptions) {
		o.lastWins = true
	}
}

// Parse reads a catalog in the line-oriented key = value grammar.
//
// Blank lines are ignored. Lines starting with '#' are comments. A line of
// the form [name] is a section marker: it is skipped for lookup purposes and
// recorded on subsequent entries so serialization can reproduce it. Every
// other line must be key = value; the key is trimmed, the value is taken
// verbatim except for the single space that belongs to the separator.
func Parse(r io.Reader, opts ...ParseOption) (*Catalog, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	catalog := &Catalog{index: map[string]int{}}
	section := ""
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		// Any run of trailing carriage returns belongs to the line ending,
		// never to the value: a value ending in a bare CR could not be
		// serialized back without changing meaning.
		raw := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if len(trimmed) >= 2 && trimmed[0] == '[' && trimmed[len(trimmed)-1] == ']' {
			section = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			continue
		}
		sep := strings.Index(raw, "=")
		if sep < 0 {
			return nil, &ParseError{Line: line, Text: raw}
		}
		key := strings.TrimSpace(raw[:sep])
		if key == "" {
			return nil, &ParseError{Line: line, Text: raw}
		}
		// One leading space belongs to the separator; everything after it is
		// the value, intentional whitespace included.
		value := strings.TrimPrefix(raw[sep+1:], " ")

		if prev, exists := catalog.index[key]; exists {
			if !o.lastWins {
				return nil, &DuplicateKeyError{Key: key, FirstLine: catalog.entries[prev].Line, Line: line}
			}
			catalog.entries[prev].Value = value
			continue
		}
		catalog.index[key] = len(catalog.entries)
		catalog.entries = append(catalog.entries, Entry{Key: key, Value: value, Section: section, Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return catalog, nil
}

// ParseBytes parses a catalog held in memory.
func ParseBytes(data []byte, opts ...ParseOption) (*Catalog, error) {
	return Parse(bytes.NewReader(data), opts...)
}

// ParseFile parses the catalog file at path. Errors are wrapped with the
// path so defects surface as path: parse error at line N.
func ParseFile(path string, opts ...ParseOption) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	catalog, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}
