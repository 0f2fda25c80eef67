package ftlcat

import "fmt"

// ParseError reports a line that does not conform to the key = value grammar.
type ParseError struct {
	Line int    // 1-based line number of the offending line
	Text string // the offending line as read, without the trailing newline
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: malformed entry %q (missing '=' separator or empty key)", e.Line, e.Text)
}

// DuplicateKeyError reports a key defined more than once within one catalog.
// Duplicate keys are a data-quality defect; callers that know their catalogs
// carry copy-paste artifacts can opt into LastWins instead.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	Line      int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q at line %d, first defined at line %d", e.Key, e.Line, e.FirstLine)
}

// MissingKeyError reports a lookup for a key the catalog does not define.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("key %q not found in catalog", e.Key)
}
