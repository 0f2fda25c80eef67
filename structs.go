package ftlcat

import "time"

// ContextKey is the context value key type used to carry the request locale.
type ContextKey string

// Entry is a single catalog line: a stable key and its display text.
// Section is the [section] marker in force when the entry was parsed; it
// exists for human maintainability and serialization fidelity only and has
// no lookup semantics. Line is the 1-based line number in the source text,
// zero for entries built in code.
type Entry struct {
	Key     string
	Value   string
	Section string
	Line    int
}

type Config struct {
	// ResourcePath is the directory holding one <locale>.ftl file per locale.
	ResourcePath string
	// CtxLocaleKey is the context key TextWithCtx reads the request locale from.
	CtxLocaleKey ContextKey
	// DefaultLocale is the end of the fallback chain (before the implicit "en").
	DefaultLocale string
	// FallbackLocales are tried, in order, between the requested locale and DefaultLocale.
	FallbackLocales []string
	// DuplicateLastWins resolves duplicate keys to the later definition
	// instead of rejecting the file at load.
	DuplicateLastWins bool
	// StrictPlaceholders renders unresolved { $name } tokens as a visible
	// <missing:name> marker instead of leaving the token in place.
	StrictPlaceholders bool

	Observer       Observer
	ObserverBuffer int
	StatsMaxKeys   int

	ReloadRetries    int
	ReloadRetryDelay time.Duration
	WatchDebounce    time.Duration

	NowFn func() time.Time
}

// StoreStats is a point-in-time copy of the store counters.
type StoreStats struct {
	LocaleFallbacks   map[string]int
	MissingLocales    map[string]int
	MissingKeys       map[string]int
	PlaceholderIssues map[string]int
	DroppedEvents     map[string]int
	ReloadFailures    int
	LastReloadAt      time.Time
}
