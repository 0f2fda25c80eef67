package ftlcat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"

	"github.com/flashdeck/ftlcat/internal/placeholder"
)

//go:generate mockgen -source=$GOFILE -package mock_ftlcat -destination=test/mock/$GOFILE

const (
	catalogFileSuffix = ".ftl"
	overflowStatKey   = "__overflow__"
)

// Observer receives store events asynchronously. Events are delivered by a
// single worker goroutine; a slow or panicking observer causes events to be
// dropped and counted, never lookups to block or crash.
type Observer interface {
	OnLocaleFallback(requestedLocale string, resolvedLocale string)
	OnLocaleMissing(locale string)
	OnKeyMissing(locale string, key string)
	OnPlaceholderIssue(locale string, key string, issue string)
}

type observerEventType int

const (
	observerEventLocaleFallback observerEventType = iota
	observerEventLocaleMissing
	observerEventKeyMissing
	observerEventPlaceholderIssue
)

type observerEvent struct {
	kind      observerEventType
	requested string
	resolved  string
	locale    string
	key       string
	issue     string
}

type storeStats struct {
	mu                sync.Mutex
	localeFallbacks   map[string]int
	missingLocales    map[string]int
	missingKeys       map[string]int
	placeholderIssues map[string]int
	droppedEvents     map[string]int
	reloadFailures    int
	maxKeys           int
	lastReloadAt      time.Time
}

func sanitizeStatKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "unknown"
	}
	if len(key) > 120 {
		return key[:120]
	}
	return key
}

func (s *storeStats) increment(target map[string]int, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if target == nil {
		return
	}
	key = sanitizeStatKey(key)
	if s.maxKeys > 0 {
		if _, exists := target[key]; !exists {
			if _, hasOverflow := target[overflowStatKey]; hasOverflow {
				if len(target) >= s.maxKeys {
					key = overflowStatKey
				}
			} else if len(target) >= s.maxKeys-1 {
				key = overflowStatKey
			}
		}
	}
	target[key]++
}

func (s *storeStats) incrementLocaleFallback(requestedLocale string, resolvedLocale string) {
	s.increment(s.localeFallbacks, fmt.Sprintf("%s->%s", requestedLocale, resolvedLocale))
}

func (s *storeStats) incrementMissingLocale(locale string) {
	s.increment(s.missingLocales, locale)
}

func (s *storeStats) incrementMissingKey(locale string, key string) {
	s.increment(s.missingKeys, fmt.Sprintf("%s:%s", locale, key))
}

func (s *storeStats) incrementPlaceholderIssue(locale string, key string, issue string) {
	s.increment(s.placeholderIssues, fmt.Sprintf("%s:%s:%s", locale, key, issue))
}

func (s *storeStats) incrementDroppedEvent(reason string) {
	s.increment(s.droppedEvents, reason)
}

func (s *storeStats) incrementReloadFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloadFailures++
}

func (s *storeStats) setLastReloadAt(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastReloadAt = t
}

func (s *storeStats) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.localeFallbacks = map[string]int{}
	s.missingLocales = map[string]int{}
	s.missingKeys = map[string]int{}
	s.placeholderIssues = map[string]int{}
	s.droppedEvents = map[string]int{}
	s.reloadFailures = 0
	s.lastReloadAt = time.Time{}
}

func (s *storeStats) snapshot() StoreStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	copyMap := func(input map[string]int) map[string]int {
		output := make(map[string]int, len(input))
		for k, v := range input {
			output[k] = v
		}
		return output
	}

	return StoreStats{
		LocaleFallbacks:   copyMap(s.localeFallbacks),
		MissingLocales:    copyMap(s.missingLocales),
		MissingKeys:       copyMap(s.missingKeys),
		PlaceholderIssues: copyMap(s.placeholderIssues),
		DroppedEvents:     copyMap(s.droppedEvents),
		ReloadFailures:    s.reloadFailures,
		LastReloadAt:      s.lastReloadAt,
	}
}

type localeSet struct {
	catalogs map[string]*Catalog
}

// Store holds one Catalog per loaded locale and answers render-time lookups
// for the embedding UI. The whole catalog set sits behind an atomic pointer:
// reload and locale switching replace it wholesale, so concurrent readers
// never observe a partially-updated catalog and take no locks.
type Store struct {
	cfg   Config
	set   atomic.Pointer[localeSet]
	stats storeStats

	// observerCh is set once during construction and never reassigned, so
	// the lock-free lookup path may read it; observerClosed flags shutdown.
	mu             sync.Mutex // observer worker lifecycle
	observerCh     chan observerEvent
	observerDone   chan struct{}
	observerClosed atomic.Bool
}

// NewStore loads every <locale>.ftl file under cfg.ResourcePath and returns
// a ready Store. A broken catalog fails construction: a catalog with parse
// or duplicate-key defects should not ship.
func NewStore(cfg Config) (*Store, error) {
	if cfg.CtxLocaleKey == "" {
		cfg.CtxLocaleKey = "locale"
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}
	if cfg.NowFn == nil {
		cfg.NowFn = time.Now
	}
	if cfg.ObserverBuffer <= 0 {
		cfg.ObserverBuffer = 1024
	}
	if cfg.StatsMaxKeys <= 0 {
		cfg.StatsMaxKeys = 512
	}
	if cfg.ReloadRetries < 0 {
		cfg.ReloadRetries = 0
	}
	if cfg.ReloadRetryDelay <= 0 {
		cfg.ReloadRetryDelay = 50 * time.Millisecond
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 100 * time.Millisecond
	}

	store := &Store{
		cfg: cfg,
		stats: storeStats{
			localeFallbacks:   map[string]int{},
			missingLocales:    map[string]int{},
			missingKeys:       map[string]int{},
			placeholderIssues: map[string]int{},
			droppedEvents:     map[string]int{},
			maxKeys:           cfg.StatsMaxKeys,
		},
	}
	if err := store.load(); err != nil {
		return nil, err
	}
	store.startObserverWorker()

	return store, nil
}

func (s *Store) resourcePath() string {
	if s.cfg.ResourcePath == "" {
		return "./resources/locales"
	}
	return s.cfg.ResourcePath
}

func (s *Store) readCatalogs() (map[string]*Catalog, error) {
	resourcePath := s.resourcePath()
	files, err := os.ReadDir(resourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to find catalogs: %w", err)
	}

	var opts []ParseOption
	if s.cfg.DuplicateLastWins {
		opts = append(opts, LastWins())
	}

	catalogs := map[string]*Catalog{}
	for _, file := range files {
		fileName := file.Name()
		if !strings.HasSuffix(fileName, catalogFileSuffix) {
			continue
		}
		locale := normalizeLocaleTag(strings.TrimSuffix(fileName, catalogFileSuffix))
		catalog, err := ParseFile(filepath.Join(resourcePath, fileName), opts...)
		if err != nil {
			return nil, err
		}
		catalogs[locale] = catalog
	}

	return catalogs, nil
}

func (s *Store) readCatalogsWithRetry() (map[string]*Catalog, error) {
	retries := s.cfg.ReloadRetries
	if retries < 0 {
		retries = 0
	}
	delay := s.cfg.ReloadRetryDelay
	if delay <= 0 {
		delay = 50 * time.Millisecond
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		catalogs, err := s.readCatalogs()
		if err == nil {
			return catalogs, nil
		}
		lastErr = err
		if attempt < retries {
			time.Sleep(delay)
		}
	}

	return nil, lastErr
}

func (s *Store) load() error {
	catalogs, err := s.readCatalogsWithRetry()
	if err != nil {
		return err
	}

	s.set.Store(&localeSet{catalogs: catalogs})
	s.stats.setLastReloadAt(s.cfg.NowFn())

	return nil
}

// Reload re-reads every catalog file and swaps the new set in atomically.
// On failure the previous set stays active and the failure is counted.
func (s *Store) Reload() error {
	if err := s.load(); err != nil {
		s.stats.incrementReloadFailure()
		return err
	}
	return nil
}

// normalizeLocaleTag canonicalizes a locale tag via BCP 47 parsing when
// possible ("es_MX" -> "es-mx"). Tags that do not parse are only lowercased
// so a misnamed catalog file still resolves consistently.
func normalizeLocaleTag(locale string) string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return ""
	}
	if tag, err := language.Parse(locale); err == nil {
		return strings.ToLower(tag.String())
	}
	return strings.ToLower(locale)
}

func baseLocaleTag(locale string) string {
	if idx := strings.Index(locale, "-"); idx > 0 {
		return locale[:idx]
	}
	return locale
}

func appendLocaleIfMissing(target *[]string, seen map[string]struct{}, locale string) {
	if locale == "" {
		return
	}
	if _, exists := seen[locale]; exists {
		return
	}
	seen[locale] = struct{}{}
	*target = append(*target, locale)
}

func safeObserverCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

func (s *Store) startObserverWorker() {
	if s.cfg.Observer == nil || s.observerCh != nil {
		return
	}
	s.observerCh = make(chan observerEvent, s.cfg.ObserverBuffer)
	s.observerDone = make(chan struct{})
	go func() {
		defer close(s.observerDone)
		for evt := range s.observerCh {
			switch evt.kind {
			case observerEventLocaleFallback:
				safeObserverCall(func() {
					s.cfg.Observer.OnLocaleFallback(evt.requested, evt.resolved)
				})
			case observerEventLocaleMissing:
				safeObserverCall(func() {
					s.cfg.Observer.OnLocaleMissing(evt.locale)
				})
			case observerEventKeyMissing:
				safeObserverCall(func() {
					s.cfg.Observer.OnKeyMissing(evt.locale, evt.key)
				})
			case observerEventPlaceholderIssue:
				safeObserverCall(func() {
					s.cfg.Observer.OnPlaceholderIssue(evt.locale, evt.key, evt.issue)
				})
			}
		}
	}()
}

func (s *Store) stopObserverWorker() {
	if s.observerCh == nil || s.observerClosed.Load() {
		return
	}
	s.observerClosed.Store(true)
	close(s.observerCh)
	<-s.observerDone
}

func (s *Store) publishObserverEvent(evt observerEvent) {
	if s.cfg.Observer == nil || s.observerCh == nil {
		return
	}
	if s.observerClosed.Load() {
		s.stats.incrementDroppedEvent("observer_closed")
		return
	}
	// A publish racing the close can still hit the closed channel; the
	// recover turns that into a dropped-event count instead of a crash.
	defer func() {
		if recover() != nil {
			s.stats.incrementDroppedEvent("observer_closed")
		}
	}()
	select {
	case s.observerCh <- evt:
	default:
		s.stats.incrementDroppedEvent("observer_queue_full")
	}
}

func (s *Store) onLocaleFallback(requestedLocale string, resolvedLocale string) {
	s.stats.incrementLocaleFallback(requestedLocale, resolvedLocale)
	s.publishObserverEvent(observerEvent{
		kind:      observerEventLocaleFallback,
		requested: requestedLocale,
		resolved:  resolvedLocale,
	})
}

func (s *Store) onLocaleMissing(locale string) {
	s.stats.incrementMissingLocale(locale)
	s.publishObserverEvent(observerEvent{
		kind:   observerEventLocaleMissing,
		locale: locale,
	})
}

func (s *Store) onKeyMissing(locale string, key string) {
	s.stats.incrementMissingKey(locale, key)
	s.publishObserverEvent(observerEvent{
		kind:   observerEventKeyMissing,
		locale: locale,
		key:    key,
	})
}

func (s *Store) onPlaceholderIssue(locale string, key string, issue string) {
	s.stats.incrementPlaceholderIssue(locale, key, issue)
	s.publishObserverEvent(observerEvent{
		kind:   observerEventPlaceholderIssue,
		locale: locale,
		key:    key,
		issue:  issue,
	})
}

func (s *Store) resolveRequestedLocale(ctx context.Context) string {
	locale := normalizeLocaleTag(s.cfg.DefaultLocale)
	if locale == "" {
		locale = "en"
	}
	if ctx == nil {
		return locale
	}

	// Keep compatibility with callers that used plain string keys.
	if val := ctx.Value(s.cfg.CtxLocaleKey); val != nil {
		return normalizeLocaleTag(fmt.Sprintf("%v", val))
	}
	if val := ctx.Value(string(s.cfg.CtxLocaleKey)); val != nil {
		return normalizeLocaleTag(fmt.Sprintf("%v", val))
	}

	return locale
}

// resolveCatalog walks the fallback chain against a single snapshot of the
// catalog set: exact tag, base tag, configured fallbacks, default, "en".
func (s *Store) resolveCatalog(requestedLocale string) (*Catalog, string, bool, bool) {
	normalizedRequested := normalizeLocaleTag(requestedLocale)
	if normalizedRequested == "" {
		normalizedRequested = "en"
	}

	candidates := make([]string, 0, 6)
	seen := map[string]struct{}{}
	appendLocaleIfMissing(&candidates, seen, normalizedRequested)
	appendLocaleIfMissing(&candidates, seen, baseLocaleTag(normalizedRequested))
	for _, locale := range s.cfg.FallbackLocales {
		appendLocaleIfMissing(&candidates, seen, normalizeLocaleTag(locale))
	}
	appendLocaleIfMissing(&candidates, seen, normalizeLocaleTag(s.cfg.DefaultLocale))
	appendLocaleIfMissing(&candidates, seen, "en")

	set := s.set.Load()
	for _, candidate := range candidates {
		if catalog, found := set.catalogs[candidate]; found {
			return catalog, candidate, true, candidate != normalizedRequested
		}
	}

	return nil, normalizedRequested, false, false
}

func (s *Store) formatValue(locale string, key string, value string, vars map[string]string) string {
	return placeholder.Replace(value, func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}, func(name string, token string) string {
		s.onPlaceholderIssue(locale, key, "missing_var_"+name)
		if s.cfg.StrictPlaceholders {
			return "<missing:" + name + ">"
		}
		return token
	})
}

// Text resolves key for the given locale. It never fails: a missing locale
// or key is recorded and the raw key is returned as a visible fallback, so
// the defect is noticeable in the UI but non-fatal.
func (s *Store) Text(locale string, key string, vars map[string]string) string {
	catalog, resolved, found, fellBack := s.resolveCatalog(locale)
	if !found {
		s.onLocaleMissing(normalizeLocaleTag(locale))
		return key
	}
	if fellBack {
		s.onLocaleFallback(normalizeLocaleTag(locale), resolved)
	}

	value, err := catalog.Lookup(key)
	if err != nil {
		s.onKeyMissing(resolved, key)
		return key
	}

	return s.formatValue(resolved, key, value, vars)
}

// TextWithCtx is Text with the locale taken from ctx via Config.CtxLocaleKey.
func (s *Store) TextWithCtx(ctx context.Context, key string, vars map[string]string) string {
	return s.Text(s.resolveRequestedLocale(ctx), key, vars)
}

// Catalog returns the catalog loaded for exactly the given locale tag.
func (s *Store) Catalog(locale string) (*Catalog, bool) {
	set := s.set.Load()
	catalog, found := set.catalogs[normalizeLocaleTag(locale)]
	return catalog, found
}

// Locales returns the loaded locale tags, sorted.
func (s *Store) Locales() []string {
	set := s.set.Load()
	locales := make([]string, 0, len(set.catalogs))
	for locale := range set.catalogs {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

func (s *Store) SnapshotStats() StoreStats {
	return s.stats.snapshot()
}

func (s *Store) ResetStats() {
	s.stats.reset()
}

// Close stops the observer worker. The store remains usable for lookups;
// further events are only counted in stats.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopObserverWorker()
}
