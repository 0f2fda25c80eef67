package ftlcat_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/flashdeck/ftlcat"
	"github.com/flashdeck/ftlcat/test"
	mock_ftlcat "github.com/flashdeck/ftlcat/test/mock"
)

type recordingObserver struct {
	mu                sync.Mutex
	fallbacks         []string
	missingLocales    []string
	missingKeys       []string
	placeholderIssues []string
}

func (o *recordingObserver) OnLocaleFallback(requestedLocale string, resolvedLocale string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fallbacks = append(o.fallbacks, requestedLocale+"->"+resolvedLocale)
}

func (o *recordingObserver) OnLocaleMissing(locale string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.missingLocales = append(o.missingLocales, locale)
}

func (o *recordingObserver) OnKeyMissing(locale string, key string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.missingKeys = append(o.missingKeys, fmt.Sprintf("%s:%s", locale, key))
}

func (o *recordingObserver) OnPlaceholderIssue(locale string, key string, issue string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.placeholderIssues = append(o.placeholderIssues, fmt.Sprintf("%s:%s:%s", locale, key, issue))
}

func (o *recordingObserver) snapshotFallbacks() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.fallbacks...)
}

func (o *recordingObserver) snapshotMissingKeys() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.missingKeys...)
}

const enCatalog = `# Application
app-title = Card Deck
about = About
view = View

[new-studyset-dialog]
new-studyset = New StudySet
cancel = Cancel
delete-studyset-confirm = Delete { $name }?
`

const esCatalog = `app-title = Card Deck
about = Acerca de
view = Vista

[new-studyset-dialog]
new-studyset = Nuevo StudySet
cancel = Cancelar
delete-studyset-confirm = ¿Eliminar { $name }?
`

var _ = Describe("Locale Store", func() {
	var resourceDir string
	var store *ftlcat.Store
	var ctx *test.MockContext

	writeCatalog := func(name, content string) {
		err := os.WriteFile(filepath.Join(resourceDir, name), []byte(content), 0o600)
		Expect(err).NotTo(HaveOccurred())
	}

	newStore := func(cfg ftlcat.Config) *ftlcat.Store {
		cfg.ResourcePath = resourceDir
		s, err := ftlcat.NewStore(cfg)
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	BeforeEach(func() {
		var err error
		resourceDir, err = os.MkdirTemp("", "ftlcat-suite-*")
		Expect(err).NotTo(HaveOccurred())
		writeCatalog("en.ftl", enCatalog)
		writeCatalog("es.ftl", esCatalog)

		ctx = &test.MockContext{Ctx: context.Background()}
		store = newStore(ftlcat.Config{})
	})

	AfterEach(func() {
		store.Close()
		_ = os.RemoveAll(resourceDir)
	})

	It("should resolve text in the default locale", func() {
		Expect(store.TextWithCtx(ctx, "cancel", nil)).To(Equal("Cancel"))
	})

	It("should resolve text in the context locale", func() {
		ctx.SetLocale("locale", "es")
		Expect(store.TextWithCtx(ctx, "cancel", nil)).To(Equal("Cancelar"))
	})

	It("should read the locale with a typed context key", func() {
		ctx.SetLocale(ftlcat.ContextKey("locale"), "es")
		Expect(store.TextWithCtx(ctx, "about", nil)).To(Equal("Acerca de"))
	})

	It("should fall back from a regional locale to its base", func() {
		ctx.SetLocale("locale", "es-AR")
		Expect(store.TextWithCtx(ctx, "view", nil)).To(Equal("Vista"))
	})

	It("should render the raw key for a missing key", func() {
		Expect(store.TextWithCtx(ctx, "rename-studyset", nil)).To(Equal("rename-studyset"))
	})

	It("should substitute placeholder variables", func() {
		text := store.TextWithCtx(ctx, "delete-studyset-confirm", map[string]string{"name": "Biology"})
		Expect(text).To(Equal("Delete Biology?"))
	})

	It("should count misses and fallbacks in stats", func() {
		ctx.SetLocale("locale", "es-AR")
		store.TextWithCtx(ctx, "view", nil)
		store.TextWithCtx(ctx, "rename-studyset", nil)

		stats := store.SnapshotStats()
		Expect(stats.LocaleFallbacks).To(HaveKeyWithValue("es-ar->es", 1))
		Expect(stats.MissingKeys).To(HaveKeyWithValue("es:rename-studyset", 1))
	})

	It("should deliver events to the observer asynchronously", func() {
		observer := &recordingObserver{}
		observed := newStore(ftlcat.Config{Observer: observer})
		defer observed.Close()

		observed.Text("es-MX", "view", nil)
		observed.Text("en", "rename-studyset", nil)

		Eventually(observer.snapshotFallbacks).Should(ContainElement("es-mx->es"))
		Eventually(observer.snapshotMissingKeys).Should(ContainElement("en:rename-studyset"))
	})

	It("should notify a gomock observer of missing keys", func() {
		ctrl := gomock.NewController(GinkgoT())
		defer ctrl.Finish()

		observer := mock_ftlcat.NewMockObserver(ctrl)
		observer.EXPECT().OnKeyMissing("en", "rename-studyset")

		observed := newStore(ftlcat.Config{Observer: observer})
		observed.Text("en", "rename-studyset", nil)
		// Close drains the event channel, so the expectation is satisfied
		// before ctrl.Finish runs.
		observed.Close()
	})

	It("should survive a panicking observer", func() {
		panicking := &panickingObserver{}
		observed := newStore(ftlcat.Config{Observer: panicking})
		defer observed.Close()

		Expect(func() {
			observed.Text("en", "rename-studyset", nil)
			observed.Close()
		}).NotTo(Panic())
	})

	It("should swap catalogs wholesale on reload", func() {
		writeCatalog("en.ftl", "cancel = Never mind\n")
		Expect(store.Reload()).To(Succeed())
		Expect(store.TextWithCtx(ctx, "cancel", nil)).To(Equal("Never mind"))
	})

	It("should keep the previous catalogs when reload fails", func() {
		writeCatalog("en.ftl", "broken line\n")
		Expect(store.Reload()).NotTo(Succeed())
		Expect(store.TextWithCtx(ctx, "cancel", nil)).To(Equal("Cancel"))
	})

	It("should serve concurrent readers while reloading", func() {
		const readers = 8
		const lookups = 100

		var wg sync.WaitGroup
		for i := 0; i < readers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				for j := 0; j < lookups; j++ {
					Expect(store.Text("es", "cancel", nil)).To(Equal("Cancelar"))
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer GinkgoRecover()
			for j := 0; j < 10; j++ {
				Expect(store.Reload()).To(Succeed())
			}
		}()
		wg.Wait()
	})
})

type panickingObserver struct{}

func (panickingObserver) OnLocaleFallback(requestedLocale string, resolvedLocale string) {
	panic("observer fallback")
}

func (panickingObserver) OnLocaleMissing(locale string) {
	panic("observer locale")
}

func (panickingObserver) OnKeyMissing(locale string, key string) {
	panic("observer key")
}

func (panickingObserver) OnPlaceholderIssue(locale string, key string, issue string) {
	panic("observer placeholder")
}
