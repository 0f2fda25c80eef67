package ftlcat_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flashdeck/ftlcat"
)

const benchFixture = `app-title = Card Deck
cancel = Cancel
delete-studyset-confirm = Delete { $name }?
`

func makeBenchStore(b *testing.B) *ftlcat.Store {
	b.Helper()
	dir := b.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "en.ftl"), []byte(benchFixture), 0o600); err != nil {
		b.Fatalf("failed to write fixture: %v", err)
	}

	store, err := ftlcat.NewStore(ftlcat.Config{ResourcePath: dir})
	if err != nil {
		b.Fatalf("failed to create store: %v", err)
	}
	b.Cleanup(store.Close)

	return store
}

func BenchmarkCatalogLookup(b *testing.B) {
	catalog, err := ftlcat.Parse(strings.NewReader(benchFixture))
	if err != nil {
		b.Fatalf("Parse: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := catalog.Lookup("cancel"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTextWithCtx(b *testing.B) {
	store := makeBenchStore(b)
	ctx := context.WithValue(context.Background(), ftlcat.ContextKey("locale"), "en")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.TextWithCtx(ctx, "cancel", nil)
	}
}

func BenchmarkTextPlaceholder(b *testing.B) {
	store := makeBenchStore(b)
	vars := map[string]string{"name": "Biology"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Text("en", "delete-studyset-confirm", vars)
	}
}

func BenchmarkParse(b *testing.B) {
	data := []byte(benchFixture)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ftlcat.ParseBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}
