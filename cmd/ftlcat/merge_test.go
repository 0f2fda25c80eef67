package main

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v2"
)

func TestMerge_stubsForUntranslatedKeys(t *testing.T) {
	dir := t.TempDir()
	source := []byte(`[menu-bar]
view = View
about = About

[new-studyset-dialog]
new-studyset = New StudySet
`)
	sourcePath := filepath.Join(dir, "en.ftl")
	if err := os.WriteFile(sourcePath, source, 0644); err != nil {
		t.Fatal(err)
	}
	// Partial es translation: about is done, the rest is not.
	if err := os.WriteFile(filepath.Join(dir, "es.ftl"), []byte("about = Acerca de\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &mergeConfig{
		source:        sourcePath,
		targetLocales: "es",
		outdir:        dir,
	}
	if err := runMerge(cfg); err != nil {
		t.Fatalf("runMerge: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "translate.es.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var out translationFile
	if err := yaml.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}

	if out.Locale != "es" {
		t.Errorf("Locale = %q", out.Locale)
	}
	if len(out.Entries) != 3 {
		t.Fatalf("Entries = %d, want 3", len(out.Entries))
	}
	// Source catalog order is preserved.
	if out.Entries[0].Key != "view" || out.Entries[2].Key != "new-studyset" {
		t.Errorf("entry order = %q, %q, %q", out.Entries[0].Key, out.Entries[1].Key, out.Entries[2].Key)
	}
	if out.Entries[0].Target != "" || out.Entries[0].Source != "View" {
		t.Errorf("view stub = %+v", out.Entries[0])
	}
	if out.Entries[1].Target != "Acerca de" {
		t.Errorf("about stub = %+v, want existing translation kept", out.Entries[1])
	}
	if out.Entries[2].Section != "new-studyset-dialog" {
		t.Errorf("section = %q", out.Entries[2].Section)
	}
}

func TestMerge_targetLocalesFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "en.ftl"), []byte("cancel = Cancel\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "es.ftl"), []byte("cancel = Cancelar\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fr.ftl"), []byte("cancel = Annuler\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &mergeConfig{
		source:    filepath.Join(dir, "en.ftl"),
		targetDir: dir,
		outdir:    dir,
	}
	if err := runMerge(cfg); err != nil {
		t.Fatalf("runMerge: %v", err)
	}

	for _, locale := range []string{"es", "fr"} {
		if _, err := os.Stat(filepath.Join(dir, "translate."+locale+".yaml")); err != nil {
			t.Errorf("missing output for %s: %v", locale, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "translate.en.yaml")); err == nil {
		t.Error("merge produced a stub file for the source locale")
	}
}

func TestMerge_requiresSource(t *testing.T) {
	if err := runMerge(&mergeConfig{}); err == nil {
		t.Fatal("runMerge accepted an empty config")
	}
}
