package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/statictable/pkg/descriptor"
	"tableflip.dev/statictable/pkg/store"
)

func useCatalog(t *testing.T) store.Catalog {
	t.Helper()
	c, err := store.Load(store.PathConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	prev := OpenCatalog
	OpenCatalog = func() (store.Catalog, error) { return c, nil }
	t.Cleanup(func() { OpenCatalog = prev })
	return c
}

func TestFilesWinOverCatalogNames(t *testing.T) {
	c := useCatalog(t)
	doc, _ := descriptor.Parse([]byte("title: stored\ndata: []\n"))
	if err := c.Save("table.yaml", doc, ""); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "table.yaml")
	if err := os.WriteFile(path, []byte("title: file\ndata: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Resolve(path)
	if err != nil || !s.IsFile() {
		t.Fatalf("expected a file source, got %+v (%v)", s, err)
	}
	got, err := s.Document()
	if err != nil || got.Title != "file" {
		t.Fatalf("expected the file document, got %+v (%v)", got, err)
	}

	s, err = Resolve("table.yaml")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.IsFile() {
		// The working directory has no table.yaml; the catalog answers.
		t.Fatalf("expected a catalog source")
	}
	got, err = s.Document()
	if err != nil || got.Title != "stored" {
		t.Fatalf("expected the catalog document, got %+v (%v)", got, err)
	}
}

func TestUnknownNames(t *testing.T) {
	useCatalog(t)
	s, err := Resolve("nope")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := s.Document(); err == nil || !strings.Contains(err.Error(), "neither a file nor a catalog document") {
		t.Fatalf("expected a lookup error, got %v", err)
	}
}
