package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/statictable/pkg/store"
)

func TestImportListRemove(t *testing.T) {
	c, err := store.Load(store.PathConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	path := filepath.Join(t.TempDir(), "inbox.yaml")
	if err := os.WriteFile(path, []byte("data:\n  - cell.textLabel.text: hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := (&Import{Catalog: c, Path: path}).Do(ctx); err != nil {
		t.Fatalf("import: %v", err)
	}
	metas := c.List(ctx, "")
	if len(metas) != 1 || metas[0].Name != "inbox" || metas[0].Source != path {
		t.Fatalf("expected inbox to be imported, got %+v", metas)
	}
	if err := (&List{Catalog: c, JSON: true}).Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}

	err = (&Remove{Catalog: c, Names: []string{"inbox", "missing"}}).Do(ctx)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected the missing name to be reported, got %v", err)
	}
	if len(c.List(ctx, "")) != 0 {
		t.Fatalf("expected inbox to be removed")
	}
}

func TestImportRejectsInvalidDocuments(t *testing.T) {
	c, err := store.Load(store.PathConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("style: plain\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := (&Import{Catalog: c, Path: path}).Do(context.Background()); err == nil {
		t.Fatalf("expected a document without data to be rejected")
	}
}

func TestListSinceDropsOlderDocuments(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	metas := []store.Meta{
		{Name: "fresh", Updated: now.Add(-time.Hour)},
		{Name: "stale", Updated: now.Add(-72 * time.Hour)},
		{Name: "unknown"},
	}
	got := updatedAfter(metas, now.Add(-24*time.Hour))
	if len(got) != 1 || got[0].Name != "fresh" {
		t.Fatalf("expected only fresh, got %+v", got)
	}
}
