package prompt

import (
	"errors"
	"testing"

	"tableflip.dev/statictable/pkg/store"
)

func TestDocumentSearcher(t *testing.T) {
	metas := []store.Meta{
		{Name: "work/settings", Title: "Team Settings"},
		{Name: "home", Title: "Living Room"},
	}
	search := documentSearcher(metas)
	if !search("teamset", 0) {
		t.Fatalf("expected the title to match without spaces")
	}
	if !search("WORK", 0) {
		t.Fatalf("expected a case-insensitive name match")
	}
	if search("work", 1) {
		t.Fatalf("expected home not to match work")
	}
	if !search("living room", 1) {
		t.Fatalf("expected the title with spaces to match")
	}
}

func TestPickDocumentRejectsAnEmptyCatalog(t *testing.T) {
	p := &Prompter{}
	if _, err := p.PickDocument("Open", nil); !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}
