// Package catalog implements the catalog subcommands.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/statictable/pkg/descriptor"
	"tableflip.dev/statictable/pkg/printers"
	"tableflip.dev/statictable/pkg/store"
)

// Import stores a document file in the catalog.
type Import struct {
	Catalog store.Catalog
	Path    string
	// Name defaults to the file name without its extension.
	Name string
}

// Do reads, validates and stores the document.
func (i *Import) Do(_ context.Context) error {
	doc, err := descriptor.ReadFile(i.Path)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(i.Name)
	if name == "" {
		base := filepath.Base(i.Path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := i.Catalog.Save(name, doc, i.Path); err != nil {
		return err
	}
	sections, rows := doc.Stats()
	_, _ = fmt.Fprintf(color.Output, "imported %s (%d sections, %d rows)\n", color.New(color.Bold).Sprint(name), sections, rows)
	return nil
}

// Save stores an in-memory document, used to import the demo.
type Save struct {
	Catalog store.Catalog
	Name    string
	Doc     *descriptor.Document
}

// Do stores the document.
func (s *Save) Do(_ context.Context) error {
	if err := s.Catalog.Save(s.Name, s.Doc, ""); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "saved %s\n", color.New(color.Bold).Sprint(s.Name))
	return nil
}

// List prints the catalog.
type List struct {
	Catalog store.Catalog
	Prefix  string
	// Since limits the listing to documents updated within the window.
	Since time.Duration
	JSON  bool
}

// Do prints the documents as a table or as JSON.
func (l *List) Do(ctx context.Context) error {
	metas := l.Catalog.List(ctx, l.Prefix)
	if l.Since > 0 {
		metas = updatedAfter(metas, time.Now().Add(-l.Since))
	}
	if l.JSON {
		b, err := json.MarshalIndent(metas, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	printers.NewPrettyPrint().Catalog(metas)
	return nil
}

func updatedAfter(metas []store.Meta, cutoff time.Time) []store.Meta {
	kept := metas[:0]
	for _, m := range metas {
		if m.Updated.After(cutoff) {
			kept = append(kept, m)
		}
	}
	return kept
}

// Remove deletes documents from the catalog.
type Remove struct {
	Catalog store.Catalog
	Names   []string
}

// Do removes every name, reporting all failures together.
func (r *Remove) Do(_ context.Context) error {
	var errs []error
	for _, name := range r.Names {
		if err := r.Catalog.Delete(name); err != nil {
			errs = append(errs, err)
			continue
		}
		_, _ = fmt.Fprintf(color.Output, "removed %s\n", name)
	}
	return errors.Join(errs...)
}
