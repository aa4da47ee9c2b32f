// Package source resolves the document argument of the CLI: a file path
// when one exists, a catalog name otherwise.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/statictable/pkg/descriptor"
	"tableflip.dev/statictable/pkg/store"
)

// Source is a resolved document argument.
type Source struct {
	// Name is the argument as given.
	Name string
	// Path is set when Name is a file.
	Path string
	// Catalog is set when Name is a catalog entry, or when the catalog was
	// opened for the picker.
	Catalog store.Catalog
}

// OpenCatalog loads the configured catalog.
var OpenCatalog = func() (store.Catalog, error) {
	return store.Load(nil)
}

// Resolve looks name up as a file first and as a catalog name second. An
// empty name opens the catalog alone.
func Resolve(name string) (*Source, error) {
	if name != "" {
		if info, err := os.Stat(name); err == nil {
			if info.IsDir() {
				return nil, fmt.Errorf("source: %s is a directory", name)
			}
			return &Source{Name: name, Path: name}, nil
		}
	}
	c, err := OpenCatalog()
	if err != nil {
		return nil, err
	}
	return &Source{Name: name, Catalog: c}, nil
}

// IsFile reports whether the source is a file on disk.
func (s *Source) IsFile() bool { return s.Path != "" }

// Load reads the document called name: the file for file sources, the
// catalog entry otherwise.
func (s *Source) Load(name string) (*descriptor.Document, error) {
	if s.IsFile() && (name == s.Name || name == "") {
		return descriptor.ReadFile(s.Path)
	}
	if s.Catalog == nil {
		return nil, fmt.Errorf("%w: %q", store.ErrNotFound, name)
	}
	doc, err := s.Catalog.Load(name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%s is neither a file nor a catalog document", name)
	}
	return doc, err
}

// Document loads the source itself.
func (s *Source) Document() (*descriptor.Document, error) {
	return s.Load(s.Name)
}

// Watch streams changes of the source.
func (s *Source) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.IsFile() {
		return store.WatchFile(ctx, s.Path)
	}
	if s.Catalog == nil {
		return nil, errors.New("source: nothing to watch")
	}
	return s.Catalog.Watch(ctx)
}
