package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/statictable/pkg/descriptor"
)

// ErrNotFound is returned for names the catalog does not hold.
var ErrNotFound = errors.New("store: document not found")

// Catalog is a named library of table documents.
type Catalog interface {
	Save(name string, doc *descriptor.Document, source string) error
	Load(name string) (*descriptor.Document, error)
	List(ctx context.Context, prefix string) []Meta
	Delete(name string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Meta summarizes a stored document.
type Meta struct {
	Name     string    `json:"name"`
	Title    string    `json:"title,omitempty"`
	Style    string    `json:"style"`
	Sections int       `json:"sections"`
	Rows     int       `json:"rows"`
	Source   string    `json:"source,omitempty"`
	Updated  time.Time `json:"updated"`
}

// Load opens the catalog described by cfg. A nil cfg reads the config with
// LoadConfig.
func Load(cfg Config) (Catalog, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &catalog{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, now: time.Now}, nil
}

type catalog struct {
	d        *diskv.Diskv
	basePath string
	now      func() time.Time
}

func (c *catalog) Save(name string, doc *descriptor.Document, source string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("store: document name required")
	}
	if doc == nil {
		return errors.New("store: document required")
	}
	data, err := doc.YAML()
	if err != nil {
		return err
	}
	if err := c.d.Write(name, data); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}

	index, err := c.loadIndex()
	if err != nil {
		return fmt.Errorf("store: load catalog index: %w", err)
	}
	index[name] = metaFor(name, doc, source, c.now())
	if err := c.saveIndex(index); err != nil {
		return fmt.Errorf("store: save catalog index: %w", err)
	}
	return nil
}

func (c *catalog) Load(name string) (*descriptor.Document, error) {
	name = strings.TrimSpace(name)
	if name == "" || !c.d.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	data, err := c.d.Read(name)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", name, err)
	}
	doc, err := descriptor.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("store: %s: %w", name, err)
	}
	return doc, nil
}

func (c *catalog) Delete(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || !c.d.Has(name) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err := c.d.Erase(name); err != nil {
		return fmt.Errorf("store: erase %s: %w", name, err)
	}
	index, err := c.loadIndex()
	if err != nil {
		return fmt.Errorf("store: load catalog index: %w", err)
	}
	delete(index, name)
	if err := c.saveIndex(index); err != nil {
		return fmt.Errorf("store: save catalog index: %w", err)
	}
	return nil
}

// List returns the stored documents whose names start with prefix, sorted
// by name. Documents written without the index are summarized on the fly.
func (c *catalog) List(ctx context.Context, prefix string) []Meta {
	all, err := c.loadIndex()
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: load catalog index: %v\n", err)
		all = make(map[string]Meta)
	}

	present := make(map[string]bool)
	for key := range c.d.Keys(ctx.Done()) {
		if key == "" {
			continue
		}
		present[key] = true
		if _, ok := all[key]; ok {
			continue
		}
		doc, err := c.Load(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all[key] = metaFor(key, doc, "", time.Time{})
	}

	list := make([]Meta, 0, len(all))
	for name, meta := range all {
		if !present[name] {
			continue
		}
		if prefix == "" || strings.HasPrefix(name, prefix) {
			list = append(list, meta)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func metaFor(name string, doc *descriptor.Document, source string, updated time.Time) Meta {
	sections, rows := doc.Stats()
	return Meta{
		Name:     name,
		Title:    doc.Title,
		Style:    doc.TableStyle().String(),
		Sections: sections,
		Rows:     rows,
		Source:   source,
		Updated:  updated,
	}
}

const (
	documentsDir     = "documents"
	catalogIndexFile = ".catalog.json"
)

func (c *catalog) indexPath() string {
	return filepath.Join(c.basePath, catalogIndexFile)
}

func (c *catalog) loadIndex() (map[string]Meta, error) {
	if err := os.MkdirAll(c.basePath, 0o755); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]Meta), nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return make(map[string]Meta), nil
	}
	var list []Meta
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	index := make(map[string]Meta, len(list))
	for _, meta := range list {
		name := strings.TrimSpace(meta.Name)
		if name == "" {
			continue
		}
		meta.Name = name
		index[name] = meta
	}
	return index, nil
}

func (c *catalog) saveIndex(idx map[string]Meta) error {
	if err := os.MkdirAll(c.basePath, 0o755); err != nil {
		return err
	}
	list := make([]Meta, 0, len(idx))
	for name, meta := range idx {
		if meta.Name == "" {
			meta.Name = name
		}
		list = append(list, meta)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	path := c.indexPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Documents live under documents/ with their names base64 encoded so any
// name is a valid file name.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{documentsDir},
		FileName: encodeName(key),
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) != 1 || pathKey.Path[0] != documentsDir {
		return ""
	}
	return decodeName(pathKey.FileName)
}

func encodeName(name string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(name))
}

func decodeName(s string) string {
	name, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return ""
	}
	return string(name)
}
