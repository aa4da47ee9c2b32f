package cell

import (
	"sort"
	"strings"
)

// Image is a named glyph drawn in place of a bitmap.
type Image struct {
	Name  string
	Glyph string
}

func (i *Image) String() string {
	if i == nil {
		return ""
	}
	return i.Glyph
}

// ImageResolver resolves image names at the time a property is applied.
type ImageResolver interface {
	Image(name string) (Image, bool)
}

// Catalog is a mutable name -> image table.
type Catalog struct {
	images map[string]Image
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{images: make(map[string]Image)}
}

// Register adds or replaces the glyph registered under name.
func (c *Catalog) Register(name, glyph string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	c.images[name] = Image{Name: name, Glyph: glyph}
}

// Image implements ImageResolver.
func (c *Catalog) Image(name string) (Image, bool) {
	if c == nil {
		return Image{}, false
	}
	img, ok := c.images[strings.TrimSpace(name)]
	return img, ok
}

// Names lists the registered names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.images))
	for name := range c.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultGlyphs = map[string]string{
	"checkmark":    "✓",
	"xmark":        "✗",
	"star":         "☆",
	"star.fill":    "★",
	"heart":        "♡",
	"heart.fill":   "♥",
	"gear":         "⚙",
	"info":         "ⓘ",
	"warning":      "⚠",
	"sun":          "☼",
	"moon":         "☾",
	"speaker":      "♪",
	"speaker.wave": "♫",
	"folder":       "▤",
	"person":       "☺",
	"circle":       "○",
	"circle.fill":  "●",
	"minus":        "−",
	"plus":         "+",
}

// DefaultCatalog returns a catalog preloaded with the built-in glyphs.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for name, glyph := range defaultGlyphs {
		c.Register(name, glyph)
	}
	return c
}
