// Package descriptor reads and writes table documents. A document names the
// controller style and carries the data array that is handed to
// table.Controller.SetData.
//
//	style: grouped
//	data:
//	  - headerText: General
//	    items:
//	      - cell.textLabel.text: Wi-Fi
//	        cell.detailTextLabel.text: Home
//	        cellStyle: value1
package descriptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/statictable/pkg/table"
)

// ErrNoData is returned when a document has no data key.
var ErrNoData = errors.New("descriptor: document has no data")

// Document is a whole table description.
type Document struct {
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	Style string `yaml:"style,omitempty" json:"style,omitempty"`
	Data  []any  `yaml:"data" json:"data"`
}

// Parse decodes a YAML or JSON document.
func Parse(data []byte) (*Document, error) {
	var raw struct {
		Title string `yaml:"title"`
		Style string `yaml:"style"`
		Data  any    `yaml:"data"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("descriptor: parse: %w", err)
	}
	if raw.Data == nil {
		return nil, ErrNoData
	}
	doc := &Document{Title: raw.Title, Style: strings.TrimSpace(raw.Style)}
	switch v := normalize(raw.Data).(type) {
	case []any:
		doc.Data = v
	default:
		// A lone map describes a single section or item.
		doc.Data = []any{v}
	}
	if _, err := ParseStyle(doc.Style); err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadFile reads and parses the document at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseStyle maps a style name onto a table.Style. An empty name is plain.
func ParseStyle(s string) (table.Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return table.Plain, nil
	case "grouped":
		return table.Grouped, nil
	}
	return table.Plain, fmt.Errorf("descriptor: unknown style %q", s)
}

// TableStyle returns the document's controller style.
func (d *Document) TableStyle() table.Style {
	style, _ := ParseStyle(d.Style)
	return style
}

// Controller builds a controller loaded with the document's data.
func (d *Document) Controller(opts ...table.Option) *table.Controller {
	c := table.NewController(d.TableStyle(), opts...)
	c.SetData(d.Data)
	return c
}

// Load replaces the data of an existing controller. The controller keeps
// its style.
func (d *Document) Load(c *table.Controller) {
	c.SetData(d.Data)
}

// YAML encodes the document.
func (d *Document) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("descriptor: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON encodes the document with indentation.
func (d *Document) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("descriptor: encode: %w", err)
	}
	return b, nil
}

// Stats counts the sections and rows a document describes without
// building cells.
func (d *Document) Stats() (sections, rows int) {
	c := d.Controller()
	sections = c.NumberOfSections()
	for s := 0; s < sections; s++ {
		rows += c.NumberOfRows(s)
	}
	return sections, rows
}

// normalize turns the map[any]any values yaml produces for non-string keys
// into map[string]any so the factory can read them.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	}
	return v
}
