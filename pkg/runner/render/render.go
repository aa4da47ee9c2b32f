// Package render writes a table document to stdout without a terminal UI.
package render

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/statictable/pkg/descriptor"
	"tableflip.dev/statictable/pkg/printers"
	"tableflip.dev/statictable/pkg/runner/source"
)

// Render prints a document as text or re-encodes it as JSON.
type Render struct {
	Source    string
	JSON      bool
	ShowPaths bool

	// Load overrides source resolution, used by the demo.
	Load func(string) (*descriptor.Document, error)
}

// Do prints the document.
func (p *Render) Do(ctx context.Context) error {
	load := p.Load
	if load == nil {
		src, err := source.Resolve(p.Source)
		if err != nil {
			return err
		}
		load = src.Load
	}
	doc, err := load(p.Source)
	if err != nil {
		return err
	}

	if p.JSON {
		b, err := doc.JSON()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}

	pp := printers.NewPrettyPrint()
	pp.ShowPaths = p.ShowPaths
	if doc.Title != "" {
		pp.Title(doc.Title)
		pp.NewLine()
	}
	pp.Table(doc.Controller())
	return nil
}
