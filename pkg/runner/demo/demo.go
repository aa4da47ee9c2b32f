// Package demo holds the built-in settings document used by
// `statictable demo`.
package demo

import (
	_ "embed"

	"tableflip.dev/statictable/pkg/descriptor"
)

// Name is the catalog name the demo is shown and imported under.
const Name = "demo"

//go:embed demo.yaml
var source []byte

// Source returns the raw demo document.
func Source() []byte {
	out := make([]byte, len(source))
	copy(out, source)
	return out
}

// Document parses the demo document.
func Document() *descriptor.Document {
	doc, err := descriptor.Parse(source)
	if err != nil {
		panic("demo: " + err.Error())
	}
	return doc
}

// Load implements app.Loader for the demo; source is ignored.
func Load(string) (*descriptor.Document, error) {
	return descriptor.Parse(source)
}
