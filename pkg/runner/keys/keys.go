// Package keys prints the descriptor vocabulary.
package keys

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/statictable/pkg/cell"
	"tableflip.dev/statictable/pkg/table"
)

// Keys prints the item, section and per-class cell property keys.
type Keys struct {
	// Class limits the cell properties to one class.
	Class string
}

// Do renders the vocabulary to stdout.
func (k *Keys) Do(ctx context.Context) error {
	f := table.DefaultFactory()
	classes := f.ClassNames()
	if k.Class != "" {
		if f.Class(k.Class) == nil {
			return fmt.Errorf("unknown class %q, want one of %s", k.Class, strings.Join(classes, ", "))
		}
		classes = []string{k.Class}
	}

	_, _ = fmt.Fprintln(color.Output, "")
	k.Key(ctx, "Item keys", table.ItemKeys(), nil)
	_, _ = fmt.Fprintln(color.Output, "")
	k.Key(ctx, "Section keys", table.SectionKeys(), nil)

	for _, name := range classes {
		_, _ = fmt.Fprintln(color.Output, "")
		class := f.Class(name)
		k.Key(ctx, name+" cell keys", class.Schema.Keys(), valueHints)
	}

	_, _ = fmt.Fprintln(color.Output, "")
	names := cell.DefaultCatalog().Names()
	sort.Strings(names)
	k.Images(ctx, names)
	_, _ = fmt.Fprintln(color.Output, "")
	return nil
}

// Key renders one list of keys; hints adds a second column when set.
func (k *Keys) Key(_ context.Context, title string, keys []string, hints []hint) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(title), bold.Sprint("Values"))
	for _, key := range keys {
		tbl.AddRow(key, faint.Sprint(hintFor(key, hints)))
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Images renders the built-in image names with their glyphs.
func (k *Keys) Images(_ context.Context, names []string) {
	bold := color.New(color.Bold)
	catalog := cell.DefaultCatalog()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Glyph"), bold.Sprint("Image name"))
	for _, name := range names {
		img, _ := catalog.Image(name)
		tbl.AddRow(img.Glyph, name)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}

type hint struct {
	suffix string
	values string
}

func hintFor(key string, hints []hint) string {
	for _, h := range hints {
		if strings.HasSuffix(key, h.suffix) {
			return h.values
		}
	}
	return ""
}

var valueHints = []hint{
	{".accessoryType", "none, disclosureIndicator, detailDisclosureButton, checkmark, detailButton"},
	{"Color", "#rrggbb, #rgb or an ANSI index 0-255"},
	{".textAlignment", "natural, left, center, right"},
	{".font", "bold, italic, underline, faint"},
	{"ImageName", "an image name listed below"},
	{".keyboardType", "default, asciiCapable, numberPad, decimalPad, phonePad, emailAddress, URL"},
	{".on", "true, false"},
	{".secureTextEntry", "true, false"},
	{".enabled", "true, false"},
	{".continuous", "true, false"},
	{"Value", "a number"},
	{"InLines", "a line count"},
	{".indentationLevel", "a number"},
	{".indentationWidth", "columns per level"},
}
