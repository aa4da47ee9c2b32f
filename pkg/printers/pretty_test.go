package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/statictable/pkg/cell"
	"tableflip.dev/statictable/pkg/store"
	"tableflip.dev/statictable/pkg/table"
)

func plainPrinter(t *testing.T) (*PrettyPrint, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	var buf bytes.Buffer
	return &PrettyPrint{Out: &buf}, &buf
}

func TestTablePrintsSectionsAndControls(t *testing.T) {
	pp, buf := plainPrinter(t)
	pp.ShowPaths = true

	secret := table.NewTextFieldItem("Password", "hunter2")
	secret.SetCellProperty(cell.KeyInputSecureTextEntry, true)
	c := table.NewController(table.Grouped)
	c.SetData([]any{
		table.NewSectionWithHeader("General",
			table.NewItem(cell.StyleValue1, "Wi-Fi", "Home"),
			table.NewSwitchItem("Airplane Mode", true),
		),
		map[string]any{
			table.KeyHeaderText: "Display",
			table.KeyFooterText: "Applies to all screens",
			table.KeyItems:      []any{},
		},
		table.NewSectionWithItems(
			table.NewSliderItem("Brightness", 0, 1, 0.5),
			secret,
		),
	})

	pp.Table(c)
	out := buf.String()
	for _, want := range []string{
		"General - 2 rows", "(0,0)", "Wi-Fi", "Home", "Airplane Mode", "on",
		"Display - 0 rows", "none", "Applies to all screens",
		"Section 3", "Brightness", "0.5", "[0..1]", "•••••••",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hunter2") {
		t.Fatalf("secure text must not be printed:\n%s", out)
	}
}

func TestCatalogListsDocuments(t *testing.T) {
	pp, buf := plainPrinter(t)
	pp.Catalog(nil)
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected an empty marker, got %q", buf.String())
	}

	buf.Reset()
	pp.Catalog([]store.Meta{{
		Name: "settings", Title: "Settings", Style: "grouped", Sections: 2, Rows: 5,
		Updated: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local),
	}})
	out := buf.String()
	for _, want := range []string{"Name", "settings", "Settings", "grouped", "2024-03-01 12:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}
