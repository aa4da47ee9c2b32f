package printers

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/statictable/pkg/store"
)

// Catalog prints one line per stored document.
func (pp *PrettyPrint) Catalog(metas []store.Meta) {
	if len(metas) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Title"), bold.Sprint("Style"),
		bold.Sprint("Sections"), bold.Sprint("Rows"), bold.Sprint("Updated"))
	for _, m := range metas {
		updated := ""
		if !m.Updated.IsZero() {
			updated = m.Updated.Local().Format("2006-01-02 15:04")
		}
		tbl.AddRow(m.Name, m.Title, faint.Sprint(m.Style),
			strconv.Itoa(m.Sections), strconv.Itoa(m.Rows), faint.Sprint(updated))
	}
	tbl.RightAlign(3)
	tbl.RightAlign(4)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
