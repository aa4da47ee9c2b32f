// Package printers renders tables and catalog listings for non-interactive
// output.
package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/termenv"

	"tableflip.dev/statictable/pkg/cell"
	"tableflip.dev/statictable/pkg/table"
)

// PrettyPrint writes a data source as a list of titled sections.
type PrettyPrint struct {
	Out io.Writer
	// ShowPaths prefixes every row with its section,row address.
	ShowPaths bool

	term *termenv.Output
}

// NewPrettyPrint returns a printer writing to color.Output.
func NewPrettyPrint() *PrettyPrint {
	return &PrettyPrint{Out: color.Output}
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) termOutput() *termenv.Output {
	if pp.term == nil {
		profile := termenv.Ascii
		if !color.NoColor {
			profile = termenv.EnvColorProfile()
		}
		pp.term = termenv.NewOutput(pp.out(), termenv.WithProfile(profile))
	}
	return pp.term
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " row")
	default:
		_, _ = c.Fprintln(pp.out(), " rows")
	}
}

// Table prints every section of ds with its header, rows and footer.
func (pp *PrettyPrint) Table(ds table.DataSource) {
	for s := 0; s < ds.NumberOfSections(); s++ {
		title := ds.TitleForHeader(s)
		if title == "" && ds.NumberOfSections() > 1 {
			title = fmt.Sprintf("Section %d", s+1)
		}
		if title != "" {
			pp.TitleWithCount(title, ds.NumberOfRows(s))
		}
		pp.Section(ds, s)
		if footer := ds.TitleForFooter(s); footer != "" {
			f := color.New(color.Faint, color.Italic)
			_, _ = f.Fprintln(pp.out(), footer)
		}
		pp.NewLine()
	}
}

// Section prints the rows of one section as aligned columns.
func (pp *PrettyPrint) Section(ds table.DataSource, section int) {
	rows := ds.NumberOfRows(section)
	if rows == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), " none")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	for r := 0; r < rows; r++ {
		p := table.Path(section, r)
		cl := ds.CellForRow(p)
		if cl == nil {
			continue
		}
		cols := pp.columns(cl)
		if pp.ShowPaths {
			cols = append([]any{y.Sprint(p.String())}, cols...)
		}
		tbl.AddRow(cols...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// columns flattens a cell into glyph, text, detail, control and accessory.
func (pp *PrettyPrint) columns(c cell.Cell) []any {
	b := c.Base()
	glyph := ""
	if img := b.ImageView.Image; img != nil {
		glyph = img.Glyph
	}
	indent := strings.Repeat(" ", max(0, b.IndentationLevel*b.IndentationWidth))
	text := indent + pp.paint(b.TextLabel.Text, b.TextLabel.Color, b.TextLabel.Font)
	detail := pp.paint(b.DetailTextLabel.Text, b.DetailTextLabel.Color, b.DetailTextLabel.Font)
	if b.Style == cell.StyleValue2 {
		text, detail = detail, text
	}

	control := ""
	switch ctl := c.(type) {
	case cell.SwitchHolder:
		if ctl.SwitchControl().On {
			control = color.GreenString("on")
		} else {
			control = color.New(color.Faint).Sprint("off")
		}
	case cell.SliderHolder:
		s := ctl.SliderControl()
		control = fmt.Sprintf("%s %s",
			strconv.FormatFloat(s.Value, 'f', -1, 64),
			color.New(color.Faint).Sprintf("[%g..%g]", s.MinimumValue, s.MaximumValue))
	case cell.TextInputHolder:
		in := ctl.TextInputControl()
		switch {
		case in.Text == "":
			control = color.New(color.Faint, color.Italic).Sprint(in.Placeholder)
		case in.SecureTextEntry:
			control = strings.Repeat("•", len([]rune(in.Text)))
		default:
			control = strings.ReplaceAll(in.Text, "\n", " ⏎ ")
		}
	}

	accessory := b.AccessoryView
	if accessory == "" {
		accessory = b.AccessoryType.Symbol()
	}
	return []any{glyph, text, detail, control, accessory}
}

// paint applies a cell color and font to s. Colors go through termenv so
// hex and ANSI values degrade to what the terminal supports.
func (pp *PrettyPrint) paint(s string, c cell.Color, font cell.Font) string {
	if s == "" {
		return ""
	}
	out := pp.termOutput()
	styled := out.String(s)
	if c != "" {
		styled = styled.Foreground(out.Color(string(c)))
	}
	if font.Bold {
		styled = styled.Bold()
	}
	if font.Italic {
		styled = styled.Italic()
	}
	if font.Underline {
		styled = styled.Underline()
	}
	if font.Faint {
		styled = styled.Faint()
	}
	return styled.String()
}
