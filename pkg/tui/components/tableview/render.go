package tableview

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"tableflip.dev/statictable/pkg/cell"
	"tableflip.dev/statictable/pkg/table"
)

const sliderTrackWidth = 24

func (m *Model) renderHeader(section int, highlight bool) string {
	style := m.styles.Header
	if highlight {
		style = m.styles.HeaderActive
	}
	return style.Width(m.width).Render(m.ds.TitleForHeader(section))
}

func (m *Model) renderFooter(section int) string {
	text := wrapText(m.ds.TitleForFooter(section), m.width-2)
	for i, line := range text {
		text[i] = m.styles.Footer.Render("  " + line)
	}
	return strings.Join(text, "\n")
}

// renderRow draws one row. Only colors depend on selected, so the height
// measured with selected false holds for the highlighted rendering too.
func (m *Model) renderRow(info lineInfo, selected bool) string {
	p := info.path()
	cl := m.ds.CellForRow(p)
	if cl == nil {
		return m.styles.Empty.Render("  <missing>")
	}
	b := cl.Base()
	highlighted := (selected && m.focused) || p == m.selected

	prefix := m.composeRowPrefix(b, selected && m.focused, highlighted)
	trailer := m.renderTrailer(cl)
	available := m.width - lipgloss.Width(prefix)
	if trailer != "" {
		available -= lipgloss.Width(trailer) + 1
	}
	if available < 10 {
		available = 10
	}

	body := m.rowBody(cl, p, available, highlighted)
	padding := strings.Repeat(" ", lipgloss.Width(prefix))
	out := make([]string, 0, len(body))
	for i, line := range body {
		lead := padding
		if i == 0 {
			lead = prefix
			if trailer != "" {
				gap := available - lipgloss.Width(line)
				if gap < 0 {
					gap = 0
				}
				line += strings.Repeat(" ", gap+1) + trailer
			}
		}
		out = append(out, lead+line)
	}
	for len(out) < m.ds.HeightForRow(p) {
		out = append(out, "")
	}

	if bg := m.background(b, p); bg != "" {
		style := lipgloss.NewStyle().Background(lipgloss.Color(string(bg))).Width(m.width)
		for i := range out {
			out[i] = style.Render(out[i])
		}
	}
	return strings.Join(out, "\n")
}

func (m *Model) background(b *cell.Basic, p table.IndexPath) cell.Color {
	if p == m.selected && b.SelectedBackgroundColor != "" {
		return b.SelectedBackgroundColor
	}
	return b.BackgroundColor
}

func (m *Model) composeRowPrefix(b *cell.Basic, cursor, highlighted bool) string {
	caret := " "
	if cursor {
		caret = m.styles.Caret.Render("→")
	}
	depth := b.IndentationLevel * b.IndentationWidth
	if depth < 0 {
		depth = 0
	}
	img := b.ImageView.Image
	if highlighted && b.ImageView.HighlightedImage != nil {
		img = b.ImageView.HighlightedImage
	}
	glyph := ""
	if img != nil && img.Glyph != "" {
		glyph = img.Glyph + " "
	}
	return caret + " " + strings.Repeat(" ", depth) + glyph
}

func (m *Model) renderTrailer(cl cell.Cell) string {
	if sw, ok := cl.(cell.SwitchHolder); ok {
		return m.renderSwitch(sw.SwitchControl())
	}
	b := cl.Base()
	if b.AccessoryView != "" {
		return m.styles.Accessory.Render(b.AccessoryView)
	}
	if symbol := b.AccessoryType.Symbol(); symbol != "" {
		return m.styles.Accessory.Render(symbol)
	}
	return ""
}

func (m *Model) renderSwitch(s *cell.Switch) string {
	if s.On {
		knob := tint(lipgloss.NewStyle(), s.ThumbTintColor).Render("●")
		return knob + tint(m.styles.SwitchOn, s.OnTintColor).Render(" on ")
	}
	return m.styles.SwitchOff.Render("○ off")
}

type lineCounter interface {
	Lines() int
}

func (m *Model) rowBody(cl cell.Cell, p table.IndexPath, width int, highlighted bool) []string {
	b := cl.Base()
	base := m.styles.Row
	switch {
	case highlighted:
		base = m.styles.Selected
	case m.fresh[p]:
		base = m.styles.Fresh
	}
	text := labelStyle(base, b.TextLabel, highlighted)
	detail := labelStyle(m.styles.Detail, b.DetailTextLabel, highlighted)

	if holder, ok := cl.(cell.TextInputHolder); ok {
		in := holder.TextInputControl()
		if _, multi := cl.(lineCounter); multi {
			return m.textViewLines(b, in, p, width, text)
		}
		return m.textFieldLines(b, in, p, width, text)
	}

	lines := m.labelLines(b, width, text, detail)
	if sh, ok := cl.(cell.SliderHolder); ok {
		slider := m.renderSlider(sh.SliderControl(), width)
		if b.TextLabel.Text == "" && b.DetailTextLabel.Text == "" {
			return []string{slider}
		}
		lines = append(lines, slider)
	}
	return lines
}

func (m *Model) labelLines(b *cell.Basic, width int, text, detail lipgloss.Style) []string {
	label := b.TextLabel.Text
	det := b.DetailTextLabel.Text
	aligned := alignStyle(text, b.TextLabel.Alignment, width)

	switch {
	case det == "":
		return renderEach(wrapText(label, width), aligned)

	case b.Style == cell.StyleValue1:
		if w := lipgloss.Width(det); w > width/2 {
			det = truncate.StringWithTail(det, uint(width/2), "…")
		}
		labelWidth := width - lipgloss.Width(det) - 1
		wrapped := wrapText(label, labelWidth)
		out := make([]string, 0, len(wrapped))
		for i, line := range wrapped {
			s := text.Render(line)
			if i == 0 {
				gap := labelWidth - lipgloss.Width(line)
				if gap < 0 {
					gap = 0
				}
				s += strings.Repeat(" ", gap+1) + detail.Render(det)
			}
			out = append(out, s)
		}
		return out

	case b.Style == cell.StyleValue2:
		det = truncate.StringWithTail(det, uint(width/3+1), "…")
		lead := detail.Render(det) + "  "
		pad := strings.Repeat(" ", lipgloss.Width(lead))
		wrapped := wrapText(label, width-lipgloss.Width(lead))
		out := make([]string, 0, len(wrapped))
		for i, line := range wrapped {
			if i == 0 {
				out = append(out, lead+text.Render(line))
				continue
			}
			out = append(out, pad+text.Render(line))
		}
		return out

	case b.Style == cell.StyleSubtitle:
		out := renderEach(wrapText(label, width), aligned)
		return append(out, renderEach(wrapText(det, width), detail)...)

	default:
		return renderEach(wrapText(label, width), aligned)
	}
}

func (m *Model) textFieldLines(b *cell.Basic, in *cell.TextInput, p table.IndexPath, width int, text lipgloss.Style) []string {
	lead := ""
	if b.TextLabel.Text != "" {
		lead = text.Render(b.TextLabel.Text) + "  "
	}
	if m.editingPath(p) {
		return []string{lead + m.edit.view()}
	}
	return []string{lead + m.renderInputLine(in, in.Text, width-lipgloss.Width(lead))}
}

func (m *Model) textViewLines(b *cell.Basic, in *cell.TextInput, p table.IndexPath, width int, text lipgloss.Style) []string {
	var out []string
	if b.TextLabel.Text != "" {
		out = append(out, text.Render(b.TextLabel.Text))
	}
	if m.editingPath(p) {
		return append(out, strings.Split(m.edit.view(), "\n")...)
	}
	var content []string
	if in.Text == "" {
		content = []string{m.renderInputLine(in, "", width)}
	} else {
		for _, line := range wrapText(in.Text, width) {
			content = append(content, m.renderInputLine(in, line, width))
		}
	}
	if limit := in.MaxHeightInLines; limit > 0 && len(content) > limit {
		content = content[:limit]
		content[limit-1] += m.styles.Placeholder.Render("…")
	}
	for len(content) < in.MinHeightInLines {
		content = append(content, "")
	}
	return append(out, content...)
}

func (m *Model) renderInputLine(in *cell.TextInput, value string, width int) string {
	if width < 1 {
		width = 1
	}
	if in.Text == "" {
		style := tint(m.styles.Placeholder, in.PlaceholderColor)
		return style.Render(truncate.StringWithTail(in.Placeholder, uint(width), "…"))
	}
	if in.SecureTextEntry {
		value = strings.Repeat("•", utf8.RuneCountInString(value))
	}
	style := m.styles.Row
	if !in.Enabled {
		style = m.styles.Disabled
	}
	return style.Render(truncate.StringWithTail(value, uint(width), "…"))
}

func (m *Model) renderSlider(s *cell.Slider, width int) string {
	lead, tail := "", ""
	if s.MinimumValueImage != nil {
		lead = s.MinimumValueImage.Glyph + " "
	}
	if s.MaximumValueImage != nil {
		tail = " " + s.MaximumValueImage.Glyph
	}
	value := " " + formatValue(s.Value)
	track := width - lipgloss.Width(lead) - lipgloss.Width(tail) - lipgloss.Width(value) - 1
	if track > sliderTrackWidth {
		track = sliderTrackWidth
	}
	if track < 4 {
		track = 4
	}
	filled := int(math.Round(s.Fraction() * float64(track)))
	return lead +
		tint(m.styles.TrackFilled, s.MinimumTrackTintColor).Render(strings.Repeat("━", filled)) +
		tint(lipgloss.NewStyle(), s.ThumbTintColor).Render("●") +
		tint(m.styles.Track, s.MaximumTrackTintColor).Render(strings.Repeat("─", track-filled)) +
		tail + value
}

func formatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func labelStyle(base lipgloss.Style, l cell.Label, highlighted bool) lipgloss.Style {
	style := tint(base, l.Color)
	if highlighted {
		style = tint(style, l.HighlightedColor)
	}
	if l.Font.Bold {
		style = style.Bold(true)
	}
	if l.Font.Italic {
		style = style.Italic(true)
	}
	if l.Font.Underline {
		style = style.Underline(true)
	}
	if l.Font.Faint {
		style = style.Faint(true)
	}
	return style
}

func alignStyle(style lipgloss.Style, a cell.Alignment, width int) lipgloss.Style {
	switch a {
	case cell.AlignCenter:
		return style.Width(width).Align(lipgloss.Center)
	case cell.AlignRight:
		return style.Width(width).Align(lipgloss.Right)
	}
	return style
}

func tint(style lipgloss.Style, c cell.Color) lipgloss.Style {
	if c == "" {
		return style
	}
	return style.Foreground(lipgloss.Color(string(c)))
}

func renderEach(lines []string, style lipgloss.Style) []string {
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return lines
}

// wrapText word wraps each paragraph of text to width and hard wraps words
// that are longer than a line.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			lines = append(lines, "")
			continue
		}
		wrapped := wrap.String(wordwrap.String(raw, width), width)
		lines = append(lines, strings.Split(wrapped, "\n")...)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}
