// Package tableview hosts a table.DataSource in Bubble Tea. The model
// implements table.Widget, so a table.Controller attached to it drives the
// rendered rows directly.
package tableview

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/statictable/pkg/cell"
	"tableflip.dev/statictable/pkg/table"
	"tableflip.dev/statictable/pkg/tui/events"
	"tableflip.dev/statictable/pkg/tui/theme"
)

const defaultID = events.ComponentID("tableview")

// Model renders sections, rows and footers of a data source as a scrollable
// list with a sticky section header.
type Model struct {
	ds    table.DataSource
	batch table.Batch
	pool  map[string][]cell.Cell

	styles   theme.TableTheme
	keys     KeyMap
	help     help.Model
	helpBar  bool
	showHelp bool

	width    int
	height   int
	debugLog io.Writer

	cursor   int // index into rowLines, -1 when there are no rows
	scroll   int
	selected table.IndexPath
	fresh    map[table.IndexPath]bool
	focused  bool
	edit     *editSession

	lines       []lineInfo
	rowLines    []int
	lineHeights []int
	lineOffsets []int
	totalHeight int

	id            events.ComponentID
	lastHighlight table.IndexPath
}

const (
	lineHeader = iota
	lineFooter
	lineSpacer
	lineEmpty
	lineRow
)

type lineInfo struct {
	section int
	row     int
	kind    int
}

func (l lineInfo) path() table.IndexPath { return table.Path(l.section, l.row) }

// NewModel constructs an empty table view. Attach it to a controller with
// Controller.Attach to give it data.
func NewModel() *Model {
	return &Model{
		pool:          make(map[string][]cell.Cell),
		fresh:         make(map[table.IndexPath]bool),
		styles:        theme.Default().Table,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		helpBar:       true,
		width:         80,
		height:        20,
		cursor:        -1,
		selected:      table.NotFound,
		lastHighlight: table.NotFound,
		id:            defaultID,
	}
}

// SetDebugWriter configures an optional writer for diagnostic output.
func (m *Model) SetDebugWriter(w io.Writer) {
	m.debugLog = w
}

func (m *Model) logf(format string, args ...any) {
	if m.debugLog == nil {
		return
	}
	fmt.Fprintf(m.debugLog, "%s tableview.%s\n", time.Now().Format("2006-01-02T15:04:05"), fmt.Sprintf(format, args...))
}

// SetTheme replaces the row and header styles.
func (m *Model) SetTheme(t theme.TableTheme) {
	m.styles = t
	m.recomputeLineMetrics()
}

// SetKeyMap replaces the key bindings.
func (m *Model) SetKeyMap(k KeyMap) {
	m.keys = k
}

// SetHelpVisible toggles the one line key help below the rows.
func (m *Model) SetHelpVisible(visible bool) {
	m.helpBar = visible
	m.ensureScroll()
}

// SetSize configures the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 20
	}
	m.width = width
	m.height = height
	if m.edit != nil {
		m.edit.setWidth(m.inputWidth())
	}
	m.recomputeLineMetrics()
	m.logf("SetSize width=%d height=%d", width, height)
	m.ensureScroll()
}

// Focus marks the component as active (highlights the cursor row).
func (m *Model) Focus() tea.Cmd {
	if m.focused {
		return nil
	}
	m.focused = true
	return events.FocusCmd(m.id)
}

// Blur marks the component as inactive and abandons any edit in progress.
func (m *Model) Blur() tea.Cmd {
	if !m.focused {
		return nil
	}
	m.focused = false
	var cmds []tea.Cmd
	if m.edit != nil {
		cmds = append(cmds, m.cancelEdit())
	}
	cmds = append(cmds, events.BlurCmd(m.id))
	return tea.Batch(cmds...)
}

// Focused reports whether the component receives keys.
func (m *Model) Focused() bool { return m.focused }

// Editing reports whether a text row is being edited in place.
func (m *Model) Editing() bool { return m.edit != nil }

// SetID overrides the emitted component identifier.
func (m *Model) SetID(id events.ComponentID) {
	if id == "" {
		m.id = defaultID
		return
	}
	m.id = id
}

// ID returns the component identifier.
func (m *Model) ID() events.ComponentID {
	return m.id
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles key presses for navigation, controls and editing.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if m.edit != nil {
			cmds = append(cmds, m.updateEditing(msg))
			break
		}
		if len(m.fresh) > 0 {
			m.fresh = make(map[table.IndexPath]bool)
			m.recomputeLineMetrics()
		}
		cmds = append(cmds, m.handleKey(msg))
	default:
		if m.edit != nil {
			cmds = append(cmds, m.edit.update(msg))
		}
	}

	if cmd := m.highlightCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = compact(cmds)
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.ensureScroll()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.pageSize())
	case key.Matches(msg, m.keys.Home):
		if len(m.rowLines) > 0 {
			m.cursor = 0
			m.ensureScroll()
		}
	case key.Matches(msg, m.keys.End):
		if len(m.rowLines) > 0 {
			m.cursor = len(m.rowLines) - 1
			m.ensureScroll()
		}
	case key.Matches(msg, m.keys.Select):
		return m.activate()
	case key.Matches(msg, m.keys.Increase):
		return m.nudgeSlider(1)
	case key.Matches(msg, m.keys.Decrease):
		return m.nudgeSlider(-1)
	case key.Matches(msg, m.keys.Delete):
		return m.deleteCurrent()
	}
	return nil
}

// View renders the component.
func (m *Model) View() string {
	if m.height <= 0 {
		m.height = 20
	}
	if m.width <= 0 {
		m.width = 80
	}
	lines := m.renderVisibleLines()
	if footer := m.footerView(); footer != "" {
		lines = append(lines, strings.Split(footer, "\n")...)
	}
	m.logf("View lines=%d cursorLine=%d scroll=%d height=%d", len(lines), m.currentLineIndex(), m.scroll, m.height)
	return strings.Join(lines, "\n")
}

func (m *Model) footerView() string {
	if m.edit != nil {
		view := m.help.View(editKeys{KeyMap: m.keys, multiline: m.edit.multiline})
		if m.edit.err != nil {
			return m.styles.Error.Render(m.edit.err.Error()) + "\n" + view
		}
		return view
	}
	if !m.helpBar {
		return ""
	}
	return m.help.View(m.keys)
}

func (m *Model) footerHeight() int {
	footer := m.footerView()
	if footer == "" {
		return 0
	}
	return strings.Count(footer, "\n") + 1
}

func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height - m.footerHeight()
	if h < 1 {
		return 1
	}
	return h
}

// CursorPath returns the address of the row under the cursor, or NotFound.
func (m *Model) CursorPath() table.IndexPath {
	idx := m.currentLineIndex()
	if idx < 0 {
		return table.NotFound
	}
	return m.lines[idx].path()
}

// SetCursor moves the cursor to p when p addresses a rendered row.
func (m *Model) SetCursor(p table.IndexPath) bool {
	for i, idx := range m.rowLines {
		if m.lines[idx].path() == p {
			m.cursor = i
			m.ensureScroll()
			return true
		}
	}
	return false
}

func (m *Model) currentLineIndex() int {
	if m.cursor < 0 || m.cursor >= len(m.rowLines) {
		return -1
	}
	return m.rowLines[m.cursor]
}

func (m *Model) lineIndexForPath(p table.IndexPath) int {
	for _, idx := range m.rowLines {
		if m.lines[idx].path() == p {
			return idx
		}
	}
	return -1
}

func (m *Model) validPath(p table.IndexPath) bool {
	if m.ds == nil || !p.Found() || p.Section >= m.ds.NumberOfSections() {
		return false
	}
	return p.Row < m.ds.NumberOfRows(p.Section)
}

func (m *Model) moveCursor(delta int) {
	if len(m.rowLines) == 0 {
		m.cursor = -1
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rowLines) {
		m.cursor = len(m.rowLines) - 1
	}
	m.ensureScroll()
}

// rebuild re-reads the data source and keeps the cursor on the same
// address when it still exists.
func (m *Model) rebuild() {
	anchor := m.CursorPath()
	m.rebuildLines()
	switch {
	case len(m.rowLines) == 0:
		m.cursor = -1
	case anchor.Found() && m.SetCursor(anchor):
	case m.cursor < 0:
		m.cursor = 0
	case m.cursor >= len(m.rowLines):
		m.cursor = len(m.rowLines) - 1
	}
	if m.selected.Found() && !m.validPath(m.selected) {
		m.selected = table.NotFound
	}
	if m.edit != nil && !m.validPath(m.edit.path) {
		m.stopEditing()
	}
	m.ensureScroll()
}

func (m *Model) rebuildLines() {
	m.lines = m.lines[:0]
	m.rowLines = m.rowLines[:0]
	if m.ds != nil {
		for s := 0; s < m.ds.NumberOfSections(); s++ {
			if s > 0 {
				m.lines = append(m.lines, lineInfo{section: s, kind: lineSpacer})
			}
			if m.ds.TitleForHeader(s) != "" {
				m.lines = append(m.lines, lineInfo{section: s, kind: lineHeader})
			}
			rows := m.ds.NumberOfRows(s)
			if rows == 0 {
				m.lines = append(m.lines, lineInfo{section: s, kind: lineEmpty})
			}
			for r := 0; r < rows; r++ {
				m.rowLines = append(m.rowLines, len(m.lines))
				m.lines = append(m.lines, lineInfo{section: s, row: r, kind: lineRow})
			}
			if m.ds.TitleForFooter(s) != "" {
				m.lines = append(m.lines, lineInfo{section: s, kind: lineFooter})
			}
		}
	}
	m.recomputeLineMetrics()
}

func (m *Model) ensureScroll() {
	if len(m.lines) == 0 {
		m.scroll = 0
		return
	}
	curLine := m.currentLineIndex()
	if curLine < 0 {
		m.clampScroll()
		return
	}
	m.ensureLineVisible(curLine)
}

func (m *Model) pageSize() int {
	height := m.viewportContentHeight()
	if height <= 0 {
		return 10
	}
	if height <= 1 {
		return 1
	}
	return height - 1
}

func (m *Model) ensureLineVisible(target int) {
	if len(m.lines) == 0 {
		m.scroll = 0
		return
	}
	target = clamp(target, 0, len(m.lines)-1)
	contentHeight := m.viewportContentHeight()
	if contentHeight <= 0 {
		contentHeight = 1
	}
	topIdx := clamp(m.scroll, 0, len(m.lines)-1)
	topOffset := m.lineOffset(topIdx)
	bottomOffset := topOffset
	remaining := contentHeight
	for idx := topIdx; idx < len(m.lines) && remaining > 0; idx++ {
		h := m.lineHeight(idx)
		if h >= remaining {
			bottomOffset = m.lineOffset(idx) + remaining - 1
			remaining = 0
			break
		}
		remaining -= h
		bottomOffset = m.lineOffset(idx) + h - 1
	}
	if remaining > 0 {
		bottomOffset = m.totalHeight - 1
	}
	lineTop := m.lineOffset(target)
	lineBottom := lineTop + m.lineHeight(target) - 1
	switch {
	case lineTop < topOffset:
		m.scroll = target
	case lineBottom > bottomOffset:
		m.scroll = m.startForBottom(target, contentHeight)
	}
	m.clampScroll()
}

// startForBottom returns the first line to render so that target ends at
// the bottom of a viewport of the given height.
func (m *Model) startForBottom(target, height int) int {
	start := target
	total := m.lineHeight(target)
	for start > 0 {
		next := total + m.lineHeight(start-1)
		if next > height {
			break
		}
		start--
		total = next
	}
	return start
}

func (m *Model) scrollToLine(target int, position table.ScrollPosition) {
	if target < 0 {
		return
	}
	height := m.viewportContentHeight()
	switch position {
	case table.ScrollTop:
		m.scroll = target
	case table.ScrollMiddle:
		above := (height - m.lineHeight(target)) / 2
		start := target
		for start > 0 && above-m.lineHeight(start-1) >= 0 {
			above -= m.lineHeight(start - 1)
			start--
		}
		m.scroll = start
	case table.ScrollBottom:
		m.scroll = m.startForBottom(target, height)
	default:
		m.ensureLineVisible(target)
		return
	}
	m.clampScroll()
}

func (m *Model) viewportContentHeight() int {
	body := m.bodyHeight()
	if body <= 0 {
		return 0
	}
	height := body - m.stickyHeaderHeight()
	if height <= 0 {
		return 1
	}
	return height
}

// visibleSection returns the section of the first rendered line when that
// section has a header to pin.
func (m *Model) visibleSection() (int, bool) {
	if len(m.lines) == 0 || m.ds == nil {
		return -1, false
	}
	for i := clamp(m.scroll, 0, len(m.lines)-1); i < len(m.lines); i++ {
		info := m.lines[i]
		if info.kind == lineSpacer {
			continue
		}
		if m.ds.TitleForHeader(info.section) == "" {
			return -1, false
		}
		return info.section, true
	}
	return -1, false
}

func (m *Model) stickyHeaderHeight() int {
	body := m.bodyHeight()
	if body <= 0 {
		return 0
	}
	section, ok := m.visibleSection()
	if !ok {
		return 0
	}
	lines := strings.Count(m.renderHeader(section, false), "\n") + 1
	if lines >= body {
		return body - 1
	}
	return lines
}

func (m *Model) recomputeLineMetrics() {
	n := len(m.lines)
	if n == 0 {
		m.lineHeights = m.lineHeights[:0]
		m.lineOffsets = m.lineOffsets[:0]
		m.totalHeight = 0
		m.scroll = 0
		return
	}
	if cap(m.lineHeights) < n {
		m.lineHeights = make([]int, n)
	} else {
		m.lineHeights = m.lineHeights[:n]
	}
	if cap(m.lineOffsets) < n {
		m.lineOffsets = make([]int, n)
	} else {
		m.lineOffsets = m.lineOffsets[:n]
	}
	offset := 0
	for i := 0; i < n; i++ {
		h := m.measureLineHeight(m.lines[i])
		if h <= 0 {
			h = 1
		}
		m.lineHeights[i] = h
		m.lineOffsets[i] = offset
		offset += h
	}
	m.totalHeight = offset
	m.clampScroll()
}

func (m *Model) measureLineHeight(info lineInfo) int {
	switch info.kind {
	case lineHeader:
		return strings.Count(m.renderHeader(info.section, false), "\n") + 1
	case lineFooter:
		return strings.Count(m.renderFooter(info.section), "\n") + 1
	case lineRow:
		return strings.Count(m.renderRow(info, false), "\n") + 1
	default:
		return 1
	}
}

func (m *Model) lineHeight(idx int) int {
	if idx < 0 || idx >= len(m.lineHeights) {
		return 0
	}
	return m.lineHeights[idx]
}

func (m *Model) lineOffset(idx int) int {
	if idx < 0 || idx >= len(m.lineOffsets) {
		return 0
	}
	return m.lineOffsets[idx]
}

func (m *Model) clampScroll() {
	if len(m.lines) == 0 {
		m.scroll = 0
		return
	}
	m.scroll = clamp(m.scroll, 0, len(m.lines)-1)
	if maxIdx := m.maxScrollIndex(); m.scroll > maxIdx {
		m.scroll = maxIdx
	}
}

func (m *Model) maxScrollIndex() int {
	if len(m.lines) == 0 {
		return 0
	}
	visible := m.viewportContentHeight()
	if visible <= 0 || m.totalHeight <= visible {
		return 0
	}
	maxOffset := m.totalHeight - visible
	idx := sort.Search(len(m.lineOffsets), func(i int) bool {
		return m.lineOffsets[i] > maxOffset
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return idx
}

func (m *Model) renderVisibleLines() []string {
	height := m.bodyHeight()
	if height <= 0 {
		height = 1
	}
	lines := make([]string, 0, height)
	appendLines := func(text string) {
		for _, part := range strings.Split(text, "\n") {
			if len(lines) >= height {
				return
			}
			lines = append(lines, part)
		}
	}

	stickySection, hasSticky := m.visibleSection()
	activeLine := m.currentLineIndex()
	activeSection := -1
	if activeLine >= 0 {
		activeSection = m.lines[activeLine].section
	}
	if hasSticky {
		appendLines(m.renderHeader(stickySection, m.focused && stickySection == activeSection))
	}
	skippedHeader := hasSticky
	for i := m.scroll; i < len(m.lines) && len(lines) < height; i++ {
		info := m.lines[i]
		if skippedHeader && info.kind == lineHeader && info.section == stickySection {
			skippedHeader = false
			continue
		}
		switch info.kind {
		case lineHeader:
			appendLines(m.renderHeader(info.section, m.focused && info.section == activeSection))
		case lineFooter:
			appendLines(m.renderFooter(info.section))
		case lineEmpty:
			appendLines(m.styles.Empty.Render("  <empty>"))
		case lineRow:
			appendLines(m.renderRow(info, i == activeLine))
		default:
			appendLines("")
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func (m *Model) highlightCmd() tea.Cmd {
	p := m.CursorPath()
	if !p.Found() || p == m.lastHighlight {
		return nil
	}
	m.lastHighlight = p
	return events.RowHighlightCmd(m.id, events.RefForPath(m.ds, p))
}

func compact(cmds []tea.Cmd) []tea.Cmd {
	out := cmds[:0]
	for _, cmd := range cmds {
		if cmd != nil {
			out = append(out, cmd)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
