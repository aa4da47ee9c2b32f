// Package cell holds the values a table host renders for a row and the
// property schema used to configure them from a key/value snapshot.
package cell

import "strings"

// Style selects the label layout of a cell.
type Style int

const (
	// StyleDefault shows an optional image and a single text label.
	StyleDefault Style = iota
	// StyleValue1 shows the text label on the left and the detail label
	// right-aligned.
	StyleValue1
	// StyleValue2 shows the detail label first, followed by the text label.
	StyleValue2
	// StyleSubtitle shows the detail label on a line below the text label.
	StyleSubtitle
)

var styleNames = map[Style]string{
	StyleDefault:  "default",
	StyleValue1:   "value1",
	StyleValue2:   "value2",
	StyleSubtitle: "subtitle",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return "default"
}

// ParseStyle maps a style name to a Style. Unknown names report false.
func ParseStyle(name string) (Style, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for style, n := range styleNames {
		if n == name {
			return style, true
		}
	}
	return StyleDefault, false
}

// AccessoryType is the trailing decoration of a cell.
type AccessoryType int

const (
	AccessoryNone AccessoryType = iota
	AccessoryDisclosureIndicator
	AccessoryDetailDisclosureButton
	AccessoryCheckmark
	AccessoryDetailButton
)

var accessoryNames = map[AccessoryType]string{
	AccessoryNone:                   "none",
	AccessoryDisclosureIndicator:    "disclosureIndicator",
	AccessoryDetailDisclosureButton: "detailDisclosureButton",
	AccessoryCheckmark:              "checkmark",
	AccessoryDetailButton:           "detailButton",
}

func (a AccessoryType) String() string {
	if name, ok := accessoryNames[a]; ok {
		return name
	}
	return "none"
}

// Symbol returns the glyph drawn for the accessory.
func (a AccessoryType) Symbol() string {
	switch a {
	case AccessoryDisclosureIndicator:
		return "›"
	case AccessoryDetailDisclosureButton:
		return "ⓘ ›"
	case AccessoryCheckmark:
		return "✓"
	case AccessoryDetailButton:
		return "ⓘ"
	default:
		return ""
	}
}

// ParseAccessoryType maps an accessory name (case-insensitive) to its value.
func ParseAccessoryType(name string) (AccessoryType, bool) {
	name = strings.TrimSpace(name)
	for a, n := range accessoryNames {
		if strings.EqualFold(n, name) {
			return a, true
		}
	}
	return AccessoryNone, false
}

// Alignment is the horizontal alignment of a label.
type Alignment int

const (
	AlignNatural Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// ParseAlignment maps "natural", "left", "center" and "right".
func ParseAlignment(name string) (Alignment, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "natural":
		return AlignNatural, true
	case "left":
		return AlignLeft, true
	case "center":
		return AlignCenter, true
	case "right":
		return AlignRight, true
	}
	return AlignNatural, false
}

// Font is the set of text attributes a terminal can honor.
type Font struct {
	Bold      bool
	Italic    bool
	Underline bool
	Faint     bool
}

// ParseFont reads a space or comma separated attribute list such as
// "bold italic". Unknown words are ignored.
func ParseFont(s string) Font {
	var f Font
	for _, word := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == ',' || r == '+'
	}) {
		switch word {
		case "bold":
			f.Bold = true
		case "italic":
			f.Italic = true
		case "underline":
			f.Underline = true
		case "faint", "light":
			f.Faint = true
		}
	}
	return f
}

// Label is a run of styled text.
type Label struct {
	Text             string
	Alignment        Alignment
	Color            Color
	HighlightedColor Color
	Font             Font
}

// ImageView holds the normal and highlighted image of a cell.
type ImageView struct {
	Image            *Image
	HighlightedImage *Image
}

// Cell is a row's visual representation. Concrete cells embed Basic.
type Cell interface {
	// Base returns the common label, image and decoration fields.
	Base() *Basic
	// PrepareForReuse restores the cell to the state of a freshly
	// constructed cell before it is handed out from a reuse pool.
	PrepareForReuse()
}

// Basic is the plain cell with text, detail text, image and accessory.
type Basic struct {
	Style           Style
	ReuseIdentifier string

	TextLabel       Label
	DetailTextLabel Label
	ImageView       ImageView

	AccessoryType AccessoryType
	AccessoryView string

	BackgroundColor         Color
	SelectedBackgroundColor Color

	IndentationLevel int
	IndentationWidth int
}

// DefaultIndentationWidth is the number of columns per indentation level.
const DefaultIndentationWidth = 2

// NewBasic returns a basic cell with the given style.
func NewBasic(style Style, reuseIdentifier string) *Basic {
	b := &Basic{}
	b.reset(style, reuseIdentifier)
	return b
}

func (b *Basic) reset(style Style, reuseIdentifier string) {
	*b = Basic{
		Style:            style,
		ReuseIdentifier:  reuseIdentifier,
		IndentationWidth: DefaultIndentationWidth,
	}
}

// Base implements Cell.
func (b *Basic) Base() *Basic { return b }

// PrepareForReuse implements Cell.
func (b *Basic) PrepareForReuse() {
	b.reset(b.Style, b.ReuseIdentifier)
}
