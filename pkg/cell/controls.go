package cell

// Slider is a continuous value control. The zero value is not valid, use
// NewSlider for the control's native defaults.
type Slider struct {
	Value        float64
	MinimumValue float64
	MaximumValue float64

	MinimumValueImage *Image
	MaximumValueImage *Image

	Continuous bool

	MinimumTrackTintColor Color
	MaximumTrackTintColor Color
	ThumbTintColor        Color
}

// NewSlider returns a slider ranging over [0, 1] with value 0.
func NewSlider() Slider {
	return Slider{MaximumValue: 1, Continuous: true}
}

// SetMinimumValue moves the lower bound, dragging the upper bound and the
// value along when they fall below it.
func (s *Slider) SetMinimumValue(v float64) {
	s.MinimumValue = v
	if s.MaximumValue < v {
		s.MaximumValue = v
	}
	s.SetValue(s.Value)
}

// SetMaximumValue moves the upper bound, dragging the lower bound and the
// value along when they exceed it.
func (s *Slider) SetMaximumValue(v float64) {
	s.MaximumValue = v
	if s.MinimumValue > v {
		s.MinimumValue = v
	}
	s.SetValue(s.Value)
}

// SetValue clamps v into [MinimumValue, MaximumValue].
func (s *Slider) SetValue(v float64) {
	switch {
	case v < s.MinimumValue:
		v = s.MinimumValue
	case v > s.MaximumValue:
		v = s.MaximumValue
	}
	s.Value = v
}

// Fraction reports the value's position within the range as 0..1.
func (s *Slider) Fraction() float64 {
	span := s.MaximumValue - s.MinimumValue
	if span <= 0 {
		return 0
	}
	return (s.Value - s.MinimumValue) / span
}

// Switch is an on/off control.
type Switch struct {
	On             bool
	OnTintColor    Color
	ThumbTintColor Color
}

// KeyboardType hints which characters a text input accepts.
type KeyboardType string

const (
	KeyboardDefault      KeyboardType = "default"
	KeyboardASCII        KeyboardType = "asciiCapable"
	KeyboardNumberPad    KeyboardType = "numberPad"
	KeyboardDecimalPad   KeyboardType = "decimalPad"
	KeyboardPhonePad     KeyboardType = "phonePad"
	KeyboardEmailAddress KeyboardType = "emailAddress"
	KeyboardURL          KeyboardType = "URL"
)

// TextInput is the editable text control used by text field and text view
// cells.
type TextInput struct {
	Text             string
	Placeholder      string
	PlaceholderColor Color

	ClearButtonMode        string
	ReturnKeyType          string
	KeyboardType           KeyboardType
	SecureTextEntry        bool
	AutocapitalizationType string
	AutocorrectionType     string
	Enabled                bool

	// MinHeightInLines and MaxHeightInLines bound a multi-line input.
	// A zero maximum means unbounded.
	MinHeightInLines int
	MaxHeightInLines int
}

// NewTextInput returns an enabled single line input.
func NewTextInput() TextInput {
	return TextInput{KeyboardType: KeyboardDefault, Enabled: true, MinHeightInLines: 1}
}

// SliderHolder is implemented by cells carrying a slider.
type SliderHolder interface {
	SliderControl() *Slider
}

// SwitchHolder is implemented by cells carrying a switch.
type SwitchHolder interface {
	SwitchControl() *Switch
}

// TextInputHolder is implemented by cells carrying a text input.
type TextInputHolder interface {
	TextInputControl() *TextInput
}

// SliderCell is a cell with a label and a slider.
type SliderCell struct {
	Basic
	Slider Slider
}

// NewSliderCell returns a slider cell with native slider defaults.
func NewSliderCell(style Style, reuseIdentifier string) *SliderCell {
	c := &SliderCell{}
	c.Basic.reset(style, reuseIdentifier)
	c.Slider = NewSlider()
	return c
}

func (c *SliderCell) SliderControl() *Slider { return &c.Slider }

func (c *SliderCell) PrepareForReuse() {
	c.Basic.PrepareForReuse()
	c.Slider = NewSlider()
}

// SwitchCell is a cell with a label and a switch accessory.
type SwitchCell struct {
	Basic
	Switch Switch
}

func NewSwitchCell(style Style, reuseIdentifier string) *SwitchCell {
	c := &SwitchCell{}
	c.Basic.reset(style, reuseIdentifier)
	return c
}

func (c *SwitchCell) SwitchControl() *Switch { return &c.Switch }

func (c *SwitchCell) PrepareForReuse() {
	c.Basic.PrepareForReuse()
	c.Switch = Switch{}
}

// TextFieldCell is a cell with an optional label and a single line input.
type TextFieldCell struct {
	Basic
	Input TextInput
}

func NewTextFieldCell(style Style, reuseIdentifier string) *TextFieldCell {
	c := &TextFieldCell{}
	c.Basic.reset(style, reuseIdentifier)
	c.Input = NewTextInput()
	return c
}

func (c *TextFieldCell) TextInputControl() *TextInput { return &c.Input }

func (c *TextFieldCell) PrepareForReuse() {
	c.Basic.PrepareForReuse()
	c.Input = NewTextInput()
}

// TextViewCell is a cell with a multi-line input growing between its
// minimum and maximum line counts.
type TextViewCell struct {
	Basic
	Input TextInput
}

func NewTextViewCell(style Style, reuseIdentifier string) *TextViewCell {
	c := &TextViewCell{}
	c.Basic.reset(style, reuseIdentifier)
	c.Input = NewTextInput()
	return c
}

func (c *TextViewCell) TextInputControl() *TextInput { return &c.Input }

func (c *TextViewCell) PrepareForReuse() {
	c.Basic.PrepareForReuse()
	c.Input = NewTextInput()
}

// Lines reports how many lines the text view occupies for the current text.
func (c *TextViewCell) Lines() int {
	n := 1
	for _, r := range c.Input.Text {
		if r == '\n' {
			n++
		}
	}
	if n < c.Input.MinHeightInLines {
		n = c.Input.MinHeightInLines
	}
	if c.Input.MaxHeightInLines > 0 && n > c.Input.MaxHeightInLines {
		n = c.Input.MaxHeightInLines
	}
	return n
}
