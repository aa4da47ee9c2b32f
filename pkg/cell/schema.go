package cell

import (
	"github.com/spf13/cast"
)

// Env is the context a property setter runs in.
type Env struct {
	// Props is the full snapshot being applied, so a setter can look at
	// keys that precede it in the schema.
	Props  map[string]any
	Images ImageResolver
}

// Setter writes v onto c. It returns false when the value could not be
// coerced or the cell does not carry the targeted control; the cell is left
// untouched in that case.
type Setter func(c Cell, v any, env Env) bool

// Property binds a key to its setter.
type Property struct {
	Key string
	Set Setter
}

// Schema is an ordered list of properties. Order matters: later setters may
// depend on values applied by earlier ones.
type Schema []Property

// Extend returns a new schema with props appended to s.
func (s Schema) Extend(props ...Property) Schema {
	out := make(Schema, 0, len(s)+len(props))
	out = append(out, s...)
	return append(out, props...)
}

// Lookup returns the property registered for key.
func (s Schema) Lookup(key string) (Property, bool) {
	for _, p := range s {
		if p.Key == key {
			return p, true
		}
	}
	return Property{}, false
}

// Keys lists the schema keys in application order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s))
	for i, p := range s {
		keys[i] = p.Key
	}
	return keys
}

// Apply writes every non-nil value of props onto c in schema order. Keys
// absent from props, and keys the schema does not know, are skipped.
func Apply(c Cell, s Schema, props map[string]any, images ImageResolver) {
	if c == nil {
		return
	}
	env := Env{Props: props, Images: images}
	for _, p := range s {
		v, ok := props[p.Key]
		if !ok || v == nil {
			continue
		}
		p.Set(c, v, env)
	}
}

// ApplyKey writes the single property key from props onto c.
func ApplyKey(c Cell, s Schema, key string, props map[string]any, images ImageResolver) bool {
	if c == nil {
		return false
	}
	p, ok := s.Lookup(key)
	if !ok {
		return false
	}
	v, ok := props[key]
	if !ok || v == nil {
		return false
	}
	return p.Set(c, v, Env{Props: props, Images: images})
}

// BasicSchema covers the fields every cell shares.
var BasicSchema = Schema{
	{KeyIndentationLevel, intSetter(func(b *Basic, n int) { b.IndentationLevel = n })},
	{KeyIndentationWidth, intSetter(func(b *Basic, n int) { b.IndentationWidth = n })},
	{KeyAccessoryType, setAccessoryType},
	{KeyAccessoryView, stringSetter(func(b *Basic, s string) { b.AccessoryView = s })},
	{KeyBackgroundColor, colorSetter(func(b *Basic, c Color) { b.BackgroundColor = c })},
	{KeySelectedBackgroundColor, colorSetter(func(b *Basic, c Color) { b.SelectedBackgroundColor = c })},

	{KeyImage, imageSetter(func(c Cell, img *Image) bool { c.Base().ImageView.Image = img; return true })},
	{KeyImageName, namedImageSetter(KeyImage, func(c Cell, img *Image) bool { c.Base().ImageView.Image = img; return true })},
	{KeyHighlightedImage, imageSetter(func(c Cell, img *Image) bool { c.Base().ImageView.HighlightedImage = img; return true })},
	{KeyHighlightedImageName, namedImageSetter(KeyHighlightedImage, func(c Cell, img *Image) bool {
		c.Base().ImageView.HighlightedImage = img
		return true
	})},

	{KeyText, stringSetter(func(b *Basic, s string) { b.TextLabel.Text = s })},
	{KeyTextAlignment, alignmentSetter(func(b *Basic, a Alignment) { b.TextLabel.Alignment = a })},
	{KeyTextColor, colorSetter(func(b *Basic, c Color) { b.TextLabel.Color = c })},
	{KeyHighlightedTextColor, colorSetter(func(b *Basic, c Color) { b.TextLabel.HighlightedColor = c })},
	{KeyFont, fontSetter(func(b *Basic, f Font) { b.TextLabel.Font = f })},

	{KeyDetailText, stringSetter(func(b *Basic, s string) { b.DetailTextLabel.Text = s })},
	{KeyDetailTextColor, colorSetter(func(b *Basic, c Color) { b.DetailTextLabel.Color = c })},
	{KeyDetailHighlightedTextColor, colorSetter(func(b *Basic, c Color) { b.DetailTextLabel.HighlightedColor = c })},
	{KeyDetailFont, fontSetter(func(b *Basic, f Font) { b.DetailTextLabel.Font = f })},
}

// SliderSchema extends BasicSchema with the slider control. The range is
// applied before the value so the value is clamped against the final range.
var SliderSchema = BasicSchema.Extend(
	Property{KeySliderMinimumValue, sliderFloat(func(s *Slider, v float64) { s.SetMinimumValue(v) })},
	Property{KeySliderMaximumValue, sliderFloat(func(s *Slider, v float64) { s.SetMaximumValue(v) })},
	Property{KeySliderValue, sliderFloat(func(s *Slider, v float64) { s.SetValue(v) })},
	Property{KeySliderMinimumValueImage, imageSetter(sliderImage(func(s *Slider, img *Image) { s.MinimumValueImage = img }))},
	Property{KeySliderMinimumValueImageName, namedImageSetter(KeySliderMinimumValueImage, sliderImage(func(s *Slider, img *Image) { s.MinimumValueImage = img }))},
	Property{KeySliderMaximumValueImage, imageSetter(sliderImage(func(s *Slider, img *Image) { s.MaximumValueImage = img }))},
	Property{KeySliderMaximumValueImageName, namedImageSetter(KeySliderMaximumValueImage, sliderImage(func(s *Slider, img *Image) { s.MaximumValueImage = img }))},
	Property{KeySliderContinuous, sliderBool(func(s *Slider, b bool) { s.Continuous = b })},
	Property{KeySliderMinimumTrackTintColor, sliderColor(func(s *Slider, c Color) { s.MinimumTrackTintColor = c })},
	Property{KeySliderMaximumTrackTintColor, sliderColor(func(s *Slider, c Color) { s.MaximumTrackTintColor = c })},
	Property{KeySliderThumbTintColor, sliderColor(func(s *Slider, c Color) { s.ThumbTintColor = c })},
	Property{KeySliderLabelText, stringSetter(func(b *Basic, s string) { b.TextLabel.Text = s })},
)

// SwitchSchema extends BasicSchema with the switch control.
var SwitchSchema = BasicSchema.Extend(
	Property{KeySwitchOn, func(c Cell, v any, _ Env) bool {
		h, ok := c.(SwitchHolder)
		if !ok {
			return false
		}
		b, err := cast.ToBoolE(v)
		if err != nil {
			return false
		}
		h.SwitchControl().On = b
		return true
	}},
	Property{KeySwitchOnTintColor, switchColor(func(s *Switch, c Color) { s.OnTintColor = c })},
	Property{KeySwitchThumbTintColor, switchColor(func(s *Switch, c Color) { s.ThumbTintColor = c })},
)

// TextFieldSchema extends BasicSchema with the text input control.
var TextFieldSchema = BasicSchema.Extend(
	Property{KeyInputText, inputString(func(t *TextInput, s string) { t.Text = s })},
	Property{KeyInputPlaceholder, inputString(func(t *TextInput, s string) { t.Placeholder = s })},
	Property{KeyInputPlaceholderColor, inputColor(func(t *TextInput, c Color) { t.PlaceholderColor = c })},
	Property{KeyInputClearButtonMode, inputString(func(t *TextInput, s string) { t.ClearButtonMode = s })},
	Property{KeyInputReturnKeyType, inputString(func(t *TextInput, s string) { t.ReturnKeyType = s })},
	Property{KeyInputKeyboardType, func(c Cell, v any, env Env) bool {
		if k, ok := v.(KeyboardType); ok {
			v = string(k)
		}
		return inputString(func(t *TextInput, s string) { t.KeyboardType = KeyboardType(s) })(c, v, env)
	}},
	Property{KeyInputSecureTextEntry, inputBool(func(t *TextInput, b bool) { t.SecureTextEntry = b })},
	Property{KeyInputAutocapitalizationType, inputString(func(t *TextInput, s string) { t.AutocapitalizationType = s })},
	Property{KeyInputAutocorrectionType, inputString(func(t *TextInput, s string) { t.AutocorrectionType = s })},
	Property{KeyInputEnabled, inputBool(func(t *TextInput, b bool) { t.Enabled = b })},
)

// TextViewSchema extends TextFieldSchema with the line bounds.
var TextViewSchema = TextFieldSchema.Extend(
	Property{KeyInputMinHeightInLines, inputInt(func(t *TextInput, n int) { t.MinHeightInLines = n })},
	Property{KeyInputMaxHeightInLines, inputInt(func(t *TextInput, n int) { t.MaxHeightInLines = n })},
)
