package cell

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "#FFAA00", want: "#ffaa00"},
		{in: "#fa0", want: "#ffaa00"},
		{in: " 213 ", want: "213"},
		{in: "256", wantErr: true},
		{in: "#xyz", wantErr: true},
		{in: "red", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseColor(%q) error = %v, wantErr %t", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseColor(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSliderRangeIsAppliedBeforeValue(t *testing.T) {
	c := NewSliderCell(StyleDefault, "")
	// Map iteration order must not matter; the schema fixes it.
	Apply(c, SliderSchema, map[string]any{
		KeySliderValue:        8,
		KeySliderMaximumValue: 10,
		KeySliderMinimumValue: 5,
	}, nil)
	if c.Slider.Value != 8 || c.Slider.MinimumValue != 5 || c.Slider.MaximumValue != 10 {
		t.Fatalf("unexpected slider %+v", c.Slider)
	}

	c.Slider.SetMaximumValue(2)
	if c.Slider.MinimumValue != 2 || c.Slider.Value != 2 {
		t.Fatalf("expected bounds and value dragged down, got %+v", c.Slider)
	}
	if f := c.Slider.Fraction(); f != 0 {
		t.Fatalf("expected an empty range to report fraction 0, got %v", f)
	}
}

func TestNamedImageYieldsToLiteral(t *testing.T) {
	images := NewCatalog()
	images.Register("star", "★")

	literal := NewBasic(StyleDefault, "")
	Apply(literal, BasicSchema, map[string]any{
		KeyImage:     "☂",
		KeyImageName: "star",
	}, images)
	if literal.ImageView.Image == nil || literal.ImageView.Image.Glyph != "☂" {
		t.Fatalf("expected the literal image to win, got %v", literal.ImageView.Image)
	}

	named := NewBasic(StyleDefault, "")
	Apply(named, BasicSchema, map[string]any{KeyImageName: "star"}, images)
	if named.ImageView.Image == nil || named.ImageView.Image.Glyph != "★" || named.ImageView.Image.Name != "star" {
		t.Fatalf("expected the catalog image, got %v", named.ImageView.Image)
	}

	missing := NewBasic(StyleDefault, "")
	Apply(missing, BasicSchema, map[string]any{KeyImageName: "nope"}, images)
	if missing.ImageView.Image != nil {
		t.Fatalf("expected an unknown image name to leave the cell untouched")
	}
}

func TestApplySkipsInvalidValues(t *testing.T) {
	c := NewBasic(StyleValue1, "row")
	c.TextLabel.Text = "kept"
	Apply(c, BasicSchema, map[string]any{
		KeyText:             nil,
		KeyIndentationLevel: "two",
		KeyTextColor:        "not a color",
		KeyFont:             "bold, underline",
		KeyTextAlignment:    "center",
		KeyDetailText:       12,
	}, nil)

	if c.TextLabel.Text != "kept" || c.IndentationLevel != 0 || c.TextLabel.Color != "" {
		t.Fatalf("invalid values must leave fields untouched: %+v", c)
	}
	if !c.TextLabel.Font.Bold || !c.TextLabel.Font.Underline || c.TextLabel.Font.Italic {
		t.Fatalf("unexpected font %+v", c.TextLabel.Font)
	}
	if c.TextLabel.Alignment != AlignCenter || c.DetailTextLabel.Text != "12" {
		t.Fatalf("unexpected label values %+v %+v", c.TextLabel, c.DetailTextLabel)
	}
}

func TestControlSettersIgnoreOtherCells(t *testing.T) {
	c := NewBasic(StyleDefault, "")
	if ApplyKey(c, SwitchSchema, KeySwitchOn, map[string]any{KeySwitchOn: true}, nil) {
		t.Fatalf("a basic cell has no switch")
	}
	if ApplyKey(c, BasicSchema, KeySwitchOn, map[string]any{KeySwitchOn: true}, nil) {
		t.Fatalf("keys outside the schema must be rejected")
	}
}

func TestPrepareForReuseRestoresDefaults(t *testing.T) {
	c := NewTextFieldCell(StyleSubtitle, "field")
	Apply(c, TextFieldSchema, map[string]any{
		KeyText:                 "Name",
		KeyInputText:            "Ada",
		KeyInputEnabled:         false,
		KeyInputSecureTextEntry: true,
	}, nil)
	c.PrepareForReuse()

	if c.Style != StyleSubtitle || c.ReuseIdentifier != "field" {
		t.Fatalf("reuse must keep style and identifier, got %v/%q", c.Style, c.ReuseIdentifier)
	}
	if c.TextLabel.Text != "" || c.Input.Text != "" || !c.Input.Enabled || c.Input.SecureTextEntry {
		t.Fatalf("expected a fresh cell, got %+v", c)
	}
	if c.IndentationWidth != DefaultIndentationWidth {
		t.Fatalf("expected default indentation width, got %d", c.IndentationWidth)
	}
}

func TestTextViewLines(t *testing.T) {
	c := NewTextViewCell(StyleDefault, "")
	c.Input.MinHeightInLines = 2
	c.Input.MaxHeightInLines = 3
	if got := c.Lines(); got != 2 {
		t.Fatalf("expected the minimum of 2 lines, got %d", got)
	}
	c.Input.Text = "a\nb\nc\nd\ne"
	if got := c.Lines(); got != 3 {
		t.Fatalf("expected the maximum of 3 lines, got %d", got)
	}
}
