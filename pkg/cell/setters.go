package cell

import (
	"strings"

	"github.com/spf13/cast"
)

func stringSetter(set func(*Basic, string)) Setter {
	return func(c Cell, v any, _ Env) bool {
		s, err := cast.ToStringE(v)
		if err != nil {
			return false
		}
		set(c.Base(), s)
		return true
	}
}

func intSetter(set func(*Basic, int)) Setter {
	return func(c Cell, v any, _ Env) bool {
		n, err := cast.ToIntE(v)
		if err != nil {
			return false
		}
		set(c.Base(), n)
		return true
	}
}

func colorSetter(set func(*Basic, Color)) Setter {
	return func(c Cell, v any, _ Env) bool {
		col, ok := ToColor(v)
		if !ok {
			return false
		}
		set(c.Base(), col)
		return true
	}
}

func fontSetter(set func(*Basic, Font)) Setter {
	return func(c Cell, v any, _ Env) bool {
		switch f := v.(type) {
		case Font:
			set(c.Base(), f)
		case *Font:
			if f == nil {
				return false
			}
			set(c.Base(), *f)
		case string:
			set(c.Base(), ParseFont(f))
		default:
			return false
		}
		return true
	}
}

func alignmentSetter(set func(*Basic, Alignment)) Setter {
	return func(c Cell, v any, _ Env) bool {
		switch a := v.(type) {
		case Alignment:
			set(c.Base(), a)
			return true
		case string:
			parsed, ok := ParseAlignment(a)
			if !ok {
				return false
			}
			set(c.Base(), parsed)
			return true
		}
		n, err := cast.ToIntE(v)
		if err != nil || n < int(AlignNatural) || n > int(AlignRight) {
			return false
		}
		set(c.Base(), Alignment(n))
		return true
	}
}

func setAccessoryType(c Cell, v any, _ Env) bool {
	switch a := v.(type) {
	case AccessoryType:
		c.Base().AccessoryType = a
		return true
	case string:
		parsed, ok := ParseAccessoryType(a)
		if !ok {
			return false
		}
		c.Base().AccessoryType = parsed
		return true
	}
	n, err := cast.ToIntE(v)
	if err != nil || n < int(AccessoryNone) || n > int(AccessoryDetailButton) {
		return false
	}
	c.Base().AccessoryType = AccessoryType(n)
	return true
}

// ToColor coerces a Color or color string, reporting false for invalid input.
func ToColor(v any) (Color, bool) {
	switch c := v.(type) {
	case Color:
		return c, true
	case string:
		parsed, err := ParseColor(c)
		if err != nil {
			return "", false
		}
		return parsed, true
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return "", false
	}
	parsed, err := ParseColor(cast.ToString(n))
	if err != nil {
		return "", false
	}
	return parsed, true
}

// ToImage coerces a literal image value. Strings are taken as the glyph.
func ToImage(v any) (*Image, bool) {
	switch img := v.(type) {
	case Image:
		return &img, true
	case *Image:
		return img, img != nil
	case string:
		if strings.TrimSpace(img) == "" {
			return nil, false
		}
		return &Image{Glyph: img}, true
	}
	return nil, false
}

func imageSetter(set func(Cell, *Image) bool) Setter {
	return func(c Cell, v any, _ Env) bool {
		img, ok := ToImage(v)
		if !ok {
			return false
		}
		return set(c, img)
	}
}

// namedImageSetter resolves the image name through the environment's
// resolver, but only when no literal image was supplied under literalKey.
func namedImageSetter(literalKey string, set func(Cell, *Image) bool) Setter {
	return func(c Cell, v any, env Env) bool {
		if lit, ok := env.Props[literalKey]; ok && lit != nil {
			return false
		}
		name, err := cast.ToStringE(v)
		if err != nil || env.Images == nil {
			return false
		}
		img, ok := env.Images.Image(name)
		if !ok {
			return false
		}
		return set(c, &img)
	}
}

func sliderImage(set func(*Slider, *Image)) func(Cell, *Image) bool {
	return func(c Cell, img *Image) bool {
		h, ok := c.(SliderHolder)
		if !ok {
			return false
		}
		set(h.SliderControl(), img)
		return true
	}
}

func sliderFloat(set func(*Slider, float64)) Setter {
	return func(c Cell, v any, _ Env) bool {
		h, ok := c.(SliderHolder)
		if !ok {
			return false
		}
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return false
		}
		set(h.SliderControl(), f)
		return true
	}
}

func sliderBool(set func(*Slider, bool)) Setter {
	return func(c Cell, v any, _ Env) bool {
		h, ok := c.(SliderHolder)
		if !ok {
			return false
		}
		b, err := cast.ToBoolE(v)
		if err != nil {
			return false
		}
		set(h.SliderControl(), b)
		return true
	}
}

func sliderColor(set func(*Slider, Color)) Setter {
	return func(c Cell, v any, _ Env) bool {
		h, ok := c.(SliderHolder)
		if !ok {
			return false
		}
		col, ok := ToColor(v)
		if !ok {
			return false
		}
		set(h.SliderControl(), col)
		return true
	}
}

func switchColor(set func(*Switch, Color)) Setter {
	return func(c Cell, v any, _ Env) bool {
		h, ok := c.(SwitchHolder)
		if !ok {
			return false
		}
		col, ok := ToColor(v)
		if !ok {
			return false
		}
		set(h.SwitchControl(), col)
		return true
	}
}

func inputString(set func(*TextInput, string)) Setter {
	return func(c Cell, v any, _ Env) bool {
		h, ok := c.(TextInputHolder)
		if !ok {
			return false
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return false
		}
		set(h.TextInputControl(), s)
		return true
	}
}

func inputBool(set func(*TextInput, bool)) Setter {
	return func(c Cell, v any, _ Env) bool {
		h, ok := c.(TextInputHolder)
		if !ok {
			return false
		}
		b, err := cast.ToBoolE(v)
		if err != nil {
			return false
		}
		set(h.TextInputControl(), b)
		return true
	}
}

func inputInt(set func(*TextInput, int)) Setter {
	return func(c Cell, v any, _ Env) bool {
		h, ok := c.(TextInputHolder)
		if !ok {
			return false
		}
		n, err := cast.ToIntE(v)
		if err != nil {
			return false
		}
		set(h.TextInputControl(), n)
		return true
	}
}

func inputColor(set func(*TextInput, Color)) Setter {
	return func(c Cell, v any, _ Env) bool {
		h, ok := c.(TextInputHolder)
		if !ok {
			return false
		}
		col, ok := ToColor(v)
		if !ok {
			return false
		}
		set(h.TextInputControl(), col)
		return true
	}
}
