package keys

import (
	"context"
	"strings"
	"testing"
)

func TestHints(t *testing.T) {
	tests := map[string]string{
		"cell.accessoryType":                "disclosureIndicator",
		"cell.switch.onTintColor":           "#rrggbb",
		"cell.slider.minimumValueImageName": "image name",
		"cell.slider.maximumValue":          "a number",
		"cell.textInput.maxHeightInLines":   "line count",
	}
	for key, want := range tests {
		if got := hintFor(key, valueHints); !strings.Contains(got, want) {
			t.Fatalf("expected %q in the hint for %s, got %q", want, key, got)
		}
	}
	if got := hintFor("cell.textLabel.text", valueHints); got != "" {
		t.Fatalf("expected no hint for free text, got %q", got)
	}
}

func TestUnknownClass(t *testing.T) {
	err := (&Keys{Class: "Nope"}).Do(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Slider") {
		t.Fatalf("expected the known classes in the error, got %v", err)
	}
}
