// Package docs renders the built-in guide to table documents.
package docs

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

//go:embed guide.md
var guide string

// Guide returns the markdown source of the guide.
func Guide() string { return guide }

// Docs prints the guide.
type Docs struct {
	// Width wraps the rendered text. Zero means 80 columns.
	Width int
	// Raw prints the markdown source without rendering it.
	Raw bool
	Out io.Writer
}

// Do renders the guide with glamour. The "notty" style is used when output
// is not a terminal.
func (d *Docs) Do(_ context.Context) error {
	out := d.Out
	if out == nil {
		out = color.Output
	}
	if d.Raw {
		_, err := fmt.Fprintln(out, strings.TrimSpace(guide))
		return err
	}
	rendered, err := Render(d.Width, d.style())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func (d *Docs) style() string {
	if d.Out == nil && isatty.IsTerminal(os.Stdout.Fd()) && !color.NoColor {
		return "dark"
	}
	return "notty"
}

// Render renders the guide wrapped at width with the named glamour style.
func Render(width int, style string) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("docs: renderer: %w", err)
	}
	s, err := r.Render(strings.TrimSpace(guide))
	if err != nil {
		return "", fmt.Errorf("docs: render: %w", err)
	}
	return s, nil
}
