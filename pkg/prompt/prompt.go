// Package prompt asks the user to pick or confirm catalog documents on a
// plain terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/statictable/pkg/store"
)

// ErrNoDocuments is returned by PickDocument when there is nothing to pick.
var ErrNoDocuments = errors.New("prompt: the catalog is empty")

// Prompter runs promptui prompts over In and Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

var documentTemplates = &promptui.SelectTemplates{
	Label:    "{{ . }}?",
	Active:   "➜  {{ .Name | bold }} {{ .Title | green }}",
	Inactive: "   {{ .Name }} {{ .Title | cyan }}",
	Selected: "{{ .Name | bold }}",
	Details: `
--------- Document ----------
style: {{ .Style }}
sections: {{ .Sections }}  rows: {{ .Rows }}
{{ if .Source }}source: {{ .Source }}{{ end }}
`,
}

// PickDocument lets the user choose one of metas and returns its name.
func (p *Prompter) PickDocument(label string, metas []store.Meta) (string, error) {
	if len(metas) == 0 {
		return "", ErrNoDocuments
	}
	s := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     metas,
		Templates: documentTemplates,
		Size:      10,
		Searcher:  documentSearcher(metas),
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	i, _, err := s.Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return metas[i].Name, nil
}

// Confirm asks a yes/no question. Anything but "y" is a no.
func (p *Prompter) Confirm(label string) (bool, error) {
	c := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	_, err := c.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, fmt.Errorf("prompt: %w", err)
	}
}

// documentSearcher matches the input against name and title, ignoring case
// and spaces.
func documentSearcher(metas []store.Meta) func(string, int) bool {
	return func(input string, index int) bool {
		m := metas[index]
		hay := squash(m.Name + m.Title)
		return strings.Contains(hay, squash(input))
	}
}

func squash(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

func (p *Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p *Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	return nopWriteCloser{p.Out}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
