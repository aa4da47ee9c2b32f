// Package show opens a table document in one of the interactive hosts.
package show

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/statictable/pkg/printers"
	"tableflip.dev/statictable/pkg/runner/source"
	"tableflip.dev/statictable/pkg/store"
	"tableflip.dev/statictable/pkg/table"
	tuiapp "tableflip.dev/statictable/pkg/tui/app"
	"tableflip.dev/statictable/pkg/ui"
)

// Hosts.
const (
	HostBubbleTea = "bubbletea"
	HostTuiGo     = "tuigo"
)

// Show runs a host over a document.
type Show struct {
	// Source is a file path or a catalog name. Empty opens the catalog
	// picker.
	Source string
	Host   string
	Watch  bool
	// DebugLog is a file that receives component traces.
	DebugLog string

	// Load overrides source resolution, used by the demo.
	Load tuiapp.Loader
}

// Do resolves the source and runs the host until the user quits. When
// stdout is not a terminal the document is printed instead.
func (s *Show) Do(ctx context.Context) error {
	host := s.Host
	if host == "" {
		host = HostBubbleTea
	}
	if host != HostBubbleTea && host != HostTuiGo {
		return fmt.Errorf("unknown host %q, want %s or %s", host, HostBubbleTea, HostTuiGo)
	}

	var src *source.Source
	load := s.Load
	if load == nil {
		var err error
		src, err = source.Resolve(s.Source)
		if err != nil {
			return err
		}
		load = src.Load
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		if s.Source == "" && s.Load == nil {
			return errors.New("a document is required when stdout is not a terminal")
		}
		doc, err := load(s.Source)
		if err != nil {
			return err
		}
		pp := printers.NewPrettyPrint()
		if doc.Title != "" {
			pp.Title(doc.Title)
			pp.NewLine()
		}
		pp.Table(doc.Controller())
		return nil
	}

	var debug io.Writer
	if s.DebugLog != "" {
		f, err := os.OpenFile(s.DebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		debug = f
	}

	prefs, err := store.LoadPreferences(nil)
	if err != nil {
		return err
	}

	if host == HostTuiGo {
		if s.Watch {
			return errors.New("--watch needs the bubbletea host")
		}
		if s.Source == "" && s.Load == nil {
			return errors.New("the tuigo host needs a document")
		}
		doc, err := load(s.Source)
		if err != nil {
			return err
		}
		c := doc.Controller(table.WithPreferences(prefs))
		if debug != nil {
			c.SetDebugWriter(debug)
		}
		return ui.Do(ctx, c)
	}

	opts := tuiapp.Options{
		Source:   s.Source,
		Load:     load,
		Prefs:    prefs,
		DebugLog: debug,
	}
	if src != nil && !src.IsFile() {
		opts.Catalog = src.Catalog
	}
	if s.Watch && src != nil {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		ch, err := src.Watch(ctx)
		if err != nil {
			return err
		}
		opts.Watch = ch
	}
	return tuiapp.Run(opts)
}
