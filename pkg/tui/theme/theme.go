package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Table  TableTheme
	Footer FooterTheme
	Panel  PanelTheme
}

// TableTheme styles the rows and section chrome of a table view.
type TableTheme struct {
	Header       lipgloss.Style
	HeaderActive lipgloss.Style
	Footer       lipgloss.Style
	Row          lipgloss.Style
	Detail       lipgloss.Style
	Caret        lipgloss.Style
	Selected     lipgloss.Style
	Disabled     lipgloss.Style
	Fresh        lipgloss.Style
	Empty        lipgloss.Style
	Accessory    lipgloss.Style
	Placeholder  lipgloss.Style
	Editing      lipgloss.Style
	Track        lipgloss.Style
	TrackFilled  lipgloss.Style
	SwitchOn     lipgloss.Style
	SwitchOff    lipgloss.Style
	Error        lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	header := lipgloss.NewStyle().Bold(true)
	accent := lipgloss.Color("213")
	muted := lipgloss.Color("241")

	return Theme{
		Table: TableTheme{
			Header:       header,
			HeaderActive: header.Foreground(accent),
			Footer:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
			Row:          lipgloss.NewStyle(),
			Detail:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Caret:        lipgloss.NewStyle().Foreground(accent),
			Selected:     lipgloss.NewStyle().Foreground(accent).Bold(true),
			Disabled:     lipgloss.NewStyle().Foreground(muted),
			Fresh:        lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			Empty:        lipgloss.NewStyle().Foreground(muted),
			Accessory:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Placeholder:  lipgloss.NewStyle().Foreground(muted).Italic(true),
			Editing:      lipgloss.NewStyle().Underline(true),
			Track:        lipgloss.NewStyle().Foreground(muted),
			TrackFilled:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			SwitchOn:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
			SwitchOff:    lipgloss.NewStyle().Foreground(muted),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}
