package tableview

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap lists the bindings the table view reacts to.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Select   key.Binding
	Increase key.Binding
	Decrease key.Binding
	Delete   key.Binding
	Help     key.Binding

	Commit key.Binding
	Save   key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the vim-flavored bindings used by the demo.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup/b", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn/f", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
		Select:   key.NewBinding(key.WithKeys("enter", "space", " "), key.WithHelp("enter", "select/toggle/edit")),
		Increase: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "slider up")),
		Decrease: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "slider down")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete row")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Commit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End, k.Select, k.Delete},
		{k.Increase, k.Decrease, k.Help},
	}
}

type editKeys struct {
	KeyMap
	multiline bool
}

func (k editKeys) commit() key.Binding {
	if k.multiline {
		return k.Save
	}
	return k.Commit
}

func (k editKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.commit(), k.Cancel}
}

func (k editKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
