package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the normal mode key bindings. It implements help.KeyMap.
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	NextSlide key.Binding
	PrevSlide key.Binding
	Pause     key.Binding
	GoTo      key.Binding
	Rescan    key.Binding
	Sort      key.Binding
	Status    key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next item"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous item"),
		),
		NextSlide: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next slide"),
		),
		PrevSlide: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous slide"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause/resume slides"),
		),
		GoTo: key.NewBinding(
			key.WithKeys("g", ":"),
			key.WithHelp("g", "go to item"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan media"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle slide order"),
		),
		Status: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle status bar"),
		),
		Save: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "save config"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Pause, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.GoTo},
		{k.PrevSlide, k.NextSlide, k.Pause, k.Sort, k.Rescan},
		{k.Status, k.Save, k.Help, k.Quit},
	}
}
