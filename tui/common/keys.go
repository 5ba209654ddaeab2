package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Refresh     key.Binding // g, refresh feed or open thread
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding // enter, expand/collapse the selected post
	Back        key.Binding
	Like        key.Binding // l, like the selected post or comment
	Reply       key.Binding // r, reply inline
	ReplyEditor key.Binding // R, reply via $EDITOR
	NewPost     key.Binding
	Submit      key.Binding
	Editor      key.Binding // ctrl+e, move the open composer to $EDITOR
	ToggleHints key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "expand/collapse"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Reply: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reply"),
		),
		ReplyEditor: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reply ($EDITOR)"),
		),
		NewPost: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new post"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "send"),
		),
		Editor: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "$EDITOR"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "keys"),
		),
	}
}

// ComposeHelp lists the bindings active while a composer has focus.
func (k KeyMap) ComposeHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Editor, k.Back}
}

// ShortHelp lists the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Like, k.Reply, k.Refresh, k.NewPost, k.ToggleHints, k.Quit}
}

// FullHelp lists every binding, shown when hints are toggled on.
func (k KeyMap) FullHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Back, k.Like, k.Reply, k.ReplyEditor, k.Refresh, k.NewPost, k.Quit}
}
