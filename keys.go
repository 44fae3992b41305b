package main

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Down       key.Binding
	Drop       key.Binding
	Rotate     key.Binding
	RotateBack key.Binding
	Hold       key.Binding
	Pause      key.Binding
	Quit       key.Binding
	Up         key.Binding
	Select     key.Binding
	Back       key.Binding
}

var Keys = KeyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "move left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "move right"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "soft drop"),
	),
	Drop: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space/enter", "hard drop"),
	),
	Rotate: key.NewBinding(
		key.WithKeys("up", "x", "k"),
		key.WithHelp("↑/x", "rotate"),
	),
	RotateBack: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "rotate back"),
	),
	Hold: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "hold"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q", "menu"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
	),
	Back: key.NewBinding(
		key.WithKeys("q", "esc"),
	),
}

// gameHelp lists the bindings shown beside the board.
func (k KeyMap) gameHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.RotateBack, k.Hold, k.Down, k.Drop, k.Pause, k.Quit}
}
