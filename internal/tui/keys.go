package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	left     key.Binding
	right    key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	quit     key.Binding
	forceQ   key.Binding
	lock     key.Binding
	about    key.Binding
	skip     key.Binding
	newItem  key.Binding
	refresh  key.Binding
	search   key.Binding
	category key.Binding
	project  key.Binding
	projects key.Binding
	disable  key.Binding
	edit     key.Binding
	delete   key.Binding
	copy     key.Binding
	reveal   key.Binding
	yes      key.Binding
	no       key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	left:     key.NewBinding(key.WithKeys("left")),
	right:    key.NewBinding(key.WithKeys("right")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab")),
	quit:     key.NewBinding(key.WithKeys("q")),
	forceQ:   key.NewBinding(key.WithKeys("ctrl+c")),
	lock:     key.NewBinding(key.WithKeys("ctrl+l")),
	about:    key.NewBinding(key.WithKeys("f1")),
	skip:     key.NewBinding(key.WithKeys("s")),
	newItem:  key.NewBinding(key.WithKeys("n")),
	refresh:  key.NewBinding(key.WithKeys("ctrl+r")),
	search:   key.NewBinding(key.WithKeys("/")),
	category: key.NewBinding(key.WithKeys("c")),
	project:  key.NewBinding(key.WithKeys("p")),
	projects: key.NewBinding(key.WithKeys("P")),
	disable:  key.NewBinding(key.WithKeys("T")),
	edit:     key.NewBinding(key.WithKeys("e")),
	delete:   key.NewBinding(key.WithKeys("d")),
	copy:     key.NewBinding(key.WithKeys("y")),
	reveal:   key.NewBinding(key.WithKeys("r")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n")),
}
