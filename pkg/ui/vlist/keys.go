package vlist

import "github.com/macropower/vlist/pkg/keys"

// KeyBinds are the list's configurable bindings.
type KeyBinds struct {
	Up           *keys.KeyBind `json:"up,omitempty"`
	Down         *keys.KeyBind `json:"down,omitempty"`
	PageUp       *keys.KeyBind `json:"pageUp,omitempty"`
	PageDown     *keys.KeyBind `json:"pageDown,omitempty"`
	HalfPageUp   *keys.KeyBind `json:"halfPageUp,omitempty"`
	HalfPageDown *keys.KeyBind `json:"halfPageDown,omitempty"`
	Home         *keys.KeyBind `json:"home,omitempty"`
	End          *keys.KeyBind `json:"end,omitempty"`
	Jump         *keys.KeyBind `json:"jump,omitempty"`
	Search       *keys.KeyBind `json:"search,omitempty"`
	NextMatch    *keys.KeyBind `json:"nextMatch,omitempty"`
	PrevMatch    *keys.KeyBind `json:"prevMatch,omitempty"`
	Copy         *keys.KeyBind `json:"copy,omitempty"`
	Escape       *keys.KeyBind `json:"escape,omitempty"`
}

func NewKeyBinds() *KeyBinds {
	kb := &KeyBinds{}
	kb.EnsureDefaults()

	return kb
}

func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Up,
		keys.NewBind("move up",
			keys.New("up", keys.WithAlias("↑")),
			keys.New("k"),
		))
	keys.SetDefaultBind(&kb.Down,
		keys.NewBind("move down",
			keys.New("down", keys.WithAlias("↓")),
			keys.New("j"),
		))
	keys.SetDefaultBind(&kb.PageUp,
		keys.NewBind("page up",
			keys.New("pgup"),
			keys.New("b"),
		))
	keys.SetDefaultBind(&kb.PageDown,
		keys.NewBind("page down",
			keys.New("pgdown", keys.WithAlias("pgdn")),
			keys.New("f"),
		))
	keys.SetDefaultBind(&kb.HalfPageUp,
		keys.NewBind("½ page up",
			keys.New("u"),
			keys.New("ctrl+u", keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.HalfPageDown,
		keys.NewBind("½ page down",
			keys.New("d"),
			keys.New("ctrl+d", keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.Home,
		keys.NewBind("go to top",
			keys.New("home"),
			keys.New("g"),
		))
	keys.SetDefaultBind(&kb.End,
		keys.NewBind("go to bottom",
			keys.New("end"),
			keys.New("G"),
		))
	keys.SetDefaultBind(&kb.Jump,
		keys.NewBind("jump to row",
			keys.New(":"),
		))
	keys.SetDefaultBind(&kb.Search,
		keys.NewBind("search",
			keys.New("/"),
		))
	keys.SetDefaultBind(&kb.NextMatch,
		keys.NewBind("next match",
			keys.New("n"),
		))
	keys.SetDefaultBind(&kb.PrevMatch,
		keys.NewBind("previous match",
			keys.New("N"),
		))
	keys.SetDefaultBind(&kb.Copy,
		keys.NewBind("copy top row",
			keys.New("c"),
		))
	keys.SetDefaultBind(&kb.Escape,
		keys.NewBind("clear search",
			keys.New("esc"),
		))
}

func (kb *KeyBinds) GetKeyBinds() []keys.KeyBind {
	return []keys.KeyBind{
		*kb.Up,
		*kb.Down,
		*kb.PageUp,
		*kb.PageDown,
		*kb.HalfPageUp,
		*kb.HalfPageDown,
		*kb.Home,
		*kb.End,
		*kb.Jump,
		*kb.Search,
		*kb.NextMatch,
		*kb.PrevMatch,
		*kb.Copy,
		*kb.Escape,
	}
}
