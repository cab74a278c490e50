package ui

import (
	"errors"
	"fmt"

	"github.com/macropower/vlist/pkg/keys"
	"github.com/macropower/vlist/pkg/ui/common"
	"github.com/macropower/vlist/pkg/ui/vlist"
)

var ErrInvalidWheelLines = errors.New("wheel lines must not be negative")

// Config contains TUI-specific configuration.
type Config struct {
	KeyBinds    *KeyBinds `json:"keybinds,omitempty"    jsonschema:"title=Key Binds"`
	LineNumbers *bool     `json:"lineNumbers,omitempty" jsonschema:"title=Line Numbers,description=Show the index of each row"`
	Mouse       *bool     `json:"mouse,omitempty"       jsonschema:"title=Mouse,description=Scroll with the mouse wheel"`
	// Theme is a chroma style name. "auto" picks a light or dark style from
	// the terminal background.
	Theme      string `json:"theme,omitempty"      jsonschema:"title=Theme,description=Chroma style name or auto"`
	WheelLines int    `json:"wheelLines,omitempty" jsonschema:"title=Wheel Lines,minimum=0"`
}

// NewConfig creates a new [Config] with default values.
func NewConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.KeyBinds == nil {
		c.KeyBinds = NewKeyBinds()
	} else {
		c.KeyBinds.EnsureDefaults()
	}

	if c.LineNumbers == nil {
		c.LineNumbers = new(bool)
	}
	if c.Mouse == nil {
		mouse := true
		c.Mouse = &mouse
	}
	if c.Theme == "" {
		c.Theme = "auto"
	}
	if c.WheelLines == 0 {
		c.WheelLines = vlist.DefaultWheelLines
	}
}

// Validate reports invalid settings and conflicting key binds.
func (c *Config) Validate() error {
	if c.WheelLines < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWheelLines, c.WheelLines)
	}

	if c.KeyBinds != nil {
		err := c.KeyBinds.Validate()
		if err != nil {
			return fmt.Errorf("keybinds: %w", err)
		}
	}

	return nil
}

type KeyBinds struct {
	Common *common.KeyBinds `json:"common,omitempty"`
	List   *vlist.KeyBinds  `json:"list,omitempty"`
}

func NewKeyBinds() *KeyBinds {
	kb := &KeyBinds{}
	kb.EnsureDefaults()

	return kb
}

func (kb *KeyBinds) EnsureDefaults() {
	if kb.Common == nil {
		kb.Common = &common.KeyBinds{}
	}
	if kb.List == nil {
		kb.List = &vlist.KeyBinds{}
	}

	kb.Common.EnsureDefaults()
	kb.List.EnsureDefaults()
}

func (kb *KeyBinds) Validate() error {
	//nolint:wrapcheck // Already describes the conflict.
	return keys.ValidateBinds(
		kb.Common.GetKeyBinds(),
		kb.List.GetKeyBinds(),
	)
}
