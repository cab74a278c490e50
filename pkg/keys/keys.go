// Package keys describes configurable key bindings and renders them as help
// columns.
package keys

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks truncated help text.
const Ellipsis = "…"

var ErrDuplicateKey = errors.New("duplicate key binding")

// Key is a single key code, as reported by [tea.KeyMsg.String].
type Key struct {
	// Code is the key code identifier.
	Code string `json:"code" jsonschema:"title=Code"`
	// Alias is shown in help instead of the code.
	Alias string `json:"alias,omitempty" jsonschema:"title=Alias"`
	// Hidden keys still match but are left out of help.
	Hidden bool `json:"hidden,omitempty" jsonschema:"title=Hidden"`
}

type KeyOpt func(k *Key)

func New(code string, opts ...KeyOpt) Key {
	k := Key{Code: code}
	for _, opt := range opts {
		opt(&k)
	}

	return k
}

func WithAlias(alias string) KeyOpt {
	return func(k *Key) {
		k.Alias = alias
	}
}

func Hidden() KeyOpt {
	return func(k *Key) {
		k.Hidden = true
	}
}

func (k Key) String() string {
	if k.Alias != "" {
		return k.Alias
	}

	return k.Code
}

// KeyBind is an action and the keys that trigger it.
type KeyBind struct {
	// Description is shown in help.
	Description string `json:"description" jsonschema:"title=Description"`
	// Keys that trigger the action.
	Keys []Key `json:"keys" jsonschema:"title=Keys"`
}

func NewBind(description string, keys ...Key) KeyBind {
	return KeyBind{
		Description: description,
		Keys:        keys,
	}
}

// String joins the visible keys with "/".
func (kb *KeyBind) String() string {
	visible := make([]string, 0, len(kb.Keys))
	for _, k := range kb.Keys {
		if !k.Hidden {
			visible = append(visible, k.String())
		}
	}

	return strings.Join(visible, "/")
}

// Match reports whether key triggers the binding.
func (kb *KeyBind) Match(key string) bool {
	return slices.ContainsFunc(kb.Keys, func(k Key) bool {
		return k.Code == key
	})
}

// AddKey adds key unless a key with the same code is already bound.
func (kb *KeyBind) AddKey(key Key) {
	if kb == nil || kb.Match(key.Code) {
		return
	}

	kb.Keys = append(kb.Keys, key)
}

// row renders the binding padded to keyWidth, followed by the description
// truncated to descWidth.
func (kb *KeyBind) row(keyWidth, descWidth int) string {
	keys := kb.String()
	if keys == "" {
		return ""
	}

	desc := ansi.Truncate(kb.Description, max(0, descWidth-2), Ellipsis)
	keyPad := strings.Repeat(" ", max(0, keyWidth-ansi.StringWidth(keys)))
	descPad := strings.Repeat(" ", max(0, descWidth-ansi.StringWidth(desc)-2))

	return keys + keyPad + "  " + desc + descPad
}

// SetDefaultBind fills in *kb from def. A nil bind is replaced; a partial
// bind keeps its own keys or description.
func SetDefaultBind(kb **KeyBind, def KeyBind) {
	if *kb == nil {
		*kb = &def

		return
	}

	if len((*kb).Keys) == 0 {
		(*kb).Keys = def.Keys
	}
	if (*kb).Description == "" {
		(*kb).Description = def.Description
	}
}

// ValidateBinds reports every key code bound more than once across all the
// given groups.
func ValidateBinds(groups ...[]KeyBind) error {
	var errs []error

	seen := map[string]string{}

	for _, group := range groups {
		for _, kb := range group {
			for _, k := range kb.Keys {
				if prev, ok := seen[k.Code]; ok {
					errs = append(errs, fmt.Errorf("%w: %q used by %q and %q",
						ErrDuplicateKey, k.Code, prev, kb.Description))

					continue
				}

				seen[k.Code] = kb.Description
			}
		}
	}

	return errors.Join(errs...)
}

// KeyBindRenderer lays out key bindings as side-by-side help columns.
type KeyBindRenderer struct {
	columns [][]KeyBind
}

// AddColumn appends a column. Empty columns are ignored.
func (r *KeyBindRenderer) AddColumn(kbs ...KeyBind) {
	if len(kbs) == 0 {
		return
	}

	r.columns = append(r.columns, kbs)
}

// Render lays the columns out to fill width.
func (r *KeyBindRenderer) Render(width int) string {
	if len(r.columns) == 0 {
		return ""
	}

	colWidth := max(6, width/len(r.columns)-2)
	remainder := max(0, width%len(r.columns))

	cols := make([][]string, len(r.columns))
	height := 0

	for i, col := range r.columns {
		cols[i] = column(colWidth, col)
		height = max(height, len(cols[i]))
	}

	var sb strings.Builder

	for row := range height {
		for _, col := range cols {
			cell := strings.Repeat(" ", colWidth)
			if row < len(col) {
				cell = col[row]
			}

			sb.WriteString(" " + cell + " ")
		}

		sb.WriteString(strings.Repeat(" ", remainder))

		if row < height-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func column(width int, kbs []KeyBind) []string {
	keyWidth := 0
	for _, kb := range kbs {
		keyWidth = max(keyWidth, ansi.StringWidth(kb.String()))
	}

	rows := make([]string, 0, len(kbs))

	for _, kb := range kbs {
		if row := kb.row(keyWidth, width-keyWidth); row != "" {
			rows = append(rows, row)
		}
	}

	return rows
}
