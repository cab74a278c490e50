// Package theme derives the list viewer's lipgloss styles from a chroma
// style, so that row highlighting and UI chrome share one palette.
package theme

import (
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const Ellipsis = "…"

var Default = New("auto")

type Theme struct {
	ChromaStyle *chroma.Style

	ErrorStyle            lipgloss.Style
	HelpStyle             lipgloss.Style
	LineNumberStyle       lipgloss.Style
	LogoStyle             lipgloss.Style
	MatchStyle            lipgloss.Style
	PromptStyle           lipgloss.Style
	StatusBarHelpStyle    lipgloss.Style
	StatusBarMessageStyle lipgloss.Style
	StatusBarErrorStyle   lipgloss.Style
	StatusBarPosStyle     lipgloss.Style
	StatusBarStyle        lipgloss.Style
	SubtleStyle           lipgloss.Style
	TextStyle             lipgloss.Style

	Name string
}

// New builds a [Theme] from a chroma style name. "auto" (or "") picks a
// light or dark style from the terminal background; unknown names fall back
// to chroma's default.
func New(name string) *Theme {
	name = resolve(name)
	cs := palette{style: lookup(name)}

	text := lipgloss.NewStyle().Foreground(cs.fg(chroma.Background))
	subtle := lipgloss.NewStyle().Foreground(cs.fg(chroma.Comment))
	accent := cs.fg(chroma.NameTag)

	return &Theme{
		ChromaStyle: cs.style,
		Name:        name,

		TextStyle:       text,
		SubtleStyle:     subtle,
		LineNumberStyle: subtle,
		MatchStyle:      lipgloss.NewStyle().Foreground(accent).Bold(true),
		PromptStyle:     lipgloss.NewStyle().Foreground(accent),
		ErrorStyle:      lipgloss.NewStyle().Foreground(cs.fg(chroma.GenericDeleted)),

		LogoStyle: lipgloss.NewStyle().
			Foreground(cs.bg(chroma.Background)).
			Background(accent).
			Bold(true),
		HelpStyle: lipgloss.NewStyle().
			Foreground(cs.fgShade(chroma.Background, 0.2)).
			Background(cs.bgShade(chroma.Background, 0.2)),
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(cs.fg(chroma.Background)).
			Background(cs.bgShade(chroma.Background, 0.1)),
		StatusBarPosStyle: lipgloss.NewStyle().
			Foreground(cs.fg(chroma.Background)).
			Background(cs.bgShade(chroma.Background, 0.15)),
		StatusBarHelpStyle: lipgloss.NewStyle().
			Foreground(cs.fgShade(chroma.Background, 0.2)).
			Background(cs.bgShade(chroma.Background, 0.2)),
		StatusBarMessageStyle: lipgloss.NewStyle().
			Foreground(cs.bg(chroma.Background)).
			Background(cs.fgShade(chroma.NameTag, 0.15)),
		StatusBarErrorStyle: lipgloss.NewStyle().
			Foreground(cs.bg(chroma.Background)).
			Background(cs.fg(chroma.GenericDeleted)),
	}
}

type palette struct {
	style *chroma.Style
}

func lookup(name string) *chroma.Style {
	s := styles.Get(name)
	if s == nil {
		return styles.Fallback
	}

	return s
}

func (p palette) fg(t chroma.TokenType) lipgloss.Color {
	return lipgloss.Color(p.style.Get(t).Colour.String()) //nolint:misspell // Chroma naming.
}

func (p palette) bg(t chroma.TokenType) lipgloss.Color {
	return lipgloss.Color(p.style.Get(t).Background.String())
}

func (p palette) fgShade(t chroma.TokenType, factor float64) lipgloss.Color {
	return lipgloss.Color(p.style.Get(t).Colour.BrightenOrDarken(factor).String()) //nolint:misspell // Chroma naming.
}

func (p palette) bgShade(t chroma.TokenType, factor float64) lipgloss.Color {
	return lipgloss.Color(p.style.Get(t).Background.BrightenOrDarken(factor).String())
}

func resolve(name string) string {
	switch name {
	case "dark":
		return "github-dark"
	case "light":
		return "github"
	case "auto", "":
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return "github"
		}
		if termenv.HasDarkBackground() {
			return "github-dark"
		}

		return "github"
	default:
		return name
	}
}
