package source

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/muesli/termenv"
)

// Highlighter renders rows with chroma syntax highlighting.
//
// Rows are highlighted independently, so constructs that span lines (block
// comments, multi-line strings) are not recognised.
type Highlighter struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewHighlighter picks a lexer from filename. It returns nil if no lexer
// matches or the terminal has no colour support, in which case rows should
// be rendered as is.
func NewHighlighter(filename string, style *chroma.Style) *Highlighter {
	return newHighlighter(filename, style, termenv.ColorProfile())
}

func newHighlighter(filename string, style *chroma.Style, profile termenv.Profile) *Highlighter {
	lexer := lexers.Match(filename)
	if lexer == nil || style == nil {
		return nil
	}

	var name string

	switch profile {
	case termenv.TrueColor:
		name = "terminal16m"
	case termenv.ANSI256:
		name = "terminal256"
	case termenv.ANSI:
		name = "terminal8"
	default:
		return nil
	}

	return &Highlighter{
		lexer:     chroma.Coalesce(lexer),
		formatter: formatters.Get(name),
		style:     style,
	}
}

// Highlight returns line with ANSI colours applied. On a lexer or formatter
// error the line is returned unchanged.
func (h *Highlighter) Highlight(line string) string {
	if h == nil {
		return line
	}

	it, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf bytes.Buffer

	err = h.formatter.Format(&buf, h.style, it)
	if err != nil {
		return line
	}

	return strings.ReplaceAll(buf.String(), "\n", "")
}
