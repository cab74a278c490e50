package source

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/muesli/termenv"
)

func NewHighlighterForProfile(filename string, style *chroma.Style, profile termenv.Profile) *Highlighter {
	return newHighlighter(filename, style, profile)
}
