package uitest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Style holds the SGR attributes in effect for a run of text. Colours are
// 256-colour indices ("212") or upper-case hex ("FF00AA").
type Style struct {
	Foreground string
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
}

// Segment is a run of printable text sharing one [Style].
type Segment struct {
	Text  string
	Style Style
}

// UseTrueColor renders lipgloss styles with true colour until the test ends.
// It changes global state, so callers must not run in parallel.
func UseTrueColor(tb testing.TB) {
	tb.Helper()

	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)

	tb.Cleanup(func() {
		lipgloss.SetColorProfile(prev)
	})
}

// Segments splits output into styled runs of printable text.
func Segments(output string) []Segment {
	var (
		segments []Segment
		style    Style
		text     strings.Builder
		state    byte
	)

	flush := func() {
		if text.Len() > 0 {
			segments = append(segments, Segment{Text: text.String(), Style: style})
			text.Reset()
		}
	}

	p := ansi.GetParser()
	defer ansi.PutParser(p)

	input := []byte(output)
	for len(input) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(input, state, p)

		switch {
		case ansi.HasCsiPrefix(seq) && seq[len(seq)-1] == 'm':
			flush()

			style = applySGR(style, sgrCodes(p))
		case width > 0:
			text.Write(seq)
		}

		input = input[n:]
		state = newState
	}

	flush()

	return segments
}

// StyleOf returns the style of the first segment containing text.
func StyleOf(output, text string) (Style, bool) {
	for _, seg := range Segments(output) {
		if strings.Contains(seg.Text, text) {
			return seg.Style, true
		}
	}

	return Style{}, false
}

func sgrCodes(p *ansi.Parser) []int {
	params := p.Params()

	codes := make([]int, len(params))
	for i, param := range params {
		codes[i] = param.Param(0)
	}

	return codes
}

func applySGR(s Style, codes []int) Style {
	for i := 0; i < len(codes); i++ {
		switch code := codes[i]; {
		case code == 0:
			s = Style{}
		case code == 1:
			s.Bold = true
		case code == 3:
			s.Italic = true
		case code == 4:
			s.Underline = true
		case code == 22:
			s.Bold = false
		case code == 23:
			s.Italic = false
		case code == 24:
			s.Underline = false
		case code == 38 || code == 48:
			c, used := extendedColor(codes[i+1:])
			i += used

			if code == 38 {
				s.Foreground = c
			} else {
				s.Background = c
			}
		case code >= 30 && code <= 37:
			s.Foreground = fmt.Sprint(code - 30)
		case code >= 40 && code <= 47:
			s.Background = fmt.Sprint(code - 40)
		case code >= 90 && code <= 97:
			s.Foreground = fmt.Sprint(code - 90 + 8)
		case code >= 100 && code <= 107:
			s.Background = fmt.Sprint(code - 100 + 8)
		}
	}

	return s
}

// extendedColor decodes the arguments of a 38 or 48 SGR code and returns how
// many parameters it consumed.
func extendedColor(codes []int) (string, int) {
	if len(codes) == 0 {
		return "", 0
	}

	switch codes[0] {
	case 5:
		if len(codes) >= 2 {
			return fmt.Sprint(codes[1]), 2
		}
	case 2:
		if len(codes) >= 4 {
			return fmt.Sprintf("%02X%02X%02X", codes[1], codes[2], codes[3]), 4
		}
	}

	return "", 1
}
