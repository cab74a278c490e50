package statusbar_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/macropower/vlist/pkg/keys"
	"github.com/macropower/vlist/pkg/ui/statusbar"
	"github.com/macropower/vlist/pkg/ui/theme"
)

func TestStatusBarRenderer_Render(t *testing.T) {
	t.Parallel()

	th := theme.New("github")

	tcs := map[string]struct {
		opts     []statusbar.StatusBarOpt
		note     string
		position string
		percent  float64
		want     []string
		notWant  []string
	}{
		"note and position": {
			note:     "numbers",
			position: "1-10 of 50",
			percent:  0.5,
			want:     []string{"vlist", "numbers", "1-10 of 50", "50%", "? Help"},
		},
		"message replaces note": {
			opts:     []statusbar.StatusBarOpt{statusbar.WithMessage("copied", statusbar.StyleSuccess)},
			note:     "numbers",
			position: "1-10 of 50",
			want:     []string{"copied"},
			notWant:  []string{"numbers"},
		},
		"percent is clamped": {
			position: "x",
			percent:  4,
			want:     []string{"100%"},
		},
		"newlines are flattened": {
			note:     "line one\nline two",
			position: "x",
			want:     []string{"line one line two"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out := statusbar.NewStatusBarRenderer(th, 100, tc.opts...).Render(tc.note, tc.position, tc.percent)
			plain := ansi.Strip(out)

			assert.Equal(t, 100, ansi.StringWidth(plain))
			assert.NotContains(t, plain, "\n")

			for _, w := range tc.want {
				assert.Contains(t, plain, w)
			}
			for _, nw := range tc.notWant {
				assert.NotContains(t, plain, nw)
			}
		})
	}
}

func TestStatusBarRenderer_Truncates(t *testing.T) {
	t.Parallel()

	note := strings.Repeat("long ", 40)
	out := statusbar.NewStatusBarRenderer(theme.New("github"), 60).Render(note, "1-2 of 2", 0)
	plain := ansi.Strip(out)

	assert.Equal(t, 60, ansi.StringWidth(plain))
	assert.Contains(t, plain, theme.Ellipsis)
}

func TestHelpRenderer(t *testing.T) {
	t.Parallel()

	var kbr keys.KeyBindRenderer
	kbr.AddColumn(keys.NewBind("quit", keys.New("q")))

	hr := statusbar.NewHelpRenderer(theme.New("github"), &kbr)
	out := hr.Render(40)

	assert.Contains(t, ansi.Strip(out), "q  quit")
	assert.Equal(t, 3, hr.Height(40))
}
