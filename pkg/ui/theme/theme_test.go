package theme_test

import (
	"testing"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/stretchr/testify/assert"

	"github.com/macropower/vlist/pkg/ui/theme"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		name     string
		wantName string
	}{
		"dark alias": {
			name:     "dark",
			wantName: "github-dark",
		},
		"light alias": {
			name:     "light",
			wantName: "github",
		},
		"chroma style": {
			name:     "dracula",
			wantName: "dracula",
		},
		"unknown style": {
			name:     "does-not-exist",
			wantName: "does-not-exist",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			th := theme.New(tc.name)

			assert.Equal(t, tc.wantName, th.Name)
			assert.NotNil(t, th.ChromaStyle)
		})
	}
}

func TestNew_Fallback(t *testing.T) {
	t.Parallel()

	th := theme.New("does-not-exist")
	assert.Equal(t, styles.Fallback, th.ChromaStyle)

	// Tests never run with a terminal on stdout.
	assert.Equal(t, "github", theme.New("auto").Name)
}
