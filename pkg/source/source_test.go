package source_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vlist/pkg/expr"
	"github.com/macropower/vlist/pkg/source"
)

func TestGenerator(t *testing.T) {
	t.Parallel()

	g := source.NewGenerator(120)
	assert.Equal(t, "numbers (max 120)", g.Name())

	var got []string

	for !g.Exhausted() {
		rows, err := g.Load(t.Context(), 50)
		require.NoError(t, err)

		got = append(got, rows...)
	}

	require.Len(t, got, 120)
	assert.Equal(t, "number 0", got[0])
	assert.Equal(t, "number 119", got[119])

	rows, err := g.Load(t.Context(), 50)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGenerator_Unbounded(t *testing.T) {
	t.Parallel()

	g := source.NewGenerator(0)
	assert.Equal(t, "numbers", g.Name())

	rows, err := g.Load(t.Context(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"number 0", "number 1", "number 2"}, rows)
	assert.False(t, g.Exhausted())

	rows, err = g.Load(t.Context(), -1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFile_Load(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input  string
		pages  [][]string
		follow bool
	}{
		"pages": {
			input: "a\nb\nc\nd\ne\n",
			pages: [][]string{{"a", "b"}, {"c", "d"}, {"e"}},
		},
		"crlf": {
			input: "a\r\nb\r\n",
			pages: [][]string{{"a", "b"}, {}},
		},
		"trailing partial line": {
			input: "a\nb",
			pages: [][]string{{"a", "b"}},
		},
		"partial line held while following": {
			input:  "a\nb",
			follow: true,
			pages:  [][]string{{"a"}},
		},
		"empty": {
			input: "",
			pages: [][]string{{}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := source.NewReader("test", strings.NewReader(tc.input), source.WithFollow(tc.follow))

			for _, want := range tc.pages {
				require.False(t, f.Exhausted())

				rows, err := f.Load(t.Context(), 2)
				require.NoError(t, err)
				assert.Equal(t, want, rows)
			}

			assert.True(t, f.Exhausted())
			require.NoError(t, f.Close())
		})
	}
}

func TestFile_Follow(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rows.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntw"), 0o600))

	f, err := source.Open(path, source.WithFollow(true))
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, f.Close())
	})

	rows, err := f.Load(t.Context(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, rows)
	assert.True(t, f.Exhausted())

	fh, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = fh.WriteString("o\nthree\n")
	require.NoError(t, err)
	require.NoError(t, fh.Close())

	f.Resume()
	assert.False(t, f.Exhausted())

	rows, err = f.Load(t.Context(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "three"}, rows)
}

func TestOpen_Missing(t *testing.T) {
	t.Parallel()

	_, err := source.Open(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	env, err := expr.NewEnvironment()
	require.NoError(t, err)

	pred, err := env.Compile(`index % 10 == 0`)
	require.NoError(t, err)

	f := source.NewFilter(source.NewGenerator(35), pred)
	assert.Equal(t, "numbers (max 35) where index % 10 == 0", f.Name())

	var got []string

	for !f.Exhausted() {
		rows, err := f.Load(t.Context(), 4)
		require.NoError(t, err)

		got = append(got, rows...)
	}

	assert.Equal(t, []string{"number 0", "number 10", "number 20", "number 30"}, got)
}

type errPredicate struct{}

func (errPredicate) Match(string, int) (bool, error) { return false, errors.New("bad row") }
func (errPredicate) String() string                  { return "err" }

// indexPredicate matches the rows in keep and fails on the rows in fail. It
// records the last index it saw.
type indexPredicate struct {
	keep map[int]bool
	fail map[int]bool
	last int
}

func (p *indexPredicate) Match(_ string, index int) (bool, error) {
	p.last = index
	if p.fail[index] {
		return false, errors.New("bad row")
	}

	return p.keep[index], nil
}

func (*indexPredicate) String() string { return "index" }

func TestFilter_Error(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		pred *indexPredicate
		want []string
		err  string
	}{
		"every row fails": {
			pred: &indexPredicate{fail: map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true}},
			err:  "filter row 0",
		},
		"kept rows survive a failing row": {
			pred: &indexPredicate{
				keep: map[int]bool{1: true, 3: true},
				fail: map[int]bool{2: true},
			},
			want: []string{"number 1", "number 3"},
			err:  "filter row 2",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := source.NewFilter(source.NewGenerator(5), tc.pred)

			rows, err := source.Load(t.Context(), f, 5)
			require.ErrorContains(t, err, tc.err)
			assert.Equal(t, tc.want, rows)
			assert.Equal(t, 4, tc.pred.last, "the whole page is filtered")
		})
	}
}

func TestFilter_ScanLimit(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts     []source.FilterOpt
		wantLast int
	}{
		"default": {
			wantLast: source.DefaultScanLimit*50 - 1,
		},
		"explicit": {
			opts:     []source.FilterOpt{source.WithScanLimit(3)},
			wantLast: 3*50 - 1,
		},
		"non-positive uses default": {
			opts:     []source.FilterOpt{source.WithScanLimit(0)},
			wantLast: source.DefaultScanLimit*50 - 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pred := &indexPredicate{}
			f := source.NewFilter(source.NewGenerator(0), pred, tc.opts...)

			rows, err := f.Load(t.Context(), 50)
			require.NoError(t, err)
			assert.Empty(t, rows)
			assert.False(t, f.Exhausted())
			assert.Equal(t, tc.wantLast, pred.last)

			// The next load continues where the last one stopped.
			pred.keep = map[int]bool{tc.wantLast + 1: true}

			rows, err = f.Load(t.Context(), 50)
			require.NoError(t, err)
			assert.Equal(t, []string{fmt.Sprintf("number %d", tc.wantLast+1)}, rows)
		})
	}
}

func TestFilter_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	f := source.NewFilter(source.NewGenerator(0), &indexPredicate{})

	rows, err := f.Load(ctx, 50)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rows)
}

func TestFilter_Close(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rows.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o600))

	fh, err := source.Open(path)
	require.NoError(t, err)

	f := source.NewFilter(fh, errPredicate{})
	require.NoError(t, f.Close())

	// Generators hold nothing to close.
	require.NoError(t, source.NewFilter(source.NewGenerator(1), errPredicate{}).Close())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	rows, err := source.Load(t.Context(), source.NewGenerator(3), 5)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestHighlighter(t *testing.T) {
	t.Parallel()

	style := styles.Get("github")

	h := source.NewHighlighterForProfile("main.go", style, termenv.TrueColor)
	require.NotNil(t, h)

	out := h.Highlight(`func main() { return "x" }`)
	assert.Contains(t, out, "\x1b[")
	assert.NotContains(t, out, "\n")

	assert.Nil(t, source.NewHighlighterForProfile("rows.unknown-extension", style, termenv.TrueColor))
	assert.Nil(t, source.NewHighlighterForProfile("main.go", style, termenv.Ascii))

	var none *source.Highlighter
	assert.Equal(t, "plain", none.Highlight("plain"))
}

func TestWatcher(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "rows.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0o600))

	w, err := source.NewWatcher(path)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, w.Close())
	})

	events := make(chan source.Event, 8)
	w.Subscribe(events)

	go w.Run(t.Context())

	// Changes to other files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x\n"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o600))

	select {
	case evt := <-events:
		assert.Equal(t, path, evt.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}
