package scroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/vlist/pkg/scroll"
)

type loadMoreMsg struct{}

func loadMore() tea.Msg {
	return loadMoreMsg{}
}

func TestNewThreshold(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err      error
		callback tea.Cmd
		percent  float64
		want     float64
	}{
		"default": {
			callback: loadMore,
			want:     scroll.DefaultPercent,
		},
		"explicit": {
			callback: loadMore,
			percent:  85,
			want:     85,
		},
		"full height": {
			callback: loadMore,
			percent:  100,
			want:     100,
		},
		"negative": {
			callback: loadMore,
			percent:  -1,
			err:      scroll.ErrInvalidPercent,
		},
		"over 100": {
			callback: loadMore,
			percent:  100.5,
			err:      scroll.ErrInvalidPercent,
		},
		"missing callback": {
			percent: 50,
			err:     scroll.ErrMissingCallback,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			th, err := scroll.NewThreshold(tc.percent, tc.callback)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tc.want, th.Percent(), 0.0001)
		})
	}
}

func TestThreshold_Check(t *testing.T) {
	t.Parallel()

	th, err := scroll.NewThreshold(85, loadMore)
	require.NoError(t, err)

	tcs := map[string]struct {
		metrics scroll.Metrics
		fires   bool
	}{
		"just before": {
			metrics: scroll.Metrics{ScrollTop: 699, ClientHeight: 150, ScrollHeight: 1000},
		},
		"exactly at": {
			metrics: scroll.Metrics{ScrollTop: 700, ClientHeight: 150, ScrollHeight: 1000},
			fires:   true,
		},
		"past": {
			metrics: scroll.Metrics{ScrollTop: 850, ClientHeight: 150, ScrollHeight: 1000},
			fires:   true,
		},
		"zero scroll top": {
			metrics: scroll.Metrics{ClientHeight: 2000, ScrollHeight: 1000},
		},
		"zero client height": {
			metrics: scroll.Metrics{ScrollTop: 900, ScrollHeight: 1000},
		},
		"zero scroll height": {
			metrics: scroll.Metrics{ScrollTop: 900, ClientHeight: 150},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.fires, th.Reached(tc.metrics))

			cmd := th.Check(tc.metrics)
			if !tc.fires {
				assert.Nil(t, cmd)

				return
			}

			require.NotNil(t, cmd)
			assert.Equal(t, loadMoreMsg{}, cmd())
		})
	}
}

func TestThreshold_NoDedupe(t *testing.T) {
	t.Parallel()

	th, err := scroll.NewThreshold(85, loadMore)
	require.NoError(t, err)

	m := scroll.Metrics{ScrollTop: 900, ClientHeight: 100, ScrollHeight: 1000}
	for range 3 {
		assert.NotNil(t, th.Check(m))
	}
}

func TestThreshold_Debounced(t *testing.T) {
	t.Parallel()

	th, err := scroll.NewThreshold(85, loadMore, scroll.WithDelay(time.Millisecond))
	require.NoError(t, err)

	below := th.Notify(scroll.Metrics{ScrollTop: 100, ClientHeight: 150, ScrollHeight: 1000})
	above := th.Notify(scroll.Metrics{ScrollTop: 700, ClientHeight: 150, ScrollHeight: 1000})

	// The first notification of the burst is stale.
	handled, cmd := th.Update(below())
	assert.False(t, handled)
	assert.Nil(t, cmd)

	handled, cmd = th.Update(above())
	assert.True(t, handled)
	require.NotNil(t, cmd)
	assert.Equal(t, loadMoreMsg{}, cmd())

	// A burst ending below the threshold does not fire.
	_ = th.Notify(scroll.Metrics{ScrollTop: 800, ClientHeight: 150, ScrollHeight: 1000})
	last := th.Notify(scroll.Metrics{ScrollTop: 10, ClientHeight: 150, ScrollHeight: 1000})

	handled, cmd = th.Update(last())
	assert.True(t, handled)
	assert.Nil(t, cmd)

	handled, _ = th.Update(loadMoreMsg{})
	assert.False(t, handled)
}
