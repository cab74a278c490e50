package scroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vlist/pkg/scroll"
)

func TestDebouncer(t *testing.T) {
	t.Parallel()

	d := scroll.NewDebouncer(0)
	other := scroll.NewDebouncer(0)

	assert.NotEqual(t, d.ID(), other.ID())
	assert.Zero(t, d.Delay())

	first := d.Trigger("a")()
	second := d.Trigger("b")()

	_, ok := d.Accept(first)
	assert.False(t, ok, "stale trigger must be dropped")

	dm, ok := d.Accept(second)
	require.True(t, ok)
	assert.Equal(t, "b", dm.Payload)

	_, ok = other.Accept(second)
	assert.False(t, ok, "messages from another debouncer must be ignored")

	_, ok = d.Accept("not a debounce message")
	assert.False(t, ok)
}

func TestDebouncer_Delay(t *testing.T) {
	t.Parallel()

	d := scroll.NewDebouncer(5 * time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, d.Delay())

	start := time.Now()
	msg := d.Trigger(nil)()

	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)

	_, ok := d.Accept(msg)
	assert.True(t, ok)

	neg := scroll.NewDebouncer(-time.Second)
	assert.Zero(t, neg.Delay())
}
