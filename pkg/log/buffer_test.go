package log_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vlist/pkg/log"
)

func TestCircularBuffer_Capacity(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		capacity int
		want     int
	}{
		"explicit": {capacity: 10, want: 10},
		"zero":     {capacity: 0, want: log.DefaultCapacity},
		"negative": {capacity: -5, want: log.DefaultCapacity},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cb := log.NewCircularBuffer(tc.capacity)
			assert.Equal(t, tc.want, cb.Capacity())
			assert.Zero(t, cb.Size())
			assert.Nil(t, cb.Entries())
		})
	}
}

func TestCircularBuffer_Wraps(t *testing.T) {
	t.Parallel()

	cb := log.NewCircularBuffer(3)

	for _, s := range []string{"a", "b", "c", "d", "e"} {
		n, err := cb.Write([]byte(s))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}

	n, err := cb.Write(nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, 3, cb.Size())
	assert.Equal(t, [][]byte{[]byte("c"), []byte("d"), []byte("e")}, cb.Entries())

	cb.Clear()
	assert.Zero(t, cb.Size())
	assert.Nil(t, cb.Entries())
}

func TestCircularBuffer_EntriesAreCopies(t *testing.T) {
	t.Parallel()

	cb := log.NewCircularBuffer(2)

	p := []byte("line")
	_, err := cb.Write(p)
	require.NoError(t, err)

	p[0] = 'X'

	entries := cb.Entries()
	entries[0][1] = 'X'

	assert.Equal(t, [][]byte{[]byte("line")}, cb.Entries())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestCircularBuffer_WriteTo(t *testing.T) {
	t.Parallel()

	cb := log.NewCircularBuffer(4)
	_, _ = cb.Write([]byte("one\n"))
	_, _ = cb.Write([]byte("two\n"))

	var out bytes.Buffer

	n, err := cb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, "one\ntwo\n", out.String())

	_, err = cb.WriteTo(failWriter{})
	require.Error(t, err)
}
