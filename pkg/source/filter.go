package source

import (
	"context"
	"fmt"
	"io"
)

// DefaultScanLimit is the number of underlying pages one [Filter.Load] reads
// while looking for a match.
const DefaultScanLimit = 10

// Predicate decides whether a row is kept. index is the row's position in
// the unfiltered source.
type Predicate interface {
	Match(line string, index int) (bool, error)
	String() string
}

// Filter drops the rows of a [Source] that do not satisfy a [Predicate].
type Filter struct {
	src       Source
	pred      Predicate
	index     int
	scanLimit int
}

// FilterOpt configures a [Filter].
type FilterOpt func(*Filter)

// WithScanLimit sets how many underlying pages one [Filter.Load] may read.
// Non-positive values use [DefaultScanLimit].
func WithScanLimit(pages int) FilterOpt {
	return func(f *Filter) {
		if pages > 0 {
			f.scanLimit = pages
		}
	}
}

func NewFilter(src Source, pred Predicate, opts ...FilterOpt) *Filter {
	f := &Filter{src: src, pred: pred, scanLimit: DefaultScanLimit}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Filter) Name() string {
	return fmt.Sprintf("%s where %s", f.src.Name(), f.pred)
}

// Load reads pages from the underlying source until at least one row
// matches, the source is exhausted, or the scan limit is reached. The result
// may be empty while the source still has rows; callers decide whether to
// load again.
//
// Rows for which the predicate fails are skipped. The rest of the page is
// still filtered and the kept rows are returned with the first such error.
func (f *Filter) Load(ctx context.Context, n int) ([]string, error) {
	var kept []string

	for range f.scanLimit {
		if len(kept) > 0 || f.src.Exhausted() {
			break
		}

		if err := ctx.Err(); err != nil {
			return kept, err //nolint:wrapcheck // Context errors are returned as is.
		}

		rows, err := f.src.Load(ctx, n)
		if err != nil {
			return kept, err //nolint:wrapcheck // Wrapped by the caller.
		}

		var matchErr error

		for _, row := range rows {
			ok, err := f.pred.Match(row, f.index)
			if err != nil && matchErr == nil {
				matchErr = fmt.Errorf("filter row %d: %w", f.index, err)
			}

			f.index++

			if ok && err == nil {
				kept = append(kept, row)
			}
		}

		if matchErr != nil {
			return kept, matchErr
		}

		if len(rows) == 0 {
			break
		}
	}

	return kept, nil
}

func (f *Filter) Exhausted() bool {
	return f.src.Exhausted()
}

func (f *Filter) Resume() {
	if r, ok := f.src.(Resumer); ok {
		r.Resume()
	}
}

// Close closes the underlying source if it is an [io.Closer].
func (f *Filter) Close() error {
	if c, ok := f.src.(io.Closer); ok {
		return c.Close() //nolint:wrapcheck // Wrapped by the underlying source.
	}

	return nil
}
