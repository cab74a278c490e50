package window

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
)

// Container is a scrollable region. Offsets and heights share one unit, which
// must also be the unit of [Geometry].
type Container interface {
	ScrollTop() int
	ClientHeight() int
	SetScrollTop(offset int)
}

// Spacer receives the padding that stands in for rows that are not
// materialized.
type Spacer interface {
	SetPadding(top, bottom int)
}

// ContentSizer is implemented by spacers or containers that need the height of
// the materialized rows, e.g. to clamp their scroll offset.
type ContentSizer interface {
	SetContentHeight(height int)
}

// RowFunc renders a single dataset item.
type RowFunc[T any] func(item T, index int) string

// Option configures an [Engine].
type Option func(*settings)

type settings struct {
	spacer   Spacer
	onChange func(Range)
	logger   *slog.Logger
	target   *int
	geometry Geometry
}

// WithGeometry replaces the whole [Geometry].
func WithGeometry(g Geometry) Option {
	return func(s *settings) {
		s.geometry = g
	}
}

// WithRowHeight sets [Geometry.RowHeight].
func WithRowHeight(h int) Option {
	return func(s *settings) {
		s.geometry.RowHeight = h
	}
}

// WithRowGap sets [Geometry.RowGap].
func WithRowGap(gap int) Option {
	return func(s *settings) {
		s.geometry.RowGap = gap
	}
}

// WithBuffer sets [Geometry.Buffer].
func WithBuffer(n int) Option {
	return func(s *settings) {
		s.geometry.Buffer = n
	}
}

// WithSpacer sets the element that receives the spacer padding. By default,
// the container receives it if it implements [Spacer].
func WithSpacer(sp Spacer) Option {
	return func(s *settings) {
		s.spacer = sp
	}
}

// WithOnChange registers an observer that is called after every recompute
// that changes the materialized [Range].
func WithOnChange(fn func(Range)) Option {
	return func(s *settings) {
		s.onChange = fn
	}
}

// WithTarget jumps to the given index once the engine is created.
func WithTarget(idx int) Option {
	return func(s *settings) {
		s.target = &idx
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// Engine keeps the materialized window of a dataset in sync with a scroll
// [Container]. It is not safe for concurrent use; all calls are expected to
// come from a single event loop.
type Engine[T any] struct {
	container Container
	spacer    Spacer
	rowFunc   RowFunc[T]
	onChange  func(Range)
	logger    *slog.Logger

	// Last consumed value of SetTarget.
	target *int

	// Private snapshot of the caller's dataset.
	data []T

	geometry Geometry
	window   Range
	hidden   Hidden
}

// New creates an [Engine] over a copy of data and computes the initial window
// from the container's current scroll position.
//
// New fails with [ErrInvalidConfig] if the container or row func is missing,
// or if the geometry or initial target is invalid. An initial target past the
// end of data fails with [ErrIndexOutOfRange].
func New[T any](c Container, data []T, rows RowFunc[T], opts ...Option) (*Engine[T], error) {
	s := &settings{
		geometry: NewGeometry(0),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if c == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, ErrMissingContainer)
	}
	if rows == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, ErrMissingRowFunc)
	}

	err := s.geometry.Validate()
	if err != nil {
		return nil, err
	}

	if s.target != nil && *s.target < 0 {
		return nil, fmt.Errorf("%w: %w: got %d", ErrInvalidConfig, ErrInvalidTarget, *s.target)
	}

	spacer := s.spacer
	if spacer == nil {
		if sp, ok := c.(Spacer); ok {
			spacer = sp
		}
	}

	e := &Engine[T]{
		container: c,
		spacer:    spacer,
		rowFunc:   rows,
		onChange:  s.onChange,
		logger:    s.logger,
		data:      slices.Clone(data),
		geometry:  s.geometry,
	}

	e.Recompute()

	if s.target != nil {
		err := e.SetTarget(*s.target)
		if err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Recompute recalculates the window from the container's current scroll
// position. It is the handler for scroll notifications.
func (e *Engine[T]) Recompute() {
	e.apply(e.scrollPlan())
}

// SetTarget requests a one-shot jump so that idx becomes the first visible
// row. A target equal to the last accepted target is ignored, so a host can
// call SetTarget with the same value on every update.
func (e *Engine[T]) SetTarget(idx int) error {
	if e.target != nil && *e.target == idx {
		return nil
	}

	err := e.JumpTo(idx)
	if err != nil {
		return err
	}

	e.target = &idx

	return nil
}

// Target returns the last target accepted by [Engine.SetTarget].
func (e *Engine[T]) Target() (int, bool) {
	if e.target == nil {
		return 0, false
	}

	return *e.target, true
}

// JumpTo moves the window so that idx becomes the first visible row, or as
// close to it as the end of the dataset allows, and scrolls the container to
// match. JumpTo fails without changing any state if idx is negative or not
// smaller than the dataset length.
func (e *Engine[T]) JumpTo(idx int) error {
	if idx < 0 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidConfig, ErrInvalidTarget, idx)
	}
	if idx >= len(e.data) {
		return fmt.Errorf("%w: cannot jump to %d, dataset has %d rows", ErrIndexOutOfRange, idx, len(e.data))
	}

	e.apply(e.jumpPlan(idx))

	return nil
}

// SetData replaces the dataset with a copy of data and recomputes the window
// from the current scroll position.
func (e *Engine[T]) SetData(data []T) {
	e.data = slices.Clone(data)
	e.Recompute()
}

// Append adds items to the end of the dataset and recomputes the window.
// Previously returned snapshots are not modified.
func (e *Engine[T]) Append(items ...T) {
	e.data = slices.Concat(e.data, items)
	e.Recompute()
}

// Range returns the materialized window.
func (e *Engine[T]) Range() Range {
	return e.window
}

// Hidden returns the number of rows above and below the window.
func (e *Engine[T]) Hidden() Hidden {
	return e.hidden
}

// Len returns the length of the dataset snapshot.
func (e *Engine[T]) Len() int {
	return len(e.data)
}

// Geometry returns the engine's row geometry.
func (e *Engine[T]) Geometry() Geometry {
	return e.geometry
}

// Item returns the item at index i of the dataset snapshot.
func (e *Engine[T]) Item(i int) (T, bool) {
	if i < 0 || i >= len(e.data) {
		var zero T
		return zero, false
	}

	return e.data[i], true
}

// Data returns a copy of the dataset snapshot.
func (e *Engine[T]) Data() []T {
	return slices.Clone(e.data)
}

// IndexAt returns the index of the row covering the given scroll offset.
func (e *Engine[T]) IndexAt(offset int) int {
	if len(e.data) == 0 {
		return 0
	}

	return min(max(0, offset)/e.geometry.Extent(), len(e.data)-1)
}

// OffsetOf returns the scroll offset of the top of row i.
func (e *Engine[T]) OffsetOf(i int) int {
	return i * e.geometry.Extent()
}

// ContentHeight returns the height of the materialized rows.
func (e *Engine[T]) ContentHeight() int {
	if len(e.data) == 0 {
		return 0
	}

	return e.window.Size() * e.geometry.Extent()
}

// TotalHeight returns the height of the whole dataset.
func (e *Engine[T]) TotalHeight() int {
	return len(e.data) * e.geometry.Extent()
}

// All iterates over the materialized indices and items.
func (e *Engine[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if len(e.data) == 0 {
			return
		}

		for i := e.window.First; i <= e.window.Last && i < len(e.data); i++ {
			if !yield(i, e.data[i]) {
				return
			}
		}
	}
}

// Rows renders every materialized item with the engine's [RowFunc]. Rows
// outside the window are never rendered.
func (e *Engine[T]) Rows() []string {
	if len(e.data) == 0 {
		return nil
	}

	rows := make([]string, 0, e.window.Size())
	for i, item := range e.All() {
		rows = append(rows, e.rowFunc(item, i))
	}

	return rows
}

type plan struct {
	window   Range
	hidden   Hidden
	scrollTo int
	jump     bool
}

func (e *Engine[T]) scrollPlan() plan {
	extent := e.geometry.Extent()
	scrollTop := max(0, e.container.ScrollTop())
	clientHeight := max(0, e.container.ClientHeight())

	firstVisible := scrollTop / extent
	lastVisible := (scrollTop + clientHeight) / extent

	return e.clamp(plan{}, firstVisible-e.geometry.Buffer, lastVisible+e.geometry.Buffer)
}

func (e *Engine[T]) jumpPlan(target int) plan {
	extent := e.geometry.Extent()
	lastIdx := max(0, len(e.data)-1)
	visible := max(0, e.container.ClientHeight()) / extent

	desiredFirst := max(0, target)
	if desiredFirst+visible > lastIdx {
		// Can go negative when the dataset is shorter than the viewport.
		desiredFirst = lastIdx - visible
	}

	lastVisible := desiredFirst + visible

	p := plan{
		scrollTo: desiredFirst * extent,
		jump:     true,
	}

	return e.clamp(p, desiredFirst-e.geometry.Buffer, lastVisible+e.geometry.Buffer)
}

func (e *Engine[T]) clamp(p plan, firstExisting, lastExisting int) plan {
	lastIdx := max(0, len(e.data)-1)

	last := min(lastIdx, lastExisting)
	first := min(max(0, firstExisting), last)

	p.window = Range{First: first, Last: last}
	p.hidden = Hidden{
		Top:    first,
		Bottom: max(0, len(e.data)-(last+1)),
	}

	return p
}

func (e *Engine[T]) apply(p plan) {
	prev := e.window
	extent := e.geometry.Extent()

	e.hidden = p.hidden
	e.window = p.window

	if cs, ok := e.spacer.(ContentSizer); ok {
		cs.SetContentHeight(e.ContentHeight())
	} else if cs, ok := e.container.(ContentSizer); ok {
		cs.SetContentHeight(e.ContentHeight())
	}

	if e.spacer != nil {
		e.spacer.SetPadding(p.hidden.Top*extent, p.hidden.Bottom*extent)
	}

	if p.jump {
		e.container.SetScrollTop(p.scrollTo)
	}

	e.logger.Debug("recompute window",
		slog.Bool("jump", p.jump),
		slog.Int("rows", len(e.data)),
		slog.Int("first", p.window.First),
		slog.Int("last", p.window.Last),
		slog.Int("hidden_top", p.hidden.Top),
		slog.Int("hidden_bottom", p.hidden.Bottom),
	)

	if e.onChange != nil && p.window != prev {
		e.onChange(p.window)
	}
}
