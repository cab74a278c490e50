package scroll

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// DefaultPercent is the threshold used when none is configured.
	DefaultPercent = 90.0
	// DefaultDelay is the debounce delay applied to scroll notifications.
	DefaultDelay = 150 * time.Millisecond
)

var (
	ErrInvalidPercent  = errors.New("threshold percent must be in (0, 100]")
	ErrMissingCallback = errors.New("threshold callback is required")
)

// Metrics is a snapshot of a scroll container's geometry.
type Metrics struct {
	ScrollTop    int
	ClientHeight int
	ScrollHeight int
}

// Threshold detects when the bottom of the viewport reaches a percentage of
// the total scrollable height, typically to load more rows.
//
// It does not remember previous crossings: every qualifying notification
// fires the callback again, and the callback is responsible for idempotence.
type Threshold struct {
	callback  tea.Cmd
	debouncer Debouncer
	percent   float64
}

// ThresholdOpt configures a [Threshold].
type ThresholdOpt func(*Threshold)

// WithDelay sets the debounce delay used by [Threshold.Notify].
func WithDelay(d time.Duration) ThresholdOpt {
	return func(t *Threshold) {
		t.debouncer = NewDebouncer(d)
	}
}

// NewThreshold creates a [Threshold] that fires callback when the viewport
// bottom reaches percent of the scroll height. A zero percent selects
// [DefaultPercent].
func NewThreshold(percent float64, callback tea.Cmd, opts ...ThresholdOpt) (*Threshold, error) {
	if callback == nil {
		return nil, ErrMissingCallback
	}
	if percent == 0 {
		percent = DefaultPercent
	}
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidPercent, percent)
	}

	t := &Threshold{
		callback:  callback,
		percent:   percent,
		debouncer: NewDebouncer(DefaultDelay),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Percent returns the configured threshold.
func (t *Threshold) Percent() float64 {
	return t.percent
}

// Reached reports whether m is at or past the threshold. Incomplete metrics
// (any zero value) never reach it.
func (t *Threshold) Reached(m Metrics) bool {
	if m.ScrollTop == 0 || m.ClientHeight == 0 || m.ScrollHeight == 0 {
		return false
	}

	return float64(m.ScrollTop+m.ClientHeight) >= float64(m.ScrollHeight)*t.percent/100
}

// Check evaluates a single notification without debouncing. It returns the
// callback if the threshold is reached, and nil otherwise.
func (t *Threshold) Check(m Metrics) tea.Cmd {
	if !t.Reached(m) {
		return nil
	}

	return t.callback
}

// Notify records a scroll notification. The metrics are checked once the
// debounce delay passes without another notification.
func (t *Threshold) Notify(m Metrics) tea.Cmd {
	return t.debouncer.Trigger(m)
}

// Update handles the debounced message scheduled by [Threshold.Notify]. It
// reports whether msg belonged to the threshold, and returns the callback if
// the threshold was reached.
func (t *Threshold) Update(msg tea.Msg) (bool, tea.Cmd) {
	dm, ok := t.debouncer.Accept(msg)
	if !ok {
		return false, nil
	}

	m, ok := dm.Payload.(Metrics)
	if !ok {
		return true, nil
	}

	return true, t.Check(m)
}
