package scroll

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// DebounceMsg is delivered when a [Debouncer] delay elapses. Only the message
// for the most recent trigger is accepted; earlier ones are stale.
type DebounceMsg struct {
	Payload any
	ID      int
	Tag     int
}

// Debouncer collapses a burst of triggers into a single trailing message.
//
// Each trigger schedules a tick tagged with a new sequence number. When a
// tick arrives, [Debouncer.Accept] only lets it through if no newer trigger
// happened in the meantime. Pending ticks cannot be cancelled; they simply
// resolve as stale.
type Debouncer struct {
	delay time.Duration
	id    int
	tag   int
}

// NewDebouncer creates a [Debouncer]. A zero delay still defers the message to
// a later turn of the event loop, so triggers sent within one turn coalesce.
func NewDebouncer(delay time.Duration) Debouncer {
	return Debouncer{
		delay: max(0, delay),
		id:    nextID(),
	}
}

// ID returns the debouncer's unique ID.
func (d *Debouncer) ID() int {
	return d.id
}

// Delay returns the debounce delay.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger records a notification and returns the command that delivers the
// trailing [DebounceMsg].
func (d *Debouncer) Trigger(payload any) tea.Cmd {
	d.tag++

	msg := DebounceMsg{
		Payload: payload,
		ID:      d.id,
		Tag:     d.tag,
	}

	if d.delay == 0 {
		return func() tea.Msg {
			return msg
		}
	}

	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return msg
	})
}

// Accept reports whether msg is the trailing message of this debouncer's
// latest trigger.
func (d *Debouncer) Accept(msg tea.Msg) (DebounceMsg, bool) {
	dm, ok := msg.(DebounceMsg)
	if !ok || dm.ID != d.id || dm.Tag != d.tag {
		return DebounceMsg{}, false
	}

	return dm, true
}
