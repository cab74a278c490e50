// Package vlist implements the interactive list: a [window.Engine] bound to a
// [scroll.Region], fed page by page from a [source.Source].
package vlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/muesli/termenv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/vlist/pkg/keys"
	"github.com/macropower/vlist/pkg/scroll"
	"github.com/macropower/vlist/pkg/source"
	"github.com/macropower/vlist/pkg/ui/common"
	"github.com/macropower/vlist/pkg/ui/statusbar"
	"github.com/macropower/vlist/pkg/window"
)

const (
	statusBarHeight = 1

	// DefaultWheelLines is the number of lines scrolled per mouse wheel step.
	DefaultWheelLines = 3

	// maxEmptyLoads bounds the loads started without a scroll (filling the
	// viewport or seeking the initial jump) after consecutive empty pages.
	maxEmptyLoads = 3
)

var ErrMissingSource = errors.New("source is required")

type mode int

const (
	modeNormal mode = iota
	modeJump
	modeSearch
)

// Config configures a [Model].
type Config struct {
	Context     context.Context
	CommonModel *common.CommonModel
	KeyBinds    *KeyBinds
	Source      source.Source

	// Highlight is applied to every rendered row. It may be nil.
	Highlight func(line string) string

	// Copy writes text to the clipboard. Defaults to OSC 52 plus the native
	// clipboard.
	Copy func(text string) error

	Geometry       window.Geometry
	Threshold      float64
	ThresholdDelay time.Duration
	PageSize       int

	// Jump is the row shown at the top once it has been loaded. Negative
	// values disable the initial jump.
	Jump int

	WheelLines  int
	LineNumbers bool
}

// Model is the list view. It must be used through a pointer, since the
// engine's callbacks refer back to it.
type Model struct {
	ctx          context.Context
	cm           *common.CommonModel
	kb           *KeyBinds
	src          source.Source
	region       *scroll.Region
	engine       *window.Engine[string]
	threshold    *scroll.Threshold
	helpRenderer *statusbar.HelpRenderer
	highlight    func(string) string
	copy         func(string) error

	// Latest window reported by the engine, not yet emitted.
	changed *window.Range

	search     search
	input      textinput.Model
	recompute  scroll.Debouncer
	width      int
	height     int
	pageSize   int
	jump       int
	wheelLines int
	helpHeight int
	mode       mode

	emptyLoads    int
	loading       bool
	sourceChanged bool
	ready         bool
	lineNumbers   bool

	ShowHelp bool
}

func NewModel(c Config) (*Model, error) {
	if c.Source == nil {
		return nil, ErrMissingSource
	}

	kb := c.KeyBinds
	if kb == nil {
		kb = NewKeyBinds()
	}

	m := &Model{
		ctx:         c.Context,
		cm:          c.CommonModel,
		kb:          kb,
		src:         c.Source,
		region:      scroll.NewRegion(0),
		highlight:   c.Highlight,
		copy:        c.Copy,
		recompute:   scroll.NewDebouncer(0),
		pageSize:    c.PageSize,
		jump:        c.Jump,
		wheelLines:  c.WheelLines,
		lineNumbers: c.LineNumbers,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.copy == nil {
		m.copy = copyToClipboard
	}
	if m.pageSize <= 0 {
		m.pageSize = source.DefaultPageSize
	}
	if m.wheelLines <= 0 {
		m.wheelLines = DefaultWheelLines
	}

	th, err := scroll.NewThreshold(c.Threshold, loadMore, scroll.WithDelay(c.ThresholdDelay))
	if err != nil {
		return nil, fmt.Errorf("create threshold: %w", err)
	}

	m.threshold = th

	engine, err := window.New(m.region, nil, m.renderRow,
		window.WithGeometry(c.Geometry),
		window.WithOnChange(m.onChange),
	)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	m.engine = engine

	kbr := &keys.KeyBindRenderer{}
	kbr.AddColumn(
		*kb.Up,
		*kb.Down,
		*kb.PageUp,
		*kb.PageDown,
		*kb.HalfPageUp,
		*kb.HalfPageDown,
		*kb.Home,
		*kb.End,
	)
	kbr.AddColumn(
		*kb.Jump,
		*kb.Search,
		*kb.NextMatch,
		*kb.PrevMatch,
		*kb.Copy,
		*kb.Escape,
		*m.cm.KeyBinds.Help,
		*m.cm.KeyBinds.Quit,
	)
	m.helpRenderer = statusbar.NewHelpRenderer(m.cm.Theme, kbr)

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.PromptStyle = m.cm.Theme.PromptStyle
	m.input.CharLimit = 256

	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m, m.updatePrompt(msg)
		}

		return m, m.handleKey(msg.String())

	case tea.WindowSizeMsg:
		return m, m.SetSize(msg.Width, msg.Height)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}

		switch msg.Button { //nolint:exhaustive // Only wheel events scroll.
		case tea.MouseButtonWheelUp:
			return m, m.scrollBy(-m.wheelLines)
		case tea.MouseButtonWheelDown:
			return m, m.scrollBy(m.wheelLines)
		}

	case scroll.DebounceMsg:
		if _, ok := m.recompute.Accept(msg); ok {
			m.engine.Recompute()

			return m, m.flushChanges()
		}

		_, cmd := m.threshold.Update(msg)

		return m, cmd

	case LoadMoreMsg:
		return m, m.load()

	case RowsLoadedMsg:
		return m, m.rowsLoaded(msg)

	case SourceChangedMsg:
		if m.loading {
			m.sourceChanged = true

			return m, nil
		}

		return m, m.resume()
	}

	if m.mode != modeNormal {
		var cmd tea.Cmd

		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	return m, nil
}

// SetSize sets the size of the whole list view, including the status bar and
// the help panel when it is shown.
func (m *Model) SetSize(w, h int) tea.Cmd {
	m.width = w
	m.height = h

	viewportHeight := h - statusBarHeight
	if m.ShowHelp {
		m.helpHeight = m.helpRenderer.Height(w)
		viewportHeight -= m.helpHeight
	}

	m.input.Width = max(0, w-2)
	m.region.SetClientHeight(max(0, viewportHeight))
	m.engine.Recompute()
	m.ready = true

	return tea.Batch(m.flushChanges(), m.applyJump(), m.fill())
}

// Capturing reports whether key presses are consumed by a prompt.
func (m *Model) Capturing() bool {
	return m.mode != modeNormal
}

// Range returns the materialized window.
func (m *Model) Range() window.Range {
	return m.engine.Range()
}

// Len returns the number of loaded rows.
func (m *Model) Len() int {
	return m.engine.Len()
}

// ScrollTop returns the scroll offset of the viewport, in lines.
func (m *Model) ScrollTop() int {
	return m.region.ScrollTop()
}

// TopRow returns the index of the first visible row.
func (m *Model) TopRow() int {
	return m.engine.IndexAt(m.region.ScrollTop())
}

func (m *Model) handleKey(key string) tea.Cmd {
	kb := m.kb
	page := max(1, m.region.ClientHeight())
	extent := m.engine.Geometry().Extent()

	switch {
	case kb.Up.Match(key):
		return m.scrollBy(-extent)
	case kb.Down.Match(key):
		return m.scrollBy(extent)
	case kb.PageUp.Match(key):
		return m.scrollBy(-page)
	case kb.PageDown.Match(key):
		return m.scrollBy(page)
	case kb.HalfPageUp.Match(key):
		return m.scrollBy(-max(1, page/2))
	case kb.HalfPageDown.Match(key):
		return m.scrollBy(max(1, page/2))
	case kb.Home.Match(key):
		return m.scrollBy(-m.region.ScrollTop())
	case kb.End.Match(key):
		return m.scrollBy(m.region.MaxScrollTop() - m.region.ScrollTop())
	case kb.Jump.Match(key):
		return m.openPrompt(modeJump, "row")
	case kb.Search.Match(key):
		return m.openPrompt(modeSearch, "search")
	case kb.NextMatch.Match(key):
		return m.nextMatch(1)
	case kb.PrevMatch.Match(key):
		return m.nextMatch(-1)
	case kb.Copy.Match(key):
		return m.copyTopRow()
	case kb.Escape.Match(key):
		m.search.clear()

		return nil
	case m.cm.KeyBinds.Help.Match(key):
		return m.toggleHelp()
	}

	return nil
}

func (m *Model) toggleHelp() tea.Cmd {
	m.ShowHelp = !m.ShowHelp

	return m.SetSize(m.width, m.height)
}

// scrollBy scrolls the region and schedules the recompute and the threshold
// check that follow every scroll notification.
func (m *Model) scrollBy(delta int) tea.Cmd {
	if !m.region.ScrollBy(delta) {
		return nil
	}

	return m.scrolled()
}

func (m *Model) scrolled() tea.Cmd {
	return tea.Batch(
		m.recompute.Trigger(nil),
		m.threshold.Notify(m.region.Metrics()),
	)
}

func (m *Model) openPrompt(md mode, placeholder string) tea.Cmd {
	m.mode = md
	m.input.Reset()
	m.input.Placeholder = placeholder

	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.mode = modeNormal
	m.input.Blur()
}

func (m *Model) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type { //nolint:exhaustive // Other keys go to the input.
	case tea.KeyEsc:
		m.closePrompt()

		return nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		md := m.mode
		m.closePrompt()

		if value == "" {
			return nil
		}
		if md == modeJump {
			return m.submitJump(value)
		}

		return m.submitSearch(value)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return cmd
}

func (m *Model) submitJump(value string) tea.Cmd {
	idx, err := strconv.Atoi(value)
	if err != nil {
		return m.cm.SendStatusMessage(fmt.Sprintf("invalid row %q", value), statusbar.StyleError)
	}

	return m.jumpTo(idx)
}

func (m *Model) jumpTo(idx int) tea.Cmd {
	err := m.engine.JumpTo(idx)
	if err != nil {
		return m.cm.SendStatusMessage(err.Error(), statusbar.StyleError)
	}

	return tea.Batch(m.flushChanges(), m.scrolled())
}

// applyJump performs the configured initial jump once the viewport is sized
// and the target row has been loaded.
func (m *Model) applyJump() tea.Cmd {
	if m.jump < 0 || !m.ready {
		return nil
	}

	err := m.engine.SetTarget(m.jump)
	if errors.Is(err, window.ErrIndexOutOfRange) && m.canLoad() {
		return m.load()
	}

	m.jump = -1

	if err != nil {
		return m.cm.SendStatusMessage(err.Error(), statusbar.StyleError)
	}

	return tea.Batch(m.flushChanges(), m.scrolled())
}

// fill loads another page while the rows do not fill the viewport, since the
// threshold can only be reached by scrolling.
func (m *Model) fill() tea.Cmd {
	if !m.ready || m.region.ClientHeight() == 0 || m.region.MaxScrollTop() > 0 || !m.canLoad() {
		return nil
	}

	return m.load()
}

// canLoad reports whether a load may start without a scroll. Filtered
// sources and followed files can return empty pages without being exhausted.
func (m *Model) canLoad() bool {
	return !m.src.Exhausted() && m.emptyLoads < maxEmptyLoads
}

func (m *Model) load() tea.Cmd {
	if m.loading || m.src.Exhausted() {
		return nil
	}

	m.loading = true
	ctx, src, n := m.ctx, m.src, m.pageSize

	return func() tea.Msg {
		rows, err := source.Load(ctx, src, n)

		return RowsLoadedMsg{Rows: rows, Err: err}
	}
}

func (m *Model) rowsLoaded(msg RowsLoadedMsg) tea.Cmd {
	m.loading = false

	if len(msg.Rows) > 0 {
		m.emptyLoads = 0
		m.engine.Append(msg.Rows...)
	} else {
		m.emptyLoads++
	}

	if msg.Err != nil {
		slog.Error("load rows", slog.Any("err", msg.Err))

		return tea.Batch(m.flushChanges(), m.cm.SendStatusMessage(msg.Err.Error(), statusbar.StyleError))
	}

	if m.sourceChanged {
		m.sourceChanged = false

		return tea.Batch(m.flushChanges(), m.resume())
	}

	return tea.Batch(m.flushChanges(), m.applyJump(), m.fill())
}

func (m *Model) resume() tea.Cmd {
	m.emptyLoads = 0

	if r, ok := m.src.(source.Resumer); ok {
		r.Resume()
	}

	return m.load()
}

func (m *Model) onChange(r window.Range) {
	m.changed = &r
}

func (m *Model) flushChanges() tea.Cmd {
	if m.changed == nil {
		return nil
	}

	r := *m.changed
	m.changed = nil

	return func() tea.Msg {
		return WindowChangedMsg{Range: r}
	}
}

func (m *Model) copyTopRow() tea.Cmd {
	idx := m.TopRow()

	row, ok := m.engine.Item(idx)
	if !ok {
		return nil
	}

	err := m.copy(row)
	if err != nil {
		return m.cm.SendStatusMessage(fmt.Sprintf("copy row %d: %v", idx, err), statusbar.StyleError)
	}

	return m.cm.SendStatusMessage(fmt.Sprintf("copied row %d", idx), statusbar.StyleSuccess)
}

func copyToClipboard(text string) error {
	// Copy using OSC 52.
	termenv.Copy(text)
	// Copy using native system clipboard.
	_ = clipboard.WriteAll(text) //nolint:errcheck // Can be ignored.

	return nil
}

func loadMore() tea.Msg {
	return LoadMoreMsg{}
}
