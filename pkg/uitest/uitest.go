package uitest

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTimeout bounds [WaitFor] and [Finish] unless overridden.
const DefaultTimeout = 3 * time.Second

// BubbleModel is a Bubble Tea model whose Update returns its concrete type
// instead of [tea.Model].
type BubbleModel[T any] interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (T, tea.Cmd)
	View() string
}

type modelAdapter[T BubbleModel[T]] struct {
	model T
}

func (a modelAdapter[T]) Init() tea.Cmd {
	return a.model.Init()
}

//nolint:ireturn // Must satisfy [tea.Model].
func (a modelAdapter[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.model.Update(msg)
	return modelAdapter[T]{model: m}, cmd
}

func (a modelAdapter[T]) View() string {
	return a.model.View()
}

// NewTestModel runs m in a [teatest.TestModel] with the given terminal size.
func NewTestModel[T BubbleModel[T]](tb testing.TB, m T, size Size) *teatest.TestModel {
	tb.Helper()

	return teatest.NewTestModel(
		tb, modelAdapter[T]{model: m},
		teatest.WithInitialTermSize(size.Width, size.Height),
	)
}

// Contains returns a [WaitFor] condition matching output that contains every
// one of subs once ANSI sequences are stripped. All of subs must appear in
// the same read, since [teatest.WaitFor] consumes what it has seen.
func Contains(subs ...string) func([]byte) bool {
	return func(b []byte) bool {
		plain := []byte(ansi.Strip(string(b)))
		for _, s := range subs {
			if !bytes.Contains(plain, []byte(s)) {
				return false
			}
		}

		return true
	}
}

// WaitFor waits for condition to match the output, failing tb after
// [DefaultTimeout] unless opts say otherwise.
func WaitFor(tb testing.TB, r io.Reader, condition func([]byte) bool, opts ...teatest.WaitForOption) {
	tb.Helper()

	opts = append([]teatest.WaitForOption{teatest.WithDuration(DefaultTimeout)}, opts...)
	teatest.WaitFor(tb, r, condition, opts...)
}

// Finish waits for the program to exit and returns its final model.
//
//nolint:ireturn // Matches teatest.
func Finish(tb testing.TB, tm *teatest.TestModel) tea.Model {
	tb.Helper()

	return tm.FinalModel(tb, teatest.WithFinalTimeout(DefaultTimeout))
}
