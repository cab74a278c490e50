package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// File reads rows from a file or stream, one line per row.
type File struct {
	r       *bufio.Reader
	closer  io.Closer
	name    string
	partial string
	mu      sync.Mutex
	eof     bool
	follow  bool
}

// FileOpt configures a [File].
type FileOpt func(*File)

// WithFollow keeps the file open at EOF so rows appended later can be read
// after [File.Resume]. A trailing line without a newline is held back until
// it is complete.
func WithFollow(follow bool) FileOpt {
	return func(f *File) {
		f.follow = follow
	}
}

// Open opens path, or standard input for [Stdin].
func Open(path string, opts ...FileOpt) (*File, error) {
	if path == Stdin {
		return NewReader("stdin", os.Stdin, opts...), nil
	}

	fh, err := os.Open(path) //nolint:gosec // G304: User-provided path is the point.
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	f := NewReader(path, fh, opts...)
	f.closer = fh

	return f, nil
}

// NewReader creates a [File] reading from r.
func NewReader(name string, r io.Reader, opts ...FileOpt) *File {
	f := &File{
		name: name,
		r:    bufio.NewReader(r),
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *File) Name() string {
	return f.name
}

func (f *File) Load(ctx context.Context, n int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows := make([]string, 0, max(0, n))

	for len(rows) < n {
		if err := ctx.Err(); err != nil {
			return rows, err //nolint:wrapcheck // Context errors are returned as is.
		}

		line, err := f.r.ReadString('\n')
		if err == nil {
			rows = append(rows, trimEOL(f.partial+line))
			f.partial = ""

			continue
		}

		if !errors.Is(err, io.EOF) {
			return rows, fmt.Errorf("read %s: %w", f.name, err)
		}

		f.partial += line
		f.eof = true

		if !f.follow && f.partial != "" {
			rows = append(rows, trimEOL(f.partial))
			f.partial = ""
		}

		break
	}

	return rows, nil
}

func (f *File) Exhausted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.eof
}

// Resume clears the EOF state of a followed file. It does nothing otherwise.
func (f *File) Resume() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.follow {
		f.eof = false
	}
}

// Close closes the underlying file, if [Open] opened one.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}

	err := f.closer.Close()
	if err != nil {
		return fmt.Errorf("close %s: %w", f.name, err)
	}

	return nil
}

func trimEOL(s string) string {
	return strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r")
}
