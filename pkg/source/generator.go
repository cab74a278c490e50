package source

import (
	"context"
	"fmt"
	"sync"
)

// Generator produces the rows "number 0", "number 1", ...
type Generator struct {
	max  int
	next int
	mu   sync.Mutex
}

// NewGenerator creates a [Generator] that stops after limit rows. A limit of
// zero or less never stops.
func NewGenerator(limit int) *Generator {
	return &Generator{max: limit}
}

func (g *Generator) Name() string {
	if g.max > 0 {
		return fmt.Sprintf("numbers (max %d)", g.max)
	}

	return "numbers"
}

func (g *Generator) Load(ctx context.Context, n int) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck // Context errors are returned as is.
	}

	count := max(0, n)
	if g.max > 0 {
		count = min(count, g.max-g.next)
	}

	rows := make([]string, 0, count)
	for range count {
		rows = append(rows, fmt.Sprintf("number %d", g.next))
		g.next++
	}

	return rows, nil
}

func (g *Generator) Exhausted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.max > 0 && g.next >= g.max
}
