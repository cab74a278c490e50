package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/macropower/vlist/api/v1beta1/configs"
	"github.com/macropower/vlist/pkg/scroll"
	"github.com/macropower/vlist/pkg/source"
	"github.com/macropower/vlist/pkg/ui/theme"
	"github.com/macropower/vlist/pkg/window"
)

// maxEmptyPages is the number of consecutive empty pages after which
// printWindow stops loading from a source that is not exhausted.
const maxEmptyPages = 8

// printWindow loads just enough rows to fill a viewport of height lines at
// jump (or the top, for a negative jump) and writes the visible rows to w,
// one per line.
func printWindow(ctx context.Context, w io.Writer, src source.Source, cfg *configs.Config, height, jump int) error {
	g := *cfg.Window
	visible := (height + g.Extent() - 1) / g.Extent()
	need := max(jump, 0) + visible

	pageSize := cfg.Source.PageSize
	if pageSize == 0 {
		pageSize = source.DefaultPageSize
	}

	var rows []string

	for empty := 0; len(rows) < need && !src.Exhausted() && empty < maxEmptyPages; {
		page, err := source.Load(ctx, src, pageSize)
		if err != nil {
			return fmt.Errorf("load rows: %w", err)
		}

		if len(page) == 0 {
			empty++
		} else {
			empty = 0
		}

		rows = append(rows, page...)
	}

	region := scroll.NewRegion(height)

	eng, err := window.New(region, rows, func(item string, _ int) string { return item },
		window.WithGeometry(g),
		window.WithLogger(slog.Default()),
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	if jump >= 0 {
		err := eng.JumpTo(jump)
		if err != nil {
			return fmt.Errorf("jump: %w", err)
		}
	}

	if eng.Len() == 0 {
		return nil
	}

	top := region.ScrollTop()
	first := eng.IndexAt(top)
	last := eng.IndexAt(top + height - 1)

	for i := first; i <= last; i++ {
		item, _ := eng.Item(i)

		_, err := fmt.Fprintln(w, item)
		if err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	return nil
}

// showConfig writes cfg as YAML, highlighted with the configured theme when
// the terminal supports colour.
func showConfig(w io.Writer, cfg *configs.Config) error {
	b, err := cfg.MarshalYAML()
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	h := source.NewHighlighter("config.yaml", theme.New(cfg.UI.Theme).ChromaStyle)

	for line := range strings.Lines(string(b)) {
		_, err := fmt.Fprintln(w, h.Highlight(strings.TrimSuffix(line, "\n")))
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	}

	return nil
}
