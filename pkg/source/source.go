// Package source provides paged row sources for the list viewer.
//
// A [Source] hands out rows a page at a time. The viewer asks for another
// page whenever the scroll threshold is reached, until the source reports
// that it is exhausted.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/vlist/pkg/log"
)

// DefaultPageSize is the number of rows requested per load.
const DefaultPageSize = 50

var tracer = otel.Tracer("source")

// Source produces rows on demand. Implementations are called from one
// goroutine at a time.
type Source interface {
	// Name describes the source for display.
	Name() string
	// Load returns up to n further rows. It may return fewer, including
	// none, without being exhausted.
	Load(ctx context.Context, n int) ([]string, error)
	// Exhausted reports whether Load will return no further rows.
	Exhausted() bool
}

// Resumer is implemented by sources that can produce rows again after
// reporting exhaustion, such as a followed file that has grown.
type Resumer interface {
	Resume()
}

// Load calls src.Load inside a trace span and logs the result.
func Load(ctx context.Context, src Source, n int) ([]string, error) {
	ctx, span := tracer.Start(ctx, "load", trace.WithAttributes(
		attribute.String("source", src.Name()),
		attribute.Int("requested", n),
	))
	defer span.End()

	logger := log.WithContext(ctx).With(slog.String("source", src.Name()))
	start := time.Now()

	rows, err := src.Load(ctx, n)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.DebugContext(ctx, "load failed", slog.Any("error", err))

		return rows, fmt.Errorf("load %s: %w", src.Name(), err)
	}

	span.SetAttributes(
		attribute.Int("rows", len(rows)),
		attribute.Bool("exhausted", src.Exhausted()),
	)

	logger.DebugContext(ctx, "loaded rows",
		slog.Int("requested", n),
		slog.Int("rows", len(rows)),
		slog.Bool("exhausted", src.Exhausted()),
		slog.Duration("duration", time.Since(start)),
	)

	return rows, nil
}
