package window

import (
	"fmt"
)

// DefaultBuffer is the number of extra rows materialized on each side of the
// visible rows when no buffer is configured.
const DefaultBuffer = 10

// Geometry describes the fixed layout of every row.
type Geometry struct {
	// RowHeight is the height of a single row. Must be greater than zero.
	RowHeight int `json:"rowHeight" jsonschema:"title=Row Height,minimum=1"`
	// RowGap is the space between two consecutive rows.
	RowGap int `json:"rowGap,omitempty" jsonschema:"title=Row Gap,minimum=0"`
	// Buffer is the number of rows rendered beyond the viewport on each side.
	Buffer int `json:"buffer,omitempty" jsonschema:"title=Buffer,minimum=0"`
}

// NewGeometry returns a [Geometry] with the given row height, no gap and the
// default buffer.
func NewGeometry(rowHeight int) Geometry {
	return Geometry{
		RowHeight: rowHeight,
		Buffer:    DefaultBuffer,
	}
}

// Extent is the distance between the tops of two consecutive rows.
func (g Geometry) Extent() int {
	return g.RowHeight + g.RowGap
}

// Validate reports whether the geometry can be used by an [Engine].
func (g Geometry) Validate() error {
	if g.RowHeight <= 0 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidConfig, ErrInvalidRowHeight, g.RowHeight)
	}
	if g.RowGap < 0 {
		return fmt.Errorf("%w: %w: row gap %d", ErrInvalidConfig, ErrInvalidGeometry, g.RowGap)
	}
	if g.Buffer < 0 {
		return fmt.Errorf("%w: %w: buffer %d", ErrInvalidConfig, ErrInvalidGeometry, g.Buffer)
	}

	return nil
}
