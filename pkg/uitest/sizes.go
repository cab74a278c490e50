package uitest

// Terminal sizes shared by UI tests.
const (
	CompactWidth  = 80
	CompactHeight = 24

	StandardWidth  = 120
	StandardHeight = 40
)

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

var (
	Compact  = Size{CompactWidth, CompactHeight}
	Standard = Size{StandardWidth, StandardHeight}
)
