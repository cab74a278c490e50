package scroll

// Region is a virtual scroll container measured in terminal lines.
//
// Its scrollable height is the materialized content plus the spacer padding
// above and below it, so a [window.Engine] can make a region behave as if
// every row of a large dataset were present. Region implements
// [window.Container], [window.Spacer] and [window.ContentSizer].
//
// The zero value is an empty region with no visible lines.
type Region struct {
	scrollTop     int
	clientHeight  int
	contentHeight int
	padTop        int
	padBottom     int
}

// NewRegion returns a [Region] with the given visible height.
func NewRegion(clientHeight int) *Region {
	r := &Region{}
	r.SetClientHeight(clientHeight)

	return r
}

// ScrollTop returns the offset of the first visible line.
func (r *Region) ScrollTop() int {
	return r.scrollTop
}

// ClientHeight returns the number of visible lines.
func (r *Region) ClientHeight() int {
	return r.clientHeight
}

// ScrollHeight returns the total scrollable height.
func (r *Region) ScrollHeight() int {
	return r.padTop + r.contentHeight + r.padBottom
}

// MaxScrollTop returns the largest valid scroll offset.
func (r *Region) MaxScrollTop() int {
	return max(0, r.ScrollHeight()-r.clientHeight)
}

// SetScrollTop scrolls to offset, clamped to the scrollable range.
func (r *Region) SetScrollTop(offset int) {
	r.scrollTop = min(max(0, offset), r.MaxScrollTop())
}

// ScrollBy scrolls by delta lines and reports whether the offset changed.
func (r *Region) ScrollBy(delta int) bool {
	prev := r.scrollTop
	r.SetScrollTop(r.scrollTop + delta)

	return r.scrollTop != prev
}

// SetClientHeight sets the number of visible lines.
func (r *Region) SetClientHeight(h int) {
	r.clientHeight = max(0, h)
	r.SetScrollTop(r.scrollTop)
}

// SetContentHeight sets the height of the materialized content.
func (r *Region) SetContentHeight(h int) {
	r.contentHeight = max(0, h)
}

// SetPadding sets the spacer padding above and below the content.
func (r *Region) SetPadding(top, bottom int) {
	r.padTop = max(0, top)
	r.padBottom = max(0, bottom)
}

// Padding returns the spacer padding above and below the content.
func (r *Region) Padding() (top, bottom int) {
	return r.padTop, r.padBottom
}

// ContentOffset returns the line of the materialized content shown at the top
// of the viewport. It is negative when the viewport starts inside the top
// padding, which happens between a scroll and the next recompute.
func (r *Region) ContentOffset() int {
	return r.scrollTop - r.padTop
}

// AtTop reports whether the region is scrolled to the top.
func (r *Region) AtTop() bool {
	return r.scrollTop <= 0
}

// AtBottom reports whether the region is scrolled to the bottom.
func (r *Region) AtBottom() bool {
	return r.scrollTop >= r.MaxScrollTop()
}

// Percent returns how far the region is scrolled, from 0 to 1.
func (r *Region) Percent() float64 {
	maxTop := r.MaxScrollTop()
	if maxTop == 0 {
		return 1
	}

	return float64(r.scrollTop) / float64(maxTop)
}

// Metrics returns a snapshot of the region's scroll geometry.
func (r *Region) Metrics() Metrics {
	return Metrics{
		ScrollTop:    r.scrollTop,
		ClientHeight: r.clientHeight,
		ScrollHeight: r.ScrollHeight(),
	}
}
