// Package window computes which rows of a large, fixed-row-height list need to
// be materialized for a scrollable viewport.
//
// An [Engine] maps a scroll position (or an explicit target index), the row
// geometry, the dataset length and a buffer size to an inclusive [Range] of
// row indices. After each computation it sizes the spacer padding above and
// below the materialized rows, so that the total scrollable height stays equal
// to the height of the full dataset.
//
// The engine is host-agnostic. A host supplies a [Container] (anything that
// reports its scroll offset and visible height) and, optionally, a [Spacer]
// that receives the padding. The engine never polls; the host calls
// [Engine.Recompute] on scroll notifications, [Engine.SetData] when the dataset
// changes, and [Engine.SetTarget] or [Engine.JumpTo] to jump to a row.
//
//	region := &scroll.Region{}
//	region.SetClientHeight(24)
//
//	eng, err := window.New(region, rows, func(item string, _ int) string {
//	    return item
//	}, window.WithBuffer(5))
//	if err != nil {
//	    return err
//	}
//
//	region.ScrollBy(10)
//	eng.Recompute()
//
//	for _, row := range eng.Rows() {
//	    fmt.Println(row)
//	}
package window
