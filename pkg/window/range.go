package window

import "fmt"

// Range is an inclusive range of dataset indices.
type Range struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Size returns the number of indices in the range.
func (r Range) Size() int {
	return r.Last - r.First + 1
}

// Contains reports whether i is inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.First && i <= r.Last
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.First, r.Last)
}

// Hidden holds the number of dataset rows above and below the materialized
// [Range]. The counts only drive spacer sizing.
type Hidden struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}
