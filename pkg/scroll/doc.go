// Package scroll provides the terminal scroll container used by the list UI,
// a tag-based [Debouncer] for Bubble Tea, and a [Threshold] detector that
// fires when the viewport nears the end of the scrollable content.
package scroll
