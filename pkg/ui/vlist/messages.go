package vlist

import "github.com/macropower/vlist/pkg/window"

type (
	// LoadMoreMsg requests the next page from the source.
	LoadMoreMsg struct{}

	// RowsLoadedMsg carries a page loaded from the source.
	RowsLoadedMsg struct {
		Err  error
		Rows []string
	}

	// SourceChangedMsg reports that a followed source has new data.
	SourceChangedMsg struct{}

	// WindowChangedMsg reports a change of the materialized window.
	WindowChangedMsg struct {
		Range window.Range
	}
)
