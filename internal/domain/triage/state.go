// Package triage models the reviewer dashboard's UI state as an
// explicit state value with a pure reducer, instead of click-counter
// parity arithmetic. The reducer knows nothing about rendering; a view
// adapter applies the resulting state.
package triage

// Column indexes for the three status lists.
const (
	ColumnPending  = 1
	ColumnAccepted = 2
	ColumnRefused  = 3
)

// ColumnState tracks which status column is expanded. At most one
// column is ever open.
type ColumnState struct {
	Open  bool
	Index int
}

// Selection tracks the active ticket and whether its edit panel is
// shown. A zero Selection means no ticket is selected.
type Selection struct {
	BillID    string
	PanelOpen bool
}

// State is the whole dashboard UI state.
type State struct {
	Column    ColumnState
	Selection Selection
}

// Closed returns the initial state: all columns collapsed, nothing
// selected.
func Closed() State {
	return State{}
}

// IsColumnOpen reports whether the column at index is expanded.
func (s State) IsColumnOpen(index int) bool {
	return s.Column.Open && s.Column.Index == index
}

// ValidColumn reports whether index addresses one of the three columns.
func ValidColumn(index int) bool {
	return index >= ColumnPending && index <= ColumnRefused
}
