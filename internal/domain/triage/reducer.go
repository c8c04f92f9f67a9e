package triage

// Reduce applies one action to the current state and returns the next
// state. It is pure: no I/O, no rendering, no hidden counters.
//
// Column semantics: clicking the open column's arrow closes it;
// clicking any other column's arrow closes whichever was open and
// opens the clicked one. Two columns are never open at once.
//
// Selection semantics: clicking a new bill always opens its edit
// panel; clicking the already-selected bill toggles the panel.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case ToggleColumn:
		if !ValidColumn(a.Index) {
			return state
		}
		if state.IsColumnOpen(a.Index) {
			state.Column = ColumnState{}
			return state
		}
		state.Column = ColumnState{Open: true, Index: a.Index}
		return state

	case SelectBill:
		if a.BillID == "" {
			return state
		}
		if state.Selection.BillID == a.BillID {
			state.Selection.PanelOpen = !state.Selection.PanelOpen
			return state
		}
		state.Selection = Selection{BillID: a.BillID, PanelOpen: true}
		return state

	case Reset:
		return Closed()
	}

	return state
}
