package triage

// Action is a dashboard user interaction fed to Reduce.
type Action interface {
	isAction()
}

// ToggleColumn is a click on a status column's arrow.
type ToggleColumn struct {
	Index int
}

// SelectBill is a click on a rendered bill card.
type SelectBill struct {
	BillID string
}

// Reset clears the whole state, e.g. after navigating away.
type Reset struct{}

func (ToggleColumn) isAction() {}
func (SelectBill) isAction()   {}
func (Reset) isAction()        {}
