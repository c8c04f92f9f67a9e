package triage

import "testing"

func TestReduce_ToggleColumn(t *testing.T) {
	tests := []struct {
		name  string
		state State
		index int
		want  ColumnState
	}{
		{
			name:  "opens a closed column",
			state: Closed(),
			index: ColumnPending,
			want:  ColumnState{Open: true, Index: ColumnPending},
		},
		{
			name:  "closes the open column on re-click",
			state: State{Column: ColumnState{Open: true, Index: ColumnAccepted}},
			index: ColumnAccepted,
			want:  ColumnState{},
		},
		{
			name:  "switches the open column",
			state: State{Column: ColumnState{Open: true, Index: ColumnPending}},
			index: ColumnRefused,
			want:  ColumnState{Open: true, Index: ColumnRefused},
		},
		{
			name:  "ignores an out-of-range index",
			state: State{Column: ColumnState{Open: true, Index: ColumnPending}},
			index: 4,
			want:  ColumnState{Open: true, Index: ColumnPending},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.state, ToggleColumn{Index: tt.index})
			if got.Column != tt.want {
				t.Errorf("Reduce() column = %+v, want %+v", got.Column, tt.want)
			}
		})
	}
}

func TestReduce_NeverTwoColumnsOpen(t *testing.T) {
	state := Closed()
	for _, index := range []int{1, 2, 3, 2, 1, 1, 3} {
		state = Reduce(state, ToggleColumn{Index: index})
		openCount := 0
		for i := ColumnPending; i <= ColumnRefused; i++ {
			if state.IsColumnOpen(i) {
				openCount++
			}
		}
		if openCount > 1 {
			t.Fatalf("more than one column open after toggling %d", index)
		}
	}
}

func TestReduce_ToggleSameColumnTwiceReturnsToClosed(t *testing.T) {
	state := Reduce(Closed(), ToggleColumn{Index: ColumnPending})
	state = Reduce(state, ToggleColumn{Index: ColumnPending})
	if state.Column.Open {
		t.Errorf("column still open after double toggle: %+v", state.Column)
	}
}

func TestReduce_SelectBill(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		billID string
		want   Selection
	}{
		{
			name:   "first click opens the panel",
			state:  Closed(),
			billID: "b1",
			want:   Selection{BillID: "b1", PanelOpen: true},
		},
		{
			name:   "re-click closes the panel",
			state:  State{Selection: Selection{BillID: "b1", PanelOpen: true}},
			billID: "b1",
			want:   Selection{BillID: "b1", PanelOpen: false},
		},
		{
			name:   "click after close re-opens",
			state:  State{Selection: Selection{BillID: "b1", PanelOpen: false}},
			billID: "b1",
			want:   Selection{BillID: "b1", PanelOpen: true},
		},
		{
			name:   "switching bills forces the panel open",
			state:  State{Selection: Selection{BillID: "b1", PanelOpen: true}},
			billID: "b2",
			want:   Selection{BillID: "b2", PanelOpen: true},
		},
		{
			name:   "switching from a closed panel forces open too",
			state:  State{Selection: Selection{BillID: "b1", PanelOpen: false}},
			billID: "b2",
			want:   Selection{BillID: "b2", PanelOpen: true},
		},
		{
			name:   "empty id is ignored",
			state:  State{Selection: Selection{BillID: "b1", PanelOpen: true}},
			billID: "",
			want:   Selection{BillID: "b1", PanelOpen: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.state, SelectBill{BillID: tt.billID})
			if got.Selection != tt.want {
				t.Errorf("Reduce() selection = %+v, want %+v", got.Selection, tt.want)
			}
		})
	}
}

func TestReduce_Reset(t *testing.T) {
	state := State{
		Column:    ColumnState{Open: true, Index: ColumnAccepted},
		Selection: Selection{BillID: "b1", PanelOpen: true},
	}
	if got := Reduce(state, Reset{}); got != Closed() {
		t.Errorf("Reduce(Reset) = %+v, want zero state", got)
	}
}
