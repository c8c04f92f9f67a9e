package dashboard

import "github.com/billed-app/billed/internal/domain/entity"

// View is the rendering adapter the controller drives. Implementations
// own the actual UI toolkit; the controller only decides what should
// be visible.
type View interface {
	// RenderColumn fills the status column's list container.
	RenderColumn(index int, html string)

	// ClearColumn empties the status column's list container.
	ClearColumn(index int)

	// SetArrowOpen rotates the column's arrow indicator.
	SetArrowOpen(index int, open bool)

	// HighlightCard marks a bill card as the active ticket.
	HighlightCard(billID string)

	// UnhighlightCard reverts a bill card's styling.
	UnhighlightCard(billID string)

	// ShowBillForm replaces the detail panel with the bill's edit form
	// and expands the side panel.
	ShowBillForm(bill entity.Bill)

	// ShowPlaceholder restores the placeholder icon in the detail panel
	// and shrinks the side panel.
	ShowPlaceholder()

	// ShowActionError surfaces a failed accept/refuse persistence call.
	ShowActionError(message string)
}
