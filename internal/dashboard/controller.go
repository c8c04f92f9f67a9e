// Package dashboard implements the reviewer triage workflow: per-status
// ticket columns, a single active ticket with an edit panel, and the
// accept/refuse actions that close a bill's review.
package dashboard

import (
	"context"
	"fmt"

	"github.com/billed-app/billed/internal/client"
	"github.com/billed-app/billed/internal/domain/entity"
	"github.com/billed-app/billed/internal/domain/triage"
	"github.com/billed-app/billed/internal/routes"
	"github.com/billed-app/billed/internal/session"
	"go.uber.org/zap"
)

// Controller owns the triage state for one dashboard instance and
// translates reduced state into view calls. It holds no cross-instance
// shared state.
type Controller struct {
	bills       *client.Resource
	storage     session.Storage
	view        View
	onNavigate  func(route string)
	logger      *zap.Logger
	excludeSelf bool

	state triage.State
}

// NewController creates a dashboard controller. excludeSelf controls
// whether the reviewer's own bills and test accounts are filtered out
// of the columns.
func NewController(api *client.Api, storage session.Storage, view View, onNavigate func(string), excludeSelf bool, logger *zap.Logger) *Controller {
	return &Controller{
		bills:       api.Bills(),
		storage:     storage,
		view:        view,
		onNavigate:  onNavigate,
		logger:      logger,
		excludeSelf: excludeSelf,
		state:       triage.Closed(),
	}
}

// State returns the current triage state.
func (c *Controller) State() triage.State {
	return c.state
}

// GetBillsAllUsers lists every bill from the store, unmodified. Fetch
// errors are propagated to the caller, which renders the page-level
// error.
func (c *Controller) GetBillsAllUsers(ctx context.Context) ([]entity.Bill, error) {
	var bills []entity.Bill
	if err := c.bills.List(ctx, &bills); err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// HandleShowTickets handles a click on the arrow of the status column
// at index, given the current bill set.
func (c *Controller) HandleShowTickets(index int, bills []entity.Bill) {
	prev := c.state
	c.state = triage.Reduce(c.state, triage.ToggleColumn{Index: index})

	if prev.Column.Open && !c.state.IsColumnOpen(prev.Column.Index) {
		c.view.ClearColumn(prev.Column.Index)
		c.view.SetArrowOpen(prev.Column.Index, false)
	}
	if c.state.IsColumnOpen(index) && !prev.IsColumnOpen(index) {
		filtered := FilteredBills(bills, GetStatus(index), c.viewerEmail(), c.excludeSelf)
		c.view.RenderColumn(index, Cards(filtered))
		c.view.SetArrowOpen(index, true)
	}
}

// HandleEditTicket handles a click on a rendered bill card. A new bill
// always opens the edit panel; re-clicking the active bill toggles it.
func (c *Controller) HandleEditTicket(bill entity.Bill, bills []entity.Bill) {
	c.state = triage.Reduce(c.state, triage.SelectBill{BillID: bill.ID})

	if c.state.Selection.PanelOpen {
		for _, b := range bills {
			c.view.UnhighlightCard(b.ID)
		}
		c.view.HighlightCard(bill.ID)
		c.view.ShowBillForm(bill)
		return
	}

	c.view.UnhighlightCard(bill.ID)
	c.view.ShowPlaceholder()
}

// HandleAcceptSubmit closes the review by accepting the bill with the
// reviewer's comment.
func (c *Controller) HandleAcceptSubmit(ctx context.Context, bill entity.Bill, comment string) error {
	return c.closeReview(ctx, bill, entity.StatusAccepted, comment)
}

// HandleRefuseSubmit closes the review by refusing the bill with the
// reviewer's comment.
func (c *Controller) HandleRefuseSubmit(ctx context.Context, bill entity.Bill, comment string) error {
	return c.closeReview(ctx, bill, entity.StatusRefused, comment)
}

func (c *Controller) closeReview(ctx context.Context, bill entity.Bill, status, comment string) error {
	updated := bill
	updated.Status = status
	updated.CommentAdmin = comment

	if err := c.bills.Update(ctx, bill.ID, updated, nil); err != nil {
		c.logger.Error("Failed to update bill status",
			zap.String("bill_id", bill.ID),
			zap.String("status", status),
			zap.Error(err))
		c.view.ShowActionError(err.Error())
		return err
	}

	c.onNavigate(routes.Dashboard)
	return nil
}

// viewerEmail reads the reviewer's email from session storage at call
// time. A missing or corrupt session record only disables the
// self-review exclusion.
func (c *Controller) viewerEmail() string {
	user, err := session.CurrentUser(c.storage)
	if err != nil {
		c.logger.Warn("No session user for self-review exclusion", zap.Error(err))
		return ""
	}
	return user.Email
}
