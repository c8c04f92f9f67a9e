// Package bills implements the employee bills list: fetch, order from
// most recent to earliest, and format for display.
package bills

import (
	"context"
	"fmt"
	"sort"

	"github.com/billed-app/billed/internal/client"
	"github.com/billed-app/billed/internal/domain/entity"
	"github.com/billed-app/billed/internal/format"
	"go.uber.org/zap"
)

// DisplayBill is a bill shaped for the list view: the raw record plus
// formatted date and status.
type DisplayBill struct {
	entity.Bill
	FormattedDate   string
	FormattedStatus string
}

// Controller fetches and shapes the current user's bills.
type Controller struct {
	bills  *client.Resource
	logger *zap.Logger
}

// NewController creates a bills-list controller.
func NewController(api *client.Api, logger *zap.Logger) *Controller {
	return &Controller{bills: api.Bills(), logger: logger}
}

// GetBills lists the user's bills sorted by date descending. A bill
// whose date does not parse keeps its raw date string so the record
// stays visible.
func (c *Controller) GetBills(ctx context.Context) ([]DisplayBill, error) {
	var raw []entity.Bill
	if err := c.bills.List(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	// Descending lexicographic on the ISO-ish date string.
	sort.SliceStable(raw, func(i, j int) bool {
		return raw[i].Date > raw[j].Date
	})

	display := make([]DisplayBill, 0, len(raw))
	for _, bill := range raw {
		d := DisplayBill{
			Bill:            bill,
			FormattedDate:   bill.Date,
			FormattedStatus: format.Status(bill.Status),
		}
		if formatted, err := format.Date(bill.Date); err == nil {
			d.FormattedDate = formatted
		} else {
			c.logger.Warn("Unparseable bill date, keeping raw value",
				zap.String("bill_id", bill.ID),
				zap.String("date", bill.Date))
		}
		display = append(display, d)
	}
	return display, nil
}
