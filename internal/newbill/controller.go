// Package newbill implements the bill submission workflow: proof file
// validation and upload, then persistence of the full bill record.
package newbill

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/billed-app/billed/internal/client"
	"github.com/billed-app/billed/internal/domain/entity"
	"github.com/billed-app/billed/internal/routes"
	"github.com/billed-app/billed/internal/session"
	"go.uber.org/zap"
)

// FileErrorMessage is the fixed inline message for a rejected proof file.
const FileErrorMessage = "Le fichier doit être une image au format jpg, JPG, jpeg, JPEG, png ou PNG"

// The allowed extensions are matched case-sensitively: only these six
// spellings pass.
var validFileName = regexp.MustCompile(`\.(jpg|JPG|jpeg|JPEG|png|PNG)$`)

// Form carries the raw new-bill form field values. Numeric fields stay
// strings here; parsing and defaulting happen at submit time.
type Form struct {
	Type       string
	Name       string
	Date       string
	Amount     string
	VAT        string
	Pct        string
	Commentary string
}

// Controller drives one new-bill form. It records the result of the
// proof upload for use at submission time; concurrent uploads are
// last-writer-wins by completion order.
type Controller struct {
	bills      *client.Resource
	storage    session.Storage
	view       View
	onNavigate func(route string)
	logger     *zap.Logger

	billID         string
	fileURL        string
	fileName       string
	fileErrorShown bool
}

// NewController creates a new-bill controller.
func NewController(api *client.Api, storage session.Storage, view View, onNavigate func(string), logger *zap.Logger) *Controller {
	return &Controller{
		bills:      api.Bills(),
		storage:    storage,
		view:       view,
		onNavigate: onNavigate,
		logger:     logger,
	}
}

// HandleChangeFile validates the chosen proof file and, when the
// extension is allowed, uploads it right away. A rejected file clears
// the input and shows the fixed inline message exactly once; selecting
// another invalid file does not duplicate it.
func (c *Controller) HandleChangeFile(ctx context.Context, fileName string, content io.Reader) error {
	if !validFileName.MatchString(fileName) {
		c.logger.Debug("Rejected proof file", zap.String("file_name", fileName))
		c.view.ClearFileInput()
		if !c.fileErrorShown {
			c.view.ShowFileError(FileErrorMessage)
			c.fileErrorShown = true
		}
		return nil
	}

	if c.fileErrorShown {
		c.view.RemoveFileError()
		c.fileErrorShown = false
	}

	form := client.NewFormData()
	form.AppendFile("file", fileName, content)
	form.Append("email", c.sessionEmail())

	var created entity.CreatedBill
	if err := c.bills.Create(ctx, form, &created, client.WithoutContentType()); err != nil {
		c.logger.Error("Failed to upload proof file",
			zap.String("file_name", fileName),
			zap.Error(err))
		c.view.ShowUploadError(err.Error())
		return fmt.Errorf("failed to upload proof file: %w", err)
	}

	c.billID = created.Key
	c.fileURL = created.FileURL
	c.fileName = fileName
	return nil
}

// HandleSubmit assembles the bill from the form fields and persists it
// via an update keyed by the identifier obtained during upload. On
// success it navigates to the bills list; on failure it renders the
// message after the form, stays on the page, and returns the error.
//
// A missing upload leaves fileUrl/fileName empty; submission is not
// blocked for that.
func (c *Controller) HandleSubmit(ctx context.Context, form Form) error {
	amount, _ := strconv.Atoi(form.Amount)

	bill := entity.Bill{
		Email:      c.sessionEmail(),
		Type:       form.Type,
		Name:       form.Name,
		Amount:     amount,
		Date:       form.Date,
		VAT:        form.VAT,
		Pct:        parsePct(form.Pct),
		Commentary: form.Commentary,
		FileURL:    c.fileURL,
		FileName:   c.fileName,
		Status:     entity.StatusPending,
	}

	if err := c.bills.Update(ctx, c.billID, bill, nil); err != nil {
		c.logger.Error("Failed to submit bill",
			zap.String("bill_id", c.billID),
			zap.Error(err))
		c.view.ShowSubmitError(err.Error())
		return fmt.Errorf("failed to submit bill: %w", err)
	}

	c.onNavigate(routes.Bills)
	return nil
}

// parsePct falls back to the default VAT percentage when the field is
// empty, non-numeric, or not positive.
func parsePct(raw string) int {
	pct, err := strconv.Atoi(raw)
	if err != nil || pct <= 0 {
		return entity.DefaultPct
	}
	return pct
}

func (c *Controller) sessionEmail() string {
	user, err := session.CurrentUser(c.storage)
	if err != nil {
		c.logger.Warn("No session user for bill submission", zap.Error(err))
		return ""
	}
	return user.Email
}
