package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"regexp"

	"github.com/billed-app/billed/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BillStore is the persistence surface the bills handler needs.
type BillStore interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	List(ctx context.Context) ([]entity.Bill, error)
	ListByEmail(ctx context.Context, email string) ([]entity.Bill, error)
	Update(ctx context.Context, id string, bill *entity.Bill) error
	Delete(ctx context.Context, id string) error
}

// ProofSaver stores uploaded proof images and returns their public URL.
type ProofSaver interface {
	Save(fileName string, content io.Reader) (string, error)
	Delete(fileURL string) error
}

// BillExporter renders bills to an xlsx workbook.
type BillExporter interface {
	Write(bills []entity.Bill, w io.Writer) error
}

// Same allowed extensions as the client-side check, so a bypassing
// client cannot store non-image proofs.
var allowedProofName = regexp.MustCompile(`\.(jpg|JPG|jpeg|JPEG|png|PNG)$`)

// BillsHandler serves the bills collection.
type BillsHandler struct {
	bills    BillStore
	proofs   ProofSaver
	exporter BillExporter
	logger   *zap.Logger
}

// NewBillsHandler creates a bills handler.
func NewBillsHandler(bills BillStore, proofs ProofSaver, exporter BillExporter, logger *zap.Logger) *BillsHandler {
	return &BillsHandler{bills: bills, proofs: proofs, exporter: exporter, logger: logger}
}

// List returns the caller's bills; admins see every user's bills.
func (h *BillsHandler) List(c *gin.Context) {
	var (
		bills []entity.Bill
		err   error
	)
	if callerIsAdmin(c) {
		bills, err = h.bills.List(c.Request.Context())
	} else {
		bills, err = h.bills.ListByEmail(c.Request.Context(), callerEmail(c))
	}
	if err != nil {
		h.logger.Error("Failed to list bills", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list bills"})
		return
	}
	c.JSON(http.StatusOK, bills)
}

// Get returns one bill by id.
func (h *BillsHandler) Get(c *gin.Context) {
	bill, err := h.bills.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to get bill", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get bill"})
		return
	}
	if bill == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "bill not found"})
		return
	}
	if !callerIsAdmin(c) && bill.Email != callerEmail(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "not your bill"})
		return
	}
	c.JSON(http.StatusOK, bill)
}

// Create handles the multipart proof upload that opens a bill: it
// stores the file and creates a pending stub carrying the proof
// reference, returning the key the client uses for the follow-up
// update.
func (h *BillsHandler) Create(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing proof file"})
		return
	}
	if !allowedProofName.MatchString(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "proof file must be a jpg, jpeg or png image"})
		return
	}

	email := c.PostForm("email")
	if email == "" {
		email = callerEmail(c)
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded proof", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to read proof file"})
		return
	}
	defer file.Close()

	fileURL, err := h.proofs.Save(fileHeader.Filename, file)
	if err != nil {
		h.logger.Error("Failed to store proof", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to store proof file"})
		return
	}

	bill := &entity.Bill{
		Email:    email,
		FileURL:  fileURL,
		FileName: fileHeader.Filename,
		Status:   entity.StatusPending,
		Pct:      entity.DefaultPct,
	}
	if err := h.bills.Create(c.Request.Context(), bill); err != nil {
		h.logger.Error("Failed to create bill", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create bill"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"key":      bill.ID,
		"fileUrl":  bill.FileURL,
		"fileName": bill.FileName,
	})
}

// Update patches a bill. Fields absent from the body keep their stored
// values; the status, when present, must be one of the three known
// ones.
func (h *BillsHandler) Update(c *gin.Context) {
	id := c.Param("id")
	existing, err := h.bills.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load bill for update", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update bill"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "bill not found"})
		return
	}

	updated := *existing
	if err := c.ShouldBindJSON(&updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid bill payload"})
		return
	}
	updated.ID = existing.ID
	if !entity.ValidStatus(updated.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid bill status"})
		return
	}

	if err := h.bills.Update(c.Request.Context(), id, &updated); err != nil {
		h.logger.Error("Failed to update bill", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update bill"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a bill and its stored proof.
func (h *BillsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	bill, err := h.bills.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load bill for delete", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete bill"})
		return
	}
	if bill == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "bill not found"})
		return
	}

	if bill.FileURL != "" {
		if err := h.proofs.Delete(bill.FileURL); err != nil {
			h.logger.Warn("Failed to delete proof file", zap.String("id", id), zap.Error(err))
		}
	}
	if err := h.bills.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete bill", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete bill"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Export streams the bills workbook. Admin only; an optional status
// query narrows the export.
func (h *BillsHandler) Export(c *gin.Context) {
	if !callerIsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "admin only"})
		return
	}

	bills, err := h.bills.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list bills for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to export bills"})
		return
	}

	if status := c.Query("status"); status != "" {
		if !entity.ValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid bill status"})
			return
		}
		filtered := bills[:0]
		for _, bill := range bills {
			if bill.Status == status {
				filtered = append(filtered, bill)
			}
		}
		bills = filtered
	}

	var buf bytes.Buffer
	if err := h.exporter.Write(bills, &buf); err != nil {
		h.logger.Error("Failed to render bills workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to export bills"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bills.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
