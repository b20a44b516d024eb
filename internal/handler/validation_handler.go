package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"veristack/internal/export"
	"veristack/internal/service"
)

// ValidationHandler exposes the validation engine over HTTP.
type ValidationHandler struct {
	validations service.ValidationService
}

func NewValidationHandler(validations service.ValidationService) *ValidationHandler {
	return &ValidationHandler{validations: validations}
}

// Validate runs a full validation pass over one invoice.
// POST /api/v1/invoices/:id/validate
func (h *ValidationHandler) Validate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	summary, err := h.validations.Validate(c.Request.Context(), id)
	if err != nil {
		log.Printf("validationHandler: validating invoice %d: %v", id, err)
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, summary)
}

// Results returns the persisted flagged rows for one invoice.
// GET /api/v1/invoices/:id/validations
func (h *ValidationHandler) Results(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	records, err := h.validations.Results(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, records)
}

// Export streams the flagged rows for one invoice as an xlsx workbook.
// GET /api/v1/invoices/:id/validations/export
func (h *ValidationHandler) Export(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	records, err := h.validations.Results(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	workbook, err := export.FlaggedWorkbook(id, records)
	if err != nil {
		log.Printf("validationHandler: building workbook for invoice %d: %v", id, err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "failed to build workbook")
		return
	}
	defer func() { _ = workbook.Close() }()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%d-validations.xlsx"`, id))
	if err := workbook.Write(c.Writer); err != nil {
		log.Printf("validationHandler: streaming workbook for invoice %d: %v", id, err)
	}
}

// pathID parses the :id path parameter, responding with 400 on failure.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		return 0, false
	}
	return id, true
}
