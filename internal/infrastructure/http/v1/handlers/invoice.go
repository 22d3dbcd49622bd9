package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gstbill/internal/core/apperror"
	"gstbill/internal/domain"
	"gstbill/internal/domain/catalogs/company"
	domainFilter "gstbill/internal/domain/filter"
	"gstbill/internal/domain/invoice"
	"gstbill/internal/domain/settings"
	"gstbill/internal/infrastructure/http/v1/dto"
	"gstbill/internal/infrastructure/pdf"
	"gstbill/internal/infrastructure/storage/postgres"
)

// InvoiceHandler handles invoice and proforma endpoints: CRUD, payments,
// status changes, number preview and PDF download.
type InvoiceHandler struct {
	*BaseHandler

	invoices  *invoice.Service
	companies *company.Service
	settings  *settings.Service
	renderer  *pdf.Renderer
	audit     *postgres.AuditService
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(
	base *BaseHandler,
	invoices *invoice.Service,
	companies *company.Service,
	settingsSvc *settings.Service,
	renderer *pdf.Renderer,
	audit *postgres.AuditService,
) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		invoices:    invoices,
		companies:   companies,
		settings:    settingsSvc,
		renderer:    renderer,
		audit:       audit,
	}
}

// List handles GET /invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	f := domain.DefaultListFilter()
	f.Search = c.Query("search")
	f.Limit = h.ParseIntQuery(c, "limit", 50)
	f.Offset = h.ParseIntQuery(c, "offset", 0)
	f.OrderBy = c.DefaultQuery("orderBy", "-date")
	f.IncludeDeleted = c.Query("includeDeleted") == "true"

	if status := c.Query("status"); status != "" {
		f.AdvancedFilters = append(f.AdvancedFilters, domainFilter.Item{
			Field: "status", Operator: domainFilter.Equal, Value: status,
		})
	}
	if docType := c.Query("type"); docType != "" {
		f.AdvancedFilters = append(f.AdvancedFilters, domainFilter.Item{
			Field: "type", Operator: domainFilter.Equal, Value: docType,
		})
	}
	if year := h.ParseIntQuery(c, "year", 0); year > 0 {
		from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		f.AdvancedFilters = append(f.AdvancedFilters,
			domainFilter.Item{Field: "date", Operator: domainFilter.GreaterOrEqual, Value: from},
			domainFilter.Item{Field: "date", Operator: domainFilter.LessOrEqual, Value: from.AddDate(1, 0, 0).Add(-time.Nanosecond)},
		)
	}

	result, err := h.invoices.List(ctx, f)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	inv, err := h.invoices.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

// Create handles POST /invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input invoice.CreateInput
	if !h.BindJSON(c, &input) {
		return
	}

	inv, err := h.invoices.Create(c.Request.Context(), input)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, inv)
}

// Update handles PUT /invoices/:id.
func (h *InvoiceHandler) Update(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var input invoice.CreateInput
	if !h.BindJSON(c, &input) {
		return
	}

	inv, err := h.invoices.Update(c.Request.Context(), invoiceID, input)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

// Delete handles DELETE /invoices/:id.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.invoices.Delete(c.Request.Context(), invoiceID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RecordPayment handles POST /invoices/:id/payments.
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.invoices.RecordPayment(c.Request.Context(), invoiceID, req.ToPayment())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

// SetStatus handles POST /invoices/:id/status.
func (h *InvoiceHandler) SetStatus(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.invoices.SetStatus(c.Request.Context(), invoiceID, req.Status)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

// NextNumber handles GET /invoices/next-number. Previews the next
// document number for a type and date without reserving it.
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	docType := invoice.Type(c.DefaultQuery("type", string(invoice.TypeInvoice)))

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid date format (expected YYYY-MM-DD)"))
			return
		}
		date = parsed
	}

	number, err := h.invoices.NextNumber(c.Request.Context(), docType, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NextNumberResponse{Number: number})
}

// History handles GET /invoices/:id/history. Returns the invoice's
// audit trail, newest first. Ownership is checked by loading the
// invoice through the service.
func (h *InvoiceHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if _, err := h.invoices.GetByID(ctx, invoiceID); err != nil {
		h.Error(c, err)
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	entries, err := h.audit.GetEntityHistory(ctx, "invoice", invoiceID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.AuditEntryResponse{
			ID:        e.ID.String(),
			Action:    e.Action,
			UserEmail: e.UserEmail,
			Changes:   e.Changes,
			CreatedAt: e.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// DownloadPDF handles GET /invoices/:id/pdf.
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	inv, err := h.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	comp, err := h.companies.GetByID(ctx, inv.CompanyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	userSettings, err := h.settings.Get(ctx, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	defaults := userSettings.Invoice
	if inv.Type == invoice.TypeProforma {
		defaults = userSettings.Proforma
	}

	data, err := h.renderer.RenderInvoice(ctx, inv, comp, pdf.Options{
		ShowHSNCode:     defaults.ShowHSNCode,
		ShowBankDetails: defaults.ShowBankDetails,
		DateFormat:      userSettings.General.DateFormat,
	})
	if err != nil {
		h.Error(c, apperror.NewInternal(fmt.Errorf("render pdf: %w", err)))
		return
	}

	filename := fmt.Sprintf("%s.pdf", inv.Number)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
