package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/core/id"
	"gstbill/internal/domain/settings"
	"gstbill/internal/infrastructure/http/v1/dto"
)

// SettingsHandler handles per-user settings endpoints.
type SettingsHandler struct {
	*BaseHandler

	service *settings.Service
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(base *BaseHandler, service *settings.Service) *SettingsHandler {
	return &SettingsHandler{BaseHandler: base, service: service}
}

// Get handles GET /settings. Returns defaults when nothing is stored yet.
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	s, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

// Save handles PUT /settings. The row is keyed by user, so the payload's
// user and id fields are overridden with the caller's identity.
func (h *SettingsHandler) Save(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var s settings.Settings
	if !h.BindJSON(c, &s) {
		return
	}

	s.UserID = userID
	if id.IsNil(s.ID) {
		s.ID = id.New()
	}
	if s.Version < 1 {
		s.Version = 1
	}

	if err := h.service.Save(c.Request.Context(), &s); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, &s)
}

// PreviewTax handles POST /settings/tax-preview. Splits a single amount
// into CGST/SGST/IGST per the caller's stored tax settings.
func (h *SettingsHandler) PreviewTax(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.TaxPreviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	breakdown, err := h.service.PreviewTax(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// Reset handles POST /settings/reset. Drops the stored row and returns
// the defaults the account falls back to.
func (h *SettingsHandler) Reset(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	defaults, err := h.service.Reset(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, defaults)
}
