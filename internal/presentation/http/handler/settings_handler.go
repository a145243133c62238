package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gusto-pos/internal/application/service"
	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/presentation/http/dto/response"
)

// SettingsHandler handles venue configuration requests
type SettingsHandler struct {
	venueService *service.VenueConfigService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(venueService *service.VenueConfigService) *SettingsHandler {
	return &SettingsHandler{venueService: venueService}
}

// GetVenue retrieves the venue configuration
func (h *SettingsHandler) GetVenue(c *gin.Context) {
	cfg, err := h.venueService.GetConfig(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Venue settings retrieved successfully", cfg)
}

// UpdateVenue replaces the venue configuration. Fields missing from the body
// keep their default values.
func (h *SettingsHandler) UpdateVenue(c *gin.Context) {
	cfg := entity.DefaultVenueConfig()
	if !bindJSON(c, &cfg) {
		return
	}

	saved, err := h.venueService.SaveConfig(c.Request.Context(), &cfg)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Venue settings updated successfully", saved)
}
