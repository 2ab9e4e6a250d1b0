package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockflow/internal/service"
)

// SectorHandler serves the sector catalog.
type SectorHandler struct {
	svc service.SectorService
}

// NewSectorHandler creates a new sector handler.
func NewSectorHandler(svc service.SectorService) *SectorHandler {
	return &SectorHandler{svc: svc}
}

// List godoc
// @Summary List sectors
// @Tags sectors
// @Produce json
// @Success 200 {array} model.Sector
// @Failure 500 {object} errors.ErrorResponse
// @Router /sectors [get]
func (h *SectorHandler) List(c echo.Context) error {
	sectors, err := h.svc.ListSectors(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, sectors)
}
