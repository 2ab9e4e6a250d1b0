package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockflow/internal/service"
)

// WatchlistHandler manages product subscriptions.
type WatchlistHandler struct {
	svc service.WatchlistService
}

// NewWatchlistHandler creates a new watchlist handler.
func NewWatchlistHandler(svc service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{svc: svc}
}

// List godoc
// @Summary List watched products
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ProductView
// @Failure 401 {object} errors.ErrorResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) List(c echo.Context) error {
	products, err := h.svc.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, products)
}

// Watch godoc
// @Summary Watch a product
// @Description Watchers receive low stock alerts for the product.
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /watchlist/{productId} [post]
func (h *WatchlistHandler) Watch(c echo.Context) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}
	if err := h.svc.Watch(c.Request().Context(), currentUserID(c), productID); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "product added to watchlist"})
}

// Unwatch godoc
// @Summary Stop watching a product
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /watchlist/{productId} [delete]
func (h *WatchlistHandler) Unwatch(c echo.Context) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}
	if err := h.svc.Unwatch(c.Request().Context(), currentUserID(c), productID); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "product removed from watchlist"})
}
