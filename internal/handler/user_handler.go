package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockflow/internal/service"
)

// UserHandler serves the signed-in user's profile.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// PreferencesRequest toggles alert emails.
type PreferencesRequest struct {
	EmailNotifications *bool `json:"email_notifications" validate:"required"`
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.svc.GetUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdatePreferences godoc
// @Summary Update notification preferences
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PreferencesRequest true "Preferences"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/preferences [patch]
func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	var req PreferencesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.svc.UpdatePreferences(c.Request().Context(), currentUserID(c), *req.EmailNotifications)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}
