package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/bpo-console/internal/api/middleware"
	"github.com/Marga-Ghale/bpo-console/internal/models"
	"github.com/Marga-Ghale/bpo-console/internal/service"
)

// ============================================
// User Handler
// ============================================

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List - GET /users
func (h *UserHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.userService.List(c.Request.Context(), userID))
}

// OpenCreate - POST /users/forms
func (h *UserHandler) OpenCreate(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	view, err := h.userService.OpenCreate(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, "User.OpenCreate", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// OpenEdit - POST /users/:id/forms
func (h *UserHandler) OpenEdit(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	var req models.OpenUserEditRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	view, err := h.userService.OpenEdit(c.Request.Context(), userID, c.Param("id"), req.Hint)
	if err != nil {
		handleServiceError(c, "User.OpenEdit", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// View - GET /users/forms/:formId
func (h *UserHandler) View(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	view, err := h.userService.View(c.Request.Context(), userID, c.Param("formId"))
	if err != nil {
		handleServiceError(c, "User.View", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetField - PATCH /users/forms/:formId/fields
func (h *UserHandler) SetField(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	var req models.SetFieldRequest
	if !bindJSON(c, &req) {
		return
	}
	form, err := h.userService.SetField(c.Request.Context(), userID, c.Param("formId"), req.Field, req.Value)
	if err != nil {
		handleServiceError(c, "User.SetField", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// Submit - POST /users/forms/:formId/submit
func (h *UserHandler) Submit(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	res, err := h.userService.Submit(c.Request.Context(), userID, c.Param("formId"))
	if err != nil {
		handleServiceError(c, "User.Submit", err)
		return
	}
	respondResult(c, res)
}

// Close - DELETE /users/forms/:formId
func (h *UserHandler) Close(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.userService.Close(c.Request.Context(), userID, c.Param("formId")); err != nil {
		handleServiceError(c, "User.Close", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TogglePermission - PUT /users/:id/permissions
func (h *UserHandler) TogglePermission(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	var req models.PermissionToggleRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.userService.TogglePermission(c.Request.Context(), userID, c.Param("id"), req.Permission, req.Enabled)
	if err != nil {
		handleServiceError(c, "User.TogglePermission", err)
		return
	}
	respondResult(c, res)
}
