package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/bpo-console/internal/api/middleware"
	"github.com/Marga-Ghale/bpo-console/internal/models"
	"github.com/Marga-Ghale/bpo-console/internal/service"
)

// ============================================
// Task Handler
// ============================================

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List - GET /projects/:id/tasks
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	list, err := h.taskService.List(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, "Task.List", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// OpenCreate - POST /projects/:id/tasks/forms
func (h *TaskHandler) OpenCreate(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	view, err := h.taskService.OpenCreate(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, "Task.OpenCreate", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// OpenEdit - POST /projects/:id/tasks/:taskId/forms
func (h *TaskHandler) OpenEdit(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	view, err := h.taskService.OpenEdit(c.Request.Context(), userID, c.Param("id"), c.Param("taskId"))
	if err != nil {
		handleServiceError(c, "Task.OpenEdit", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// View - GET /tasks/forms/:formId
func (h *TaskHandler) View(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	view, err := h.taskService.View(c.Request.Context(), userID, c.Param("formId"))
	if err != nil {
		handleServiceError(c, "Task.View", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetField - PATCH /tasks/forms/:formId/fields
func (h *TaskHandler) SetField(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	var req models.SetFieldRequest
	if !bindJSON(c, &req) {
		return
	}
	form, err := h.taskService.SetField(c.Request.Context(), userID, c.Param("formId"), req.Field, req.Value)
	if err != nil {
		handleServiceError(c, "Task.SetField", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// Toggle - POST /tasks/forms/:formId/toggle
func (h *TaskHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	var req models.ToggleRequest
	if !bindJSON(c, &req) {
		return
	}
	form, err := h.taskService.Toggle(c.Request.Context(), userID, c.Param("formId"), req.Field, req.ID)
	if err != nil {
		handleServiceError(c, "Task.Toggle", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// SetPanel - POST /tasks/forms/:formId/panel
func (h *TaskHandler) SetPanel(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	var req models.PanelRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	form, err := h.taskService.SetPanel(c.Request.Context(), userID, c.Param("formId"), req.Field)
	if err != nil {
		handleServiceError(c, "Task.SetPanel", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// Submit - POST /tasks/forms/:formId/submit
func (h *TaskHandler) Submit(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	res, err := h.taskService.Submit(c.Request.Context(), userID, c.Param("formId"))
	if err != nil {
		handleServiceError(c, "Task.Submit", err)
		return
	}
	respondResult(c, res)
}

// Close - DELETE /tasks/forms/:formId
func (h *TaskHandler) Close(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.taskService.Close(c.Request.Context(), userID, c.Param("formId")); err != nil {
		handleServiceError(c, "Task.Close", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete - DELETE /projects/:id/tasks/:taskId
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	res, err := h.taskService.Delete(c.Request.Context(), userID, c.Param("id"), c.Param("taskId"))
	if err != nil {
		handleServiceError(c, "Task.Delete", err)
		return
	}
	respondResult(c, res)
}
