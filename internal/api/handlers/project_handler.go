package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/bpo-console/internal/api/middleware"
	"github.com/Marga-Ghale/bpo-console/internal/forms"
	"github.com/Marga-Ghale/bpo-console/internal/models"
	"github.com/Marga-Ghale/bpo-console/internal/service"
)

const maxUploadSize = 10 << 20

// ============================================
// Project Handler
// ============================================

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List - GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.projectService.List(c.Request.Context(), userID))
}

// OpenCreate - POST /projects/forms
func (h *ProjectHandler) OpenCreate(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	view, err := h.projectService.OpenCreate(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, "Project.OpenCreate", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// OpenEdit - POST /projects/:id/forms
func (h *ProjectHandler) OpenEdit(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	var req models.OpenProjectEditRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	view, err := h.projectService.OpenEdit(c.Request.Context(), userID, c.Param("id"), req.Hint)
	if err != nil {
		handleServiceError(c, "Project.OpenEdit", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// View - GET /projects/forms/:formId
func (h *ProjectHandler) View(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	view, err := h.projectService.View(c.Request.Context(), userID, c.Param("formId"))
	if err != nil {
		handleServiceError(c, "Project.View", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetField - PATCH /projects/forms/:formId/fields
func (h *ProjectHandler) SetField(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	var req models.SetFieldRequest
	if !bindJSON(c, &req) {
		return
	}
	form, err := h.projectService.SetField(c.Request.Context(), userID, c.Param("formId"), req.Field, req.Value)
	if err != nil {
		handleServiceError(c, "Project.SetField", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// Toggle - POST /projects/forms/:formId/toggle
func (h *ProjectHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	var req models.ToggleRequest
	if !bindJSON(c, &req) {
		return
	}
	form, err := h.projectService.Toggle(c.Request.Context(), userID, c.Param("formId"), req.Field, req.ID)
	if err != nil {
		handleServiceError(c, "Project.Toggle", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// SetPanel - POST /projects/forms/:formId/panel
func (h *ProjectHandler) SetPanel(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	var req models.PanelRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	form, err := h.projectService.SetPanel(c.Request.Context(), userID, c.Param("formId"), req.Field)
	if err != nil {
		handleServiceError(c, "Project.SetPanel", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// AttachFile - POST /projects/forms/:formId/files (multipart "file")
func (h *ProjectHandler) AttachFile(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}
	attachment, err := readAttachment(header)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.projectService.AttachFile(c.Request.Context(), userID, c.Param("formId"), attachment)
	if err != nil {
		handleServiceError(c, "Project.AttachFile", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func readAttachment(header *multipart.FileHeader) (forms.Attachment, error) {
	f, err := header.Open()
	if err != nil {
		return forms.Attachment{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return forms.Attachment{}, fmt.Errorf("failed to read upload: %w", err)
	}
	return forms.Attachment{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// Submit - POST /projects/forms/:formId/submit
func (h *ProjectHandler) Submit(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	res, err := h.projectService.Submit(c.Request.Context(), userID, c.Param("formId"))
	if err != nil {
		handleServiceError(c, "Project.Submit", err)
		return
	}
	respondResult(c, res)
}

// Close - DELETE /projects/forms/:formId
func (h *ProjectHandler) Close(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.projectService.Close(c.Request.Context(), userID, c.Param("formId")); err != nil {
		handleServiceError(c, "Project.Close", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================
// Delete confirmation
// ============================================

type requestDeleteBody struct {
	Name string `json:"name"`
}

// RequestDelete - POST /projects/:id/delete
func (h *ProjectHandler) RequestDelete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	var req requestDeleteBody
	if !bindOptionalJSON(c, &req) {
		return
	}
	confirmation, err := h.projectService.RequestDelete(c.Request.Context(), userID, c.Param("id"), req.Name)
	if err != nil {
		handleServiceError(c, "Project.RequestDelete", err)
		return
	}
	c.JSON(http.StatusCreated, confirmation)
}

// ConfirmDelete - POST /projects/deletions/:confirmId/confirm
func (h *ProjectHandler) ConfirmDelete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	res, err := h.projectService.ConfirmDelete(c.Request.Context(), userID, c.Param("confirmId"))
	if err != nil {
		handleServiceError(c, "Project.ConfirmDelete", err)
		return
	}
	respondResult(c, res)
}

// CancelDelete - DELETE /projects/deletions/:confirmId
func (h *ProjectHandler) CancelDelete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.projectService.CancelDelete(c.Request.Context(), userID, c.Param("confirmId")); err != nil {
		handleServiceError(c, "Project.CancelDelete", err)
		return
	}
	c.Status(http.StatusNoContent)
}
