package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/bpo-console/internal/backend"
	"github.com/Marga-Ghale/bpo-console/internal/dropdown"
	"github.com/Marga-Ghale/bpo-console/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Project  *ProjectHandler
	Task     *TaskHandler
	User     *UserHandler
	Report   *ReportHandler
	Activity *ActivityHandler
	Dropdown *DropdownHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Project:  NewProjectHandler(services.Project),
		Task:     NewTaskHandler(services.Task),
		User:     NewUserHandler(services.User),
		Report:   NewReportHandler(services.Report),
		Activity: NewActivityHandler(services.Activity),
		Dropdown: NewDropdownHandler(services.Dropdowns),
	}
}

// ============================================
// Error mapping
// ============================================

func logAPIError(c *gin.Context, action string, err error) {
	log.Printf("[API_ERROR] action=%s method=%s path=%s userID=%v err=%v",
		action, c.Request.Method, c.FullPath(), c.GetString("userID"), err)
}

func handleServiceError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Form or resource not found"})
	case errors.Is(err, service.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "A submission is already in progress"})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, dropdown.ErrUnknownKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, backend.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": backend.MessageOf(err, "Session expired")})
	case errors.As(err, new(*backend.Error)):
		logAPIError(c, action, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.MessageOf(err, "Tracking backend unavailable")})
	default:
		logAPIError(c, action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondResult writes an action result. Field errors are 422; everything
// else is 200 and the dashboard reads "ok" and the notification.
func respondResult(c *gin.Context, res *service.ActionResult) {
	if !res.OK && len(res.Errors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// bindOptionalJSON accepts an empty body.
func bindOptionalJSON(c *gin.Context, dest interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, dest)
}
