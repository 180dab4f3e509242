package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the console API on api. auth runs on every route;
// limit runs only on routes that reach the tracking backend. Draft edits
// stay in the form store and are never throttled.
func (h *Handlers) RegisterRoutes(api *gin.RouterGroup, auth, limit gin.HandlerFunc) {
	local := api.Group("")
	local.Use(auth)

	remote := local.Group("")
	remote.Use(limit)

	// Dropdowns
	remote.GET("/dropdowns/:kind", h.Dropdown.Get)
	remote.DELETE("/dropdowns", h.Dropdown.Invalidate)

	// Projects
	remote.GET("/projects", h.Project.List)
	remote.POST("/projects/forms", h.Project.OpenCreate)
	remote.POST("/projects/:id/forms", h.Project.OpenEdit)
	remote.POST("/projects/forms/:formId/submit", h.Project.Submit)
	local.GET("/projects/forms/:formId", h.Project.View)
	local.PATCH("/projects/forms/:formId/fields", h.Project.SetField)
	local.POST("/projects/forms/:formId/toggle", h.Project.Toggle)
	local.POST("/projects/forms/:formId/panel", h.Project.SetPanel)
	local.POST("/projects/forms/:formId/files", h.Project.AttachFile)
	local.DELETE("/projects/forms/:formId", h.Project.Close)

	// Project deletion
	local.POST("/projects/:id/delete", h.Project.RequestDelete)
	remote.POST("/projects/deletions/:confirmId/confirm", h.Project.ConfirmDelete)
	local.DELETE("/projects/deletions/:confirmId", h.Project.CancelDelete)

	// Tasks
	remote.GET("/projects/:id/tasks", h.Task.List)
	remote.POST("/projects/:id/tasks/forms", h.Task.OpenCreate)
	remote.POST("/projects/:id/tasks/:taskId/forms", h.Task.OpenEdit)
	remote.DELETE("/projects/:id/tasks/:taskId", h.Task.Delete)
	remote.POST("/tasks/forms/:formId/submit", h.Task.Submit)
	local.GET("/tasks/forms/:formId", h.Task.View)
	local.PATCH("/tasks/forms/:formId/fields", h.Task.SetField)
	local.POST("/tasks/forms/:formId/toggle", h.Task.Toggle)
	local.POST("/tasks/forms/:formId/panel", h.Task.SetPanel)
	local.DELETE("/tasks/forms/:formId", h.Task.Close)

	// Users
	remote.GET("/users", h.User.List)
	remote.POST("/users/forms", h.User.OpenCreate)
	remote.POST("/users/:id/forms", h.User.OpenEdit)
	remote.POST("/users/forms/:formId/submit", h.User.Submit)
	remote.PUT("/users/:id/permissions", h.User.TogglePermission)
	local.GET("/users/forms/:formId", h.User.View)
	local.PATCH("/users/forms/:formId/fields", h.User.SetField)
	local.DELETE("/users/forms/:formId", h.User.Close)

	// Reports
	remote.GET("/reports/tracker", h.Report.Tracker)
	remote.GET("/reports/tracker/export", h.Report.ExportTracker)
	remote.GET("/reports/qa", h.Report.QA)
	remote.GET("/reports/qa/export", h.Report.ExportQA)

	// Activity log
	local.GET("/activities", h.Activity.List)
}
