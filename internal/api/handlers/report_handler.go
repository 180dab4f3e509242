package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/bpo-console/internal/api/middleware"
	"github.com/Marga-Ghale/bpo-console/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ============================================
// Report Handler
// ============================================

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Tracker - GET /reports/tracker?from=&to=
func (h *ReportHandler) Tracker(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	rep, err := h.reportService.Tracker(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		handleServiceError(c, "Report.Tracker", err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// QA - GET /reports/qa?from=&to=
func (h *ReportHandler) QA(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	rep, err := h.reportService.QA(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		handleServiceError(c, "Report.QA", err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// ExportTracker - GET /reports/tracker/export?from=&to=
func (h *ReportHandler) ExportTracker(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	export, err := h.reportService.ExportTracker(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		handleServiceError(c, "Report.ExportTracker", err)
		return
	}
	sendExport(c, export)
}

// ExportQA - GET /reports/qa/export?from=&to=
func (h *ReportHandler) ExportQA(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	export, err := h.reportService.ExportQA(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		handleServiceError(c, "Report.ExportQA", err)
		return
	}
	sendExport(c, export)
}

func sendExport(c *gin.Context, export *service.Export) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, xlsxContentType, export.Data)
}
