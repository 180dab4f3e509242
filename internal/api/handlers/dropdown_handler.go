package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/bpo-console/internal/api/middleware"
	"github.com/Marga-Ghale/bpo-console/internal/dropdown"
	"github.com/Marga-Ghale/bpo-console/internal/types"
)

// ============================================
// Dropdown Handler
// ============================================

type DropdownHandler struct {
	provider *dropdown.Provider
}

func NewDropdownHandler(provider *dropdown.Provider) *DropdownHandler {
	return &DropdownHandler{provider: provider}
}

// Get - GET /dropdowns/:kind?project_id=
func (h *DropdownHandler) Get(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var projectID *int64
	if s := c.Query("project_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project_id must be numeric"})
			return
		}
		projectID = &id
	}

	opts, err := h.provider.Options(c.Request.Context(), userID, types.DropdownKind(c.Param("kind")), projectID)
	if err != nil {
		handleServiceError(c, "Dropdown.Get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": opts})
}

// Invalidate - DELETE /dropdowns
// Drops the caller's cached lists, e.g. after logout or a role change.
func (h *DropdownHandler) Invalidate(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}
	if err := h.provider.Invalidate(c.Request.Context(), userID); err != nil {
		handleServiceError(c, "Dropdown.Invalidate", err)
		return
	}
	c.Status(http.StatusNoContent)
}
