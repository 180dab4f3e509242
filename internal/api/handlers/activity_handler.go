package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/bpo-console/internal/api/middleware"
	"github.com/Marga-Ghale/bpo-console/internal/service"
	"github.com/Marga-Ghale/bpo-console/internal/types"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ============================================
// Activity Handler
// ============================================

type ActivityHandler struct {
	activitySvc service.ActivityService
}

func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// List - GET /activities?entity_type=&entity_id=&limit=
// Without an entity it returns the caller's own actions.
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	limit := defaultActivityLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxActivityLimit)
	}

	entityType, entityID := c.Query("entity_type"), c.Query("entity_id")
	if entityType == "" && entityID == "" {
		activities, err := h.activitySvc.GetUserActivities(c.Request.Context(), userID, limit)
		if err != nil {
			handleServiceError(c, "Activity.Mine", err)
			return
		}
		c.JSON(http.StatusOK, activities)
		return
	}

	switch entityType {
	case types.EntityProject, types.EntityTask, types.EntityUser:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity_type must be project, task or user"})
		return
	}
	if entityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity_id is required"})
		return
	}

	activities, err := h.activitySvc.GetEntityActivities(c.Request.Context(), entityType, entityID, limit)
	if err != nil {
		handleServiceError(c, "Activity.Entity", err)
		return
	}
	c.JSON(http.StatusOK, activities)
}
