package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================
// User records
// ============================================

// User is the canonical user record. Field names match the user form.
type User struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Role             string          `json:"role"`
	Designation      string          `json:"designation"`
	ProjectManager   string          `json:"projectManager"`
	AssistantManager string          `json:"assistantManager"`
	QualityAnalyst   string          `json:"qualityAnalyst"`
	Team             string          `json:"team"`
	Tenure           string          `json:"tenure"`
	Address          string          `json:"address"`
	ProfilePicture   string          `json:"profile_picture"`
	Permissions      map[string]bool `json:"permissions"`
}

type OpenUserEditRequest struct {
	Hint *User `json:"hint,omitempty"`
}

type PermissionToggleRequest struct {
	Permission string `json:"permission" binding:"required"`
	Enabled    bool   `json:"enabled"`
}

// ============================================
// Reports
// ============================================

// TrackerRow is one line of the billable-hours report.
type TrackerRow struct {
	Date          string          `json:"date"`
	UserName      string          `json:"userName"`
	ProjectName   string          `json:"projectName"`
	TaskName      string          `json:"taskName"`
	Count         int             `json:"count"`
	BillableHours decimal.Decimal `json:"billableHours"`
}

// QAReview is one entry of the QA review queue.
type QAReview struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	AgentName   string          `json:"agentName"`
	ProjectName string          `json:"projectName"`
	TaskName    string          `json:"taskName"`
	QAName      string          `json:"qaName"`
	Status      string          `json:"status"`
	Score       decimal.Decimal `json:"score"`
}

// ============================================
// Notifications (toasts)
// ============================================

type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// ============================================
// Activity
// ============================================

type ActivityResponse struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	EntityType string                 `json:"entityType"`
	EntityID   string                 `json:"entityId"`
	UserID     string                 `json:"userId"`
	Changes    map[string]interface{} `json:"changes,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}
