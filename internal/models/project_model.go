// ============================================
// FILE: internal/models/project_model.go
// ============================================
package models

// Project is the canonical project record. Every backend alias is resolved
// into this shape by the adapter package before anything else sees it.
type Project struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Code                string   `json:"code"`
	Description         string   `json:"description"`
	ProjectManagerID    string   `json:"projectManagerId"`
	AssistantManagerIDs []string `json:"assistantManagerIds"`
	QAManagerIDs        []string `json:"qaManagerIds"`
	TeamIDs             []string `json:"teamIds"`
}

// Task is the canonical task record.
type Task struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"projectId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Target      float64  `json:"target"`
	TeamIDs     []string `json:"teamIds"`
}

// Request models
type SetFieldRequest struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}

type ToggleRequest struct {
	Field string `json:"field" binding:"required"`
	ID    string `json:"id" binding:"required"`
}

type PanelRequest struct {
	Field string `json:"field"` // empty closes every panel
}

// OpenProjectEditRequest carries the list row the user clicked. It is only
// used when the detail fetch fails.
type OpenProjectEditRequest struct {
	Hint *Project `json:"hint,omitempty"`
}
