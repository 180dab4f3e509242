// internal/backend/endpoints.go
package backend

import (
	"context"
	"net/http"
)

// ============================================
// Project payloads
// ============================================

type CreateProjectRequest struct {
	ProjectName          string  `json:"project_name"`
	ProjectCode          string  `json:"project_code"`
	ProjectDescription   string  `json:"project_description"`
	ProjectManagerID     int64   `json:"project_manager_id"`
	AsstProjectManagerID []int64 `json:"asst_project_manager_id"`
	ProjectQAID          []int64 `json:"project_qa_id"`
	ProjectTeamID        []int64 `json:"project_team_id"`
	File                 string  `json:"file,omitempty"`
}

type UpdateProjectRequest struct {
	ProjectID            int64    `json:"project_id"`
	ProjectName          string   `json:"project_name"`
	ProjectCode          string   `json:"project_code"`
	ProjectDescription   string   `json:"project_description"`
	ProjectManagerID     int64    `json:"project_manager_id"`
	AsstProjectManagerID []int64  `json:"asst_project_manager_id"`
	ProjectQAID          []int64  `json:"project_qa_id"`
	ProjectTeamID        []int64  `json:"project_team_id"`
	Files                []string `json:"files,omitempty"`
}

type projectRef struct {
	ProjectID int64 `json:"project_id"`
}

// ============================================
// Task payloads
// ============================================

type AddTaskRequest struct {
	ProjectID       int64   `json:"project_id"`
	TaskName        string  `json:"task_name"`
	TaskDescription string  `json:"task_description"`
	TaskTarget      float64 `json:"task_target"`
	TaskTeamID      []int64 `json:"task_team_id"`
}

type UpdateTaskRequest struct {
	TaskID          int64   `json:"task_id"`
	ProjectID       int64   `json:"project_id"`
	TaskName        string  `json:"task_name"`
	TaskDescription string  `json:"task_description"`
	TaskTarget      float64 `json:"task_target"`
	TaskTeamID      []int64 `json:"task_team_id"`
}

type taskRef struct {
	TaskID int64 `json:"task_id"`
}

// ============================================
// Misc payloads
// ============================================

type DropdownRequest struct {
	DropdownType string `json:"dropdown_type"`
	ProjectID    *int64 `json:"project_id,omitempty"`
}

type ReportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type PermissionRequest struct {
	UserID     int64  `json:"user_id"`
	Permission string `json:"permission"`
	Enabled    bool   `json:"enabled"`
}

// ============================================
// Projects
// ============================================

func (c *Client) CreateProject(ctx context.Context, req *CreateProjectRequest) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/project/create", req)
}

func (c *Client) UpdateProject(ctx context.Context, req *UpdateProjectRequest) (*Response, error) {
	return c.Do(ctx, http.MethodPut, "/project/update", req)
}

func (c *Client) DeleteProject(ctx context.Context, projectID int64) (*Response, error) {
	return c.Do(ctx, http.MethodPut, "/project/delete", projectRef{ProjectID: projectID})
}

func (c *Client) ListProjects(ctx context.Context) ([]map[string]interface{}, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/project/list", map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	return resp.Records()
}

func (c *Client) ProjectDetail(ctx context.Context, projectID int64) (map[string]interface{}, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/project/detail", projectRef{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	return firstRecord(resp)
}

// ============================================
// Tasks
// ============================================

func (c *Client) AddTask(ctx context.Context, req *AddTaskRequest) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/task/add", req)
}

func (c *Client) UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*Response, error) {
	return c.Do(ctx, http.MethodPut, "/task/update", req)
}

func (c *Client) DeleteTask(ctx context.Context, taskID int64) (*Response, error) {
	return c.Do(ctx, http.MethodPut, "/task/delete", taskRef{TaskID: taskID})
}

func (c *Client) ListTasks(ctx context.Context, projectID int64) ([]map[string]interface{}, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/task/list", projectRef{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	return resp.Records()
}

// ============================================
// Users
// ============================================

// CreateUser and UpdateUser take map payloads: the update carries only the
// changed fields, so a fixed struct would not fit.
func (c *Client) CreateUser(ctx context.Context, payload map[string]interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/user/create", payload)
}

func (c *Client) UpdateUser(ctx context.Context, payload map[string]interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPut, "/user/update", payload)
}

func (c *Client) ListUsers(ctx context.Context) ([]map[string]interface{}, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/user/list", map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	return resp.Records()
}

func (c *Client) UserDetail(ctx context.Context, userID int64) (map[string]interface{}, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/user/detail", map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, err
	}
	return firstRecord(resp)
}

func (c *Client) UpdatePermission(ctx context.Context, req *PermissionRequest) (*Response, error) {
	return c.Do(ctx, http.MethodPut, "/permission/update", req)
}

// ============================================
// Reference data and reports
// ============================================

// Dropdown returns the raw option payload; shapes vary per kind.
func (c *Client) Dropdown(ctx context.Context, req *DropdownRequest) (interface{}, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/dropdown/get", req)
	if err != nil {
		return nil, err
	}
	return resp.Value()
}

func (c *Client) TrackerReport(ctx context.Context, req *ReportRequest) ([]map[string]interface{}, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/tracker/report", req)
	if err != nil {
		return nil, err
	}
	return resp.Records()
}

func (c *Client) QAReviews(ctx context.Context, req *ReportRequest) ([]map[string]interface{}, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/qa/list", req)
	if err != nil {
		return nil, err
	}
	return resp.Records()
}

func firstRecord(resp *Response) (map[string]interface{}, error) {
	records, err := resp.Records()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &Error{StatusCode: resp.StatusCode, Message: resp.Message, Err: ErrBadResponse}
	}
	return records[0], nil
}
