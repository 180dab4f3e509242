package adapter

import (
	"strconv"

	"github.com/Marga-Ghale/bpo-console/internal/dropdown"
	"github.com/Marga-Ghale/bpo-console/internal/models"
)

// ProjectFromRecord resolves a project record from either the list or the
// detail endpoint. managers is used to resolve a manager given only by name.
func ProjectFromRecord(rec map[string]interface{}, managers []dropdown.Option) models.Project {
	p := models.Project{
		ID:          str(rec, "project_id", "id"),
		Name:        str(rec, "project_name", "name"),
		Code:        str(rec, "project_code", "code"),
		Description: str(rec, "project_description", "description"),
		AssistantManagerIDs: ids(rec,
			"asst_project_managers", "asst_project_manager_id", "asst_project_manager_ids", "assistantManagerIds"),
		QAManagerIDs: ids(rec, "qa_users", "project_qa_id", "project_qa_ids", "qaManagerIds"),
		TeamIDs:      ids(rec, "project_team", "project_team_id", "project_team_ids", "teamIds"),
	}
	p.ProjectManagerID = projectManagerID(rec, managers)
	return p
}

func projectManagerID(rec map[string]interface{}, managers []dropdown.Option) string {
	if id := str(rec, "project_manager_id", "projectManagerId"); id != "" {
		return id
	}
	if obj, ok := object(rec, "project_manager"); ok {
		if opts := dropdown.Normalize(obj); len(opts) > 0 {
			return opts[0].ID
		}
	}
	name := str(rec, "project_manager", "project_manager_name")
	if id, ok := dropdown.FindByLabel(managers, name); ok {
		return id
	}
	// Some list rows carry the id itself under the name key.
	if _, err := strconv.ParseInt(name, 10, 64); err == nil {
		return name
	}
	return ""
}

// ProjectsFromRecords maps a list response.
func ProjectsFromRecords(recs []map[string]interface{}, managers []dropdown.Option) []models.Project {
	out := make([]models.Project, 0, len(recs))
	for _, rec := range recs {
		out = append(out, ProjectFromRecord(rec, managers))
	}
	return out
}

// TaskFromRecord resolves a task record. projectID fills in rows that omit it.
func TaskFromRecord(rec map[string]interface{}, projectID string) models.Task {
	t := models.Task{
		ID:          str(rec, "task_id", "id"),
		ProjectID:   str(rec, "project_id"),
		Name:        str(rec, "task_name", "name"),
		Description: str(rec, "task_description", "description"),
		TeamIDs:     ids(rec, "task_team_id", "task_team", "task_teams", "teamIds"),
	}
	t.Target, _ = number(rec, "task_target", "target").Float64()
	if t.ProjectID == "" {
		t.ProjectID = projectID
	}
	return t
}

func TasksFromRecords(recs []map[string]interface{}, projectID string) []models.Task {
	out := make([]models.Task, 0, len(recs))
	for _, rec := range recs {
		out = append(out, TaskFromRecord(rec, projectID))
	}
	return out
}
