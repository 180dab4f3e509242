package adapter

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Marga-Ghale/bpo-console/internal/dropdown"
)

func record(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return m
}

func TestProjectFromRecord_ListShape(t *testing.T) {
	rec := record(t, `{
		"project_id": 5,
		"project_name": "Apollo",
		"project_code": "APL1",
		"project_description": "Voice support",
		"project_manager_id": 7,
		"asst_project_managers": [{"user_id": 3, "user_name": "Asha"}],
		"qa_users": [[{"user_id": 9, "user_name": "Ravi"}]],
		"project_team": [{"team_id": 11, "team_name": "Day"}, {"team_id": 12, "team_name": "Night"}]
	}`)

	p := ProjectFromRecord(rec, nil)
	if p.ID != "5" || p.Name != "Apollo" || p.Code != "APL1" || p.Description != "Voice support" {
		t.Fatalf("scalar fields wrong: %+v", p)
	}
	if p.ProjectManagerID != "7" {
		t.Fatalf("manager: %q", p.ProjectManagerID)
	}
	if !reflect.DeepEqual(p.AssistantManagerIDs, []string{"3"}) ||
		!reflect.DeepEqual(p.QAManagerIDs, []string{"9"}) ||
		!reflect.DeepEqual(p.TeamIDs, []string{"11", "12"}) {
		t.Fatalf("associations wrong: %+v", p)
	}
}

func TestProjectFromRecord_DetailShapeWithIDVariants(t *testing.T) {
	rec := record(t, `{
		"id": "5",
		"name": "Apollo",
		"projectManagerId": "7",
		"asst_project_managers": [],
		"asst_project_manager_id": [3, 4],
		"project_qa_id": "9, 10",
		"project_team_id": [11]
	}`)

	p := ProjectFromRecord(rec, nil)
	if p.ProjectManagerID != "7" {
		t.Fatalf("manager: %q", p.ProjectManagerID)
	}
	if !reflect.DeepEqual(p.AssistantManagerIDs, []string{"3", "4"}) {
		t.Fatalf("empty first alias must fall through: %v", p.AssistantManagerIDs)
	}
	if !reflect.DeepEqual(p.QAManagerIDs, []string{"9", "10"}) {
		t.Fatalf("comma list: %v", p.QAManagerIDs)
	}
	if !reflect.DeepEqual(p.TeamIDs, []string{"11"}) {
		t.Fatalf("teams: %v", p.TeamIDs)
	}
}

func TestProjectFromRecord_ManagerByLabel(t *testing.T) {
	managers := []dropdown.Option{{ID: "7", Label: "Priya Menon"}}
	rec := record(t, `{"project_id": 5, "project_manager": "Priya Menon"}`)

	if got := ProjectFromRecord(rec, managers).ProjectManagerID; got != "7" {
		t.Fatalf("label lookup failed: %q", got)
	}

	rec = record(t, `{"project_id": 5, "project_manager": {"user_id": 8, "user_name": "Someone"}}`)
	if got := ProjectFromRecord(rec, managers).ProjectManagerID; got != "8" {
		t.Fatalf("object manager: %q", got)
	}

	rec = record(t, `{"project_id": 5, "project_manager_name": "Nobody"}`)
	if got := ProjectFromRecord(rec, managers).ProjectManagerID; got != "" {
		t.Fatalf("unknown name should resolve to empty, got %q", got)
	}
}

func TestProjectFromRecord_MissingListsAreEmptyNotNil(t *testing.T) {
	p := ProjectFromRecord(record(t, `{"project_id": 1}`), nil)
	if p.TeamIDs == nil || p.QAManagerIDs == nil || p.AssistantManagerIDs == nil {
		t.Fatalf("lists must be non-nil: %+v", p)
	}
}

func TestTaskFromRecord(t *testing.T) {
	rec := record(t, `{"task_id": 21, "task_name": "Calls", "task_target": "40", "task_team_id": [[5], [6]]}`)
	task := TaskFromRecord(rec, "5")
	if task.ID != "21" || task.Name != "Calls" || task.Target != 40 || task.ProjectID != "5" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if !reflect.DeepEqual(task.TeamIDs, []string{"5", "6"}) {
		t.Fatalf("teams: %v", task.TeamIDs)
	}
}

func TestUserFromRecord(t *testing.T) {
	rec := record(t, `{
		"user_id": 14,
		"user_name": "Asha",
		"user_email": "a@x.com",
		"role": {"id": 2, "name": "Agent"},
		"team_id": 11,
		"user_tenure": 0,
		"permissions": ["reports"]
	}`)

	u := UserFromRecord(rec)
	if u.ID != "14" || u.Email != "a@x.com" || u.Role != "2" || u.Team != "11" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.Tenure != "0" {
		t.Fatalf("zero tenure must survive as %q, got %q", "0", u.Tenure)
	}
	if !u.Permissions["reports"] {
		t.Fatalf("permissions: %v", u.Permissions)
	}
}

func TestTrackerRowFromRecord(t *testing.T) {
	rec := record(t, `{"date": "2026-10-01T09:00:00Z", "user_name": "Asha", "project_name": "Apollo",
		"task_name": "Calls", "production": 35, "billable_hours": "7.25"}`)
	row := TrackerRowFromRecord(rec)
	if row.Date != "2026-10-01" || row.Count != 35 || row.BillableHours.String() != "7.25" {
		t.Fatalf("unexpected row: %+v", row)
	}
}
