package types

// Dropdown kinds served by the reference-data endpoint
type DropdownKind string

const (
	DropdownRoles             DropdownKind = "roles"
	DropdownDesignations      DropdownKind = "designations"
	DropdownProjectManagers   DropdownKind = "project_managers"
	DropdownAssistantManagers DropdownKind = "assistant_managers"
	DropdownQAs               DropdownKind = "qas"
	DropdownTeams             DropdownKind = "teams"
	DropdownAgents            DropdownKind = "agents"
)

var ValidDropdownKinds = []DropdownKind{
	DropdownRoles, DropdownDesignations, DropdownProjectManagers,
	DropdownAssistantManagers, DropdownQAs, DropdownTeams, DropdownAgents,
}

func IsValidDropdownKind(kind DropdownKind) bool {
	for _, k := range ValidDropdownKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Form modes
const (
	ModeCreate = "create"
	ModeEdit   = "edit"
)

// Notification levels
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// Activity types recorded after successful mutations
const (
	ActivityProjectCreated    = "project.created"
	ActivityProjectUpdated    = "project.updated"
	ActivityProjectDeleted    = "project.deleted"
	ActivityTaskCreated       = "task.created"
	ActivityTaskUpdated       = "task.updated"
	ActivityTaskDeleted       = "task.deleted"
	ActivityUserCreated       = "user.created"
	ActivityUserUpdated       = "user.updated"
	ActivityPermissionChanged = "user.permission_changed"
)

// Entity types
const (
	EntityProject = "project"
	EntityTask    = "task"
	EntityUser    = "user"
)

// Permissions that can be toggled from the users table
const (
	PermissionTracker  = "tracker"
	PermissionQAReview = "qa_review"
	PermissionReports  = "reports"
	PermissionManage   = "manage_projects"
)

var ValidPermissions = []string{
	PermissionTracker, PermissionQAReview, PermissionReports, PermissionManage,
}

func IsValidPermission(p string) bool {
	for _, v := range ValidPermissions {
		if v == p {
			return true
		}
	}
	return false
}
