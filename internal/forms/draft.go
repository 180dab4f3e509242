package forms

import (
	"errors"
	"fmt"

	"github.com/Marga-Ghale/bpo-console/internal/dropdown"
)

var ErrUnknownField = errors.New("unknown form field")

// ============================================
// Project draft
// ============================================

type ProjectDraft struct {
	Name                string   `json:"name" validate:"notblank"`
	Code                string   `json:"code" validate:"notblank,alphanum"`
	Description         string   `json:"description"`
	ProjectManagerID    string   `json:"projectManagerId" validate:"notblank"`
	AssistantManagerIDs []string `json:"assistantManagerIds" validate:"min=1"`
	QAManagerIDs        []string `json:"qaManagerIds" validate:"min=1"`
	TeamIDs             []string `json:"teamIds" validate:"min=1"`
}

func NewProjectDraft() ProjectDraft {
	return ProjectDraft{
		AssistantManagerIDs: []string{},
		QAManagerIDs:        []string{},
		TeamIDs:             []string{},
	}
}

func (d *ProjectDraft) text(field string) *string {
	switch field {
	case "name":
		return &d.Name
	case "code":
		return &d.Code
	case "description":
		return &d.Description
	case "projectManagerId":
		return &d.ProjectManagerID
	}
	return nil
}

func (d *ProjectDraft) list(field string) *[]string {
	switch field {
	case "assistantManagerIds":
		return &d.AssistantManagerIDs
	case "qaManagerIds":
		return &d.QAManagerIDs
	case "teamIds":
		return &d.TeamIDs
	}
	return nil
}

// ============================================
// Task draft
// ============================================

// TaskDraft keeps Target as typed so "abc" can be reported rather than lost.
type TaskDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Target      string   `json:"target"`
	TeamIDs     []string `json:"teamIds"`
}

func NewTaskDraft() TaskDraft {
	return TaskDraft{TeamIDs: []string{}}
}

func (d *TaskDraft) text(field string) *string {
	switch field {
	case "name":
		return &d.Name
	case "description":
		return &d.Description
	case "target":
		return &d.Target
	}
	return nil
}

func (d *TaskDraft) list(field string) *[]string {
	if field == "teamIds" {
		return &d.TeamIDs
	}
	return nil
}

// ============================================
// User draft
// ============================================

type UserDraft struct {
	Name             string `json:"name" validate:"notblank"`
	Email            string `json:"email" validate:"notblank,looseemail"`
	Phone            string `json:"phone"`
	Password         string `json:"password" validate:"notblank,min=6"`
	Role             string `json:"role" validate:"notblank"`
	Designation      string `json:"designation"`
	ProjectManager   string `json:"projectManager"`
	AssistantManager string `json:"assistantManager"`
	QualityAnalyst   string `json:"qualityAnalyst"`
	Team             string `json:"team"`
	Tenure           string `json:"tenure"`
	Address          string `json:"address"`
	ProfilePicture   string `json:"profile_picture"`
}

// UserFields lists the user form fields in display order.
var UserFields = []string{
	"name", "email", "phone", "password", "role", "designation", "projectManager",
	"assistantManager", "qualityAnalyst", "team", "tenure", "address", "profile_picture",
}

func (d *UserDraft) text(field string) *string {
	switch field {
	case "name":
		return &d.Name
	case "email":
		return &d.Email
	case "phone":
		return &d.Phone
	case "password":
		return &d.Password
	case "role":
		return &d.Role
	case "designation":
		return &d.Designation
	case "projectManager":
		return &d.ProjectManager
	case "assistantManager":
		return &d.AssistantManager
	case "qualityAnalyst":
		return &d.QualityAnalyst
	case "team":
		return &d.Team
	case "tenure":
		return &d.Tenure
	case "address":
		return &d.Address
	case "profile_picture":
		return &d.ProfilePicture
	}
	return nil
}

// Get returns the value of a user field.
func (d UserDraft) Get(field string) string {
	if p := d.text(field); p != nil {
		return *p
	}
	return ""
}

// ============================================
// Field helpers
// ============================================

type fieldSetter interface {
	text(field string) *string
}

type listHolder interface {
	list(field string) *[]string
}

func setField(d fieldSetter, field string, value interface{}) error {
	if p := d.text(field); p != nil {
		if value == nil {
			*p = ""
			return nil
		}
		if s, ok := value.(string); ok {
			// Text is stored verbatim; trimming is a validation concern.
			*p = s
			return nil
		}
		*p = dropdown.Stringify(value)
		return nil
	}
	if lh, ok := d.(listHolder); ok {
		if l := lh.list(field); l != nil {
			*l = toIDs(value)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, field)
}

func toggle(d listHolder, field, id string) error {
	l := d.list(field)
	if l == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	for i, existing := range *l {
		if existing == id {
			*l = append((*l)[:i:i], (*l)[i+1:]...)
			return nil
		}
	}
	*l = append(*l, id)
	return nil
}

func toIDs(value interface{}) []string {
	opts := dropdown.Normalize(value)
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.ID)
	}
	return out
}
