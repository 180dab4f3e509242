// Package forms holds the server-side state of one create-or-edit session:
// the draft, its field errors, attached files and which multi-select panel
// is open. A form lives as long as the dashboard modal that owns it.
package forms

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindProject       = "project"
	KindTask          = "task"
	KindUser          = "user"
	KindProjectDelete = "project_delete"
)

type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// Header is shared by every form session.
type Header struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"`
	Owner      string            `json:"owner"`
	Mode       string            `json:"mode"`
	Errors     map[string]string `json:"errors"`
	OpenPanel  string            `json:"openPanel"`
	Submitting bool              `json:"submitting"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func newHeader(kind, owner, mode string) Header {
	return Header{
		ID:        uuid.New().String(),
		Kind:      kind,
		Owner:     owner,
		Mode:      mode,
		Errors:    map[string]string{},
		UpdatedAt: time.Now(),
	}
}

// FormHeader gives generic code access to the embedded header.
func (h *Header) FormHeader() *Header { return h }

func (h *Header) touch()              { h.UpdatedAt = time.Now() }
func (h *Header) clearError(f string) { delete(h.Errors, f) }

// ClosePanels is the outside-click transition. The selection is untouched.
func (h *Header) ClosePanels() {
	h.OpenPanel = ""
	h.touch()
}

// ============================================
// Project form
// ============================================

type ProjectForm struct {
	Header
	ProjectID string       `json:"projectId,omitempty"`
	Draft     ProjectDraft `json:"draft"`
	Files     []Attachment `json:"files"`
}

func NewProjectForm(owner, mode, projectID string) *ProjectForm {
	return &ProjectForm{
		Header:    newHeader(KindProject, owner, mode),
		ProjectID: projectID,
		Draft:     NewProjectDraft(),
		Files:     []Attachment{},
	}
}

// SetField changes one field and clears its error.
func (f *ProjectForm) SetField(field string, value interface{}) error {
	if err := setField(&f.Draft, field, value); err != nil {
		return err
	}
	f.clearError(field)
	f.touch()
	return nil
}

// Toggle adds or removes id from a multi-select field. It applies
// immediately; only the form submit reaches the backend.
func (f *ProjectForm) Toggle(field, id string) error {
	if err := toggle(&f.Draft, field, id); err != nil {
		return err
	}
	f.clearError(field)
	f.touch()
	return nil
}

// SetOpenPanel opens the panel of a multi-select field, closing any other.
// An empty field closes all panels.
func (f *ProjectForm) SetOpenPanel(field string) error {
	if field != "" && f.Draft.list(field) == nil {
		return ErrUnknownField
	}
	f.OpenPanel = field
	f.touch()
	return nil
}

func (f *ProjectForm) Attach(a Attachment) {
	f.Files = append(f.Files, a)
	f.touch()
}

// Reset empties the draft, errors, files and panels.
func (f *ProjectForm) Reset() {
	f.Draft = NewProjectDraft()
	f.Errors = map[string]string{}
	f.Files = []Attachment{}
	f.OpenPanel = ""
	f.touch()
}

// ============================================
// Task form
// ============================================

type TaskForm struct {
	Header
	ProjectID string    `json:"projectId"`
	TaskID    string    `json:"taskId,omitempty"`
	Draft     TaskDraft `json:"draft"`
}

func NewTaskForm(owner, mode, projectID, taskID string) *TaskForm {
	return &TaskForm{
		Header:    newHeader(KindTask, owner, mode),
		ProjectID: projectID,
		TaskID:    taskID,
		Draft:     NewTaskDraft(),
	}
}

func (f *TaskForm) SetField(field string, value interface{}) error {
	if err := setField(&f.Draft, field, value); err != nil {
		return err
	}
	f.touch()
	return nil
}

func (f *TaskForm) Toggle(field, id string) error {
	if err := toggle(&f.Draft, field, id); err != nil {
		return err
	}
	f.touch()
	return nil
}

func (f *TaskForm) SetOpenPanel(field string) error {
	if field != "" && f.Draft.list(field) == nil {
		return ErrUnknownField
	}
	f.OpenPanel = field
	f.touch()
	return nil
}

func (f *TaskForm) Reset() {
	f.Draft = NewTaskDraft()
	f.Errors = map[string]string{}
	f.OpenPanel = ""
	f.touch()
}

// ============================================
// User form
// ============================================

// UserForm keeps the record as loaded so an edit sends only what changed.
type UserForm struct {
	Header
	UserID   string    `json:"userId,omitempty"`
	Draft    UserDraft `json:"draft"`
	Snapshot UserDraft `json:"snapshot"`
}

func NewUserForm(owner, mode, userID string) *UserForm {
	return &UserForm{
		Header: newHeader(KindUser, owner, mode),
		UserID: userID,
	}
}

// Load fills both the draft and the snapshot from a loaded record.
func (f *UserForm) Load(d UserDraft) {
	d.Password = ""
	f.Draft = d
	f.Snapshot = d
	f.touch()
}

func (f *UserForm) SetField(field string, value interface{}) error {
	if err := setField(&f.Draft, field, value); err != nil {
		return err
	}
	f.clearError(field)
	f.touch()
	return nil
}

func (f *UserForm) Reset() {
	f.Draft = UserDraft{}
	f.Snapshot = UserDraft{}
	f.Errors = map[string]string{}
	f.touch()
}

// ============================================
// Delete confirmation
// ============================================

type DeleteConfirmation struct {
	Header
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Open        bool   `json:"open"`
}

func NewDeleteConfirmation(owner, projectID, projectName string) *DeleteConfirmation {
	return &DeleteConfirmation{
		Header:      newHeader(KindProjectDelete, owner, ""),
		ProjectID:   projectID,
		ProjectName: projectName,
		Open:        true,
	}
}
