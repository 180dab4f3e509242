package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Marga-Ghale/bpo-console/internal/adapter"
	"github.com/Marga-Ghale/bpo-console/internal/backend"
	"github.com/Marga-Ghale/bpo-console/internal/dropdown"
	"github.com/Marga-Ghale/bpo-console/internal/forms"
	"github.com/Marga-Ghale/bpo-console/internal/models"
	"github.com/Marga-Ghale/bpo-console/internal/notification"
	"github.com/Marga-Ghale/bpo-console/internal/types"
	"github.com/Marga-Ghale/bpo-console/internal/validation"
)

// ============================================
// Project Service
// ============================================

// ProjectFormView is an open project form with the option lists it renders.
// Selected ids missing from a list appear as "Unknown (<id>)".
type ProjectFormView struct {
	Form         *forms.ProjectForm           `json:"form"`
	Options      map[string][]dropdown.Option `json:"options"`
	Notification *models.Notification         `json:"notification,omitempty"`
}

// ProjectList is a full reload of the project cards. A failed fetch yields an
// empty list and a notification.
type ProjectList struct {
	Projects     []models.Project     `json:"projects"`
	Notification *models.Notification `json:"notification,omitempty"`
}

type ProjectService interface {
	List(ctx context.Context, userID string) *ProjectList
	OpenCreate(ctx context.Context, userID string) (*ProjectFormView, error)
	OpenEdit(ctx context.Context, userID, projectID string, hint *models.Project) (*ProjectFormView, error)
	View(ctx context.Context, userID, formID string) (*ProjectFormView, error)
	SetField(ctx context.Context, userID, formID, field string, value interface{}) (*forms.ProjectForm, error)
	Toggle(ctx context.Context, userID, formID, field, id string) (*forms.ProjectForm, error)
	SetPanel(ctx context.Context, userID, formID, field string) (*forms.ProjectForm, error)
	AttachFile(ctx context.Context, userID, formID string, file forms.Attachment) (*forms.ProjectForm, error)
	Close(ctx context.Context, userID, formID string) error
	Submit(ctx context.Context, userID, formID string) (*ActionResult, error)

	RequestDelete(ctx context.Context, userID, projectID, projectName string) (*forms.DeleteConfirmation, error)
	ConfirmDelete(ctx context.Context, userID, confirmID string) (*ActionResult, error)
	CancelDelete(ctx context.Context, userID, confirmID string) error
}

type projectService struct {
	*base
}

func NewProjectService(b *base) ProjectService {
	return &projectService{base: b}
}

func (s *projectService) List(ctx context.Context, userID string) *ProjectList {
	records, err := s.backend.ListProjects(ctx)
	if err != nil {
		return &ProjectList{
			Projects:     []models.Project{},
			Notification: s.failure(userID, "Projects", err, "Failed to load projects"),
		}
	}
	managers := s.options(ctx, userID, types.DropdownProjectManagers, nil)
	return &ProjectList{Projects: adapter.ProjectsFromRecords(records, managers)}
}

func (s *projectService) OpenCreate(ctx context.Context, userID string) (*ProjectFormView, error) {
	form := forms.NewProjectForm(userID, types.ModeCreate, "")
	if err := s.save(ctx, form.ID, form); err != nil {
		return nil, err
	}
	return s.view(ctx, form), nil
}

// OpenEdit hydrates the form from the detail endpoint. When that fails the
// list row the user clicked is used instead.
func (s *projectService) OpenEdit(ctx context.Context, userID, projectID string, hint *models.Project) (*ProjectFormView, error) {
	id, err := parseID(projectID)
	if err != nil {
		return nil, err
	}

	form := forms.NewProjectForm(userID, types.ModeEdit, projectID)
	var note *models.Notification

	managers := s.options(ctx, userID, types.DropdownProjectManagers, nil)
	record, err := s.backend.ProjectDetail(ctx, id)
	switch {
	case err == nil:
		form.Draft = draftFromProject(adapter.ProjectFromRecord(record, managers))
	case hint != nil:
		log.Printf("⚠️ [Projects] detail %s failed, using list row: %v", projectID, err)
		form.Draft = draftFromProject(*hint)
	default:
		note = s.failure(userID, "Projects", err, "Failed to load project details")
	}

	if err := s.save(ctx, form.ID, form); err != nil {
		return nil, err
	}
	v := s.view(ctx, form)
	v.Notification = note
	return v, nil
}

func draftFromProject(p models.Project) forms.ProjectDraft {
	d := forms.NewProjectDraft()
	d.Name = p.Name
	d.Code = p.Code
	d.Description = p.Description
	d.ProjectManagerID = p.ProjectManagerID
	d.AssistantManagerIDs = append(d.AssistantManagerIDs, p.AssistantManagerIDs...)
	d.QAManagerIDs = append(d.QAManagerIDs, p.QAManagerIDs...)
	d.TeamIDs = append(d.TeamIDs, p.TeamIDs...)
	return d
}

func (s *projectService) View(ctx context.Context, userID, formID string) (*ProjectFormView, error) {
	form, err := s.loadForm(ctx, userID, formID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, form), nil
}

func (s *projectService) view(ctx context.Context, form *forms.ProjectForm) *ProjectFormView {
	d := form.Draft
	var pm []string
	if d.ProjectManagerID != "" {
		pm = []string{d.ProjectManagerID}
	}
	return &ProjectFormView{
		Form: form,
		Options: map[string][]dropdown.Option{
			"projectManagerId":    dropdown.WithSelection(s.options(ctx, form.Owner, types.DropdownProjectManagers, nil), pm),
			"assistantManagerIds": dropdown.WithSelection(s.options(ctx, form.Owner, types.DropdownAssistantManagers, nil), d.AssistantManagerIDs),
			"qaManagerIds":        dropdown.WithSelection(s.options(ctx, form.Owner, types.DropdownQAs, nil), d.QAManagerIDs),
			"teamIds":             dropdown.WithSelection(s.options(ctx, form.Owner, types.DropdownTeams, nil), d.TeamIDs),
		},
	}
}

func (s *projectService) loadForm(ctx context.Context, userID, formID string) (*forms.ProjectForm, error) {
	form := &forms.ProjectForm{}
	if err := s.load(ctx, userID, formID, forms.KindProject, form); err != nil {
		return nil, err
	}
	return form, nil
}

// mutate applies fn to a loaded form and saves it.
func (s *projectService) mutate(ctx context.Context, userID, formID string, fn func(*forms.ProjectForm) error) (*forms.ProjectForm, error) {
	form, err := s.loadForm(ctx, userID, formID)
	if err != nil {
		return nil, err
	}
	if err := fn(form); err != nil {
		if errors.Is(err, forms.ErrUnknownField) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}
	if err := s.save(ctx, formID, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *projectService) SetField(ctx context.Context, userID, formID, field string, value interface{}) (*forms.ProjectForm, error) {
	return s.mutate(ctx, userID, formID, func(f *forms.ProjectForm) error {
		return f.SetField(field, value)
	})
}

func (s *projectService) Toggle(ctx context.Context, userID, formID, field, id string) (*forms.ProjectForm, error) {
	return s.mutate(ctx, userID, formID, func(f *forms.ProjectForm) error {
		return f.Toggle(field, id)
	})
}

func (s *projectService) SetPanel(ctx context.Context, userID, formID, field string) (*forms.ProjectForm, error) {
	return s.mutate(ctx, userID, formID, func(f *forms.ProjectForm) error {
		if field == "" {
			f.ClosePanels()
			return nil
		}
		return f.SetOpenPanel(field)
	})
}

func (s *projectService) AttachFile(ctx context.Context, userID, formID string, file forms.Attachment) (*forms.ProjectForm, error) {
	return s.mutate(ctx, userID, formID, func(f *forms.ProjectForm) error {
		f.Attach(file)
		return nil
	})
}

func (s *projectService) Close(ctx context.Context, userID, formID string) error {
	if _, err := s.loadForm(ctx, userID, formID); err != nil {
		return err
	}
	return s.forms.Delete(ctx, formID)
}

// Submit validates, sends and on success reloads the list before the form is
// reset and closed. A failed call keeps the form open and populated.
func (s *projectService) Submit(ctx context.Context, userID, formID string) (*ActionResult, error) {
	release, err := s.forms.Acquire(ctx, formID)
	if err != nil {
		return nil, err
	}
	defer release()

	form, err := s.loadForm(ctx, userID, formID)
	if err != nil {
		return nil, err
	}

	if errs := validation.Project(form.Draft); len(errs) > 0 {
		form.Errors = errs
		if err := s.save(ctx, formID, form); err != nil {
			return nil, err
		}
		return &ActionResult{Errors: errs, Form: form}, nil
	}

	creating := form.Mode == types.ModeCreate
	resp, err := s.send(ctx, form)
	if errors.Is(err, ErrInvalidInput) {
		form.Errors = map[string]string{"_": "One of the selected options is invalid"}
		_ = s.save(ctx, formID, form)
		return &ActionResult{Errors: form.Errors, Form: form}, nil
	}
	if err != nil {
		fallback := "Failed to update project"
		if creating {
			fallback = "Failed to create project"
		}
		return &ActionResult{Form: form, Notification: s.failure(userID, "Projects", err, fallback)}, nil
	}

	list := s.List(ctx, userID)
	s.notify.Reloaded(userID, notification.ListProjects, "")

	form.Reset()
	s.discard(ctx, formID)

	activity, message, entityID := types.ActivityProjectUpdated, "Project updated successfully", form.ProjectID
	if creating {
		activity, message = types.ActivityProjectCreated, "Project created successfully"
		entityID = createdID(resp)
	}
	note := s.notify.Success(userID, message)
	s.record(ctx, activity, types.EntityProject, entityID, userID, nil)

	return &ActionResult{OK: true, Notification: note, List: list.Projects}, nil
}

func (s *projectService) send(ctx context.Context, form *forms.ProjectForm) (*backend.Response, error) {
	d := form.Draft
	managerID, err := parseID(d.ProjectManagerID)
	if err != nil {
		return nil, err
	}
	assistants, err := parseIDs(d.AssistantManagerIDs)
	if err != nil {
		return nil, err
	}
	qas, err := parseIDs(d.QAManagerIDs)
	if err != nil {
		return nil, err
	}
	teams, err := parseIDs(d.TeamIDs)
	if err != nil {
		return nil, err
	}

	if form.Mode == types.ModeCreate {
		req := &backend.CreateProjectRequest{
			ProjectName:          d.Name,
			ProjectCode:          d.Code,
			ProjectDescription:   d.Description,
			ProjectManagerID:     managerID,
			AsstProjectManagerID: assistants,
			ProjectQAID:          qas,
			ProjectTeamID:        teams,
		}
		if len(form.Files) > 0 {
			req.File = encodeFile(form.Files[0])
		}
		return s.backend.CreateProject(ctx, req)
	}

	projectID, err := parseID(form.ProjectID)
	if err != nil {
		return nil, err
	}
	req := &backend.UpdateProjectRequest{
		ProjectID:            projectID,
		ProjectName:          d.Name,
		ProjectCode:          d.Code,
		ProjectDescription:   d.Description,
		ProjectManagerID:     managerID,
		AsstProjectManagerID: assistants,
		ProjectQAID:          qas,
		ProjectTeamID:        teams,
	}
	for _, f := range form.Files {
		req.Files = append(req.Files, encodeFile(f))
	}
	return s.backend.UpdateProject(ctx, req)
}

// createdID picks the new entity's id out of a create response, if present.
func createdID(resp *backend.Response) string {
	if resp == nil {
		return ""
	}
	v, err := resp.Value()
	if err != nil {
		return ""
	}
	switch x := v.(type) {
	case map[string]interface{}:
		for _, k := range []string{"project_id", "task_id", "user_id", "id", "insertId"} {
			if id := dropdown.Stringify(x[k]); id != "" {
				return id
			}
		}
	case string, float64:
		return dropdown.Stringify(x)
	}
	return ""
}

// ============================================
// Delete
// ============================================

func (s *projectService) RequestDelete(ctx context.Context, userID, projectID, projectName string) (*forms.DeleteConfirmation, error) {
	if _, err := parseID(projectID); err != nil {
		return nil, err
	}
	c := forms.NewDeleteConfirmation(userID, projectID, projectName)
	if err := s.save(ctx, c.ID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *projectService) loadConfirmation(ctx context.Context, userID, confirmID string) (*forms.DeleteConfirmation, error) {
	c := &forms.DeleteConfirmation{}
	if err := s.load(ctx, userID, confirmID, forms.KindProjectDelete, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ConfirmDelete deletes the project. On success the list is reloaded before
// the confirmation closes; on failure the confirmation stays open.
func (s *projectService) ConfirmDelete(ctx context.Context, userID, confirmID string) (*ActionResult, error) {
	release, err := s.forms.Acquire(ctx, confirmID)
	if err != nil {
		return nil, err
	}
	defer release()

	c, err := s.loadConfirmation(ctx, userID, confirmID)
	if err != nil {
		return nil, err
	}
	projectID, err := parseID(c.ProjectID)
	if err != nil {
		return nil, err
	}

	if _, err := s.backend.DeleteProject(ctx, projectID); err != nil {
		return &ActionResult{Form: c, Notification: s.failure(userID, "Projects", err, "Failed to delete project")}, nil
	}

	list := s.List(ctx, userID)
	s.notify.Reloaded(userID, notification.ListProjects, "")

	c.Open = false
	s.discard(ctx, confirmID)

	note := s.notify.Success(userID, "Project deleted successfully")
	s.record(ctx, types.ActivityProjectDeleted, types.EntityProject, c.ProjectID, userID,
		map[string]interface{}{"name": c.ProjectName})

	return &ActionResult{OK: true, Notification: note, List: list.Projects}, nil
}

func (s *projectService) CancelDelete(ctx context.Context, userID, confirmID string) error {
	if _, err := s.loadConfirmation(ctx, userID, confirmID); err != nil {
		return err
	}
	return s.forms.Delete(ctx, confirmID)
}
