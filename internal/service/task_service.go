package service

import (
	"context"
	"errors"
	"fmt"

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
// Task Service
// ============================================

type TaskFormView struct {
	Form    *forms.TaskForm   `json:"form"`
	Options []dropdown.Option `json:"options"`
}

type TaskList struct {
	Tasks        []models.Task        `json:"tasks"`
	Notification *models.Notification `json:"notification,omitempty"`
}

// TaskService manages the tasks of one project. Task forms have no field
// errors: a violation is reported as a single toast.
type TaskService interface {
	List(ctx context.Context, userID, projectID string) (*TaskList, error)
	OpenCreate(ctx context.Context, userID, projectID string) (*TaskFormView, error)
	OpenEdit(ctx context.Context, userID, projectID, taskID string) (*TaskFormView, error)
	View(ctx context.Context, userID, formID string) (*TaskFormView, error)
	SetField(ctx context.Context, userID, formID, field string, value interface{}) (*forms.TaskForm, error)
	Toggle(ctx context.Context, userID, formID, field, id string) (*forms.TaskForm, error)
	SetPanel(ctx context.Context, userID, formID, field string) (*forms.TaskForm, error)
	Close(ctx context.Context, userID, formID string) error
	Submit(ctx context.Context, userID, formID string) (*ActionResult, error)
	Delete(ctx context.Context, userID, projectID, taskID string) (*ActionResult, error)
}

type taskService struct {
	*base
}

func NewTaskService(b *base) TaskService {
	return &taskService{base: b}
}

func (s *taskService) List(ctx context.Context, userID, projectID string) (*TaskList, error) {
	pid, err := parseID(projectID)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, userID, pid, projectID), nil
}

func (s *taskService) list(ctx context.Context, userID string, pid int64, projectID string) *TaskList {
	records, err := s.backend.ListTasks(ctx, pid)
	if err != nil {
		return &TaskList{
			Tasks:        []models.Task{},
			Notification: s.failure(userID, "Tasks", err, "Failed to load tasks"),
		}
	}
	return &TaskList{Tasks: adapter.TasksFromRecords(records, projectID)}
}

func (s *taskService) OpenCreate(ctx context.Context, userID, projectID string) (*TaskFormView, error) {
	if _, err := parseID(projectID); err != nil {
		return nil, err
	}
	form := forms.NewTaskForm(userID, types.ModeCreate, projectID, "")
	if err := s.save(ctx, form.ID, form); err != nil {
		return nil, err
	}
	return s.view(ctx, form), nil
}

// OpenEdit hydrates the form from the project's task list.
func (s *taskService) OpenEdit(ctx context.Context, userID, projectID, taskID string) (*TaskFormView, error) {
	pid, err := parseID(projectID)
	if err != nil {
		return nil, err
	}
	records, err := s.backend.ListTasks(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	for _, t := range adapter.TasksFromRecords(records, projectID) {
		if t.ID != taskID {
			continue
		}
		form := forms.NewTaskForm(userID, types.ModeEdit, projectID, taskID)
		form.Draft = forms.TaskDraft{
			Name:        t.Name,
			Description: t.Description,
			Target:      dropdown.Stringify(t.Target),
			TeamIDs:     append([]string{}, t.TeamIDs...),
		}
		if err := s.save(ctx, form.ID, form); err != nil {
			return nil, err
		}
		return s.view(ctx, form), nil
	}
	return nil, ErrNotFound
}

func (s *taskService) View(ctx context.Context, userID, formID string) (*TaskFormView, error) {
	form, err := s.loadForm(ctx, userID, formID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, form), nil
}

func (s *taskService) view(ctx context.Context, form *forms.TaskForm) *TaskFormView {
	var scope *int64
	if pid, err := parseID(form.ProjectID); err == nil {
		scope = &pid
	}
	agents := s.options(ctx, form.Owner, types.DropdownAgents, scope)
	return &TaskFormView{Form: form, Options: dropdown.WithSelection(agents, form.Draft.TeamIDs)}
}

func (s *taskService) loadForm(ctx context.Context, userID, formID string) (*forms.TaskForm, error) {
	form := &forms.TaskForm{}
	if err := s.load(ctx, userID, formID, forms.KindTask, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *taskService) mutate(ctx context.Context, userID, formID string, fn func(*forms.TaskForm) error) (*forms.TaskForm, error) {
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

func (s *taskService) SetField(ctx context.Context, userID, formID, field string, value interface{}) (*forms.TaskForm, error) {
	return s.mutate(ctx, userID, formID, func(f *forms.TaskForm) error {
		return f.SetField(field, value)
	})
}

func (s *taskService) Toggle(ctx context.Context, userID, formID, field, id string) (*forms.TaskForm, error) {
	return s.mutate(ctx, userID, formID, func(f *forms.TaskForm) error {
		return f.Toggle(field, id)
	})
}

func (s *taskService) SetPanel(ctx context.Context, userID, formID, field string) (*forms.TaskForm, error) {
	return s.mutate(ctx, userID, formID, func(f *forms.TaskForm) error {
		if field == "" {
			f.ClosePanels()
			return nil
		}
		return f.SetOpenPanel(field)
	})
}

func (s *taskService) Close(ctx context.Context, userID, formID string) error {
	if _, err := s.loadForm(ctx, userID, formID); err != nil {
		return err
	}
	return s.forms.Delete(ctx, formID)
}

func (s *taskService) Submit(ctx context.Context, userID, formID string) (*ActionResult, error) {
	release, err := s.forms.Acquire(ctx, formID)
	if err != nil {
		return nil, err
	}
	defer release()

	form, err := s.loadForm(ctx, userID, formID)
	if err != nil {
		return nil, err
	}

	msg, target, ok := validation.Task(form.Draft)
	if !ok {
		return &ActionResult{Form: form, Notification: s.notify.Error(userID, msg)}, nil
	}

	pid, err := parseID(form.ProjectID)
	if err != nil {
		return nil, err
	}
	teams, err := parseIDs(form.Draft.TeamIDs)
	if err != nil {
		return &ActionResult{Form: form, Notification: s.notify.Error(userID, "One of the selected agents is invalid")}, nil
	}

	creating := form.Mode == types.ModeCreate
	var resp *backend.Response
	if creating {
		resp, err = s.backend.AddTask(ctx, &backend.AddTaskRequest{
			ProjectID:       pid,
			TaskName:        form.Draft.Name,
			TaskDescription: form.Draft.Description,
			TaskTarget:      target,
			TaskTeamID:      teams,
		})
	} else {
		var taskID int64
		if taskID, err = parseID(form.TaskID); err != nil {
			return nil, err
		}
		resp, err = s.backend.UpdateTask(ctx, &backend.UpdateTaskRequest{
			TaskID:          taskID,
			ProjectID:       pid,
			TaskName:        form.Draft.Name,
			TaskDescription: form.Draft.Description,
			TaskTarget:      target,
			TaskTeamID:      teams,
		})
	}
	if err != nil {
		fallback := "Failed to update task"
		if creating {
			fallback = "Failed to add task"
		}
		return &ActionResult{Form: form, Notification: s.failure(userID, "Tasks", err, fallback)}, nil
	}

	list := s.list(ctx, userID, pid, form.ProjectID)
	s.notify.Reloaded(userID, notification.ListTasks, form.ProjectID)

	form.Reset()
	s.discard(ctx, formID)

	activity, message, entityID := types.ActivityTaskUpdated, "Task updated successfully", form.TaskID
	if creating {
		activity, message, entityID = types.ActivityTaskCreated, "Task added successfully", createdID(resp)
	}
	note := s.notify.Success(userID, message)
	s.record(ctx, activity, types.EntityTask, entityID, userID, map[string]interface{}{"projectId": form.ProjectID})

	return &ActionResult{OK: true, Notification: note, List: list.Tasks}, nil
}

func (s *taskService) Delete(ctx context.Context, userID, projectID, taskID string) (*ActionResult, error) {
	pid, err := parseID(projectID)
	if err != nil {
		return nil, err
	}
	tid, err := parseID(taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.backend.DeleteTask(ctx, tid); err != nil {
		return &ActionResult{Notification: s.failure(userID, "Tasks", err, "Failed to delete task")}, nil
	}

	list := s.list(ctx, userID, pid, projectID)
	s.notify.Reloaded(userID, notification.ListTasks, projectID)
	note := s.notify.Success(userID, "Task deleted successfully")
	s.record(ctx, types.ActivityTaskDeleted, types.EntityTask, taskID, userID, map[string]interface{}{"projectId": projectID})

	return &ActionResult{OK: true, Notification: note, List: list.Tasks}, nil
}
