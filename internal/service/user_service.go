package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

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
// User Service
// ============================================

// userBackendFields maps form fields to the backend's user keys.
var userBackendFields = map[string]string{
	"name":             "user_name",
	"email":            "user_email",
	"phone":            "user_number",
	"password":         "user_password",
	"role":             "role_id",
	"designation":      "designation_id",
	"projectManager":   "project_manager",
	"assistantManager": "asst_manager",
	"qualityAnalyst":   "qa",
	"team":             "team_id",
	"tenure":           "user_tenure",
	"address":          "user_address",
	"profile_picture":  "profile_picture",
}

// Reference fields are sent as numbers when they parse as one.
var userReferenceFields = map[string]types.DropdownKind{
	"role":             types.DropdownRoles,
	"designation":      types.DropdownDesignations,
	"projectManager":   types.DropdownProjectManagers,
	"assistantManager": types.DropdownAssistantManagers,
	"qualityAnalyst":   types.DropdownQAs,
	"team":             types.DropdownTeams,
}

type UserFormView struct {
	Form         *forms.UserForm              `json:"form"`
	Options      map[string][]dropdown.Option `json:"options"`
	Notification *models.Notification         `json:"notification,omitempty"`
}

type UserList struct {
	Users        []models.User        `json:"users"`
	Notification *models.Notification `json:"notification,omitempty"`
}

type UserService interface {
	List(ctx context.Context, userID string) *UserList
	OpenCreate(ctx context.Context, userID string) (*UserFormView, error)
	OpenEdit(ctx context.Context, userID, targetID string, hint *models.User) (*UserFormView, error)
	View(ctx context.Context, userID, formID string) (*UserFormView, error)
	SetField(ctx context.Context, userID, formID, field string, value interface{}) (*forms.UserForm, error)
	Close(ctx context.Context, userID, formID string) error
	Submit(ctx context.Context, userID, formID string) (*ActionResult, error)
	TogglePermission(ctx context.Context, userID, targetID, permission string, enabled bool) (*ActionResult, error)
}

type userService struct {
	*base
}

func NewUserService(b *base) UserService {
	return &userService{base: b}
}

func (s *userService) List(ctx context.Context, userID string) *UserList {
	records, err := s.backend.ListUsers(ctx)
	if err != nil {
		return &UserList{Users: []models.User{}, Notification: s.failure(userID, "Users", err, "Failed to load users")}
	}
	return &UserList{Users: adapter.UsersFromRecords(records)}
}

func (s *userService) OpenCreate(ctx context.Context, userID string) (*UserFormView, error) {
	form := forms.NewUserForm(userID, types.ModeCreate, "")
	if err := s.save(ctx, form.ID, form); err != nil {
		return nil, err
	}
	return s.view(ctx, form), nil
}

// OpenEdit loads the user from the detail endpoint, falling back to the hint
// passed by the table row when the fetch fails.
func (s *userService) OpenEdit(ctx context.Context, userID, targetID string, hint *models.User) (*UserFormView, error) {
	id, err := parseID(targetID)
	if err != nil {
		return nil, err
	}

	form := forms.NewUserForm(userID, types.ModeEdit, targetID)
	var note *models.Notification

	record, err := s.backend.UserDetail(ctx, id)
	switch {
	case err == nil:
		form.Load(draftFromUser(adapter.UserFromRecord(record)))
	case hint != nil:
		log.Printf("⚠️ [Users] detail %s failed, using table row: %v", targetID, err)
		form.Load(draftFromUser(*hint))
	default:
		note = s.failure(userID, "Users", err, "Failed to load user details")
	}

	if err := s.save(ctx, form.ID, form); err != nil {
		return nil, err
	}
	v := s.view(ctx, form)
	v.Notification = note
	return v, nil
}

func draftFromUser(u models.User) forms.UserDraft {
	return forms.UserDraft{
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		Role:             u.Role,
		Designation:      u.Designation,
		ProjectManager:   u.ProjectManager,
		AssistantManager: u.AssistantManager,
		QualityAnalyst:   u.QualityAnalyst,
		Team:             u.Team,
		Tenure:           u.Tenure,
		Address:          u.Address,
		ProfilePicture:   u.ProfilePicture,
	}
}

func (s *userService) View(ctx context.Context, userID, formID string) (*UserFormView, error) {
	form, err := s.loadForm(ctx, userID, formID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, form), nil
}

func (s *userService) view(ctx context.Context, form *forms.UserForm) *UserFormView {
	options := make(map[string][]dropdown.Option, len(userReferenceFields))
	for field, kind := range userReferenceFields {
		var selected []string
		if v := form.Draft.Get(field); v != "" {
			selected = []string{v}
		}
		options[field] = dropdown.WithSelection(s.options(ctx, form.Owner, kind, nil), selected)
	}
	return &UserFormView{Form: form, Options: options}
}

func (s *userService) loadForm(ctx context.Context, userID, formID string) (*forms.UserForm, error) {
	form := &forms.UserForm{}
	if err := s.load(ctx, userID, formID, forms.KindUser, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *userService) SetField(ctx context.Context, userID, formID, field string, value interface{}) (*forms.UserForm, error) {
	form, err := s.loadForm(ctx, userID, formID)
	if err != nil {
		return nil, err
	}
	if err := form.SetField(field, value); err != nil {
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

func (s *userService) Close(ctx context.Context, userID, formID string) error {
	if _, err := s.loadForm(ctx, userID, formID); err != nil {
		return err
	}
	return s.forms.Delete(ctx, formID)
}

// Submit creates the user, or on edit sends only the fields that differ from
// the loaded snapshot.
func (s *userService) Submit(ctx context.Context, userID, formID string) (*ActionResult, error) {
	release, err := s.forms.Acquire(ctx, formID)
	if err != nil {
		return nil, err
	}
	defer release()

	form, err := s.loadForm(ctx, userID, formID)
	if err != nil {
		return nil, err
	}

	creating := form.Mode == types.ModeCreate
	var fields []string
	var errs map[string]string
	if creating {
		errs = validation.UserCreate(form.Draft)
		fields = forms.UserFields
	} else {
		fields = validation.UserChanges(form.Snapshot, form.Draft)
		errs = changedFieldErrors(form.Draft, fields)
	}
	if len(errs) > 0 {
		form.Errors = errs
		if err := s.save(ctx, formID, form); err != nil {
			return nil, err
		}
		return &ActionResult{Errors: errs, Form: form}, nil
	}
	if !creating && len(fields) == 0 {
		return &ActionResult{Form: form, Notification: s.notify.Info(userID, "No changes to save")}, nil
	}

	payload := userPayload(form.Draft, fields, !creating)
	var resp *backend.Response
	if creating {
		resp, err = s.backend.CreateUser(ctx, payload)
	} else {
		var id int64
		if id, err = parseID(form.UserID); err != nil {
			return nil, err
		}
		payload["user_id"] = id
		resp, err = s.backend.UpdateUser(ctx, payload)
	}
	if err != nil {
		fallback := "Failed to update user"
		if creating {
			fallback = "Failed to create user"
		}
		return &ActionResult{Form: form, Notification: s.failure(userID, "Users", err, fallback)}, nil
	}

	list := s.List(ctx, userID)
	s.notify.Reloaded(userID, notification.ListUsers, "")

	targetID := form.UserID
	form.Reset()
	s.discard(ctx, formID)

	activity, message := types.ActivityUserUpdated, "User updated successfully"
	if creating {
		activity, message, targetID = types.ActivityUserCreated, "User created successfully", createdID(resp)
	}
	note := s.notify.Success(userID, message)
	s.record(ctx, activity, types.EntityUser, targetID, userID, map[string]interface{}{"fields": publicFields(fields)})

	return &ActionResult{OK: true, Notification: note, List: list.Users}, nil
}

// changedFieldErrors applies the create rules to the fields an edit changes.
// Fields left alone are not re-validated.
func changedFieldErrors(d forms.UserDraft, changed []string) map[string]string {
	all := validation.UserCreate(d)
	errs := map[string]string{}
	for _, f := range changed {
		if msg, ok := all[f]; ok {
			errs[f] = msg
		}
	}
	return errs
}

// userPayload maps fields of d to backend keys. On create blank optional
// fields are left out; on edit a cleared field is sent empty.
func userPayload(d forms.UserDraft, fields []string, edit bool) map[string]interface{} {
	payload := make(map[string]interface{}, len(fields)+1)
	for _, f := range fields {
		v := strings.TrimSpace(d.Get(f))
		if f == "password" {
			v = d.Get(f)
			if strings.TrimSpace(v) == "" {
				continue
			}
		}
		if v == "" && !edit {
			continue
		}
		key := userBackendFields[f]
		if _, ref := userReferenceFields[f]; ref {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				payload[key] = n
				continue
			}
		}
		payload[key] = v
	}
	return payload
}

func publicFields(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "password" {
			out = append(out, f)
		}
	}
	return out
}

// TogglePermission flips one permission switch in the users table.
func (s *userService) TogglePermission(ctx context.Context, userID, targetID, permission string, enabled bool) (*ActionResult, error) {
	if !types.IsValidPermission(permission) {
		return nil, fmt.Errorf("%w: permission %q", ErrInvalidInput, permission)
	}
	id, err := parseID(targetID)
	if err != nil {
		return nil, err
	}

	if _, err := s.backend.UpdatePermission(ctx, &backend.PermissionRequest{
		UserID:     id,
		Permission: permission,
		Enabled:    enabled,
	}); err != nil {
		return &ActionResult{Notification: s.failure(userID, "Users", err, "Failed to update permission")}, nil
	}

	list := s.List(ctx, userID)
	s.notify.Reloaded(userID, notification.ListUsers, "")
	note := s.notify.Success(userID, "Permission updated")
	s.record(ctx, types.ActivityPermissionChanged, types.EntityUser, targetID, userID,
		map[string]interface{}{"permission": permission, "enabled": enabled})

	return &ActionResult{OK: true, Notification: note, List: list.Users}, nil
}
