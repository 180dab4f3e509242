package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/Marga-Ghale/bpo-console/internal/backend"
	"github.com/Marga-Ghale/bpo-console/internal/config"
	"github.com/Marga-Ghale/bpo-console/internal/dropdown"
	"github.com/Marga-Ghale/bpo-console/internal/forms"
	"github.com/Marga-Ghale/bpo-console/internal/models"
	"github.com/Marga-Ghale/bpo-console/internal/notification"
	"github.com/Marga-Ghale/bpo-console/internal/repository"
	"github.com/Marga-Ghale/bpo-console/internal/types"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrBusy         = forms.ErrBusy
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth      AuthService
	Project   ProjectService
	Task      TaskService
	User      UserService
	Report    ReportService
	Activity  ActivityService
	Dropdowns *dropdown.Provider
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config    *config.Config
	Backend   *backend.Client
	Forms     forms.Store
	Dropdowns *dropdown.Provider
	Repos     *repository.Repositories
	NotifSvc  *notification.Service
}

func NewServices(deps *ServiceDeps) *Services {
	activity := NewActivityService(deps.Repos.ActivityRepo)
	shared := &base{
		backend:   deps.Backend,
		forms:     deps.Forms,
		dropdowns: deps.Dropdowns,
		notify:    deps.NotifSvc,
		activity:  activity,
	}

	return &Services{
		Auth:      NewAuthService(deps.Config),
		Project:   NewProjectService(shared),
		Task:      NewTaskService(shared),
		User:      NewUserService(shared),
		Report:    NewReportService(deps.Backend, deps.NotifSvc),
		Activity:  activity,
		Dropdowns: deps.Dropdowns,
	}
}

// ActionResult is what a submit, delete or toggle returns to the dashboard.
// On success List carries the reloaded list; on failure Form carries the
// still-open form so nothing the user typed is lost.
type ActionResult struct {
	OK           bool                 `json:"ok"`
	Notification *models.Notification `json:"notification,omitempty"`
	Errors       map[string]string    `json:"errors,omitempty"`
	Form         interface{}          `json:"form,omitempty"`
	List         interface{}          `json:"list,omitempty"`
}

// ============================================
// Shared plumbing
// ============================================

// base carries the collaborators every orchestrator needs.
type base struct {
	backend   *backend.Client
	forms     forms.Store
	dropdowns *dropdown.Provider
	notify    *notification.Service
	activity  ActivityService
}

// load reads a form session and checks that userID owns it and that it is
// of the expected kind.
func (b *base) load(ctx context.Context, userID, formID, kind string, dest interface{ FormHeader() *forms.Header }) error {
	if err := b.forms.Load(ctx, formID, dest); err != nil {
		if errors.Is(err, forms.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load form: %w", err)
	}
	h := dest.FormHeader()
	if h.Owner != userID || h.Kind != kind {
		return ErrNotFound
	}
	h.Submitting = b.forms.Submitting(ctx, formID)
	return nil
}

func (b *base) save(ctx context.Context, id string, form interface{}) error {
	if err := b.forms.Save(ctx, id, form); err != nil {
		return fmt.Errorf("failed to save form: %w", err)
	}
	return nil
}

// discard ends a form session. The form is already reset, so a failure here
// only leaves an orphan that expires with its TTL.
func (b *base) discard(ctx context.Context, id string) {
	if err := b.forms.Delete(ctx, id); err != nil {
		log.Printf("⚠️ [Forms] failed to discard %s: %v", id, err)
	}
}

// options fetches a dropdown list. A failure yields an empty list and a log
// line; the form still opens.
func (b *base) options(ctx context.Context, userID string, kind types.DropdownKind, projectID *int64) []dropdown.Option {
	opts, err := b.dropdowns.Options(ctx, userID, kind, projectID)
	if err != nil {
		log.Printf("⚠️ [Dropdown] %s for user=%s: %v", kind, userID, err)
		return []dropdown.Option{}
	}
	return opts
}

func (b *base) record(ctx context.Context, activityType, entityType, entityID, userID string, changes map[string]interface{}) {
	if err := b.activity.LogActivity(ctx, activityType, entityType, entityID, userID, changes); err != nil {
		log.Printf("⚠️ [Activity] failed to record %s %s: %v", activityType, entityID, err)
	}
}

// failure turns a backend error into the error notification of an action.
func (b *base) failure(userID, action string, err error, fallback string) *models.Notification {
	log.Printf("❌ [%s] user=%s: %v", action, userID, err)
	return b.notify.Error(userID, backend.MessageOf(err, fallback))
}

// ============================================
// Value mapping
// ============================================

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", ErrInvalidInput, s)
	}
	return id, nil
}

func parseIDs(ids []string) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	for _, s := range ids {
		id, err := parseID(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func encodeFile(a forms.Attachment) string {
	return base64.StdEncoding.EncodeToString(a.Data)
}
