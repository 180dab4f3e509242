package forms

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestProjectForm_SetFieldClearsError(t *testing.T) {
	f := NewProjectForm("u1", "create", "")
	f.Errors["name"] = "Project name is required"

	if err := f.SetField("name", "Apollo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Draft.Name != "Apollo" {
		t.Fatalf("name not set: %+v", f.Draft)
	}
	if _, ok := f.Errors["name"]; ok {
		t.Fatal("error for edited field should be cleared")
	}
}

func TestProjectForm_SetFieldNumericAndLists(t *testing.T) {
	f := NewProjectForm("u1", "create", "")
	if err := f.SetField("projectManagerId", float64(7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Draft.ProjectManagerID != "7" {
		t.Fatalf("expected stringified id, got %q", f.Draft.ProjectManagerID)
	}
	if err := f.SetField("teamIds", []interface{}{float64(11), "12"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(f.Draft.TeamIDs, []string{"11", "12"}) {
		t.Fatalf("teams: %v", f.Draft.TeamIDs)
	}
}

func TestProjectForm_UnknownField(t *testing.T) {
	f := NewProjectForm("u1", "create", "")
	if err := f.SetField("budget", "1"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := f.Toggle("name", "1"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("toggle on a text field must fail, got %v", err)
	}
}

func TestProjectForm_ToggleMembership(t *testing.T) {
	f := NewProjectForm("u1", "create", "")
	_ = f.Toggle("qaManagerIds", "9")
	_ = f.Toggle("qaManagerIds", "10")
	_ = f.Toggle("qaManagerIds", "9")

	if !reflect.DeepEqual(f.Draft.QAManagerIDs, []string{"10"}) {
		t.Fatalf("toggle result: %v", f.Draft.QAManagerIDs)
	}
}

func TestProjectForm_PanelStateMachine(t *testing.T) {
	f := NewProjectForm("u1", "create", "")

	if err := f.SetOpenPanel("assistantManagerIds"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := f.SetOpenPanel("teamIds"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if f.OpenPanel != "teamIds" {
		t.Fatalf("opening one panel must close the other, open=%q", f.OpenPanel)
	}

	_ = f.Toggle("teamIds", "11")
	f.ClosePanels()
	if f.OpenPanel != "" {
		t.Fatal("outside click must close the panel")
	}
	if !reflect.DeepEqual(f.Draft.TeamIDs, []string{"11"}) {
		t.Fatal("closing must not change the selection")
	}

	if err := f.SetOpenPanel("name"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("only multi-select fields have panels, got %v", err)
	}
}

func TestProjectForm_Reset(t *testing.T) {
	f := NewProjectForm("u1", "create", "")
	_ = f.SetField("name", "Apollo")
	_ = f.Toggle("teamIds", "11")
	f.Attach(Attachment{Name: "sow.pdf", Data: []byte("x")})
	f.Errors["code"] = "bad"
	_ = f.SetOpenPanel("teamIds")

	f.Reset()
	if !reflect.DeepEqual(f.Draft, NewProjectDraft()) || len(f.Files) != 0 || len(f.Errors) != 0 || f.OpenPanel != "" {
		t.Fatalf("reset left state behind: %+v", f)
	}
}

func TestUserForm_LoadDropsPassword(t *testing.T) {
	f := NewUserForm("u1", "edit", "14")
	f.Load(UserDraft{Name: "Asha", Email: "a@x.com", Password: "secret"})
	if f.Draft.Password != "" || f.Snapshot.Password != "" {
		t.Fatal("password must never be hydrated")
	}
	if f.Snapshot.Email != "a@x.com" {
		t.Fatalf("snapshot: %+v", f.Snapshot)
	}
	if err := f.SetField("email", "b@x.com"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if f.Snapshot.Email != "a@x.com" {
		t.Fatal("editing the draft must not touch the snapshot")
	}
}

func TestMemoryStore_RoundTripAndExpiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Now()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	f := NewProjectForm("u1", "create", "")
	_ = f.SetField("name", "Apollo")
	if err := s.Save(ctx, f.ID, f); err != nil {
		t.Fatalf("save: %v", err)
	}

	var loaded ProjectForm
	if err := s.Load(ctx, f.ID, &loaded); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Draft.Name != "Apollo" || loaded.Kind != KindProject {
		t.Fatalf("loaded: %+v", loaded)
	}

	loaded.Draft.Name = "changed"
	var again ProjectForm
	_ = s.Load(ctx, f.ID, &again)
	if again.Draft.Name != "Apollo" {
		t.Fatal("loaded forms must not alias the stored one")
	}

	now = now.Add(2 * time.Minute)
	if err := s.Load(ctx, f.ID, &again); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
	if n := s.Purge(); n != 1 {
		t.Fatalf("expected 1 purged form, got %d", n)
	}
}

func TestMemoryStore_AcquireGuardsDuplicateSubmit(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	release, err := s.Acquire(ctx, "f1")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if !s.Submitting(ctx, "f1") {
		t.Fatal("form should report submitting")
	}
	if _, err := s.Acquire(ctx, "f1"); !errors.Is(err, ErrBusy) {
		t.Fatalf("second acquire must fail with ErrBusy, got %v", err)
	}
	release()
	if s.Submitting(ctx, "f1") {
		t.Fatal("release must clear submitting")
	}
	if _, err := s.Acquire(ctx, "f1"); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}
