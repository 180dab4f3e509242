package validation

import (
	"reflect"
	"testing"

	"github.com/Marga-Ghale/bpo-console/internal/forms"
)

func validProject() forms.ProjectDraft {
	return forms.ProjectDraft{
		Name:                "Apollo",
		Code:                "APL1",
		ProjectManagerID:    "7",
		AssistantManagerIDs: []string{"3"},
		QAManagerIDs:        []string{"9"},
		TeamIDs:             []string{"11", "12"},
	}
}

func TestProject_Valid(t *testing.T) {
	if errs := Project(validProject()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestProject_MissingRequired(t *testing.T) {
	cases := map[string]func(d *forms.ProjectDraft){
		"name":                func(d *forms.ProjectDraft) { d.Name = "   " },
		"projectManagerId":    func(d *forms.ProjectDraft) { d.ProjectManagerID = "" },
		"assistantManagerIds": func(d *forms.ProjectDraft) { d.AssistantManagerIDs = []string{} },
		"qaManagerIds":        func(d *forms.ProjectDraft) { d.QAManagerIDs = nil },
		"teamIds":             func(d *forms.ProjectDraft) { d.TeamIDs = []string{} },
		"code":                func(d *forms.ProjectDraft) { d.Code = "" },
	}
	for field, mutate := range cases {
		d := validProject()
		mutate(&d)
		errs := Project(d)
		if _, ok := errs[field]; !ok || len(errs) != 1 {
			t.Errorf("%s: expected a single error for the field, got %v", field, errs)
		}
	}
}

func TestProject_CodeFormat(t *testing.T) {
	for _, code := range []string{"APL-1", "apl 1", "APL_1", "APL1!", "ÄPL"} {
		d := validProject()
		d.Code = code
		errs := Project(d)
		if errs["code"] != messages["code.alphanum"] {
			t.Errorf("code %q: expected format error, got %v", code, errs)
		}
	}
}

func TestTask(t *testing.T) {
	base := forms.TaskDraft{Name: "Calls", Target: "40", TeamIDs: []string{"5"}}

	if msg, target, ok := Task(base); !ok || target != 40 || msg != "" {
		t.Fatalf("valid task rejected: %q %v %v", msg, target, ok)
	}

	for _, target := range []string{"0", "-3", "abc", ""} {
		d := base
		d.Target = target
		if _, _, ok := Task(d); ok {
			t.Errorf("target %q must be rejected", target)
		}
	}

	d := base
	d.TeamIDs = nil
	if msg, _, ok := Task(d); ok || msg == "" {
		t.Fatal("a task without agents must be rejected with a message")
	}

	d = base
	d.Target = "1e400"
	if msg, _, ok := Task(d); ok || msg != "Target must be a positive number" {
		t.Fatalf("overflowing target must be rejected with the target message, got %q %v", msg, ok)
	}

	d = base
	d.Target = " 2.5 "
	if _, target, ok := Task(d); !ok || target != 2.5 {
		t.Fatalf("decimal target: %v %v", target, ok)
	}
}

func TestUserCreate(t *testing.T) {
	d := forms.UserDraft{Name: "Asha", Email: "a@x.com", Password: "secret1", Role: "2"}
	if errs := UserCreate(d); len(errs) != 0 {
		t.Fatalf("expected valid user, got %v", errs)
	}

	d.Email = "a@x"
	d.Password = "12345"
	d.Role = ""
	errs := UserCreate(d)
	want := map[string]string{
		"email":    messages["email.looseemail"],
		"password": messages["password.min"],
		"role":     messages["role.notblank"],
	}
	if !reflect.DeepEqual(errs, want) {
		t.Fatalf("got %v, want %v", errs, want)
	}
}

func TestUserChanges_OnlyEmail(t *testing.T) {
	snap := forms.UserDraft{Name: "Asha", Email: "a@x.com", Role: "2", Tenure: "0"}
	draft := snap
	draft.Email = "b@x.com"

	if got := UserChanges(snap, draft); !reflect.DeepEqual(got, []string{"email"}) {
		t.Fatalf("expected only email, got %v", got)
	}
}

func TestUserChanges_ZeroIsNotBlank(t *testing.T) {
	snap := forms.UserDraft{Tenure: "0", Designation: "false"}
	draft := forms.UserDraft{Tenure: "", Designation: ""}

	got := UserChanges(snap, draft)
	if !reflect.DeepEqual(got, []string{"designation", "tenure"}) {
		t.Fatalf("clearing 0 or false is a change, got %v", got)
	}
}

func TestUserChanges_Password(t *testing.T) {
	snap := forms.UserDraft{Name: "Asha"}
	draft := snap
	draft.Password = "   "
	if got := UserChanges(snap, draft); len(got) != 0 {
		t.Fatalf("blank password must not be sent, got %v", got)
	}
	draft.Password = "newpass"
	if got := UserChanges(snap, draft); !reflect.DeepEqual(got, []string{"password"}) {
		t.Fatalf("expected password, got %v", got)
	}
}
