// Package validation checks drafts before anything is sent to the backend.
// Checks are presence and format only.
package validation

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Marga-Ghale/bpo-console/internal/forms"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s.]+(\.[^@\s.]+)+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	return v
}

// messages maps "<field>.<tag>" to what the form shows under the field.
var messages = map[string]string{
	"name.notblank":             "Name is required",
	"code.notblank":             "Project code is required",
	"code.alphanum":             "Project code must contain only letters and numbers",
	"projectManagerId.notblank": "Project manager is required",
	"assistantManagerIds.min":   "Select at least one assistant manager",
	"qaManagerIds.min":          "Select at least one QA",
	"teamIds.min":               "Select at least one team",
	"email.notblank":            "Email is required",
	"email.looseemail":          "Enter a valid email address",
	"password.notblank":         "Password is required",
	"password.min":              "Password must be at least 6 characters",
	"role.notblank":             "Role is required",
}

func fieldErrors(s interface{}) map[string]string {
	out := map[string]string{}
	err := validate.Struct(s)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		out[fe.Field()] = msg
	}
	return out
}

// Project validates a project draft. Create and update share the same rules.
// An empty map means the draft may be submitted.
func Project(d forms.ProjectDraft) map[string]string {
	return fieldErrors(d)
}

// Task validates a task draft. Task forms report one message as a toast, so
// only the first violation is returned. On success the parsed target is
// returned.
func Task(d forms.TaskDraft) (string, float64, bool) {
	if strings.TrimSpace(d.Name) == "" {
		return "Task name is required", 0, false
	}
	target, err := decimal.NewFromString(strings.TrimSpace(d.Target))
	if err != nil || !target.IsPositive() {
		return "Target must be a positive number", 0, false
	}
	f, _ := target.Float64()
	if math.IsInf(f, 0) {
		return "Target must be a positive number", 0, false
	}
	if len(d.TeamIDs) == 0 {
		return "Assign at least one agent", 0, false
	}
	return "", f, true
}

// UserCreate validates a new user.
func UserCreate(d forms.UserDraft) map[string]string {
	return fieldErrors(d)
}

// UserChanges returns the fields of draft whose trimmed value differs from
// the snapshot, in form order. Values are compared as the form holds them,
// so "0", "false" and "" stay distinct. The password is included only when
// it is non-blank.
func UserChanges(snapshot, draft forms.UserDraft) []string {
	var changed []string
	for _, f := range forms.UserFields {
		next := strings.TrimSpace(draft.Get(f))
		if f == "password" {
			if next != "" {
				changed = append(changed, f)
			}
			continue
		}
		if next != strings.TrimSpace(snapshot.Get(f)) {
			changed = append(changed, f)
		}
	}
	return changed
}
