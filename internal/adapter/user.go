package adapter

import (
	"github.com/Marga-Ghale/bpo-console/internal/dropdown"
	"github.com/Marga-Ghale/bpo-console/internal/models"
)

// UserFromRecord resolves a user record from the list or detail endpoint.
// Association fields may arrive as ids or as {id, name} objects.
func UserFromRecord(rec map[string]interface{}) models.User {
	return models.User{
		ID:               str(rec, "user_id", "id"),
		Name:             str(rec, "user_name", "name"),
		Email:            str(rec, "user_email", "email"),
		Phone:            str(rec, "user_number", "phone", "user_phone"),
		Role:             ref(rec, "role_id", "role"),
		Designation:      ref(rec, "designation_id", "designation"),
		ProjectManager:   ref(rec, "project_manager", "project_manager_id", "projectManager"),
		AssistantManager: ref(rec, "asst_manager", "asst_manager_id", "assistant_manager", "assistantManager"),
		QualityAnalyst:   ref(rec, "qa", "qa_id", "quality_analyst", "qualityAnalyst"),
		Team:             ref(rec, "team_id", "team"),
		Tenure:           str(rec, "user_tenure", "tenure"),
		Address:          str(rec, "user_address", "address"),
		ProfilePicture:   str(rec, "profile_picture", "profilePicture"),
		Permissions:      permissions(rec["permissions"]),
	}
}

func UsersFromRecords(recs []map[string]interface{}) []models.User {
	out := make([]models.User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, UserFromRecord(rec))
	}
	return out
}

// ref reads a single-valued association: a scalar id, or an object whose id is taken.
func ref(rec map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if obj, ok := object(rec, k); ok {
			if opts := dropdown.Normalize(obj); len(opts) > 0 {
				return opts[0].ID
			}
			continue
		}
		if s := str(rec, k); s != "" {
			return s
		}
	}
	return ""
}

// permissions accepts {"reports": true} or ["reports", ...].
func permissions(v interface{}) map[string]bool {
	out := make(map[string]bool)
	switch p := v.(type) {
	case map[string]interface{}:
		for k, val := range p {
			switch b := val.(type) {
			case bool:
				out[k] = b
			case float64:
				out[k] = b != 0
			case string:
				out[k] = b == "1" || b == "true"
			}
		}
	case []interface{}:
		for _, item := range p {
			if s := dropdown.Stringify(item); s != "" {
				out[s] = true
			}
		}
	}
	return out
}
