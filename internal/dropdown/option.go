// internal/dropdown/option.go
package dropdown

import (
	"fmt"
	"strconv"
	"strings"
)

// Option is the one shape every selection control consumes. IDs are always
// strings so they compare equal to the ids held in form state.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var (
	idKeys    = []string{"user_id", "team_id", "id", "value"}
	labelKeys = []string{"label", "name", "user_name", "team_name"}
)

// Normalize flattens any observed backend option shape into []Option.
// Accepted: arrays of objects, arrays of single-element arrays, arrays of
// scalars, and already-normalized lists. Entries without an id are dropped;
// the first occurrence of a duplicate id wins.
func Normalize(raw interface{}) []Option {
	out := []Option{}
	seen := make(map[string]bool)

	var visit func(v interface{})
	visit = func(v interface{}) {
		switch item := v.(type) {
		case []Option:
			for _, o := range item {
				add(&out, seen, o)
			}
		case Option:
			add(&out, seen, item)
		case []interface{}:
			if len(item) == 1 {
				if _, nested := item[0].([]interface{}); !nested {
					visit(item[0])
					return
				}
			}
			for _, el := range item {
				visit(el)
			}
		case []map[string]interface{}:
			for _, el := range item {
				visit(el)
			}
		case map[string]interface{}:
			id := firstString(item, idKeys)
			label := firstString(item, labelKeys)
			if label == "" {
				label = id
			}
			add(&out, seen, Option{ID: id, Label: label})
		default:
			if s := Stringify(item); s != "" {
				add(&out, seen, Option{ID: s, Label: s})
			}
		}
	}

	visit(raw)
	return out
}

func add(out *[]Option, seen map[string]bool, o Option) {
	if o.ID == "" || seen[o.ID] {
		return
	}
	seen[o.ID] = true
	*out = append(*out, o)
}

func firstString(m map[string]interface{}, keys []string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s := Stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// Stringify renders a scalar the way ids are compared: integral floats lose
// their fraction ("7", not "7.0"); nil becomes "".
func Stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// UnknownLabel is the placeholder label for a selected id missing from the
// fetched list.
func UnknownLabel(id string) string {
	return fmt.Sprintf("Unknown (%s)", id)
}

// WithSelection returns options followed by a placeholder for every selected
// id that the list does not contain, so a selection never disappears.
func WithSelection(options []Option, selected []string) []Option {
	out := make([]Option, 0, len(options)+len(selected))
	known := make(map[string]bool, len(options))
	for _, o := range options {
		out = append(out, o)
		known[o.ID] = true
	}
	for _, id := range selected {
		if id == "" || known[id] {
			continue
		}
		known[id] = true
		out = append(out, Option{ID: id, Label: UnknownLabel(id)})
	}
	return out
}

// LabelFor returns the label of id, or the Unknown placeholder.
func LabelFor(options []Option, id string) string {
	for _, o := range options {
		if o.ID == id {
			return o.Label
		}
	}
	return UnknownLabel(id)
}

// FindByLabel does a case-insensitive label lookup and returns the id.
func FindByLabel(options []Option, label string) (string, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", false
	}
	for _, o := range options {
		if strings.EqualFold(o.Label, label) {
			return o.ID, true
		}
	}
	return "", false
}
