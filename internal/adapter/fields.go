// Package adapter turns loosely-shaped backend records into the canonical
// models. All alias and fallback handling for backend field names lives here.
package adapter

import (
	"strings"

	"github.com/Marga-Ghale/bpo-console/internal/dropdown"
	"github.com/shopspring/decimal"
)

// str returns the first non-empty scalar among keys.
func str(rec map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok {
			continue
		}
		if _, isMap := v.(map[string]interface{}); isMap {
			continue
		}
		if _, isList := v.([]interface{}); isList {
			continue
		}
		if s := dropdown.Stringify(v); s != "" {
			return s
		}
	}
	return ""
}

// ids returns the id list of the first key that yields a non-empty list.
// Values may be id arrays, object arrays, single-element arrays, a single
// scalar or a comma-separated string.
func ids(rec map[string]interface{}, keys ...string) []string {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok || v == nil {
			continue
		}
		if out := idList(v); len(out) > 0 {
			return out
		}
	}
	return []string{}
}

func idList(v interface{}) []string {
	if s, ok := v.(string); ok {
		var out []string
		seen := make(map[string]bool)
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part != "" && !seen[part] {
				seen[part] = true
				out = append(out, part)
			}
		}
		return out
	}
	opts := dropdown.Normalize(v)
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.ID)
	}
	return out
}

// object returns the first key holding an object (or a one-element list of one).
func object(rec map[string]interface{}, keys ...string) (map[string]interface{}, bool) {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case map[string]interface{}:
			return v, true
		case []interface{}:
			if len(v) == 1 {
				if m, ok := v[0].(map[string]interface{}); ok {
					return m, true
				}
			}
		}
	}
	return nil, false
}

func number(rec map[string]interface{}, keys ...string) decimal.Decimal {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case float64:
			return decimal.NewFromFloat(v)
		case string:
			if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}
