package dropdown

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decode(t *testing.T, s string) interface{} {
	t.Helper()
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestNormalize_Shapes(t *testing.T) {
	want := []Option{{ID: "3", Label: "Asha"}, {ID: "9", Label: "Ravi"}}

	cases := map[string]string{
		"plain objects with user keys":  `[{"user_id":3,"user_name":"Asha"},{"user_id":9,"user_name":"Ravi"}]`,
		"single-element arrays":         `[[{"user_id":3,"user_name":"Asha"}],[{"user_id":9,"user_name":"Ravi"}]]`,
		"id and label keys":             `[{"id":"3","label":"Asha"},{"id":"9","label":"Ravi"}]`,
		"id and name keys":              `[{"id":3,"name":"Asha"},{"id":9,"name":"Ravi"}]`,
		"duplicates keep first":         `[{"id":3,"name":"Asha"},{"id":9,"name":"Ravi"},{"id":3,"name":"Other"}]`,
		"entries without an id dropped": `[{"name":"ghost"},{"id":3,"name":"Asha"},{"id":9,"name":"Ravi"}]`,
	}

	for name, fixture := range cases {
		t.Run(name, func(t *testing.T) {
			got := Normalize(decode(t, fixture))
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestNormalize_TeamKeys(t *testing.T) {
	got := Normalize(decode(t, `[{"team_id":11,"team_name":"Night shift"}]`))
	want := []Option{{ID: "11", Label: "Night shift"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestNormalize_JoinedRowsPreferUserAndTeamIDs(t *testing.T) {
	got := Normalize(decode(t, `[{"id":1,"user_id":42,"user_name":"Alice"},{"id":2,"team_id":11,"team_name":"Team A"}]`))
	want := []Option{{ID: "42", Label: "Alice"}, {ID: "11", Label: "Team A"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestNormalize_MissingLabelFallsBackToID(t *testing.T) {
	got := Normalize(decode(t, `[{"team_id":12}]`))
	if len(got) != 1 || got[0].Label != "12" {
		t.Fatalf("got %+v", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first := Normalize(decode(t, `[[{"user_id":3,"user_name":"Asha"}],{"team_id":"11","team_name":"Ops"}]`))
	second := Normalize(first)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("not idempotent: %+v vs %+v", first, second)
	}

	// Round-tripping through JSON, as the cache does, must not change it either.
	data, _ := json.Marshal(first)
	third := Normalize(decode(t, string(data)))
	if !reflect.DeepEqual(first, third) {
		t.Fatalf("not idempotent through JSON: %+v vs %+v", first, third)
	}
}

func TestNormalize_NilIsEmpty(t *testing.T) {
	got := Normalize(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestWithSelection_SynthesizesUnknown(t *testing.T) {
	opts := []Option{{ID: "3", Label: "Asha"}}
	got := WithSelection(opts, []string{"3", "42"})
	want := []Option{{ID: "3", Label: "Asha"}, {ID: "42", Label: "Unknown (42)"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if len(opts) != 1 {
		t.Fatal("input list must not be modified")
	}
}

func TestLabelForAndFindByLabel(t *testing.T) {
	opts := []Option{{ID: "7", Label: "Priya Menon"}}
	if got := LabelFor(opts, "7"); got != "Priya Menon" {
		t.Fatalf("got %q", got)
	}
	if got := LabelFor(opts, "8"); got != "Unknown (8)" {
		t.Fatalf("got %q", got)
	}
	if id, ok := FindByLabel(opts, " priya menon "); !ok || id != "7" {
		t.Fatalf("lookup failed: %q %v", id, ok)
	}
}

func TestStringify(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{float64(7), "7"},
		{float64(2.5), "2.5"},
		{" 11 ", "11"},
		{nil, ""},
		{false, "false"},
	}
	for _, c := range cases {
		if got := Stringify(c.in); got != c.want {
			t.Errorf("Stringify(%#v) = %q, want %q", c.in, got, c.want)
		}
	}
}
