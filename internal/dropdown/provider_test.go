package dropdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Marga-Ghale/bpo-console/internal/backend"
	"github.com/Marga-Ghale/bpo-console/internal/types"
)

type fakeFetcher struct {
	calls []backend.DropdownRequest
	value interface{}
	err   error
}

func (f *fakeFetcher) Dropdown(_ context.Context, req *backend.DropdownRequest) (interface{}, error) {
	f.calls = append(f.calls, *req)
	return f.value, f.err
}

func TestProvider_CachesPerSession(t *testing.T) {
	f := &fakeFetcher{value: []interface{}{map[string]interface{}{"id": float64(1), "name": "Admin"}}}
	p := NewProvider(f, NewMemoryCache(), time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		opts, err := p.Options(ctx, "u1", types.DropdownRoles, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(opts) != 1 || opts[0].ID != "1" {
			t.Fatalf("unexpected options %+v", opts)
		}
	}
	if len(f.calls) != 1 {
		t.Fatalf("expected one fetch, got %d", len(f.calls))
	}

	if _, err := p.Options(ctx, "u2", types.DropdownRoles, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.calls) != 2 {
		t.Fatalf("another session must fetch its own list, got %d calls", len(f.calls))
	}

	if err := p.Invalidate(ctx, "u1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := p.Options(ctx, "u1", types.DropdownRoles, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.calls) != 3 {
		t.Fatalf("expected refetch after invalidate, got %d calls", len(f.calls))
	}
}

func TestProvider_KeyedResponse(t *testing.T) {
	f := &fakeFetcher{value: map[string]interface{}{
		"teams": []interface{}{map[string]interface{}{"team_id": float64(11), "team_name": "Ops"}},
		"roles": []interface{}{},
	}}
	p := NewProvider(f, nil, time.Minute)

	opts, err := p.Options(context.Background(), "u1", types.DropdownTeams, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 1 || opts[0].Label != "Ops" {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestProvider_AgentsScopedByProject(t *testing.T) {
	f := &fakeFetcher{value: []interface{}{}}
	p := NewProvider(f, nil, time.Minute)
	ctx := context.Background()
	one, two := int64(1), int64(2)

	_, _ = p.Options(ctx, "u1", types.DropdownAgents, &one)
	_, _ = p.Options(ctx, "u1", types.DropdownAgents, &two)
	_, _ = p.Options(ctx, "u1", types.DropdownAgents, &one)

	if len(f.calls) != 2 {
		t.Fatalf("expected two fetches, got %d", len(f.calls))
	}
	if f.calls[1].ProjectID == nil || *f.calls[1].ProjectID != 2 {
		t.Fatalf("project id not forwarded: %+v", f.calls[1])
	}
}

func TestProvider_ErrorsAreNotCached(t *testing.T) {
	f := &fakeFetcher{err: errors.New("boom")}
	p := NewProvider(f, nil, time.Minute)
	ctx := context.Background()

	if _, err := p.Options(ctx, "u1", types.DropdownQAs, nil); err == nil {
		t.Fatal("expected error")
	}
	f.err = nil
	f.value = []interface{}{}
	if _, err := p.Options(ctx, "u1", types.DropdownQAs, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.calls) != 2 {
		t.Fatalf("expected retry to hit backend, got %d calls", len(f.calls))
	}
}

func TestProvider_UnknownKind(t *testing.T) {
	p := NewProvider(&fakeFetcher{}, nil, time.Minute)
	if _, err := p.Options(context.Background(), "u1", types.DropdownKind("planets"), nil); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestMemoryCache_Purge(t *testing.T) {
	c := NewMemoryCache()
	now := time.Now()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_ = c.Set(ctx, "a", []Option{{ID: "1"}}, time.Minute)
	_ = c.Set(ctx, "b", []Option{{ID: "2"}}, time.Hour)

	now = now.Add(2 * time.Minute)
	if n := c.Purge(); n != 1 {
		t.Fatalf("expected one purged entry, got %d", n)
	}
	if _, ok, _ := c.Get(ctx, "b"); !ok {
		t.Fatal("live entry was purged")
	}
}
