package cron

import (
	"context"
	"testing"
	"time"

	"github.com/Marga-Ghale/bpo-console/internal/repository"
	"github.com/Marga-Ghale/bpo-console/internal/service"
)

func TestManualTrigger_Memory(t *testing.T) {
	s := NewScheduler(nil, 0)
	calls := map[string]int{}
	s.Register("forms", PurgeFunc(func() int { calls["forms"]++; return 2 }))
	s.Register("dropdowns", PurgeFunc(func() int { calls["dropdowns"]++; return 0 }))

	s.ManualTrigger("memory")
	if calls["forms"] != 1 || calls["dropdowns"] != 1 {
		t.Fatalf("every purger should run once, got %v", calls)
	}

	s.ManualTrigger("activities") // no activity service: a no-op
	if calls["forms"] != 1 {
		t.Fatalf("activities job must not sweep memory, got %v", calls)
	}
}

func TestManualTrigger_Activities(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryActivityRepository()
	_ = repo.Create(ctx, &repository.Activity{Type: "project.created", EntityType: "project", EntityID: "1", UserID: "u1",
		CreatedAt: time.Now().Add(-100 * 24 * time.Hour)})
	_ = repo.Create(ctx, &repository.Activity{Type: "project.updated", EntityType: "project", EntityID: "1", UserID: "u1"})

	activity := service.NewActivityService(repo)
	s := NewScheduler(activity, 90*24*time.Hour)
	s.ManualTrigger("activities")

	left, err := activity.GetEntityActivities(ctx, "project", "1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(left) != 1 || left[0].Type != "project.updated" {
		t.Fatalf("expected only the recent activity, got %+v", left)
	}
}
