package repository

import (
	"context"
	"testing"
	"time"
)

func TestMemoryActivityRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryActivityRepository()

	for _, id := range []string{"1", "2", "3"} {
		if err := repo.Create(ctx, &Activity{Type: "project.created", EntityType: "project", EntityID: id, UserID: "u1"}); err != nil {
			t.Fatalf("create: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
	_ = repo.Create(ctx, &Activity{Type: "user.updated", EntityType: "user", EntityID: "9", UserID: "u2"})

	mine, _ := repo.FindByUser(ctx, "u1", 2)
	if len(mine) != 2 || mine[0].EntityID != "3" {
		t.Fatalf("expected newest two entries, got %+v", mine)
	}

	byEntity, _ := repo.FindByEntity(ctx, "user", "9", 10)
	if len(byEntity) != 1 || byEntity[0].ID == "" {
		t.Fatalf("entity lookup: %+v", byEntity)
	}

	n, _ := repo.DeleteOlderThan(ctx, time.Now().Add(time.Hour))
	if n != 4 {
		t.Fatalf("expected 4 removed, got %d", n)
	}
	if left, _ := repo.FindByUser(ctx, "u1", 10); len(left) != 0 {
		t.Fatalf("expected empty log, got %d", len(left))
	}
}
