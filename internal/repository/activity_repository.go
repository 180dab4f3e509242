package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Activity is one audit entry written after a successful mutation.
type Activity struct {
	ID         string
	Type       string
	EntityType string
	EntityID   string
	UserID     string
	Changes    map[string]interface{}
	CreatedAt  time.Time
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	FindByEntity(ctx context.Context, entityType, entityID string, limit int) ([]*Activity, error)
	FindByUser(ctx context.Context, userID string, limit int) ([]*Activity, error)
	DeleteOlderThan(ctx context.Context, olderThan time.Time) (int, error)
}

// ============================================
// Postgres
// ============================================

type pgActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &pgActivityRepository{pool: pool}
}

func (r *pgActivityRepository) Create(ctx context.Context, activity *Activity) error {
	query := `
		INSERT INTO activities (type, entity_type, entity_id, user_id, changes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		activity.Type, activity.EntityType, activity.EntityID, activity.UserID, activity.Changes,
	).Scan(&activity.ID, &activity.CreatedAt)
}

func (r *pgActivityRepository) FindByEntity(ctx context.Context, entityType, entityID string, limit int) ([]*Activity, error) {
	query := `
		SELECT id, type, entity_type, entity_id, user_id, changes, created_at
		FROM activities WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	return r.query(ctx, query, entityType, entityID, limit)
}

func (r *pgActivityRepository) FindByUser(ctx context.Context, userID string, limit int) ([]*Activity, error) {
	query := `
		SELECT id, type, entity_type, entity_id, user_id, changes, created_at
		FROM activities WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.query(ctx, query, userID, limit)
}

func (r *pgActivityRepository) query(ctx context.Context, query string, args ...interface{}) ([]*Activity, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []*Activity{}
	for rows.Next() {
		a := &Activity{}
		if err := rows.Scan(&a.ID, &a.Type, &a.EntityType, &a.EntityID, &a.UserID, &a.Changes, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *pgActivityRepository) DeleteOlderThan(ctx context.Context, olderThan time.Time) (int, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM activities WHERE created_at < $1`, olderThan)
	if err != nil {
		return 0, err
	}
	return int(result.RowsAffected()), nil
}

// ============================================
// In-memory (no DATABASE_URL)
// ============================================

type memoryActivityRepository struct {
	mu      sync.RWMutex
	entries []*Activity
}

func NewMemoryActivityRepository() ActivityRepository {
	return &memoryActivityRepository{}
}

func (r *memoryActivityRepository) Create(_ context.Context, activity *Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	activity.ID = uuid.New().String()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	cp := *activity
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *memoryActivityRepository) FindByEntity(_ context.Context, entityType, entityID string, limit int) ([]*Activity, error) {
	return r.find(limit, func(a *Activity) bool {
		return a.EntityType == entityType && a.EntityID == entityID
	}), nil
}

func (r *memoryActivityRepository) FindByUser(_ context.Context, userID string, limit int) ([]*Activity, error) {
	return r.find(limit, func(a *Activity) bool { return a.UserID == userID }), nil
}

func (r *memoryActivityRepository) find(limit int, match func(*Activity) bool) []*Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*Activity{}
	for _, a := range r.entries {
		if match(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *memoryActivityRepository) DeleteOlderThan(_ context.Context, olderThan time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	removed := 0
	for _, a := range r.entries {
		if a.CreatedAt.Before(olderThan) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	r.entries = kept
	return removed, nil
}
