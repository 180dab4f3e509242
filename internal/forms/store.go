package forms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Marga-Ghale/bpo-console/internal/db"
)

var (
	ErrNotFound = errors.New("form not found")
	// ErrBusy means a submission for this form is already in flight.
	ErrBusy = errors.New("form is being submitted")
)

// Store keeps form sessions. Values are stored as JSON in both
// implementations so a loaded form never aliases the stored one.
type Store interface {
	Load(ctx context.Context, id string, dest interface{}) error
	Save(ctx context.Context, id string, form interface{}) error
	Delete(ctx context.Context, id string) error
	// Acquire marks id as submitting. The returned release must be called
	// once the submission finishes, whatever its outcome.
	Acquire(ctx context.Context, id string) (release func(), err error)
	Submitting(ctx context.Context, id string) bool
}

// ============================================
// Memory store
// ============================================

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type MemoryStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	forms  map[string]memoryEntry
	locked map[string]bool
	now    func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:    ttl,
		forms:  make(map[string]memoryEntry),
		locked: make(map[string]bool),
		now:    time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, id string, dest interface{}) error {
	s.mu.Lock()
	e, ok := s.forms[id]
	s.mu.Unlock()
	if !ok || s.now().After(e.expiresAt) {
		return ErrNotFound
	}
	return json.Unmarshal(e.data, dest)
}

func (s *MemoryStore) Save(_ context.Context, id string, form interface{}) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to encode form: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[id] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, id)
	return nil
}

func (s *MemoryStore) Acquire(_ context.Context, id string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked[id] {
		return nil, ErrBusy
	}
	s.locked[id] = true
	return func() {
		s.mu.Lock()
		delete(s.locked, id)
		s.mu.Unlock()
	}, nil
}

func (s *MemoryStore) Submitting(_ context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked[id]
}

// Purge drops expired forms; an abandoned modal leaves one behind.
func (s *MemoryStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, e := range s.forms {
		if now.After(e.expiresAt) {
			delete(s.forms, id)
			n++
		}
	}
	return n
}

// ============================================
// Redis store
// ============================================

// lockTTL bounds how long a crashed submission can block its form.
const lockTTL = 2 * time.Minute

type RedisStore struct {
	redis *db.RedisDB
	ttl   time.Duration
}

func NewRedisStore(r *db.RedisDB, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: r, ttl: ttl}
}

func formKey(id string) string { return "form:" + id }

func (s *RedisStore) Load(ctx context.Context, id string, dest interface{}) error {
	err := s.redis.GetSession(ctx, formKey(id), dest)
	if errors.Is(err, db.ErrCacheMiss) {
		return ErrNotFound
	}
	return err
}

func (s *RedisStore) Save(ctx context.Context, id string, form interface{}) error {
	return s.redis.SetSession(ctx, formKey(id), form, s.ttl)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.redis.DeleteSession(ctx, formKey(id))
}

func (s *RedisStore) Acquire(ctx context.Context, id string) (func(), error) {
	ok, err := s.redis.Lock(ctx, formKey(id), lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock form: %w", err)
	}
	if !ok {
		return nil, ErrBusy
	}
	return func() {
		// The request context may already be done; the unlock must still happen.
		if err := s.redis.Unlock(context.Background(), formKey(id)); err != nil {
			log.Printf("⚠️ [Forms] failed to unlock %s: %v", id, err)
		}
	}, nil
}

func (s *RedisStore) Submitting(ctx context.Context, id string) bool {
	n, err := s.redis.Client.Exists(ctx, "lock:"+formKey(id)).Result()
	return err == nil && n > 0
}
