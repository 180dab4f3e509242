package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	ActivityRepo ActivityRepository
}

// NewRepositories uses Postgres when a pool is given and memory otherwise.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	if pool == nil {
		return &Repositories{ActivityRepo: NewMemoryActivityRepository()}
	}
	return &Repositories{ActivityRepo: NewActivityRepository(pool)}
}
