// internal/db/postgres.go
package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marga-Ghale/bpo-console/internal/config"
)

// PoolOptions sizes the activity log pool.
type PoolOptions struct {
	MaxConns    int32
	MinConns    int32
	MaxConnIdle time.Duration
}

// PoolOptionsFrom reads pool sizing from cfg. Out-of-range values fall back
// to a single connection.
func PoolOptionsFrom(cfg *config.Config) PoolOptions {
	opts := PoolOptions{
		MaxConns:    int32(cfg.DBMaxConns),
		MinConns:    int32(cfg.DBMinConns),
		MaxConnIdle: cfg.DBConnIdle,
	}
	if opts.MaxConns < 1 {
		opts.MaxConns = 1
	}
	if opts.MinConns < 0 || opts.MinConns > opts.MaxConns {
		opts.MinConns = opts.MaxConns
	}
	return opts
}

// PostgresDB holds the pool behind the activity log.
type PostgresDB struct {
	Pool *pgxpool.Pool
}

func NewPostgresDB(ctx context.Context, databaseURL string, opts PoolOptions) (*PostgresDB, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	poolCfg.MaxConns = opts.MaxConns
	poolCfg.MinConns = opts.MinConns
	if opts.MaxConnIdle > 0 {
		poolCfg.MaxConnIdleTime = opts.MaxConnIdle
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("[DB] ✅ Activity log pool ready (max=%d, min=%d)", opts.MaxConns, opts.MinConns)
	return &PostgresDB{Pool: pool}, nil
}

// Stats reports pool usage for the health endpoint.
func (db *PostgresDB) Stats() map[string]int32 {
	if db == nil || db.Pool == nil {
		return nil
	}
	s := db.Pool.Stat()
	return map[string]int32{
		"total":    s.TotalConns(),
		"idle":     s.IdleConns(),
		"acquired": s.AcquiredConns(),
	}
}

func (db *PostgresDB) Close() {
	if db != nil && db.Pool != nil {
		db.Pool.Close()
		log.Println("[DB] PostgreSQL connection closed")
	}
}
