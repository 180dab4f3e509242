package db

import (
	"testing"
	"time"

	"github.com/Marga-Ghale/bpo-console/internal/config"
)

func TestPoolOptionsFrom(t *testing.T) {
	tests := []struct {
		name     string
		max, min int
		want     PoolOptions
	}{
		{"configured", 8, 2, PoolOptions{MaxConns: 8, MinConns: 2, MaxConnIdle: time.Minute}},
		{"zero max falls back to one", 0, 0, PoolOptions{MaxConns: 1, MinConns: 0, MaxConnIdle: time.Minute}},
		{"min above max is capped", 2, 5, PoolOptions{MaxConns: 2, MinConns: 2, MaxConnIdle: time.Minute}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PoolOptionsFrom(&config.Config{DBMaxConns: tt.max, DBMinConns: tt.min, DBConnIdle: time.Minute})
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMigrationOptionsFrom(t *testing.T) {
	got := MigrationOptionsFrom(&config.Config{MigrationsPath: "./m", MigrationsTable: "console_migrations"})
	if got.Path != "./m" || got.Table != "console_migrations" || got.RepairDirty {
		t.Fatalf("unexpected options: %+v", got)
	}
}

func TestStats_NilPool(t *testing.T) {
	var pg *PostgresDB
	if pg.Stats() != nil {
		t.Fatal("nil database should report no stats")
	}
}
