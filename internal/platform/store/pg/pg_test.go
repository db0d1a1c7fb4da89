package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_AppliesConfigBeforeDialing(t *testing.T) {
	orig := newPool
	t.Cleanup(func() { newPool = orig })

	var seen *pgxpool.Config
	dialErr := errors.New("no dial in unit tests")
	newPool = func(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = cfg
		return nil, dialErr
	}

	_, err := Open(context.Background(),
		Config{URL: "postgres://u:p@localhost:5432/db", MaxConns: 7},
		func(c *pgxpool.Config) { c.MinConns = 2 },
	)
	if !errors.Is(err, dialErr) {
		t.Fatalf("expected the pool error to surface, got %v", err)
	}
	if seen == nil {
		t.Fatalf("pool was never constructed")
	}
	if seen.MaxConns != 7 {
		t.Fatalf("MaxConns = %d, want 7", seen.MaxConns)
	}
	if seen.MinConns != 2 {
		t.Fatalf("pool config mutator not applied, MinConns = %d", seen.MinConns)
	}
}

func TestOpen_BadURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "::not-a-url"}, nil); err == nil {
		t.Fatalf("expected parse error for malformed url")
	}
}

func TestClose_NilSafe(t *testing.T) {
	var p *PG
	p.Close() // must not panic
	(&PG{}).Close()
}
