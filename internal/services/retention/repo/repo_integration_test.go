//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"showrunner/internal/platform/store"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

const schema = `
create table assets (
	id    bigint primary key,
	meta  jsonb not null default '{}'::jsonb,
	mtime numeric not null default 0
);
create table events (
	id         bigint primary key,
	id_channel bigint not null,
	id_magic   bigint,
	start      bigint not null,
	meta       jsonb not null default '{}'::jsonb
);
create table items (
	id       bigint primary key,
	id_bin   bigint not null,
	id_asset bigint,
	position bigint not null,
	meta     jsonb not null default '{}'::jsonb
);
create table asrun (
	id         bigserial primary key,
	id_channel bigint not null,
	id_item    bigint not null,
	start      numeric not null
);
`

func openStore(t *testing.T, ctx context.Context, dsn string) *store.Store {
	t.Helper()

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dsn,
			MaxConns:    2,
			SlowQueryMs: 0,
			LogSQL:      true,
		},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	if _, err := st.PG.Exec(ctx, schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return st
}

func TestRetentionRepo_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st := openStore(t, ctx, dsn)
	r := NewPG().Bind(st.PG)

	now := time.Now().Unix()

	// asset 10 scheduled inside the window, asset 11 idle with a stale run,
	// asset 12 idle and never aired
	seed := []string{
		`insert into assets (id, meta) values
			(10, '{"playout_status/1": {"size": 1000}}'),
			(11, '{"playout_status/1": {"size": 2000}}'),
			(12, '{"playout_status/1": {"size": 3000}, "playout_status/2": {"size": 1}}')`,
		fmt.Sprintf(`insert into events (id, id_channel, id_magic, start) values (100, 1, 500, %d)`, now+3600),
		`insert into items (id, id_bin, id_asset, position) values (200, 500, 10, 1), (201, 500, 11, 2)`,
		fmt.Sprintf(`insert into asrun (id_channel, id_item, start) values (1, 201, %d)`, now-30*24*3600),
	}
	for _, q := range seed {
		if _, err := st.PG.Exec(ctx, q); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	scheduled, err := r.AssetsScheduledInWindow(ctx, 1, now-5*24*3600, now+14*24*3600)
	if err != nil {
		t.Fatalf("AssetsScheduledInWindow: %v", err)
	}
	if _, ok := scheduled[10]; !ok {
		t.Fatalf("asset 10 should be scheduled, got %v", scheduled)
	}
	// asset 11 has an item in the scheduled bin too
	if len(scheduled) != 2 {
		t.Fatalf("expected 2 scheduled assets, got %v", scheduled)
	}

	assets, err := r.PlayoutAssets(ctx, 1)
	if err != nil {
		t.Fatalf("PlayoutAssets: %v", err)
	}
	if len(assets) != 3 {
		t.Fatalf("expected 3 playout assets on channel 1, got %d", len(assets))
	}

	last, err := r.LastRun(ctx, 1, 11)
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if last == 0 || last > now {
		t.Fatalf("unexpected last run %d", last)
	}
	if last, err = r.LastRun(ctx, 1, 12); err != nil || last != 0 {
		t.Fatalf("never-aired asset must report 0, got %d (%v)", last, err)
	}
	// asrun rows are channel scoped; a run on channel 1 is invisible to channel 2
	if last, err = r.LastRun(ctx, 2, 11); err != nil || last != 0 {
		t.Fatalf("run on another channel must not count, got %d (%v)", last, err)
	}

	size, ok, err := r.PlayoutStatusSize(ctx, 1, 12)
	if err != nil || !ok || size != 3000 {
		t.Fatalf("PlayoutStatusSize: size=%d ok=%v err=%v", size, ok, err)
	}

	removed, err := r.ClearPlayoutStatus(ctx, 1, 12)
	if err != nil || !removed {
		t.Fatalf("ClearPlayoutStatus: removed=%v err=%v", removed, err)
	}
	// only the channel 1 status goes; channel 2's survives
	if _, ok, _ := r.PlayoutStatusSize(ctx, 1, 12); ok {
		t.Fatalf("status for channel 1 should be gone")
	}
	if _, ok, _ := r.PlayoutStatusSize(ctx, 2, 12); !ok {
		t.Fatalf("status for channel 2 must survive")
	}

	// clearing again is a no-op
	if removed, err := r.ClearPlayoutStatus(ctx, 1, 12); err != nil || removed {
		t.Fatalf("second clear must report false, got %v (%v)", removed, err)
	}
}
