package store

import (
	"context"
	"errors"
	"time"

	"showrunner/internal/platform/logger"
	"showrunner/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgAdapter wraps pg.PG and implements RowQuerier + TxRunner
// it logs slow or failed statements when LogSQL is enabled
type pgAdapter struct {
	p      *pg.PG
	log    logger.Logger
	logSQL bool
}

func openPG(ctx context.Context, cfg Config, s *Store) (*pgAdapter, error) {
	client, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, nil)
	if err != nil {
		return nil, err
	}
	return &pgAdapter{p: client, log: s.Log, logSQL: cfg.PG.LogSQL}, nil
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := a.p.Pool.Exec(ctx, sql, args...)
	a.emit(sql, start, err)
	return tag{ct}, err
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.p.Pool.Query(ctx, sql, args...)
	a.emit(sql, start, err)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := a.p.Pool.QueryRow(ctx, sql, args...)
	// wrap to emit after Scan completes, capturing error from Scan
	return row{
		r:     r,
		after: func(scanErr error) { a.emit(sql, start, scanErr) },
	}
}

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	q := txQuerier{tx: tx}
	if err := fn(q); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// emit logs failed statements and statements slower than the configured threshold
func (a *pgAdapter) emit(sql string, start time.Time, err error) {
	if !a.logSQL {
		return
	}
	elapsed := time.Since(start)
	switch {
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		a.log.Error().Err(err).Dur("elapsed", elapsed).Str("sql", sql).Msg("query failed")
	case a.p.SlowMs > 0 && elapsed >= time.Duration(a.p.SlowMs)*time.Millisecond:
		a.log.Warn().Dur("elapsed", elapsed).Str("sql", sql).Msg("slow query")
	}
}

// txQuerier exposes the RowQuerier surface of one open transaction
type txQuerier struct {
	tx pgx.Tx
}

func (t txQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	ct, err := t.tx.Exec(ctx, sql, args...)
	return tag{ct}, err
}

func (t txQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := t.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

func (t txQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return row{r: t.tx.QueryRow(ctx, sql, args...)}
}

// thin wrappers over pgx result types

type rows struct{ r pgx.Rows }

func (w rows) Next() bool             { return w.r.Next() }
func (w rows) Scan(dest ...any) error { return w.r.Scan(dest...) }
func (w rows) Err() error             { return w.r.Err() }
func (w rows) Close()                 { w.r.Close() }

type row struct {
	r     pgx.Row
	after func(error)
}

func (w row) Scan(dest ...any) error {
	err := w.r.Scan(dest...)
	if w.after != nil {
		w.after(err)
	}
	return err
}

type tag struct{ t pgconn.CommandTag }

func (w tag) String() string      { return w.t.String() }
func (w tag) RowsAffected() int64 { return w.t.RowsAffected() }

// IsNoRows reports whether err is the pgx no-rows sentinel
func IsNoRows(err error) bool { return errors.Is(err, pgx.ErrNoRows) }
