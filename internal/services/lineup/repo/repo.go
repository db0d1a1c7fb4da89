// Package repo provides postgres access for lineup
package repo

import (
	"context"

	perr "showrunner/internal/platform/errors"
	"showrunner/internal/platform/store"
	"showrunner/internal/services/lineup/domain"
)

// Repo defines the repository contract for lineup
type Repo interface {
	// EventsInWindow returns events on a channel with start in [from, to),
	// ascending by start. An unknown channel yields an empty slice, not an error
	EventsInWindow(ctx context.Context, channelID, from, to int64) ([]domain.Event, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q store.RowQuerier }
)

// NewPG creates a new Postgres repository binder
func NewPG() store.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q store.RowQuerier) Repo { return &queries{q: q} }

func (r *queries) EventsInWindow(ctx context.Context, channelID, from, to int64) ([]domain.Event, error) {
	const sql = `
select id, id_channel, start, coalesce(id_magic, 0), meta
from events
where id_channel = $1
and start >= $2
and start < $3
order by start asc
`
	rows, err := r.q.Query(ctx, sql, channelID, from, to)
	if err != nil {
		return nil, perr.WrapDB(err, "events in window for channel %d", channelID)
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var (
			id, chID, start, magic int64
			meta                   []byte
		)
		if err := rows.Scan(&id, &chID, &start, &magic, &meta); err != nil {
			return nil, perr.WrapDB(err, "scan event for channel %d", channelID)
		}
		ev, err := domain.DecodeEvent(id, chID, start, magic, meta)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
