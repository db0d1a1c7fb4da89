// Package repo provides postgres access for reprise
package repo

import (
	"context"

	perr "showrunner/internal/platform/errors"
	"showrunner/internal/platform/store"
	"showrunner/internal/services/reprise/domain"
)

// Repo defines the repository contract for reprise
type Repo interface {
	// PriorEvent returns the most recent event on the channel with an exact
	// title match starting before the given instant; ok=false when none exists
	PriorEvent(ctx context.Context, channelID, start int64, title string) (domain.SourceEvent, bool, error)

	// ItemsWithAssets streams the bin's items in position order, one row per
	// call: the raw item meta, the referenced asset id (0 when none) and the
	// raw asset meta (nil when none). An error from fn stops the iteration
	ItemsWithAssets(ctx context.Context, binID int64, fn func(itemMeta []byte, assetID int64, assetMeta []byte) error) error
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

func (r *queries) PriorEvent(ctx context.Context, channelID, start int64, title string) (domain.SourceEvent, bool, error) {
	const sql = `
select id, coalesce(id_magic, 0), start
from events
where id_channel = $1
and start < $2
and meta->>'title' = $3
order by start desc
limit 1
`
	var ev domain.SourceEvent
	err := r.q.QueryRow(ctx, sql, channelID, start, title).Scan(&ev.ID, &ev.MagicID, &ev.Start)
	if store.IsNoRows(err) {
		return domain.SourceEvent{}, false, nil
	}
	if err != nil {
		return domain.SourceEvent{}, false, perr.WrapDB(err, "prior event %q on channel %d", title, channelID)
	}
	return ev, true, nil
}

func (r *queries) ItemsWithAssets(ctx context.Context, binID int64, fn func([]byte, int64, []byte) error) error {
	const sql = `
select i.meta, coalesce(i.id_asset, 0), a.meta
from items i
left join assets a on a.id = i.id_asset
where i.id_bin = $1
order by i.position asc
`
	rows, err := r.q.Query(ctx, sql, binID)
	if err != nil {
		return perr.WrapDB(err, "items of bin %d", binID)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemMeta, assetMeta []byte
			assetID             int64
		)
		if err := rows.Scan(&itemMeta, &assetID, &assetMeta); err != nil {
			return perr.WrapDB(err, "scan item of bin %d", binID)
		}
		if err := fn(itemMeta, assetID, assetMeta); err != nil {
			return err
		}
	}
	return rows.Err()
}
