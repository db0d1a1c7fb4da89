// Package repo provides postgres access for retention
package repo

import (
	"context"
	"fmt"

	perr "showrunner/internal/platform/errors"
	"showrunner/internal/platform/store"
	"showrunner/internal/services/retention/domain"
)

// Repo defines the repository contract for retention
type Repo interface {
	// AssetsScheduledInWindow returns the ids of assets referenced by any
	// item of any event on the channel starting inside (from, to)
	AssetsScheduledInWindow(ctx context.Context, channelID, from, to int64) (map[int64]struct{}, error)

	// PlayoutAssets returns every asset holding a playout status for the channel
	PlayoutAssets(ctx context.Context, channelID int64) ([]domain.PlayoutAsset, error)

	// LastRun returns the unix timestamp of the asset's most recent broadcast
	// on the channel, 0 when it never aired
	LastRun(ctx context.Context, channelID, assetID int64) (int64, error)

	// PlayoutStatusSize returns the rendered size recorded in the asset's
	// playout status for the channel; ok=false when no status exists
	PlayoutStatusSize(ctx context.Context, channelID, assetID int64) (size int64, ok bool, err error)

	// ClearPlayoutStatus removes the channel-scoped playout status from the
	// asset's meta; returns false when no status was present
	ClearPlayoutStatus(ctx context.Context, channelID, assetID int64) (bool, error)
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

// statusKey is the jsonb key holding one channel's playout status
func statusKey(channelID int64) string {
	return fmt.Sprintf("playout_status/%d", channelID)
}

func (r *queries) AssetsScheduledInWindow(ctx context.Context, channelID, from, to int64) (map[int64]struct{}, error) {
	const sql = `
select distinct i.id_asset
from items i
join events e on e.id_magic = i.id_bin
where e.id_channel = $1
and e.start > $2
and e.start < $3
and i.id_asset is not null
`
	rows, err := r.q.Query(ctx, sql, channelID, from, to)
	if err != nil {
		return nil, perr.WrapDB(err, "scheduled assets for channel %d", channelID)
	}
	defer rows.Close()

	out := map[int64]struct{}{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, perr.WrapDB(err, "scan scheduled asset for channel %d", channelID)
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

func (r *queries) PlayoutAssets(ctx context.Context, channelID int64) ([]domain.PlayoutAsset, error) {
	const sql = `
select id, meta->$1
from assets
where meta->>$1 is not null
order by id
`
	rows, err := r.q.Query(ctx, sql, statusKey(channelID))
	if err != nil {
		return nil, perr.WrapDB(err, "playout assets for channel %d", channelID)
	}
	defer rows.Close()

	var out []domain.PlayoutAsset
	for rows.Next() {
		var (
			id  int64
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, perr.WrapDB(err, "scan playout asset for channel %d", channelID)
		}
		size, err := domain.DecodePlayoutStatus(id, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.PlayoutAsset{ID: id, Size: size})
	}
	return out, rows.Err()
}

func (r *queries) LastRun(ctx context.Context, channelID, assetID int64) (int64, error) {
	const sql = `
select r.start
from asrun r
join items i on r.id_item = i.id
where r.id_channel = $1
and i.id_asset = $2
order by r.start desc
limit 1
`
	var last float64
	err := r.q.QueryRow(ctx, sql, channelID, assetID).Scan(&last)
	if store.IsNoRows(err) {
		return 0, nil
	}
	if err != nil {
		return 0, perr.WrapDB(err, "last run of asset %d on channel %d", assetID, channelID)
	}
	return int64(last), nil
}

func (r *queries) PlayoutStatusSize(ctx context.Context, channelID, assetID int64) (int64, bool, error) {
	const sql = `select meta->$1 from assets where id = $2`

	var raw []byte
	err := r.q.QueryRow(ctx, sql, statusKey(channelID), assetID).Scan(&raw)
	if store.IsNoRows(err) {
		return 0, false, perr.NotFoundf("asset %d not found", assetID)
	}
	if err != nil {
		return 0, false, perr.WrapDB(err, "playout status of asset %d on channel %d", assetID, channelID)
	}
	if len(raw) == 0 {
		return 0, false, nil
	}
	size, err := domain.DecodePlayoutStatus(assetID, raw)
	if err != nil {
		return 0, false, err
	}
	return size, true, nil
}

func (r *queries) ClearPlayoutStatus(ctx context.Context, channelID, assetID int64) (bool, error) {
	const sql = `
update assets
set meta = meta - $1, mtime = extract(epoch from now())
where id = $2
and meta ? $1
`
	tag, err := r.q.Exec(ctx, sql, statusKey(channelID), assetID)
	if err != nil {
		return false, perr.WrapDB(err, "clear playout status of asset %d on channel %d", assetID, channelID)
	}
	return tag.RowsAffected() > 0, nil
}
