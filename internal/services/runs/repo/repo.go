// Package repo provides postgres access for run history
package repo

import (
	"context"

	perr "showrunner/internal/platform/errors"
	"showrunner/internal/platform/store"
	"showrunner/internal/services/runs/domain"
)

// Repo defines the repository contract for run history
type Repo interface {
	// AssetExists reports whether the asset row is present
	AssetExists(ctx context.Context, assetID int64) (bool, error)

	// RunsForAsset returns the asset's items joined to their events and
	// asrun rows, ordered by event start
	RunsForAsset(ctx context.Context, assetID int64) ([]domain.Run, error)
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

func (r *queries) AssetExists(ctx context.Context, assetID int64) (bool, error) {
	var one int
	err := r.q.QueryRow(ctx, `select 1 from assets where id = $1`, assetID).Scan(&one)
	if store.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, perr.WrapDB(err, "asset %d lookup", assetID)
	}
	return true, nil
}

func (r *queries) RunsForAsset(ctx context.Context, assetID int64) ([]domain.Run, error) {
	const sql = `
select i.id, coalesce(e.meta->>'title', ''), e.start, r.start
from items i
inner join events e on e.id_magic = i.id_bin
left join asrun r on r.id_item = i.id
where i.id_asset = $1
order by e.start asc
`
	rows, err := r.q.Query(ctx, sql, assetID)
	if err != nil {
		return nil, perr.WrapDB(err, "runs for asset %d", assetID)
	}
	defer rows.Close()

	var out []domain.Run
	for rows.Next() {
		var (
			run     domain.Run
			runTime *float64
		)
		if err := rows.Scan(&run.ItemID, &run.EventTitle, &run.EventStart, &runTime); err != nil {
			return nil, perr.WrapDB(err, "scan run for asset %d", assetID)
		}
		if runTime != nil {
			ts := int64(*runTime)
			run.RunTime = &ts
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
