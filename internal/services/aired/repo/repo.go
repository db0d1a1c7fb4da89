// Package repo provides postgres access for the aired marker
package repo

import (
	"context"

	perr "showrunner/internal/platform/errors"
	"showrunner/internal/platform/store"
)

// Repo defines the repository contract for the aired marker
type Repo interface {
	// MarkAired sets meta.aired=true on every asset that has at least one
	// broadcast item and is not yet marked; returns rows affected
	MarkAired(ctx context.Context) (int64, error)
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

func (r *queries) MarkAired(ctx context.Context) (int64, error) {
	const sql = `
update assets set
meta = jsonb_set(
	jsonb_set(meta, '{aired}', 'true', true),
	'{mtime}',
	to_jsonb(extract(epoch from now())),
	true
),
mtime = extract(epoch from now())
where id in (
	select i.id_asset
	from items i
	inner join asrun r on i.id = r.id_item
)
and (meta->>'aired' is null or meta->>'aired' = 'false')
`
	tag, err := r.q.Exec(ctx, sql)
	if err != nil {
		return 0, perr.WrapDB(err, "mark aired assets")
	}
	return tag.RowsAffected(), nil
}
