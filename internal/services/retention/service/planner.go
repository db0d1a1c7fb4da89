// Package service contains the retention planner, reclaimer and sweep
package service

import (
	"context"
	"time"

	"showrunner/internal/core/channel"
	perr "showrunner/internal/platform/errors"
	"showrunner/internal/platform/store"
	"showrunner/internal/services/retention/domain"
	"showrunner/internal/services/retention/repo"
)

// Planner computes eviction candidates for one channel. Planning is a pure
// read; execution lives in Reclaimer so a plan can be inspected or dry-run
type Planner struct {
	Repo    repo.Repo
	Windows domain.Windows

	// Now is a seam for tests; defaults to time.Now
	Now func() time.Time
}

// NewPlanner creates a planner bound to the given store
func NewPlanner(db store.TxRunner, binder store.Binder[repo.Repo], w domain.Windows) *Planner {
	if db == nil {
		panic("retention.Planner requires a non nil TxRunner")
	}
	if binder == nil {
		panic("retention.Planner requires a non nil Repo binder")
	}
	return &Planner{Repo: store.MustBind(binder, db), Windows: w, Now: time.Now}
}

// Plan returns every asset with a playout status on the channel that is
// neither scheduled inside the lookback/lookahead window nor aired within
// the staleness window. An asset that never aired and is not scheduled is
// immediately eligible
func (p *Planner) Plan(ctx context.Context, ch channel.Channel) ([]domain.Candidate, error) {
	now := p.Now().Unix()
	from := now - int64(p.Windows.Lookback/time.Second)
	to := now + int64(p.Windows.Lookahead/time.Second)
	staleBefore := now - int64(p.Windows.Staleness/time.Second)

	scheduled, err := p.Repo.AssetsScheduledInWindow(ctx, ch.ID, from, to)
	if err != nil {
		return nil, perr.WithOp(err, "retention plan")
	}
	assets, err := p.Repo.PlayoutAssets(ctx, ch.ID)
	if err != nil {
		return nil, perr.WithOp(err, "retention plan")
	}

	var out []domain.Candidate
	for _, a := range assets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := scheduled[a.ID]; ok {
			continue // about to air or recently slated
		}
		lastRun, err := p.Repo.LastRun(ctx, ch.ID, a.ID)
		if err != nil {
			return nil, perr.WithOp(err, "retention plan")
		}
		if lastRun > staleBefore {
			continue // aired too recently, retain for quick re-air
		}
		out = append(out, domain.Candidate{AssetID: a.ID, Size: a.Size})
	}
	return out, nil
}
