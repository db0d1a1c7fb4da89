// Package service contains run history workflows
package service

import (
	"context"

	perr "showrunner/internal/platform/errors"
	"showrunner/internal/platform/store"
	"showrunner/internal/services/runs/domain"
	"showrunner/internal/services/runs/repo"
)

// Service defines the service contract for run history
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo
}

// New creates a new runs service
func New(db store.TxRunner, binder store.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("runs.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("runs.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: store.MustBind(binder, db)}
}

// ForAsset returns the asset's past and scheduled runs ordered by event start
func (s *Svc) ForAsset(ctx context.Context, assetID int64) ([]domain.Run, error) {
	ok, err := s.Repo.AssetExists(ctx, assetID)
	if err != nil {
		return nil, perr.WithOp(err, "runs")
	}
	if !ok {
		return nil, perr.NotFoundf("no such asset %d", assetID)
	}

	runs, err := s.Repo.RunsForAsset(ctx, assetID)
	if err != nil {
		return nil, perr.WithOp(err, "runs")
	}
	if runs == nil {
		runs = []domain.Run{}
	}
	return runs, nil
}
