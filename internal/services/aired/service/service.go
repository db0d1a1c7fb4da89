// Package service contains the aired marker
package service

import (
	"context"

	perr "showrunner/internal/platform/errors"
	"showrunner/internal/platform/logger"
	"showrunner/internal/platform/store"
	"showrunner/internal/services/aired/repo"
)

// Service marks broadcast assets as aired
type Service interface {
	Mark(ctx context.Context) (int64, error)
}

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo
}

// New creates a new aired marker service
func New(db store.TxRunner, binder store.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("aired.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("aired.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: store.MustBind(binder, db)}
}

// Mark flags every asset with a broadcast item as aired. The update is
// idempotent; already marked assets are left alone
func (s *Svc) Mark(ctx context.Context) (int64, error) {
	n, err := s.Repo.MarkAired(ctx)
	if err != nil {
		return 0, perr.WithOp(err, "aired")
	}
	logger.C(ctx).Info().Int64("assets", n).Msg("marked aired assets")
	return n, nil
}
