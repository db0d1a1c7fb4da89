// Package service contains reprise resolution
package service

import (
	"context"

	perr "showrunner/internal/platform/errors"
	"showrunner/internal/platform/logger"
	"showrunner/internal/platform/store"
	"showrunner/internal/services/reprise/domain"
	"showrunner/internal/services/reprise/repo"
)

// DefaultExcludedFolder is the commercials folder; commercials are never
// carried into a reprise
const DefaultExcludedFolder int64 = 9

// Config tunes reprise resolution
type Config struct {
	ExcludedFolder int64
}

// Service defines the service contract for reprise
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo
	Cfg  Config
}

// New creates a new reprise service
func New(db store.TxRunner, binder store.Binder[repo.Repo], cfg Config) *Svc {
	if db == nil {
		panic("reprise.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("reprise.Service requires a non nil Repo binder")
	}
	if cfg.ExcludedFolder == 0 {
		cfg.ExcludedFolder = DefaultExcludedFolder
	}
	return &Svc{Repo: store.MustBind(binder, db), Cfg: cfg}
}

// Resolve streams clones of the most recent prior same-title event's items,
// in source position order. Having no reprise source is a normal outcome: no
// clones, no error. A malformed item or asset aborts the whole resolution so
// a partially cloned show is never persisted
func (s *Svc) Resolve(ctx context.Context, ev domain.NewEvent, yield func(domain.CloneItem) error) error {
	if ev.Title == "" {
		return perr.InvalidArgf("reprise event has no title")
	}
	log := logger.C(ctx).With().Str("title", ev.Title).Logger()
	log.Trace().Msg("solving reprise")

	src, ok, err := s.Repo.PriorEvent(ctx, ev.ChannelID, ev.Start, ev.Title)
	if err != nil {
		return perr.WithOp(err, "reprise")
	}
	if !ok {
		log.Trace().Msg("no reprise source")
		return nil
	}
	log.Trace().Int64("event", src.ID).Msg("found previous event")

	return s.Repo.ItemsWithAssets(ctx, src.MagicID, func(itemMeta []byte, assetID int64, assetMeta []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		pos, meta, err := domain.DecodeItem(itemMeta)
		if err != nil {
			return perr.WithOp(err, "reprise")
		}
		clone := domain.CloneItem{Position: pos, Meta: meta}
		if len(assetMeta) > 0 {
			asset, err := domain.DecodeAsset(assetID, assetMeta)
			if err != nil {
				return perr.WithOp(err, "reprise")
			}
			if asset.FolderID == s.Cfg.ExcludedFolder {
				return nil // skip commercials
			}
			clone.AssetID = asset.ID
			clone.Asset = &asset
		}
		return yield(clone)
	})
}
