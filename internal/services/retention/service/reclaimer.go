package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"showrunner/internal/core/channel"
	perr "showrunner/internal/platform/errors"
	"showrunner/internal/platform/logger"
	"showrunner/internal/platform/store"
	"showrunner/internal/services/retention/domain"
	"showrunner/internal/services/retention/repo"

	"github.com/spf13/afero"
)

// A file already deleted with its status still set would be re-planned
// forever, so the clear gets a few attempts on transient db errors
const (
	clearAttempts = 3
	clearBackoff  = 500 * time.Millisecond
)

// PlayoutPath derives the on-disk location of an asset's rendered playout
// file. The naming is a pinned contract with the playout renderer; changing
// it orphans every rendered file
func PlayoutPath(root, site string, assetID int64) string {
	return filepath.Join(root, fmt.Sprintf("%s-%d.mxf", site, assetID))
}

// Reclaimer executes eviction decisions: remove the rendered file, then clear
// the channel-scoped playout status. One candidate's delete-then-clear is the
// minimum atomic unit; once the file is gone the status clear always runs,
// even under cancellation
type Reclaimer struct {
	Repo     repo.Repo
	FS       afero.Fs
	Settings *channel.Settings

	// StrictMissing makes an already-absent file an error instead of a
	// tolerated no-op
	StrictMissing bool
}

// NewReclaimer creates a reclaimer bound to the given store and filesystem
func NewReclaimer(db store.TxRunner, binder store.Binder[repo.Repo], fs afero.Fs, settings *channel.Settings) *Reclaimer {
	if db == nil {
		panic("retention.Reclaimer requires a non nil TxRunner")
	}
	if binder == nil {
		panic("retention.Reclaimer requires a non nil Repo binder")
	}
	if fs == nil {
		panic("retention.Reclaimer requires a filesystem")
	}
	if settings == nil {
		panic("retention.Reclaimer requires channel settings")
	}
	return &Reclaimer{Repo: store.MustBind(binder, db), FS: fs, Settings: settings}
}

// Reclaim evicts one candidate and returns the bytes freed.
// The playout status is re-read first: reclaiming an asset with no status is
// a precondition violation rejected before any side effect, which also makes
// a second run on the same candidate a clean no-op
func (r *Reclaimer) Reclaim(ctx context.Context, ch channel.Channel, cand domain.Candidate) (int64, error) {
	size, ok, err := r.Repo.PlayoutStatusSize(ctx, ch.ID, cand.AssetID)
	if err != nil {
		return 0, perr.WithOp(err, "reclaim")
	}
	if !ok {
		return 0, perr.Preconditionf("asset %d has no playout status for channel %d", cand.AssetID, ch.ID)
	}

	freed := size
	path := PlayoutPath(r.Settings.PlayoutRoot(ch), r.Settings.SiteName, cand.AssetID)
	if err := r.FS.Remove(path); err != nil {
		if !os.IsNotExist(err) || r.StrictMissing {
			// keep the status: metadata implies file presence
			return 0, perr.Wrapf(err, perr.ErrorCodeIO, "remove playout file of asset %d", cand.AssetID)
		}
		// nothing was on disk, so nothing was freed
		freed = 0
		logger.C(ctx).Warn().Int64("asset", cand.AssetID).Str("path", path).Msg("playout file already absent")
	}

	// the file is gone; the clear must complete even if the sweep was
	// cancelled, so it runs detached and retries transient failures
	clearCtx := context.WithoutCancel(ctx)
	var cleared bool
	for attempt := 1; ; attempt++ {
		cleared, err = r.Repo.ClearPlayoutStatus(clearCtx, ch.ID, cand.AssetID)
		if err == nil {
			break
		}
		if !perr.Retryable(err) || attempt == clearAttempts {
			return 0, perr.WithOp(err, "reclaim")
		}
		logger.C(ctx).Warn().Err(err).Int("attempt", attempt).Int64("asset", cand.AssetID).
			Msg("status clear failed; retrying")
		time.Sleep(clearBackoff)
	}
	if !cleared {
		logger.C(ctx).Warn().Int64("asset", cand.AssetID).Msg("playout status vanished during reclaim")
	}
	return freed, nil
}
