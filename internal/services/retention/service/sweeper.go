package service

import (
	"context"

	"showrunner/internal/core/channel"
	"showrunner/internal/platform/logger"
	"showrunner/internal/services/retention/domain"

	"github.com/dustin/go-humanize"
)

// Sweeper runs the plan-and-reclaim cycle over every configured channel,
// strictly one channel after the other to bound contention on shared storage
type Sweeper struct {
	Planner   domain.PlannerPort
	Reclaimer domain.ReclaimerPort
	Settings  *channel.Settings

	// DryRun plans and logs but reclaims nothing
	DryRun bool
}

// Sweep processes all channels and returns the aggregate summary.
// A candidate that fails to reclaim is counted and skipped; the sweep goes on.
// Cancellation is honored between candidates, never inside one
func (s *Sweeper) Sweep(ctx context.Context) (domain.Summary, error) {
	log := logger.Named("cleaner")
	var sum domain.Summary

	for _, ch := range s.Settings.Channels {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		cs, err := s.sweepChannel(ctx, log, ch)
		sum.Channels = append(sum.Channels, cs)
		sum.Removed += cs.Removed
		sum.BytesFreed += cs.BytesFreed
		sum.Failed += cs.Failed
		if err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func (s *Sweeper) sweepChannel(ctx context.Context, log *logger.Logger, ch channel.Channel) (domain.ChannelSummary, error) {
	cs := domain.ChannelSummary{ChannelID: ch.ID, ChannelName: ch.Name}
	log.Info().Str("channel", ch.Name).Msg("cleaning playout storage")

	plan, err := s.Planner.Plan(ctx, ch)
	if err != nil {
		if ctx.Err() != nil {
			return cs, err
		}
		// planning failed for this channel only; move on to the next
		log.Error().Err(err).Str("channel", ch.Name).Msg("retention planning failed")
		cs.Failed++
		return cs, nil
	}
	cs.Planned = len(plan)

	for _, cand := range plan {
		if err := ctx.Err(); err != nil {
			return cs, err
		}
		if s.DryRun {
			log.Info().Int64("asset", cand.AssetID).
				Str("size", humanize.Bytes(uint64(cand.Size))).
				Msg("would remove playout file")
			continue
		}
		freed, err := s.Reclaimer.Reclaim(ctx, ch, cand)
		if err != nil {
			log.Error().Err(err).Int64("asset", cand.AssetID).Msg("reclaim failed")
			cs.Failed++
			continue
		}
		log.Debug().Int64("asset", cand.AssetID).
			Str("size", humanize.Bytes(uint64(freed))).
			Msg("removed playout file")
		cs.Removed++
		cs.BytesFreed += freed
	}

	log.Info().
		Str("channel", ch.Name).
		Int("removed", cs.Removed).
		Int("failed", cs.Failed).
		Str("freed", humanize.Bytes(uint64(cs.BytesFreed))).
		Msg("playout storage cleaned")
	return cs, nil
}
