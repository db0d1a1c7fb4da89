// Package service contains lineup workflows
package service

import (
	"context"
	"time"

	"showrunner/internal/core/broadcastday"
	"showrunner/internal/core/channel"
	perr "showrunner/internal/platform/errors"
	"showrunner/internal/platform/store"
	"showrunner/internal/services/lineup/domain"
	"showrunner/internal/services/lineup/repo"
)

// WindowLength is how far ahead of the broadcast-day boundary the lineup reaches
const WindowLength = 7 * 24 * time.Hour

// Service defines the service contract for lineup
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo     repo.Repo
	Settings *channel.Settings

	// Now is a seam for tests; defaults to time.Now
	Now func() time.Time
}

// New creates a new lineup service
func New(db store.TxRunner, binder store.Binder[repo.Repo], settings *channel.Settings) *Svc {
	if db == nil {
		panic("lineup.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("lineup.Service requires a non nil Repo binder")
	}
	if settings == nil {
		panic("lineup.Service requires channel settings")
	}
	return &Svc{Repo: store.MustBind(binder, db), Settings: settings, Now: time.Now}
}

// Lineup returns the channel's 7-day schedule starting at the current
// broadcast-day boundary
func (s *Svc) Lineup(ctx context.Context, channelID int64) (domain.Lineup, error) {
	ch, ok := s.Settings.Channel(channelID)
	if !ok {
		return domain.Lineup{}, perr.NotFoundf("no such channel %d", channelID)
	}

	start := broadcastday.DayStart(ch.DayStart[0], ch.DayStart[1], s.Now())
	from, to := broadcastday.Window(start, WindowLength)

	events, err := s.Repo.EventsInWindow(ctx, channelID, from, to)
	if err != nil {
		return domain.Lineup{}, perr.WithOp(err, "lineup")
	}

	out := domain.Lineup{
		ChannelID:   ch.ID,
		ChannelName: ch.Name,
		Events:      make([]domain.LineupEvent, 0, len(events)),
	}
	for _, ev := range events {
		out.Events = append(out.Events, domain.LineupEvent{
			Start:       ev.Start,
			Title:       ev.Title,
			Subtitle:    ev.Subtitle,
			Summary:     ev.Summary,
			Description: ev.Description,
			IDEC:        ev.IDEC,
			Promoted:    ev.Promoted,
		})
	}
	return out, nil
}
