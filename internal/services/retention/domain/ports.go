package domain

import (
	"context"

	"showrunner/internal/core/channel"
)

// PlannerPort decides which assets are safe to evict; it never mutates state
type PlannerPort interface {
	Plan(ctx context.Context, ch channel.Channel) ([]Candidate, error)
}

// ReclaimerPort executes one eviction: delete the playout file, clear the
// channel-scoped playout status. Returns bytes freed
type ReclaimerPort interface {
	Reclaim(ctx context.Context, ch channel.Channel, cand Candidate) (int64, error)
}

// SweeperPort runs the full plan-and-reclaim cycle over all configured channels
type SweeperPort interface {
	Sweep(ctx context.Context) (Summary, error)
}
