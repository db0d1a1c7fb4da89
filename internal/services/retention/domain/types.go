// Package domain holds retention types and contracts
package domain

import "time"

// Windows are the time constants driving retention decisions.
// An asset is retained while it is scheduled anywhere inside
// [now-Lookback, now+Lookahead], or while it last aired less than
// Staleness ago.
type Windows struct {
	Lookback  time.Duration
	Lookahead time.Duration
	Staleness time.Duration
}

// DefaultWindows are the values the playout renderer contract was tuned for
func DefaultWindows() Windows {
	return Windows{
		Lookback:  5 * 24 * time.Hour,
		Lookahead: 14 * 24 * time.Hour,
		Staleness: 14 * 24 * time.Hour,
	}
}

// PlayoutAsset is an asset carrying a playout status for one channel
type PlayoutAsset struct {
	ID   int64
	Size int64
}

// Candidate is one asset the planner decided is safe to evict
type Candidate struct {
	AssetID int64
	Size    int64
}

// ChannelSummary reports one channel's sweep
type ChannelSummary struct {
	ChannelID   int64
	ChannelName string
	Planned     int
	Removed     int
	BytesFreed  int64
	Failed      int
}

// Summary aggregates a whole sweep across channels
type Summary struct {
	Channels   []ChannelSummary
	Removed    int
	BytesFreed int64
	Failed     int
}
