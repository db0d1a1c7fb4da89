// Package domain holds run history entities and contracts
package domain

import "context"

// Run is one placement of an asset in a scheduled event. RunTime is nil
// until the playout system reports the item as broadcast
type Run struct {
	ItemID     int64  `json:"id"`
	EventTitle string `json:"event_title"`
	EventStart int64  `json:"event_time"`
	RunTime    *int64 `json:"run_time"`
}

// ServicePort defines the service contract for run history
type ServicePort interface {
	// ForAsset returns the asset's runs ordered by event start; unknown
	// asset ids are a NotFound error
	ForAsset(ctx context.Context, assetID int64) ([]Run, error)
}
