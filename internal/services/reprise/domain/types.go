// Package domain holds reprise entities and contracts
package domain

import (
	"context"
	"encoding/json"
)

// NewEvent is the freshly scheduled event a reprise is being resolved for
type NewEvent struct {
	ChannelID int64
	Start     int64
	Title     string
}

// SourceEvent is the most recent prior event sharing the new event's title
type SourceEvent struct {
	ID      int64
	MagicID int64
	Start   int64
}

// Asset is the subset of asset fields the cloning rules read
type Asset struct {
	ID       int64
	FolderID int64
}

// CloneItem is one cloned item. It carries no identity; the persistence
// layer assigns one on save
type CloneItem struct {
	Position int64

	// AssetID is 0 for virtual items with no backing asset
	AssetID int64
	Asset   *Asset

	// Meta is the source item's meta document minus identity keys
	Meta map[string]json.RawMessage
}

// ServicePort defines the service contract for reprise resolution.
// Clones stream through yield in source position order; returning an error
// from yield aborts the resolution
type ServicePort interface {
	Resolve(ctx context.Context, ev NewEvent, yield func(CloneItem) error) error
}
