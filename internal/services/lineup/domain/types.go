// Package domain holds lineup entities and DTOs
package domain

// Event is one scheduled block on a channel, decoded from the events table
type Event struct {
	ID        int64
	ChannelID int64
	Start     int64

	// MagicID references the content bin holding the event's items; 0 when unset
	MagicID int64

	Title       string
	Subtitle    string
	Summary     string
	Description string
	IDEC        string
	Promoted    bool
}

// LineupEvent is the wire form of one event in a lineup response
type LineupEvent struct {
	Start       int64  `json:"start"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	IDEC        string `json:"idec,omitempty"`
	Promoted    bool   `json:"promoted"`
}

// Lineup is the 7-day schedule of one channel starting at its current
// broadcast-day boundary
type Lineup struct {
	ChannelID   int64         `json:"channel_id"`
	ChannelName string        `json:"channel_name"`
	Events      []LineupEvent `json:"events"`
}
