package domain

import (
	"encoding/json"
	"strings"

	perr "showrunner/internal/platform/errors"
)

// eventMeta is the subset of the events.meta jsonb document this system reads
type eventMeta struct {
	Title       *string `json:"title"`
	Subtitle    *string `json:"subtitle"`
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
	IDMain      *string `json:"id/main"`
	Promoted    *bool   `json:"promoted"`
}

// DecodeEvent builds an Event from row columns and the raw meta document.
// A missing or empty title is a parse error, never silently defaulted.
func DecodeEvent(id, channelID, start, magicID int64, meta []byte) (Event, error) {
	var m eventMeta
	if err := json.Unmarshal(meta, &m); err != nil {
		return Event{}, perr.Wrapf(err, perr.ErrorCodeParse, "event %d: malformed meta", id)
	}
	if m.Title == nil || strings.TrimSpace(*m.Title) == "" {
		return Event{}, perr.Parsef("event %d: missing title", id)
	}

	ev := Event{
		ID:        id,
		ChannelID: channelID,
		Start:     start,
		MagicID:   magicID,
		Title:     *m.Title,
	}
	if m.Subtitle != nil {
		ev.Subtitle = *m.Subtitle
	}
	if m.Summary != nil {
		ev.Summary = *m.Summary
	}
	if m.Description != nil {
		ev.Description = *m.Description
	}
	if m.IDMain != nil {
		ev.IDEC = *m.IDMain
	}
	if m.Promoted != nil {
		ev.Promoted = *m.Promoted
	}
	return ev, nil
}
