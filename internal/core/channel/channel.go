// Package channel models the playout channel configuration.
//
// Channel settings are owned by an external deployment process; this package
// only loads and validates them. Everything here is immutable after load and
// passed explicitly to the components that need it, never read from globals.
package channel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Channel is one playout channel's immutable configuration
type Channel struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name" validate:"required"`

	// DayStart is the wall-clock [hour, minute] at which the broadcast day rolls over
	DayStart [2]int `json:"day_start"`

	// PlayoutStorage keys into Settings.Storages
	PlayoutStorage string `json:"playout_storage" validate:"required"`

	// PlayoutDir is the subdirectory holding rendered playout files
	PlayoutDir string `json:"playout_dir" validate:"required"`
}

// Storage is a mounted storage root
type Storage struct {
	LocalPath string `json:"local_path" validate:"required"`
}

// Settings is the full site configuration the processes load at startup
type Settings struct {
	SiteName string             `json:"site_name" validate:"required"`
	Storages map[string]Storage `json:"storages" validate:"required,dive"`
	Channels []Channel          `json:"channels" validate:"required,min=1,dive"`
}

// Load reads and validates a settings JSON file
func Load(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates settings from raw JSON
func Parse(raw []byte) (*Settings, error) {
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := validator.New().Struct(&s); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}
	for _, ch := range s.Channels {
		hh, mm := ch.DayStart[0], ch.DayStart[1]
		if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
			return nil, fmt.Errorf("channel %d: day_start [%d, %d] out of range", ch.ID, hh, mm)
		}
		if _, ok := s.Storages[ch.PlayoutStorage]; !ok {
			return nil, fmt.Errorf("channel %d: unknown playout_storage %q", ch.ID, ch.PlayoutStorage)
		}
	}
	return &s, nil
}

// Channel returns the channel with the given id
func (s *Settings) Channel(id int64) (Channel, bool) {
	for _, ch := range s.Channels {
		if ch.ID == id {
			return ch, true
		}
	}
	return Channel{}, false
}

// PlayoutRoot resolves a channel's playout directory on local storage
func (s *Settings) PlayoutRoot(ch Channel) string {
	return filepath.Join(s.Storages[ch.PlayoutStorage].LocalPath, ch.PlayoutDir)
}
