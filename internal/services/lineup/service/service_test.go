package service

import (
	"context"
	"testing"
	"time"

	"showrunner/internal/core/channel"
	perr "showrunner/internal/platform/errors"
	"showrunner/internal/services/lineup/domain"
)

type fakeRepo struct {
	from, to int64
	events   []domain.Event
	err      error
}

func (f *fakeRepo) EventsInWindow(_ context.Context, _ int64, from, to int64) ([]domain.Event, error) {
	f.from, f.to = from, to
	return f.events, f.err
}

func testSettings(t *testing.T) *channel.Settings {
	t.Helper()
	s, err := channel.Parse([]byte(`{
		"site_name": "nbla",
		"storages": {"playout": {"local_path": "/mnt/playout"}},
		"channels": [
			{"id": 1, "name": "A11", "day_start": [6, 0], "playout_storage": "playout", "playout_dir": "media.dir"}
		]
	}`))
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	return s
}

func TestLineup_EarlyMorningWindow(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	now := time.Date(2026, 3, 10, 3, 0, 0, 0, loc)

	repo := &fakeRepo{events: []domain.Event{
		{ID: 10, Start: 1000, Title: "Star Trek IV", Subtitle: "The voyage home", Promoted: true},
		{ID: 11, Start: 2000, Title: "News"},
	}}
	s := &Svc{Repo: repo, Settings: testSettings(t), Now: func() time.Time { return now }}

	out, err := s.Lineup(context.Background(), 1)
	if err != nil {
		t.Fatalf("Lineup: %v", err)
	}

	wantFrom := time.Date(2026, 3, 10, 6, 0, 0, 0, loc).Unix() - 24*3600
	if repo.from != wantFrom {
		t.Fatalf("window start = %d, want %d (yesterday 06:00)", repo.from, wantFrom)
	}
	if repo.to != wantFrom+604800 {
		t.Fatalf("window end = %d, want %d", repo.to, wantFrom+604800)
	}

	if out.ChannelName != "A11" || out.ChannelID != 1 {
		t.Fatalf("unexpected channel header: %+v", out)
	}
	if len(out.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(out.Events))
	}
	if out.Events[0].Title != "Star Trek IV" || !out.Events[0].Promoted {
		t.Fatalf("unexpected first event: %+v", out.Events[0])
	}
}

func TestLineup_UnknownChannel(t *testing.T) {
	s := &Svc{Repo: &fakeRepo{}, Settings: testSettings(t), Now: time.Now}

	_, err := s.Lineup(context.Background(), 42)
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestLineup_EmptySchedule(t *testing.T) {
	s := &Svc{Repo: &fakeRepo{}, Settings: testSettings(t), Now: time.Now}

	out, err := s.Lineup(context.Background(), 1)
	if err != nil {
		t.Fatalf("Lineup: %v", err)
	}
	if len(out.Events) != 0 {
		t.Fatalf("expected empty lineup, got %d events", len(out.Events))
	}
}
