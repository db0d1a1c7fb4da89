package service

import (
	"context"
	"testing"
	"time"

	"showrunner/internal/services/retention/domain"

	"github.com/spf13/afero"
)

func TestSweep_EndToEnd(t *testing.T) {
	settings, ch := testChannel(t)
	now := time.Unix(day(100), 0)

	// asset 42: 500 MB playout rendition, not scheduled, last aired 20 days ago
	repo := &fakeRepo{
		assets:   []domain.PlayoutAsset{{ID: 42, Size: 500000000}},
		lastRun:  map[int64]int64{42: day(80)},
		statuses: map[int64]int64{42: 500000000},
	}
	fs := afero.NewMemMapFs()
	path := PlayoutPath(settings.PlayoutRoot(ch), settings.SiteName, 42)
	if err := afero.WriteFile(fs, path, make([]byte, 16), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s := &Sweeper{
		Planner:   &Planner{Repo: repo, Windows: domain.DefaultWindows(), Now: func() time.Time { return now }},
		Reclaimer: &Reclaimer{Repo: repo, FS: fs, Settings: settings},
		Settings:  settings,
	}

	sum, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if sum.Removed != 1 || sum.BytesFreed != 500000000 || sum.Failed != 0 {
		t.Fatalf("summary = %+v", sum)
	}
	if exists, _ := afero.Exists(fs, path); exists {
		t.Fatalf("playout file still present after sweep")
	}
	if len(sum.Channels) != 1 || sum.Channels[0].ChannelName != "A11" {
		t.Fatalf("per-channel summary missing: %+v", sum.Channels)
	}
}

func TestSweep_DryRunTouchesNothing(t *testing.T) {
	settings, ch := testChannel(t)
	now := time.Unix(day(100), 0)

	repo := &fakeRepo{
		assets:   []domain.PlayoutAsset{{ID: 42, Size: 100}},
		statuses: map[int64]int64{42: 100},
	}
	fs := afero.NewMemMapFs()
	path := PlayoutPath(settings.PlayoutRoot(ch), settings.SiteName, 42)
	if err := afero.WriteFile(fs, path, make([]byte, 16), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s := &Sweeper{
		Planner:   &Planner{Repo: repo, Windows: domain.DefaultWindows(), Now: func() time.Time { return now }},
		Reclaimer: &Reclaimer{Repo: repo, FS: fs, Settings: settings},
		Settings:  settings,
		DryRun:    true,
	}

	sum, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if sum.Removed != 0 || sum.Channels[0].Planned != 1 {
		t.Fatalf("dry run summary = %+v", sum)
	}
	if exists, _ := afero.Exists(fs, path); !exists {
		t.Fatalf("dry run must not delete files")
	}
	if _, ok := repo.statuses[42]; !ok {
		t.Fatalf("dry run must not clear statuses")
	}
}

func TestSweep_FailedCandidateIsCountedAndSkipped(t *testing.T) {
	settings, ch := testChannel(t)
	now := time.Unix(day(100), 0)

	repo := &fakeRepo{
		assets: []domain.PlayoutAsset{
			{ID: 1, Size: 100},
			{ID: 2, Size: 200},
		},
		// only asset 2 still has a status; asset 1's reclaim hits a precondition
		statuses: map[int64]int64{2: 200},
	}
	fs := afero.NewMemMapFs()
	path := PlayoutPath(settings.PlayoutRoot(ch), settings.SiteName, 2)
	if err := afero.WriteFile(fs, path, make([]byte, 16), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s := &Sweeper{
		Planner:   &Planner{Repo: repo, Windows: domain.DefaultWindows(), Now: func() time.Time { return now }},
		Reclaimer: &Reclaimer{Repo: repo, FS: fs, Settings: settings},
		Settings:  settings,
	}

	sum, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if sum.Failed != 1 || sum.Removed != 1 || sum.BytesFreed != 200 {
		t.Fatalf("summary = %+v", sum)
	}
}
