package service

import (
	"context"
	"fmt"
	"testing"

	perr "showrunner/internal/platform/errors"
	"showrunner/internal/services/reprise/domain"
)

type fakeRow struct {
	itemMeta  string
	assetID   int64
	assetMeta string
}

type fakeRepo struct {
	source    domain.SourceEvent
	hasSource bool
	rows      []fakeRow
}

func (f *fakeRepo) PriorEvent(context.Context, int64, int64, string) (domain.SourceEvent, bool, error) {
	return f.source, f.hasSource, nil
}

func (f *fakeRepo) ItemsWithAssets(_ context.Context, _ int64, fn func([]byte, int64, []byte) error) error {
	for _, r := range f.rows {
		var ameta []byte
		if r.assetMeta != "" {
			ameta = []byte(r.assetMeta)
		}
		if err := fn([]byte(r.itemMeta), r.assetID, ameta); err != nil {
			return err
		}
	}
	return nil
}

func collect(t *testing.T, s *Svc, ev domain.NewEvent) []domain.CloneItem {
	t.Helper()
	var out []domain.CloneItem
	if err := s.Resolve(context.Background(), ev, func(c domain.CloneItem) error {
		out = append(out, c)
		return nil
	}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return out
}

func TestResolve_SkipsExcludedFolder(t *testing.T) {
	// three items, the middle one is a commercial
	repo := &fakeRepo{
		hasSource: true,
		source:    domain.SourceEvent{ID: 5, MagicID: 77, Start: 100},
		rows: []fakeRow{
			{itemMeta: `{"id": 1, "position": 1, "id_asset": 10}`, assetID: 10, assetMeta: `{"id_folder": 3}`},
			{itemMeta: `{"id": 2, "position": 2, "id_asset": 11}`, assetID: 11, assetMeta: `{"id_folder": 9}`},
			{itemMeta: `{"id": 3, "position": 3, "id_asset": 12}`, assetID: 12, assetMeta: `{"id_folder": 3}`},
		},
	}
	s := &Svc{Repo: repo, Cfg: Config{ExcludedFolder: 9}}

	clones := collect(t, s, domain.NewEvent{ChannelID: 1, Start: 200, Title: "Star Trek IV"})
	if len(clones) != 2 {
		t.Fatalf("expected 2 clones, got %d", len(clones))
	}
	if clones[0].Position != 1 || clones[1].Position != 3 {
		t.Fatalf("order lost: %+v", clones)
	}
	for _, c := range clones {
		if _, ok := c.Meta["id"]; ok {
			t.Fatalf("clone must carry no identity: %+v", c)
		}
		if c.Asset == nil || c.Asset.FolderID == 9 {
			t.Fatalf("bad asset on clone: %+v", c)
		}
	}
}

func TestResolve_NoPriorEvent(t *testing.T) {
	s := &Svc{Repo: &fakeRepo{}, Cfg: Config{ExcludedFolder: 9}}

	clones := collect(t, s, domain.NewEvent{ChannelID: 1, Start: 200, Title: "Never Aired"})
	if len(clones) != 0 {
		t.Fatalf("expected no clones, got %d", len(clones))
	}
}

func TestResolve_VirtualItemKept(t *testing.T) {
	repo := &fakeRepo{
		hasSource: true,
		source:    domain.SourceEvent{MagicID: 77},
		rows: []fakeRow{
			{itemMeta: `{"id": 1, "position": 1}`}, // no asset at all
		},
	}
	s := &Svc{Repo: repo, Cfg: Config{ExcludedFolder: 9}}

	clones := collect(t, s, domain.NewEvent{ChannelID: 1, Start: 200, Title: "X"})
	if len(clones) != 1 || clones[0].AssetID != 0 || clones[0].Asset != nil {
		t.Fatalf("virtual item mishandled: %+v", clones)
	}
}

func TestResolve_MalformedItemAborts(t *testing.T) {
	repo := &fakeRepo{
		hasSource: true,
		source:    domain.SourceEvent{MagicID: 77},
		rows: []fakeRow{
			{itemMeta: `{"id": 1, "position": 1}`},
			{itemMeta: `{"id": 2}`}, // missing position
		},
	}
	s := &Svc{Repo: repo, Cfg: Config{ExcludedFolder: 9}}

	var n int
	err := s.Resolve(context.Background(), domain.NewEvent{ChannelID: 1, Start: 200, Title: "X"},
		func(domain.CloneItem) error { n++; return nil })
	if !perr.IsCode(err, perr.ErrorCodeParse) {
		t.Fatalf("expected Parse error, got %v", err)
	}
	if n != 1 {
		t.Fatalf("expected resolution to abort after first clone, yielded %d", n)
	}
}

func TestResolve_MalformedAssetAborts(t *testing.T) {
	repo := &fakeRepo{
		hasSource: true,
		source:    domain.SourceEvent{MagicID: 77},
		rows: []fakeRow{
			{itemMeta: `{"position": 1, "id_asset": 10}`, assetID: 10, assetMeta: `{}`}, // no id_folder
		},
	}
	s := &Svc{Repo: repo, Cfg: Config{ExcludedFolder: 9}}

	err := s.Resolve(context.Background(), domain.NewEvent{ChannelID: 1, Start: 200, Title: "X"},
		func(domain.CloneItem) error { return nil })
	if !perr.IsCode(err, perr.ErrorCodeParse) {
		t.Fatalf("expected Parse error, got %v", err)
	}
}

func TestResolve_YieldErrorStopsIteration(t *testing.T) {
	repo := &fakeRepo{
		hasSource: true,
		source:    domain.SourceEvent{MagicID: 77},
		rows: []fakeRow{
			{itemMeta: `{"position": 1}`},
			{itemMeta: `{"position": 2}`},
		},
	}
	s := &Svc{Repo: repo, Cfg: Config{ExcludedFolder: 9}}

	var n int
	err := s.Resolve(context.Background(), domain.NewEvent{ChannelID: 1, Start: 200, Title: "X"},
		func(domain.CloneItem) error {
			n++
			return fmt.Errorf("caller stopped")
		})
	if err == nil || n != 1 {
		t.Fatalf("yield error must propagate after one clone, n=%d err=%v", n, err)
	}
}
