package memory

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	domain "github.com/alinasir85/Jouster/internal/domain/analysis"
)

func seedRepo(t *testing.T) *Repository {
	t.Helper()
	r := NewRepository()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []*domain.Analysis{
		{
			ID:        "a1",
			Summary:   "Chip makers ramp production.",
			Topics:    []string{"tech", "hardware"},
			Keywords:  []string{"chips", "fabs"},
			Sentiment: domain.SentimentPositive,
			CreatedAt: base,
		},
		{
			ID:        "a2",
			Summary:   "League final goes to overtime.",
			Topics:    []string{"sports"},
			Keywords:  []string{"final", "overtime"},
			Sentiment: domain.SentimentNeutral,
			CreatedAt: base.Add(time.Hour),
		},
		{
			ID:        "a3",
			Summary:   "New framework ships with breaking changes.",
			Topics:    []string{"Technology", "software"},
			Keywords:  []string{"framework", "release"},
			Sentiment: domain.SentimentNegative,
			CreatedAt: base.Add(2 * time.Hour),
		},
	}
	for _, a := range records {
		if err := r.Save(context.Background(), a); err != nil {
			t.Fatalf("Save(%s) error = %v", a.ID, err)
		}
	}
	return r
}

func TestSearchNewestFirst(t *testing.T) {
	r := seedRepo(t)

	got, err := r.Search(context.Background(), "tech", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Search() returned %d records, want 2", len(got))
	}
	if got[0].ID != "a3" || got[1].ID != "a1" {
		t.Errorf("order = [%s %s], want [a3 a1]", got[0].ID, got[1].ID)
	}
}

func TestSearchMatchesKeywords(t *testing.T) {
	r := seedRepo(t)

	got, err := r.Search(context.Background(), "OVERTIME", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "a2" {
		t.Fatalf("Search() = %v, want the sports record", got)
	}
}

func TestSearchNoMatches(t *testing.T) {
	r := seedRepo(t)
	got, err := r.Search(context.Background(), "gardening", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Search() = %v, want empty", got)
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	r := seedRepo(t)
	got, err := r.Search(context.Background(), "tech", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "a3" {
		t.Fatalf("Search() = %v, want just a3", got)
	}
}

func TestLatestTieBreaksOnID(t *testing.T) {
	r := NewRepository()
	ts := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, id := range []string{"b1", "b2"} {
		if err := r.Save(context.Background(), &domain.Analysis{ID: domain.AnalysisID(id), CreatedAt: ts}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	got, err := r.Latest(context.Background(), 10)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if got[0].ID != "b2" || got[1].ID != "b1" {
		t.Errorf("order = [%s %s], want [b2 b1]", got[0].ID, got[1].ID)
	}
}

func TestGetMissing(t *testing.T) {
	r := NewRepository()
	_, err := r.Get(context.Background(), "nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("Get() error = %v, want sql.ErrNoRows", err)
	}
}

func TestStoredRecordsAreIsolated(t *testing.T) {
	r := NewRepository()
	a := &domain.Analysis{ID: "c1", Topics: []string{"tech"}, CreatedAt: time.Now()}
	if err := r.Save(context.Background(), a); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	a.Topics[0] = "mutated"

	got, err := r.Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Topics[0] != "tech" {
		t.Fatalf("stored record shares memory with caller: %v", got.Topics)
	}
}
