package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	domain "github.com/alinasir85/Jouster/internal/domain/analysis"
)

// Repository is an in-memory analysis store. It backs tests and lets the
// service run without a database. Inserts are atomic under the mutex, so
// concurrent analyses never corrupt ordering.
type Repository struct {
	mu    sync.RWMutex
	items []*domain.Analysis
}

func NewRepository() *Repository { return &Repository{} }

func (r *Repository) Save(ctx context.Context, a *domain.Analysis) error {
	cp := clone(a)
	r.mu.Lock()
	r.items = append(r.items, cp)
	r.mu.Unlock()
	return nil
}

func (r *Repository) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if a.ID == id {
			return clone(a), nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *Repository) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	out := r.snapshot()
	sortNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Repository) Search(ctx context.Context, term string, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []*domain.Analysis
	for _, a := range r.snapshot() {
		if a.Matches(term) {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Repository) snapshot() []*domain.Analysis {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Analysis, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, clone(a))
	}
	return out
}

func sortNewestFirst(items []*domain.Analysis) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}

// clone keeps stored records immutable: callers never share slices with the
// store.
func clone(a *domain.Analysis) *domain.Analysis {
	cp := *a
	cp.Topics = append([]string(nil), a.Topics...)
	cp.Keywords = append([]string(nil), a.Keywords...)
	return &cp
}
