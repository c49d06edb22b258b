package analysis

import "context"

// Repository port (interface untuk persistence)
// Save is an append-only insert; stored records are never updated.
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Get(ctx context.Context, id AnalysisID) (*Analysis, error)
	Latest(ctx context.Context, limit int) ([]*Analysis, error)
	Search(ctx context.Context, term string, limit int) ([]*Analysis, error)
}

// Archive port (optional retention of the submitted raw text)
type Archive interface {
	Put(ctx context.Context, key, text string) (string, error)
}
