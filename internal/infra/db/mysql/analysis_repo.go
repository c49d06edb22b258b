package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/alinasir85/Jouster/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts an Analysis record. The store is append-only: there is no
// update path, existing rows are never touched.
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO text_analyses
(id, original_text, title, summary, topics, keywords, sentiment, confidence_score, archive_url, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?);
`
	title := sql.NullString{String: a.Title, Valid: a.Title != ""}
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.OriginalText, title, a.Summary,
		encodeList(a.Topics), encodeList(a.Keywords),
		string(a.Sentiment), a.ConfidenceScore, a.ArchiveURL, created,
	)
	return err
}

// Get by ID
func (r *AnalysisRepository) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	const q = `
SELECT id, original_text, title, summary, topics, keywords, sentiment, confidence_score, archive_url, created_at
FROM text_analyses
WHERE id=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, id)

	var a domain.Analysis
	var title sql.NullString
	var topics, keywords string
	if err := row.Scan(
		&a.ID, &a.OriginalText, &title, &a.Summary, &topics, &keywords,
		&a.Sentiment, &a.ConfidenceScore, &a.ArchiveURL, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.Title = title.String
	a.Topics = decodeList(topics)
	a.Keywords = decodeList(keywords)
	return &a, nil
}

// Latest analyses, newest first
func (r *AnalysisRepository) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, original_text, title, summary, topics, keywords, sentiment, confidence_score, archive_url, created_at
FROM text_analyses
ORDER BY created_at DESC, id DESC
LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		var a domain.Analysis
		var title sql.NullString
		var topics, keywords string
		if err := rows.Scan(
			&a.ID, &a.OriginalText, &title, &a.Summary, &topics, &keywords,
			&a.Sentiment, &a.ConfidenceScore, &a.ArchiveURL, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		a.Title = title.String
		a.Topics = decodeList(topics)
		a.Keywords = decodeList(keywords)
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Search matches term as a case-insensitive substring against the serialized
// topics and keywords columns, newest first.
func (r *AnalysisRepository) Search(ctx context.Context, term string, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + escapeLikePattern(strings.ToLower(term)) + "%"
	const q = `
SELECT id, original_text, title, summary, topics, keywords, sentiment, confidence_score, archive_url, created_at
FROM text_analyses
WHERE LOWER(topics) LIKE ? OR LOWER(keywords) LIKE ?
ORDER BY created_at DESC, id DESC
LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		var a domain.Analysis
		var title sql.NullString
		var topics, keywords string
		if err := rows.Scan(
			&a.ID, &a.OriginalText, &title, &a.Summary, &topics, &keywords,
			&a.Sentiment, &a.ConfidenceScore, &a.ArchiveURL, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		a.Title = title.String
		a.Topics = decodeList(topics)
		a.Keywords = decodeList(keywords)
		out = append(out, &a)
	}
	return out, rows.Err()
}
