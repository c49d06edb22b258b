package analysis

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"

	domai "github.com/alinasir85/Jouster/internal/domain/ai"
	domain "github.com/alinasir85/Jouster/internal/domain/analysis"
	"github.com/alinasir85/Jouster/internal/domain/faults"
	"github.com/alinasir85/Jouster/internal/nlp"
)

const (
	// DefaultMaxTextChars guards against pathological input.
	DefaultMaxTextChars = 20000

	DefaultListLimit = 20
	MaxListLimit     = 100

	defaultRetryAttempts = 2
	defaultRetryDelay    = 500 * time.Millisecond
)

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Service implements use-cases untuk Analysis
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	Repo      domain.Repository
	AI        domai.Client
	Extractor *nlp.Extractor
	Faults    faults.Repository // optional failure log
	Archive   domain.Archive    // optional raw-text retention
	Clock     Clock

	MaxTextChars  int
	RetryAttempts uint          // provider attempts total, incl. the first call
	RetryDelay    time.Duration // base backoff between attempts
}

//
// ==== USE CASES ====
//

// Analyze runs the full pipeline: validate → extract+enrich (concurrent) →
// assemble → persist. Nothing is persisted unless every prior step
// succeeded, so no half-written records are possible.
func (s *Service) Analyze(ctx context.Context, rawText string) (*domain.Analysis, error) {
	text := strings.TrimSpace(sanitize(rawText))
	if text == "" {
		return nil, &domain.ValidationError{Reason: "empty text"}
	}
	if len(text) > s.maxTextChars() {
		return nil, &domain.ValidationError{Reason: "text too long"}
	}

	// keyword extraction has no data dependency on the provider call;
	// run them side by side
	kwCh := make(chan []string, 1)
	go func() { kwCh <- s.Extractor.Extract(text) }()

	fields, err := s.analyzeWithRetry(ctx, text)
	if err != nil {
		s.recordFault("", err)
		return nil, err
	}
	keywords := <-kwCh

	a := &domain.Analysis{
		ID:              domain.AnalysisID(uuid.New().String()),
		OriginalText:    text,
		Title:           fields.Title,
		Summary:         fields.Summary,
		Topics:          fields.Topics,
		Keywords:        keywords,
		Sentiment:       fields.Sentiment,
		ConfidenceScore: fields.Confidence,
		CreatedAt:       s.Clock.Now().UTC(),
	}

	if s.Archive != nil {
		url, aerr := s.Archive.Put(ctx, string(a.ID)+".txt", a.OriginalText)
		if aerr != nil {
			// retention is best-effort; the analysis itself still stands
			log.Printf("archive upload failed for analysis %s: %v", a.ID, aerr)
		} else {
			a.ArchiveURL = url
		}
	}

	if err := s.Repo.Save(ctx, a); err != nil {
		serr := &domain.StorageError{Err: err}
		s.recordFault(string(a.ID), serr)
		return nil, serr
	}
	return a, nil
}

// Search returns stored analyses whose topics or keywords contain term,
// newest first. A blank term is rejected before the store is consulted.
func (s *Service) Search(ctx context.Context, term string, limit int) ([]*domain.Analysis, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, &domain.ValidationError{Reason: "search term must not be blank"}
	}
	list, err := s.Repo.Search(ctx, term, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*domain.Analysis{}
	}
	return list, nil
}

// Latest ambil N analysis terakhir
func (s *Service) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	list, err := s.Repo.Latest(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*domain.Analysis{}
	}
	return list, nil
}

// Get ambil 1 analysis by id
func (s *Service) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	return s.Repo.Get(ctx, id)
}

// analyzeWithRetry retries transient provider failures only. A malformed
// response will not improve by asking again with the same prompt.
func (s *Service) analyzeWithRetry(ctx context.Context, text string) (domai.Fields, error) {
	var fields domai.Fields
	err := retry.Do(
		func() error {
			var err error
			fields, err = s.AI.Analyze(ctx, text)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.retryAttempts()),
		retry.Delay(s.retryDelay()),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var pe *domai.ProviderError
			return errors.As(err, &pe)
		}),
	)
	return fields, err
}

// recordFault writes a failure entry, best effort. Uses a fresh context so
// a canceled request still gets logged.
func (s *Service) recordFault(analysisID string, err error) {
	if s.Faults == nil {
		return
	}
	f := &faults.Fault{
		AnalysisID: analysisID,
		Stage:      faultStage(err),
		Message:    err.Error(),
		CreatedAt:  s.Clock.Now().UTC(),
	}
	if ferr := s.Faults.Save(context.Background(), f); ferr != nil {
		log.Printf("fault log write failed: %v", ferr)
	}
}

func faultStage(err error) string {
	var me *domai.MalformedResponseError
	var se *domain.StorageError
	switch {
	case errors.As(err, &me):
		return "parse"
	case errors.As(err, &se):
		return "persist"
	default:
		return "provider"
	}
}

func (s *Service) maxTextChars() int {
	if s.MaxTextChars > 0 {
		return s.MaxTextChars
	}
	return DefaultMaxTextChars
}

func (s *Service) retryAttempts() uint {
	if s.RetryAttempts > 0 {
		return s.RetryAttempts
	}
	return defaultRetryAttempts
}

func (s *Service) retryDelay() time.Duration {
	if s.RetryDelay > 0 {
		return s.RetryDelay
	}
	return defaultRetryDelay
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// sanitize strips null bytes and control characters while keeping tabs and
// newlines.
func sanitize(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' || r == '\r' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
