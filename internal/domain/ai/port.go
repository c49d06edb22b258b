package ai

import (
	"context"

	"github.com/alinasir85/Jouster/internal/domain/analysis"
)

// Fields is the validated, coerced result of one provider call.
type Fields struct {
	Title      string
	Summary    string
	Topics     []string
	Sentiment  analysis.Sentiment
	Confidence int
}

type Client interface {
	Analyze(ctx context.Context, text string) (Fields, error)
}
