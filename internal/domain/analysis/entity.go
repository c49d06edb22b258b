package analysis

import (
	"math"
	"strings"
	"time"
)

// ID tipe untuk Analysis
type AnalysisID string

// Sentiment enum
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment maps a raw model value onto the closed enum.
// Anything unrecognized becomes neutral.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ClampConfidence forces a confidence value into [0,100].
// Out-of-range values are clamped, not rejected. NaN fails every bounds
// comparison, so it needs its own check.
func ClampConfidence(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

// Aggregate Root: Analysis
// Records are immutable once persisted.
type Analysis struct {
	ID              AnalysisID `json:"id"`
	OriginalText    string     `json:"original_text"`
	Title           string     `json:"title,omitempty"`
	Summary         string     `json:"summary"`
	Topics          []string   `json:"topics"`
	Keywords        []string   `json:"keywords"`
	Sentiment       Sentiment  `json:"sentiment"`
	ConfidenceScore int        `json:"confidence_score"`
	ArchiveURL      string     `json:"archive_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Matches reports whether term is a case-insensitive substring of any topic
// or keyword entry. Blank terms must be rejected by the caller.
func (a *Analysis) Matches(term string) bool {
	term = strings.ToLower(term)
	for _, t := range a.Topics {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	for _, k := range a.Keywords {
		if strings.Contains(strings.ToLower(k), term) {
			return true
		}
	}
	return false
}
