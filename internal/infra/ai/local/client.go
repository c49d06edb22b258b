package local

import (
	"context"
	"regexp"
	"strings"

	domai "github.com/alinasir85/Jouster/internal/domain/ai"
	"github.com/alinasir85/Jouster/internal/domain/analysis"
	"github.com/alinasir85/Jouster/internal/nlp"
)

// Client is an offline stand-in for a real provider: the summary is the
// leading sentences, topics come from the keyword extractor, sentiment from
// a small lexicon. It lets the service run without an API key and gives
// tests a deterministic provider.
type Client struct {
	extractor *nlp.Extractor
	sentences *regexp.Regexp
}

func NewClient() *Client {
	return &Client{
		extractor: nlp.NewExtractor(3),
		sentences: regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

func (c *Client) Analyze(ctx context.Context, text string) (domai.Fields, error) {
	if err := ctx.Err(); err != nil {
		return domai.Fields{}, &domai.ProviderError{Err: err}
	}

	summary := c.leadingSentences(text, 2)
	topics := c.extractor.Extract(text)
	return domai.Fields{
		Summary:    summary,
		Topics:     topics,
		Sentiment:  scoreSentiment(text),
		Confidence: confidence(text, summary, topics),
	}, nil
}

func (c *Client) leadingSentences(text string, n int) string {
	sentences := c.sentences.FindAllString(text, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(text)
	}
	if n > len(sentences) {
		n = len(sentences)
	}
	var out []string
	for _, s := range sentences[:n] {
		out = append(out, strings.TrimSpace(s))
	}
	return strings.Join(out, " ")
}

var positiveWords = []string{"good", "great", "excellent", "happy", "love", "success", "win", "improve", "growth", "best"}
var negativeWords = []string{"bad", "terrible", "awful", "sad", "hate", "failure", "lose", "decline", "worst", "crisis"}

func scoreSentiment(text string) analysis.Sentiment {
	lower := strings.ToLower(text)
	score := 0
	for _, w := range positiveWords {
		score += strings.Count(lower, w)
	}
	for _, w := range negativeWords {
		score -= strings.Count(lower, w)
	}
	switch {
	case score > 0:
		return analysis.SentimentPositive
	case score < 0:
		return analysis.SentimentNegative
	default:
		return analysis.SentimentNeutral
	}
}

// confidence is a naive score from text characteristics: longer inputs and
// topics that actually occur in the text push it up.
func confidence(text, summary string, topics []string) int {
	score := 50

	words := len(strings.Fields(text))
	if words > 100 {
		score += 10
	} else if words < 20 {
		score -= 10
	}

	if len(summary) > 20 && len(summary) < 200 {
		score += 10
	}

	lower := strings.ToLower(text)
	for _, t := range topics {
		if strings.Contains(lower, strings.ToLower(t)) {
			score += 5
		}
	}

	return analysis.ClampConfidence(float64(score))
}
