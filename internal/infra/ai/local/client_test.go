package local

import (
	"context"
	"testing"

	"github.com/alinasir85/Jouster/internal/domain/analysis"
)

func TestAnalyzeSummaryIsLeadingSentences(t *testing.T) {
	c := NewClient()
	text := "The reactor came online today. Engineers monitored output closely. Nothing unusual happened after that."

	got, err := c.Analyze(context.Background(), text)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	want := "The reactor came online today. Engineers monitored output closely."
	if got.Summary != want {
		t.Errorf("Summary = %q, want %q", got.Summary, want)
	}
	if len(got.Topics) == 0 {
		t.Errorf("expected topics, got none")
	}
}

func TestAnalyzeTextWithoutPunctuation(t *testing.T) {
	c := NewClient()
	got, err := c.Analyze(context.Background(), "just a fragment with no terminator")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.Summary != "just a fragment with no terminator" {
		t.Errorf("Summary = %q, want whole text", got.Summary)
	}
}

func TestScoreSentiment(t *testing.T) {
	tests := []struct {
		text string
		want analysis.Sentiment
	}{
		{"What a great success, the best outcome.", analysis.SentimentPositive},
		{"A terrible failure amid the crisis.", analysis.SentimentNegative},
		{"The committee met on Tuesday.", analysis.SentimentNeutral},
		{"Great progress despite one bad quarter and one awful delay.", analysis.SentimentNegative},
	}
	for _, tt := range tests {
		if got := scoreSentiment(tt.text); got != tt.want {
			t.Errorf("scoreSentiment(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestConfidenceBounds(t *testing.T) {
	got := confidence("tiny", "tiny", nil)
	if got < 0 || got > 100 {
		t.Fatalf("confidence out of range: %d", got)
	}
	// short text, short summary, no topics: base 50 minus the short-text penalty
	if got != 40 {
		t.Errorf("confidence = %d, want 40", got)
	}
}

func TestAnalyzeCanceledContext(t *testing.T) {
	c := NewClient()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Analyze(ctx, "text"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
