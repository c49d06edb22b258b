package analysis

import (
	"math"
	"testing"
)

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-1, 0},
		{0, 0},
		{49.4, 49},
		{49.6, 50},
		{100, 100},
		{150, 100},
		{math.NaN(), 0},
		{math.Inf(1), 100},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		if got := ClampConfidence(tt.in); got != tt.want {
			t.Errorf("ClampConfidence(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMatches(t *testing.T) {
	a := &Analysis{
		Topics:   []string{"Machine Learning", "finance"},
		Keywords: []string{"forecast", "quarterly"},
	}

	tests := []struct {
		term string
		want bool
	}{
		{"machine learning", true},
		{"LEARN", true},
		{"finance", true},
		{"cast", true}, // substring of keyword "forecast"
		{"QUART", true},
		{"sports", false},
		{"learnings", false},
	}
	for _, tt := range tests {
		if got := a.Matches(tt.term); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestMatchesEmptyRecord(t *testing.T) {
	a := &Analysis{}
	if a.Matches("anything") {
		t.Fatal("empty record should not match")
	}
}
