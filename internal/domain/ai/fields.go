package ai

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/alinasir85/Jouster/internal/domain/analysis"
)

// fallbackConfidence is assigned when the model omits the score or returns
// something non-numeric.
const fallbackConfidence = 0

// rawFields mirrors the JSON contract the prompt demands. confidence_score
// stays raw because models return numbers, numeric strings, or garbage.
type rawFields struct {
	Title      *string         `json:"title"`
	Summary    *string         `json:"summary"`
	Topics     []any           `json:"topics"`
	Sentiment  string          `json:"sentiment"`
	Confidence json.RawMessage `json:"confidence_score"`
}

// ParseResponse turns one raw completion into validated Fields.
// A payload that is not JSON, or that lacks a summary, yields a
// *MalformedResponseError carrying the raw reply.
func ParseResponse(raw string) (Fields, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return Fields{}, &MalformedResponseError{Reason: "no JSON object in response", Raw: raw}
	}

	var rf rawFields
	if err := json.Unmarshal([]byte(payload), &rf); err != nil {
		return Fields{}, &MalformedResponseError{Reason: "invalid JSON: " + err.Error(), Raw: raw}
	}
	if rf.Summary == nil || strings.TrimSpace(*rf.Summary) == "" {
		return Fields{}, &MalformedResponseError{Reason: "summary missing", Raw: raw}
	}

	f := Fields{
		Summary:    strings.TrimSpace(*rf.Summary),
		Topics:     coerceTopics(rf.Topics),
		Sentiment:  analysis.ParseSentiment(rf.Sentiment),
		Confidence: coerceConfidence(rf.Confidence),
	}
	if rf.Title != nil {
		f.Title = strings.TrimSpace(*rf.Title)
	}
	return f, nil
}

// extractJSON slices out the outermost {...} so stray prose or code fences
// around the object do not break parsing.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func coerceConfidence(raw json.RawMessage) int {
	if len(raw) == 0 {
		return fallbackConfidence
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return analysis.ClampConfidence(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		// ParseFloat accepts "NaN" and "Inf"; those are garbage here, not
		// out-of-range numbers, so they get the fallback instead of a clamp
		v, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if perr == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return analysis.ClampConfidence(v)
		}
	}
	return fallbackConfidence
}

// coerceTopics keeps string entries only, deduplicated in insertion order.
func coerceTopics(items []any) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
