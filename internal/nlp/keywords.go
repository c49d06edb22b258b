package nlp

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultKeywordCount caps the extracted keyword sequence.
const DefaultKeywordCount = 5

// Extractor pulls the most frequent noun-like tokens out of free text.
// Pure and deterministic: identical input always yields the same sequence,
// so concurrent use needs no locking.
type Extractor struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
	limit        int
}

func NewExtractor(limit int) *Extractor {
	if limit <= 0 {
		limit = DefaultKeywordCount
	}
	return &Extractor{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
		limit:        limit,
	}
}

// Extract returns up to the configured number of candidate nouns ranked by
// descending frequency. Ties keep first-occurrence order. Text with no
// qualifying tokens yields an empty sequence, never an error.
func (e *Extractor) Extract(text string) []string {
	tokens := e.tokenPattern.FindAllString(strings.ToLower(text), -1)

	type entry struct {
		word  string
		count int
		first int
	}
	byWord := make(map[string]*entry)
	var entries []*entry
	for i, tok := range tokens {
		if !e.nounLike(tok) {
			continue
		}
		if ent, ok := byWord[tok]; ok {
			ent.count++
			continue
		}
		ent := &entry{word: tok, count: 1, first: i}
		byWord[tok] = ent
		entries = append(entries, ent)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].first < entries[j].first
	})

	n := e.limit
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]string, 0, n)
	for _, ent := range entries[:n] {
		out = append(out, ent.word)
	}
	return out
}

// nounLike is a cheap part-of-speech stand-in: function words and common
// verbs are listed as stopwords, very short tokens and -ly adverbs are
// rejected.
func (e *Extractor) nounLike(tok string) bool {
	if len(tok) <= 2 {
		return false
	}
	if len(tok) > 4 && strings.HasSuffix(tok, "ly") {
		return false
	}
	_, stop := e.stopwords[tok]
	return !stop
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"the", "and", "but", "for", "nor", "yet", "are", "was", "were", "been",
		"being", "have", "has", "had", "having", "does", "did", "doing", "will",
		"would", "shall", "should", "can", "could", "may", "might", "must",
		"this", "that", "these", "those", "there", "here", "where", "when",
		"which", "what", "who", "whom", "whose", "why", "how", "all", "any",
		"both", "each", "few", "more", "most", "other", "some", "such", "not",
		"only", "own", "same", "than", "too", "very", "just", "now", "then",
		"once", "about", "above", "after", "again", "against", "below",
		"between", "down", "during", "from", "further", "into", "out", "over",
		"through", "under", "until", "while", "with", "without", "you", "your",
		"yours", "they", "them", "their", "theirs", "she", "her", "hers", "him",
		"his", "its", "our", "ours", "also", "because", "before",
		"get", "got", "make", "made", "take", "took", "come", "came", "goes",
		"went", "say", "said", "see", "saw", "know", "knew", "think", "thought",
		"want", "like", "use", "used", "one", "two", "way", "even", "new",
		"really", "still", "much", "many", "well", "back", "able",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
