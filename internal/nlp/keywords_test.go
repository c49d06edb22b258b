package nlp

import (
	"reflect"
	"sync"
	"testing"
)

func TestExtractRanksByFrequency(t *testing.T) {
	e := NewExtractor(5)
	text := "The server crashed because the server ran short of memory. Memory pressure hit the server."

	got := e.Extract(text)
	want := []string{"server", "memory", "crashed", "ran", "short"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractRespectsLimit(t *testing.T) {
	e := NewExtractor(2)
	got := e.Extract("alpha beta gamma delta epsilon")
	if len(got) != 2 {
		t.Fatalf("expected 2 keywords, got %v", got)
	}
}

func TestExtractFewerThanLimit(t *testing.T) {
	e := NewExtractor(5)
	got := e.Extract("gopher gopher gopher")
	if len(got) != 1 || got[0] != "gopher" {
		t.Fatalf("expected [gopher], got %v", got)
	}
}

func TestExtractEmptyText(t *testing.T) {
	e := NewExtractor(5)
	for _, text := range []string{"", "   ", "\n\t", "a an of"} {
		if got := e.Extract(text); len(got) != 0 {
			t.Errorf("Extract(%q) = %v, want empty", text, got)
		}
	}
}

func TestExtractNoDuplicates(t *testing.T) {
	e := NewExtractor(10)
	got := e.Extract("rust rust gopher gopher rust gopher python")
	seen := map[string]bool{}
	for _, k := range got {
		if seen[k] {
			t.Fatalf("duplicate keyword %q in %v", k, got)
		}
		seen[k] = true
	}
}

func TestExtractDeterministicUnderConcurrency(t *testing.T) {
	e := NewExtractor(5)
	text := "storm clouds gathered over the harbor while fishing boats raced the storm back to the harbor docks"

	first := e.Extract(text)
	var wg sync.WaitGroup
	results := make([][]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Extract(text)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Extract() = %v, want %v", i, got, first)
		}
	}
}
