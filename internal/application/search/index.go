package search

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// maxSuggestions caps how many completions a single prefix lookup returns
const maxSuggestions = 10

var caseFolder = cases.Fold()

// Normalize folds a term for matching: NFKC normalization collapses
// compatibility variants (full-width characters, ligatures), then Unicode
// case folding removes case distinctions.
func Normalize(s string) string {
	return caseFolder.String(norm.NFKC.String(strings.TrimSpace(s)))
}

// SuggestionIndex is an in-memory per-tenant prefix index over catalog
// terms (product names and brands). It is rebuilt wholesale by Reindex;
// lookups between rebuilds serve the last built snapshot.
type SuggestionIndex struct {
	mu    sync.RWMutex
	terms map[string][]indexedTerm // tenantID -> sorted terms
}

type indexedTerm struct {
	folded  string
	display string
}

// NewSuggestionIndex creates an empty suggestion index
func NewSuggestionIndex() *SuggestionIndex {
	return &SuggestionIndex{terms: make(map[string][]indexedTerm)}
}

// Rebuild replaces a tenant's terms with the given display strings,
// deduplicated case-insensitively. Returns the number of indexed terms.
func (idx *SuggestionIndex) Rebuild(tenantID string, displayTerms []string) int {
	seen := make(map[string]struct{}, len(displayTerms))
	terms := make([]indexedTerm, 0, len(displayTerms))
	for _, display := range displayTerms {
		display = strings.TrimSpace(display)
		if display == "" {
			continue
		}
		folded := Normalize(display)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		terms = append(terms, indexedTerm{folded: folded, display: display})
	}

	sort.Slice(terms, func(i, j int) bool {
		return terms[i].folded < terms[j].folded
	})

	idx.mu.Lock()
	idx.terms[tenantID] = terms
	idx.mu.Unlock()

	return len(terms)
}

// Lookup returns display terms whose folded form starts with the folded
// prefix, in folded lexicographic order, at most maxSuggestions entries.
func (idx *SuggestionIndex) Lookup(tenantID, prefix string) []string {
	folded := Normalize(prefix)
	if folded == "" {
		return []string{}
	}

	idx.mu.RLock()
	terms := idx.terms[tenantID]
	idx.mu.RUnlock()

	// Terms are sorted, so matches form a contiguous run
	start := sort.Search(len(terms), func(i int) bool {
		return terms[i].folded >= folded
	})

	results := make([]string, 0, maxSuggestions)
	for i := start; i < len(terms) && len(results) < maxSuggestions; i++ {
		if !strings.HasPrefix(terms[i].folded, folded) {
			break
		}
		results = append(results, terms[i].display)
	}
	return results
}

// TermCount returns the number of indexed terms for a tenant
func (idx *SuggestionIndex) TermCount(tenantID string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.terms[tenantID])
}
