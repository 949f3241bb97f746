package categorization

import (
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/alixwilliam/finplan/internal/domain/rules"
)

// Suggestion is a close-match bucket proposal for a category label that
// matched no configured keyword. Suggestions never change the substring
// matching semantics; they only help users extend their keyword lists after
// a misspelled import ("Scolarite" vs "Scolarité").
type Suggestion struct {
	Keyword  string       // the configured keyword that almost matched
	Bucket   rules.Bucket // the bucket that keyword maps to
	Distance int          // Levenshtein distance (lower = closer)
}

// FuzzyMatcher ranks unknown category labels against the configured bucket
// keywords using Levenshtein distance.
type FuzzyMatcher struct {
	patterns []fuzzyPattern
	mu       sync.RWMutex
}

type fuzzyPattern struct {
	keyword string
	bucket  rules.Bucket
}

// NewFuzzyMatcher creates a fuzzy matcher from a classification configuration.
func NewFuzzyMatcher(cfg rules.Config) *FuzzyMatcher {
	fm := &FuzzyMatcher{}
	fm.Build(cfg)
	return fm
}

// Build reconstructs the matcher from the configuration's keyword lists.
func (fm *FuzzyMatcher) Build(cfg rules.Config) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	fm.patterns = fm.patterns[:0]
	for _, bucket := range rules.MatchOrder {
		for _, keyword := range cfg.BucketKeywords[bucket] {
			keyword = strings.TrimSpace(keyword)
			if keyword == "" {
				continue
			}
			fm.patterns = append(fm.patterns, fuzzyPattern{keyword: keyword, bucket: bucket})
		}
	}
}

// Suggest returns bucket suggestions for an unmatched category, closest
// first, capped at limit. Returns nil when nothing is remotely close.
func (fm *FuzzyMatcher) Suggest(category string, limit int) []Suggestion {
	fm.mu.RLock()
	defer fm.mu.RUnlock()

	category = strings.TrimSpace(category)
	if category == "" || len(fm.patterns) == 0 {
		return nil
	}

	var suggestions []Suggestion
	for _, p := range fm.patterns {
		// RankMatchNormalizedFold is accent- and case-insensitive, which
		// matters for French labels.
		distance := fuzzy.RankMatchNormalizedFold(category, p.keyword)
		if distance < 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Keyword:  p.keyword,
			Bucket:   p.bucket,
			Distance: distance,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Distance < suggestions[j].Distance
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
