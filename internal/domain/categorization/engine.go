package categorization

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"

	"github.com/alixwilliam/finplan/internal/domain/rules"
)

// BucketMatch is a single keyword hit with the bucket it maps to.
type BucketMatch struct {
	Keyword  string       // the configured keyword that matched
	Bucket   rules.Bucket // the 50/30/20 bucket to assign
	Priority int          // higher priority buckets win (Needs > Wants > Savings)
}

// Engine assigns 50/30/20 buckets with a single Aho-Corasick pass over the
// category text. All configured keywords across every bucket are matched
// simultaneously; with the fixed bucket priority order this is equivalent to
// "first matching bucket wins in Needs → Wants → Savings/Debt order".
// Time complexity is O(n + m) regardless of keyword count.
type Engine struct {
	matcher  *ahocorasick.Matcher
	patterns []string
	metadata [][]BucketMatch // per pattern; a keyword may map to several buckets
	mu       sync.RWMutex    // protects rebuilding the matcher
}

// NewEngine builds an engine from a classification configuration.
func NewEngine(cfg rules.Config) *Engine {
	e := &Engine{}
	e.Build(cfg)
	return e
}

// Build reconstructs the matcher from the configuration's bucket keyword
// lists. Call it again whenever the configuration changes; buckets are
// derived views, never stored state.
func (e *Engine) Build(cfg rules.Config) {
	e.mu.Lock()
	defer e.mu.Unlock()

	patternToIndex := make(map[string]int)
	var patterns []string
	var metadata [][]BucketMatch

	addKeyword := func(keyword string, match BucketMatch) {
		normalized := strings.ToUpper(strings.TrimSpace(keyword))
		if normalized == "" {
			return
		}
		if idx, exists := patternToIndex[normalized]; exists {
			metadata[idx] = append(metadata[idx], match)
			return
		}
		patternToIndex[normalized] = len(patterns)
		patterns = append(patterns, normalized)
		metadata = append(metadata, []BucketMatch{match})
	}

	// Priority mirrors the fixed matching order: earlier buckets outrank
	// later ones.
	for i, bucket := range rules.MatchOrder {
		priority := len(rules.MatchOrder) - i
		for _, keyword := range cfg.BucketKeywords[bucket] {
			addKeyword(keyword, BucketMatch{
				Keyword:  keyword,
				Bucket:   bucket,
				Priority: priority,
			})
		}
	}

	e.patterns = patterns
	e.metadata = metadata

	if len(patterns) > 0 {
		bytePatterns := make([][]byte, len(patterns))
		for i, p := range patterns {
			bytePatterns[i] = []byte(p)
		}
		e.matcher = ahocorasick.NewMatcher(bytePatterns)
	} else {
		e.matcher = nil
	}
}

// Match returns the bucket for a transaction category. Categories matching no
// configured keyword fall into the Other bucket.
func (e *Engine) Match(category string) rules.Bucket {
	if match := e.bestMatch(category); match != nil {
		return match.Bucket
	}
	return rules.BucketOther
}

// bestMatch finds the highest priority keyword hit, nil when nothing matches.
func (e *Engine) bestMatch(category string) *BucketMatch {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.matcher == nil || len(e.patterns) == 0 {
		return nil
	}

	normalized := strings.ToUpper(strings.TrimSpace(category))
	if normalized == "" {
		return nil
	}

	matches := e.matcher.Match([]byte(normalized))
	if len(matches) == 0 {
		return nil
	}

	var best *BucketMatch
	for _, idx := range matches {
		if idx < 0 || idx >= len(e.metadata) {
			continue
		}
		for i := range e.metadata[idx] {
			match := &e.metadata[idx][i]
			if best == nil || match.Priority > best.Priority {
				matchCopy := *match
				best = &matchCopy
			}
		}
	}
	return best
}

// MatchBatch buckets multiple categories with the matcher locked once.
func (e *Engine) MatchBatch(categories []string) []rules.Bucket {
	buckets := make([]rules.Bucket, len(categories))
	for i, category := range categories {
		buckets[i] = e.Match(category)
	}
	return buckets
}

// PatternCount returns the number of keywords loaded in the engine.
func (e *Engine) PatternCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.patterns)
}

// IsEmpty returns true if the engine has no keywords loaded.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.matcher == nil || len(e.patterns) == 0
}
