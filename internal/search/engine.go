// Package search turns a raw query string and an in-memory catalog snapshot
// into a ranked, capped result list. The engine reads no ambient state: the
// snapshot is always passed in.
package search

import (
	"context"
	"sort"
	"strings"

	"github.com/rgould/projdex/internal/domain/catalog"
)

// Field weights for relevance ranking. Number fields outrank the name so a
// typed project number always surfaces its project first.
const (
	fullNumberWeight  = 1.2
	shortNumberWeight = 1.1
	nameWeight        = 1.0
	favoriteBoost     = 1.1
)

// cancelCheckInterval is how many candidates are scored between context
// checks; the levenshtein fallback makes per-candidate work non-trivial.
const cancelCheckInterval = 64

// SearchResult pairs a catalog record with its relevance score and the
// fields that literally contain the search text (for UI highlighting).
type SearchResult struct {
	Project       catalog.ProjectRecord `json:"project"`
	Score         float64               `json:"score"`
	MatchedFields []string              `json:"matched_fields,omitempty"`
}

// Engine ranks catalog snapshots against parsed queries.
type Engine struct{}

// NewEngine creates a search engine.
func NewEngine() *Engine {
	return &Engine{}
}

// SearchQuery parses a raw query string and runs it against the snapshot.
func (e *Engine) SearchQuery(ctx context.Context, records []catalog.ProjectRecord, raw string) ([]SearchResult, error) {
	return e.Search(ctx, records, ParseQuery(raw))
}

// Search applies the structured filters, scores the survivors against the
// free text, and returns the top MaxResults by descending score. The sort is
// stable: ties keep catalog order, so output is deterministic. With empty
// free text every filtered-in candidate scores 1.0 and filters alone decide
// membership.
func (e *Engine) Search(ctx context.Context, records []catalog.ProjectRecord, filter SearchFilter) ([]SearchResult, error) {
	maxResults := filter.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	text := strings.TrimSpace(filter.SearchText)

	var results []SearchResult
	for i, rec := range records {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if !passesFilters(rec, filter) {
			continue
		}

		score := relevance(rec, text)
		if score <= 0 {
			continue
		}

		results = append(results, SearchResult{
			Project:       rec,
			Score:         score,
			MatchedFields: matchedFields(rec, text),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// relevance is the best weighted fuzzy score across the number and name
// fields, with the favorite boost applied last and the result clamped to 1.
func relevance(rec catalog.ProjectRecord, text string) float64 {
	score := 1.0
	if text != "" {
		score = fullNumberWeight * Score(text, rec.FullNumber)
		if s := shortNumberWeight * Score(text, rec.ShortNumber); s > score {
			score = s
		}
		if s := nameWeight * Score(text, rec.Name); s > score {
			score = s
		}
		if score <= 0 {
			return 0
		}
	}

	if rec.Metadata != nil && rec.Metadata.IsFavorite {
		score *= favoriteBoost
	}
	if score > 1 {
		score = 1
	}
	return score
}

// matchedFields reports which fields contain the search text as a literal
// case-insensitive substring, independent of the fuzzy score.
func matchedFields(rec catalog.ProjectRecord, text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var fields []string
	if strings.Contains(strings.ToLower(rec.FullNumber), lower) {
		fields = append(fields, "full_number")
	}
	if strings.Contains(strings.ToLower(rec.ShortNumber), lower) {
		fields = append(fields, "short_number")
	}
	if strings.Contains(strings.ToLower(rec.Name), lower) {
		fields = append(fields, "name")
	}
	return fields
}
