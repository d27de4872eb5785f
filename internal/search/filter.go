package search

import (
	"strings"

	"github.com/rgould/projdex/internal/domain/catalog"
)

// DefaultMaxResults caps result lists when the caller doesn't say otherwise.
const DefaultMaxResults = 50

// SearchFilter is the structured form of one query string: prefix filters
// plus the residual free text.
type SearchFilter struct {
	Locations     []string `json:"locations,omitempty"`
	Statuses      []string `json:"statuses,omitempty"`
	Years         []string `json:"years,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Teams         []string `json:"teams,omitempty"`
	FavoritesOnly bool     `json:"favorites_only,omitempty"`
	SearchText    string   `json:"search_text,omitempty"`
	MaxResults    int      `json:"max_results,omitempty"`
}

// ParseQuery splits a raw query on ";" and classifies each segment. A
// segment of the form "prefix:value[,value...]" feeds the matching filter
// list; a bare "fav"/"favorite"/"favorites" turns on the favorites filter;
// anything else is free text, joined in original order. There is no invalid
// query: unrecognized prefixes degrade to free text.
func ParseQuery(raw string) SearchFilter {
	filter := SearchFilter{MaxResults: DefaultMaxResults}

	var freeText []string
	for _, segment := range strings.Split(raw, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		switch strings.ToLower(segment) {
		case "fav", "favorite", "favorites":
			filter.FavoritesOnly = true
			continue
		}

		if prefix, rest, ok := strings.Cut(segment, ":"); ok {
			values := splitValues(rest)
			if len(values) > 0 && applyPrefix(&filter, strings.ToLower(strings.TrimSpace(prefix)), values) {
				continue
			}
		}

		freeText = append(freeText, segment)
	}

	filter.SearchText = strings.Join(freeText, " ")
	return filter
}

func applyPrefix(filter *SearchFilter, prefix string, values []string) bool {
	switch prefix {
	case "location", "loc":
		filter.Locations = append(filter.Locations, values...)
	case "status":
		filter.Statuses = append(filter.Statuses, values...)
	case "year":
		filter.Years = append(filter.Years, values...)
	case "tag", "tags":
		filter.Tags = append(filter.Tags, values...)
	case "team":
		filter.Teams = append(filter.Teams, values...)
	default:
		return false
	}
	return true
}

func splitValues(raw string) []string {
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// passesFilters reports whether a candidate satisfies every non-empty filter
// list. Absent categories constrain nothing. Location, status and team use
// case-insensitive substring matching against the metadata fields, year uses
// substring-of-year, and tags require exact (case-insensitive) membership.
func passesFilters(rec catalog.ProjectRecord, filter SearchFilter) bool {
	meta := rec.Metadata

	if filter.FavoritesOnly && (meta == nil || !meta.IsFavorite) {
		return false
	}
	if !anySubstring(filter.Locations, metaField(meta, func(m *catalog.ProjectMetadata) string { return m.Location })) {
		return false
	}
	if !anySubstring(filter.Statuses, metaField(meta, func(m *catalog.ProjectMetadata) string { return m.Status })) {
		return false
	}
	if !anySubstring(filter.Teams, metaField(meta, func(m *catalog.ProjectMetadata) string { return m.Team })) {
		return false
	}
	if !anySubstring(filter.Years, rec.Year) {
		return false
	}
	if len(filter.Tags) > 0 {
		if meta == nil || !anyTagMatch(filter.Tags, meta.Tags) {
			return false
		}
	}
	return true
}

func metaField(meta *catalog.ProjectMetadata, get func(*catalog.ProjectMetadata) string) string {
	if meta == nil {
		return ""
	}
	return get(meta)
}

func anySubstring(values []string, field string) bool {
	if len(values) == 0 {
		return true
	}
	field = strings.ToLower(field)
	for _, v := range values {
		if strings.Contains(field, strings.ToLower(v)) {
			return true
		}
	}
	return false
}

func anyTagMatch(wanted, have []string) bool {
	for _, w := range wanted {
		for _, h := range have {
			if strings.EqualFold(w, h) {
				return true
			}
		}
	}
	return false
}
