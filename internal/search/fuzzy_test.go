package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScore_EmptyInputs(t *testing.T) {
	require.Zero(t, Score("", "target"))
	require.Zero(t, Score("query", ""))
	require.Zero(t, Score("", ""))
}

func TestScore_ExactMatch(t *testing.T) {
	require.Equal(t, 1.0, Score("test", "test"))
	require.Equal(t, 1.0, Score("Palm Beach", "palm beach"), "exact match is case-insensitive")
}

func TestScore_Substring(t *testing.T) {
	// Base 0.8 plus a bonus scaled by how much of the target the query
	// covers: "palm" covers 4 of 10 runes of "Palm Beach".
	score := Score("palm", "Palm Beach")
	require.InDelta(t, 0.88, score, 1e-9)
	require.GreaterOrEqual(t, score, 0.8)

	// A longer target with the same match scores lower.
	require.Less(t, Score("palm", "Palm Beach Project"), score)

	// Substring match never reaches the exact-match score.
	require.Less(t, Score("palm beac", "palm beach"), 1.0)
}

func TestScore_SubstringCoverageOrdering(t *testing.T) {
	require.Greater(t, Score("638", "2024638"), Score("638", "2024638.001"))
}

func TestScore_EditDistanceFallback(t *testing.T) {
	// Short queries (<= 3 runes) use the lower acceptance threshold.
	require.InDelta(t, (2.0/3.0)*editDistanceWeight, Score("abc", "abd"), 1e-9)

	// A long query with no similarity at all scores zero.
	require.Zero(t, Score("abcdef", "uvwxyz"))
	require.Zero(t, Score("xyz", "completely unrelated"))
}

func TestScore_EditDistanceThreshold(t *testing.T) {
	// "palm" vs "plam" has similarity exactly 0.5, which does not exceed
	// the long-query threshold.
	require.Zero(t, Score("palm", "plam"))
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
