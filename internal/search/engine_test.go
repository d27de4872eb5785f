package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rgould/projdex/internal/domain/catalog"
)

func project(fullNumber, shortNum, name string) catalog.ProjectRecord {
	return catalog.ProjectRecord{
		ID: catalog.ProjectID(fullNumber),
		ProjectIdentity: catalog.ProjectIdentity{
			FullNumber:  fullNumber,
			ShortNumber: shortNum,
			Year:        "2024",
		},
		Name:          name,
		DriveLocation: catalog.DriveA,
	}
}

func withMeta(rec catalog.ProjectRecord, meta catalog.ProjectMetadata) catalog.ProjectRecord {
	meta.ProjectID = rec.ID
	rec.Metadata = &meta
	return rec
}

func TestSearch_RankingOrder(t *testing.T) {
	records := []catalog.ProjectRecord{
		project("2024638.001", "638", "Palm Beach Project"),
		project("2024639.001", "639", "Miami Office"),
		project("2024640.001", "640", "Palm Coast Building"),
	}

	results, err := NewEngine().SearchQuery(context.Background(), records, "palm")
	require.NoError(t, err)

	// Both "Palm" projects match; "Miami Office" has no affinity to the
	// query at all and is dropped. The shorter name covers more of the
	// target, so Palm Beach ranks first.
	require.Len(t, results, 2)
	require.Equal(t, "2024638.001", results[0].Project.FullNumber)
	require.Equal(t, "2024640.001", results[1].Project.FullNumber)
	require.Greater(t, results[0].Score, results[1].Score)
}

func TestSearch_NumberFieldsOutrankName(t *testing.T) {
	records := []catalog.ProjectRecord{
		project("2024638.001", "638", "Office 638 Annex"),
	}

	results, err := NewEngine().SearchQuery(context.Background(), records, "638")
	require.NoError(t, err)
	require.Len(t, results, 1)

	// The weighted full-number score beats the name score for the same text.
	nameOnly := nameWeight * Score("638", "Office 638 Annex")
	require.Greater(t, results[0].Score, nameOnly)
}

func TestSearch_EmptyTextScoresEveryoneEqually(t *testing.T) {
	records := []catalog.ProjectRecord{
		project("2024638.001", "638", "Palm Beach Project"),
		project("2024639.001", "639", "Miami Office"),
	}

	results, err := NewEngine().SearchQuery(context.Background(), records, "")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Filters alone decide membership; order is catalog order.
	require.Equal(t, "2024638.001", results[0].Project.FullNumber)
	require.Equal(t, "2024639.001", results[1].Project.FullNumber)
	require.Equal(t, 1.0, results[0].Score)
	require.Equal(t, 1.0, results[1].Score)
}

func TestSearch_FavoriteBoost(t *testing.T) {
	plain := project("2024638.001", "638", "Palm Beach Project")
	fav := withMeta(project("2024639.001", "639", "Palm Beach Project"), catalog.ProjectMetadata{IsFavorite: true})

	results, err := NewEngine().SearchQuery(context.Background(), []catalog.ProjectRecord{plain, fav}, "palm")
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Equal(t, "2024639.001", results[0].Project.FullNumber, "favorite ranks first")
	base := results[1].Score
	require.InDelta(t, base*favoriteBoost, results[0].Score, 1e-9)
}

func TestSearch_ScoreClampedToOne(t *testing.T) {
	fav := withMeta(project("2024638.001", "638", "palm"), catalog.ProjectMetadata{IsFavorite: true})

	results, err := NewEngine().SearchQuery(context.Background(), []catalog.ProjectRecord{fav}, "palm")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 1.0, results[0].Score)
}

func TestSearch_ResultCap(t *testing.T) {
	var records []catalog.ProjectRecord
	// 100 exact-name matches among 900 weaker ones.
	for i := 0; i < 1000; i++ {
		name := "Palm Beach Project Offices"
		if i%10 == 0 {
			name = "palm"
		}
		records = append(records, project(fmt.Sprintf("2024%03d.001", i), fmt.Sprintf("%03d", i), name))
	}

	filter := ParseQuery("palm")
	filter.MaxResults = 50

	results, err := NewEngine().Search(context.Background(), records, filter)
	require.NoError(t, err)
	require.Len(t, results, 50)

	// The cap keeps the highest-scoring candidates: all 50 are the exact
	// matches, not the weaker substring matches.
	for _, res := range results {
		require.Equal(t, "palm", res.Project.Name)
	}
}

func TestSearch_StableTieOrder(t *testing.T) {
	records := []catalog.ProjectRecord{
		project("2024638.001", "638", "Palm Beach"),
		project("2024639.001", "639", "Palm Beach"),
		project("2024640.001", "640", "Palm Beach"),
	}

	results, err := NewEngine().SearchQuery(context.Background(), records, "palm")
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Equal scores keep catalog order, so output is deterministic.
	require.Equal(t, "2024638.001", results[0].Project.FullNumber)
	require.Equal(t, "2024639.001", results[1].Project.FullNumber)
	require.Equal(t, "2024640.001", results[2].Project.FullNumber)
}

func TestSearch_Filters(t *testing.T) {
	miami := withMeta(project("2024638.001", "638", "Palm Beach Project"), catalog.ProjectMetadata{
		Location: "Miami",
		Status:   "Active",
		Team:     "Studio North",
		Tags:     []string{"Hospitality"},
	})
	orlando := withMeta(project("2024639.001", "639", "Palm Coast Building"), catalog.ProjectMetadata{
		Location: "Orlando",
		Status:   "On Hold",
	})
	bare := project("2023512.001", "512", "Harbor Tower")
	bare.Year = "2023"

	records := []catalog.ProjectRecord{miami, orlando, bare}
	engine := NewEngine()
	ctx := context.Background()

	run := func(query string) []SearchResult {
		results, err := engine.SearchQuery(ctx, records, query)
		require.NoError(t, err)
		return results
	}

	results := run("loc:miami")
	require.Len(t, results, 1)
	require.Equal(t, miami.ID, results[0].Project.ID)

	results = run("status:hold")
	require.Len(t, results, 1)
	require.Equal(t, orlando.ID, results[0].Project.ID)

	results = run("team:north")
	require.Len(t, results, 1)

	// Tag filtering is exact membership, case-insensitive.
	results = run("tag:hospitality")
	require.Len(t, results, 1)
	require.Equal(t, miami.ID, results[0].Project.ID)
	require.Empty(t, run("tag:hospital"))

	// Year filtering is substring-of-year.
	results = run("year:23")
	require.Len(t, results, 1)
	require.Equal(t, bare.ID, results[0].Project.ID)

	// Multiple values in one category are OR'd.
	results = run("loc:Miami,Orlando")
	require.Len(t, results, 2)

	// Projects without metadata fail any metadata-backed filter.
	require.Empty(t, run("loc:Tampa"))
}

func TestSearch_FavoritesOnly(t *testing.T) {
	fav := withMeta(project("2024638.001", "638", "Palm Beach"), catalog.ProjectMetadata{IsFavorite: true})
	other := project("2024639.001", "639", "Palm Coast")

	results, err := NewEngine().SearchQuery(context.Background(), []catalog.ProjectRecord{fav, other}, "fav")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, fav.ID, results[0].Project.ID)
}

func TestSearch_FiltersCombineWithText(t *testing.T) {
	miami := withMeta(project("2024638.001", "638", "Palm Beach Project"), catalog.ProjectMetadata{Location: "Miami"})
	orlando := withMeta(project("2024639.001", "639", "Palm Coast Building"), catalog.ProjectMetadata{Location: "Orlando"})

	results, err := NewEngine().SearchQuery(context.Background(), []catalog.ProjectRecord{miami, orlando}, "palm; loc:Miami")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, miami.ID, results[0].Project.ID)
}

func TestSearch_MatchedFields(t *testing.T) {
	records := []catalog.ProjectRecord{
		project("2024638.001", "638", "Palm Beach 638"),
	}
	engine := NewEngine()
	ctx := context.Background()

	results, err := engine.SearchQuery(ctx, records, "palm")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, []string{"name"}, results[0].MatchedFields)

	results, err = engine.SearchQuery(ctx, records, "638")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, []string{"full_number", "short_number", "name"}, results[0].MatchedFields)

	// Empty text reports no matched fields.
	results, err = engine.SearchQuery(ctx, records, "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Empty(t, results[0].MatchedFields)
}

func TestSearch_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().SearchQuery(ctx, []catalog.ProjectRecord{project("2024638.001", "638", "Palm")}, "palm")
	require.ErrorIs(t, err, context.Canceled)
}
