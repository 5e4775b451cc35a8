package route

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randytsao24/railronda/internal/location"
	"github.com/randytsao24/railronda/internal/models"
)

func searchGems() []models.Gem {
	return []models.Gem{
		// ~500m north of Hub
		{ID: "noodles", Name: "Hub Noodles", Category: "food", Lat: 0.0045, Lng: 0.08, NearestStation: "Hub", Line: "red"},
		// ~100m north of B4, untagged
		{ID: "bakery", Name: "Corner Bakery", Category: "food", Description: "Fresh bread", Lat: 0.0409, Lng: 0.08, Line: "blue"},
		// only reachable on a line with no interchange
		{ID: "island", Name: "Island Cafe", Category: "cafe", Lat: 1.01, Lng: 1, NearestStation: "G2", Line: "green"},
		{ID: "mural", Name: "Old Mural", Category: "street_art", Lat: 0.0001, Lng: 0.07, NearestStation: "R3", Line: "red"},
	}
}

func resultIDs(results []SearchResult) []string {
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.Gem.ID)
	}
	return ids
}

func TestSearch(t *testing.T) {
	p := newTestPlanner(t, DefaultConfig())

	results, err := p.Search("R0", searchGems(), "", SortBest, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"noodles", "bakery", "mural"}, resultIDs(results), "unroutable gems are skipped")

	assert.Equal(t, "Hub", results[0].Station)
	assert.Equal(t, 6, results[0].Route.TotalTransitMins)
	assert.Equal(t, "B4", results[1].Station, "untagged gems use the nearest station on their line")
	assert.Equal(t, 23, results[1].Route.TotalTransitMins)
}

func TestSearchQuery(t *testing.T) {
	p := newTestPlanner(t, DefaultConfig())

	tests := []struct {
		query string
		want  []string
	}{
		{"FOOD", []string{"noodles", "bakery"}},
		{"bread", []string{"bakery"}},
		{"noodles", []string{"noodles"}},
		{"street art", []string{"mural"}},
		{"street_art", []string{"mural"}},
		{"sushi", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			results, err := p.Search("R0", searchGems(), tc.query, SortBest, 10)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resultIDs(results))
		})
	}
}

func TestSearchSorting(t *testing.T) {
	p := newTestPlanner(t, DefaultConfig())

	fastest, err := p.Search("R0", searchGems(), "food", SortFastest, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"noodles", "bakery"}, resultIDs(fastest))

	nearest, err := p.Search("R0", searchGems(), "food", SortNearest, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"bakery", "noodles"}, resultIDs(nearest))

	limited, err := p.Search("R0", searchGems(), "", SortNearest, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSearchUsesSuffixedCodeTag(t *testing.T) {
	topo, err := location.DefaultTopology()
	require.NoError(t, err)
	p, err := NewPlanner(location.NewResolver(topo), DefaultConfig())
	require.NoError(t, err)

	// closer to Merdeka than to its tagged station
	gems := []models.Gem{
		{ID: "alor", Name: "Night Market", Category: "food", Lat: 3.1420, Lng: 101.7020, NearestStation: "KG18A Bukit Bintang", Line: "kajang"},
	}

	results, err := p.Search("Kajang", gems, "", SortBest, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bukit Bintang", results[0].Station)
}

func TestSearchUnknownStart(t *testing.T) {
	p := newTestPlanner(t, DefaultConfig())

	_, err := p.Search("Atlantis", searchGems(), "", SortBest, 10)
	assert.True(t, errors.Is(err, ErrInvalidStation))
}

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]SortOrder{
		"":         SortBest,
		"best":     SortBest,
		" Fastest": SortFastest,
		"NEAREST":  SortNearest,
	} {
		got, err := ParseSortOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseSortOrder("cheapest")
	assert.True(t, errors.Is(err, ErrInvalidSort))
}
