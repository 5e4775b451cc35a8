package location

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randytsao24/railronda/internal/models"
)

func station(name string, lat, lng float64) models.Station {
	return models.Station{Name: name, Location: &models.Coordinate{Lat: lat, Lng: lng}}
}

func TestDefaultTopology(t *testing.T) {
	topo, err := DefaultTopology()
	require.NoError(t, err)

	lines := topo.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "kajang", lines[0].ID)
	assert.Equal(t, "kelana", lines[1].ID)
	assert.Len(t, lines[0].Stations, 29)
	assert.Len(t, lines[1].Stations, 37)
	assert.Equal(t, 65, topo.StationCount())

	assert.Equal(t, []string{"kajang", "kelana"}, topo.LinesFor("Pasar Seni"))
	assert.Equal(t, []string{"kelana"}, topo.LinesFor("masjid jamek"))
	assert.Empty(t, topo.LinesFor("Atlantis"))

	assert.Equal(t, 11, topo.IndexOf("kajang", "Pasar Seni"))
	assert.Equal(t, 13, topo.IndexOf("kelana", "Pasar Seni"))
	assert.Equal(t, 28, topo.IndexOf("kajang", "Kajang"))
	assert.Equal(t, -1, topo.IndexOf("kajang", "Masjid Jamek"))
	assert.Equal(t, -1, topo.IndexOf("monorail", "Kajang"))

	hub, ok := topo.SharedStation("kajang", "kelana")
	require.True(t, ok)
	assert.Equal(t, "Pasar Seni", hub.Name)

	_, ok = topo.SharedStation("kajang", "monorail")
	assert.False(t, ok)
}

func TestNewTopologyRejectsBadInput(t *testing.T) {
	a := station("Alpha", 3.10, 101.60)
	b := station("Bravo", 3.11, 101.61)
	c := station("Charlie", 3.12, 101.62)

	tests := []struct {
		name    string
		lines   []models.Line
		aliases map[string]string
	}{
		{"no lines", nil, nil},
		{"single station line", []models.Line{{ID: "x", Name: "X", Stations: []models.Station{a}}}, nil},
		{"missing line name", []models.Line{{ID: "x", Stations: []models.Station{a, b}}}, nil},
		{"duplicate line id", []models.Line{
			{ID: "x", Name: "X", Stations: []models.Station{a, b}},
			{ID: "x", Name: "X2", Stations: []models.Station{b, c}},
		}, nil},
		{"duplicate station", []models.Line{{ID: "x", Name: "X", Stations: []models.Station{a, b, station("ALPHA", 3.13, 101.63)}}}, nil},
		{"unusable name", []models.Line{{ID: "x", Name: "X", Stations: []models.Station{a, {Name: "--"}}}}, nil},
		{"invalid coordinates", []models.Line{{ID: "x", Name: "X", Stations: []models.Station{a, station("Delta", 95, 0)}}}, nil},
		{"alias to unknown station", []models.Line{{ID: "x", Name: "X", Stations: []models.Station{a, b}}}, map[string]string{"Z": "Zulu"}},
		{"alias shadows station", []models.Line{{ID: "x", Name: "X", Stations: []models.Station{a, b}}}, map[string]string{"Bravo": "Alpha"}},
		{"duplicate code on one line", []models.Line{{ID: "x", Name: "X", Stations: []models.Station{
			{Name: "Alpha", Code: "X1"}, {Name: "Bravo", Code: "x1"},
		}}}, nil},
		{"duplicate code across lines", []models.Line{
			{ID: "x", Name: "X", Stations: []models.Station{{Name: "Alpha", Code: "X1"}, b}},
			{ID: "y", Name: "Y", Stations: []models.Station{c, {Name: "Delta", Code: "X1"}}},
		}, nil},
		{"alias to alias", []models.Line{{ID: "x", Name: "X", Stations: []models.Station{a, b}}}, map[string]string{"Alpha": "Alpha"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTopology(tc.lines, tc.aliases)
			assert.Error(t, err)
		})
	}
}

func TestNewTopologySharedCodeOnInterchange(t *testing.T) {
	_, err := NewTopology([]models.Line{
		{ID: "x", Name: "X", Stations: []models.Station{{Name: "Hub", Code: "H1"}, {Name: "Alpha"}}},
		{ID: "y", Name: "Y", Stations: []models.Station{{Name: "hub", Code: "H1"}, {Name: "Bravo"}}},
	}, nil)
	assert.NoError(t, err, "one station may carry the same code on every line it serves")
}

func TestParseTopology(t *testing.T) {
	doc := []byte(`
lines:
  - id: red
    name: Red Line
    stations:
      - { name: Alpha, code: R1, location: { lat: 1.0, lng: 1.0 } }
      - { name: Bravo, code: R2 }
aliases:
  A: Alpha
`)
	topo, err := ParseTopology(doc)
	require.NoError(t, err)

	s, ok := topo.Station("bravo")
	require.True(t, ok)
	assert.Equal(t, "Bravo", s.Name)
	assert.Nil(t, s.Location)
	assert.Equal(t, "Alpha", NewResolver(topo).Resolve("A"))
	assert.Equal(t, "Bravo", NewResolver(topo).Resolve("r2"))

	_, err = ParseTopology([]byte("lines: [unclosed"))
	assert.Error(t, err)
}

func TestLoadTopology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.yaml")
	require.NoError(t, os.WriteFile(path, defaultTopology, 0o600))

	topo, err := LoadTopology(path)
	require.NoError(t, err)
	assert.Len(t, topo.Lines(), 2)

	_, err = LoadTopology(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNearestStation(t *testing.T) {
	topo, err := DefaultTopology()
	require.NoError(t, err)

	// Central Market sits between Pasar Seni and Masjid Jamek
	nearest, err := topo.NearestStation(models.Coordinate{Lat: 3.1430, Lng: 101.6955}, "")
	require.NoError(t, err)
	assert.Equal(t, "Pasar Seni", nearest.Name)
	assert.Equal(t, "kajang", nearest.LineID)
	assert.Equal(t, 11, nearest.Index)

	nearest, err = topo.NearestStation(models.Coordinate{Lat: 3.1430, Lng: 101.6955}, "kelana")
	require.NoError(t, err)
	assert.Equal(t, "kelana", nearest.LineID)
	assert.Equal(t, 13, nearest.Index)

	_, err = topo.NearestStation(models.Coordinate{Lat: 3.1, Lng: 101.6}, "monorail")
	assert.True(t, errors.Is(err, ErrUnknownLine))

	_, err = topo.NearestStation(models.Coordinate{Lat: 120, Lng: 0}, "")
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))

	unlocated, err := NewTopology([]models.Line{{ID: "x", Name: "X", Stations: []models.Station{{Name: "A"}, {Name: "B"}}}}, nil)
	require.NoError(t, err)
	_, err = unlocated.NearestStation(models.Coordinate{Lat: 1, Lng: 1}, "")
	assert.True(t, errors.Is(err, ErrNoStationLocation))
}

func TestFindNearby(t *testing.T) {
	topo, err := DefaultTopology()
	require.NoError(t, err)

	at := models.Coordinate{Lat: 3.1424, Lng: 101.6954}
	nearby := topo.FindNearby(at, 100)
	require.Len(t, nearby, 2)
	assert.Equal(t, "Pasar Seni", nearby[0].Name)
	assert.Equal(t, "kajang", nearby[0].LineID)
	assert.Equal(t, "kelana", nearby[1].LineID)

	wider := topo.FindNearby(at, 1000)
	assert.Greater(t, len(wider), 2)
	for i := 1; i < len(wider); i++ {
		assert.LessOrEqual(t, wider[i-1].DistanceMeters, wider[i].DistanceMeters)
		assert.LessOrEqual(t, wider[i].DistanceMeters, 1000.0)
	}

	assert.Empty(t, topo.FindNearby(models.Coordinate{Lat: 91, Lng: 0}, 1000))
}

func TestFindClosest(t *testing.T) {
	topo, err := DefaultTopology()
	require.NoError(t, err)

	closest := topo.FindClosest(models.Coordinate{Lat: 2.9934, Lng: 101.7904}, 3)
	require.Len(t, closest, 3)
	assert.Equal(t, "Kajang", closest[0].Name)
	assert.Equal(t, "Stadium Kajang", closest[1].Name)
	assert.Equal(t, "Sungai Jernih", closest[2].Name)
}
