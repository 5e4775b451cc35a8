package location

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/randytsao24/railronda/internal/models"
)

//go:embed data/lines.yaml
var defaultTopology []byte

// ErrUnknownLine is returned when a line id is not part of the topology
var ErrUnknownLine = errors.New("unknown line")

type topologyDocument struct {
	Lines   []models.Line     `yaml:"lines" validate:"required,min=1,dive"`
	Aliases map[string]string `yaml:"aliases"`
}

// membership places a station at a position on one line
type membership struct {
	line  int
	index int
}

// Topology is the static, ordered station list of every line.
// It is read-only after construction and safe for concurrent use.
type Topology struct {
	lines    []models.Line
	byID     map[string]int
	stations map[string][]membership
	codes    map[string]string
	aliases  map[string]string
}

// DefaultTopology parses the embedded Klang Valley topology
func DefaultTopology() (*Topology, error) {
	return ParseTopology(defaultTopology)
}

// LoadTopology reads a topology YAML file
func LoadTopology(path string) (*Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology file: %w", err)
	}
	return ParseTopology(data)
}

// ParseTopology decodes and validates a topology document
func ParseTopology(data []byte) (*Topology, error) {
	var doc topologyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing topology YAML: %w", err)
	}
	return NewTopology(doc.Lines, doc.Aliases)
}

// NewTopology builds a topology from lines and an alias table
func NewTopology(lines []models.Line, aliases map[string]string) (*Topology, error) {
	v := validator.New()
	if err := v.Struct(topologyDocument{Lines: lines, Aliases: aliases}); err != nil {
		return nil, fmt.Errorf("validating topology: %w", err)
	}

	t := &Topology{
		lines:    lines,
		byID:     make(map[string]int, len(lines)),
		stations: make(map[string][]membership),
		codes:    make(map[string]string),
		aliases:  make(map[string]string, len(aliases)),
	}

	for li, line := range lines {
		if _, dup := t.byID[line.ID]; dup {
			return nil, fmt.Errorf("duplicate line id %q", line.ID)
		}
		t.byID[line.ID] = li

		seen := make(map[string]bool, len(line.Stations))
		for si, station := range line.Stations {
			key := NormalizeKey(station.Name)
			if key == "" {
				return nil, fmt.Errorf("line %s: station %d has no usable name", line.ID, si)
			}
			if seen[key] {
				return nil, fmt.Errorf("line %s: station %q listed twice", line.ID, station.Name)
			}
			seen[key] = true

			if station.Location != nil && !station.Location.Valid() {
				return nil, fmt.Errorf("line %s: station %q has invalid coordinates", line.ID, station.Name)
			}

			t.stations[key] = append(t.stations[key], membership{line: li, index: si})
			if station.Code != "" {
				code := strings.ToUpper(station.Code)
				if other, dup := t.codes[code]; dup && NormalizeKey(other) != key {
					return nil, fmt.Errorf("line %s: code %s used by both %q and %q", line.ID, station.Code, other, station.Name)
				}
				t.codes[code] = station.Name
			}
		}
	}

	for alias, target := range aliases {
		targetKey := NormalizeKey(target)
		if _, ok := t.stations[targetKey]; !ok {
			return nil, fmt.Errorf("alias %q points at unknown station %q", alias, target)
		}
		if aliasKey := NormalizeKey(alias); aliasKey != targetKey {
			if _, ok := t.stations[aliasKey]; ok {
				return nil, fmt.Errorf("alias %q shadows an existing station", alias)
			}
		}
		if _, ok := aliases[target]; ok {
			return nil, fmt.Errorf("alias %q points at another alias %q", alias, target)
		}
		t.aliases[alias] = target
	}

	return t, nil
}

// Lines returns every line in load order
func (t *Topology) Lines() []models.Line {
	return t.lines
}

// Line returns a line by id
func (t *Topology) Line(id string) (models.Line, bool) {
	i, ok := t.byID[id]
	if !ok {
		return models.Line{}, false
	}
	return t.lines[i], true
}

// Station returns the station record for a canonical name.
// Interchanges appear on several lines; the first line's record wins.
func (t *Topology) Station(name string) (models.Station, bool) {
	ms, ok := t.stations[NormalizeKey(name)]
	if !ok {
		return models.Station{}, false
	}
	m := ms[0]
	return t.lines[m.line].Stations[m.index], true
}

// LinesFor returns the ids of every line serving the station, in load order
func (t *Topology) LinesFor(name string) []string {
	ms := t.stations[NormalizeKey(name)]
	ids := make([]string, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, t.lines[m.line].ID)
	}
	return ids
}

// IndexOf returns the station's position on a line, or -1 when it is not served
func (t *Topology) IndexOf(lineID, name string) int {
	li, ok := t.byID[lineID]
	if !ok {
		return -1
	}
	for _, m := range t.stations[NormalizeKey(name)] {
		if m.line == li {
			return m.index
		}
	}
	return -1
}

// SharedStation returns the station common to both lines.
// The first shared station in lineA's running order is used as the transfer hub.
func (t *Topology) SharedStation(lineA, lineB string) (models.Station, bool) {
	a, okA := t.Line(lineA)
	_, okB := t.byID[lineB]
	if !okA || !okB {
		return models.Station{}, false
	}
	for _, station := range a.Stations {
		if t.IndexOf(lineB, station.Name) >= 0 {
			return station, true
		}
	}
	return models.Station{}, false
}

// NearestStation finds the station closest to a point. An empty lineID
// searches every line.
func (t *Topology) NearestStation(at models.Coordinate, lineID string) (models.StationWithDistance, error) {
	if !at.Valid() {
		return models.StationWithDistance{}, fmt.Errorf("nearest station: %w", ErrInvalidCoordinate)
	}

	lines := t.lines
	if lineID != "" {
		line, ok := t.Line(lineID)
		if !ok {
			return models.StationWithDistance{}, fmt.Errorf("nearest station on %q: %w", lineID, ErrUnknownLine)
		}
		lines = []models.Line{line}
	}

	var best models.StationWithDistance
	found := false
	for _, line := range lines {
		for i, station := range line.Stations {
			if station.Location == nil {
				continue
			}
			dist := Distance(at, *station.Location)
			if !found || dist < best.DistanceMeters {
				best = models.StationWithDistance{
					Station:        station,
					LineID:         line.ID,
					Index:          i,
					DistanceMeters: dist,
				}
				found = true
			}
		}
	}

	if !found {
		return models.StationWithDistance{}, ErrNoStationLocation
	}
	return best, nil
}

// StationCount returns the number of distinct stations across all lines
func (t *Topology) StationCount() int {
	return len(t.stations)
}
