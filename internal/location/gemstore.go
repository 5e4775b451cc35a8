package location

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/mmcloughlin/geohash"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/randytsao24/railronda/internal/cache"
	"github.com/randytsao24/railronda/internal/models"
)

// duplicateGeohashPrecision of 8 is a ~38m x 19m cell; the same place
// exported as both an OSM node and way lands in one cell
const duplicateGeohashPrecision = 8

// ErrGemDataMissing is returned in strict mode when a line has no gem file
var ErrGemDataMissing = errors.New("gem data missing")

// GemService loads per-line gem catalogues from CSV files and keeps each line
// cached until its TTL expires, after which the line is reloaded wholesale
type GemService struct {
	dir      string
	topology *Topology
	strict   bool
	cache    *cache.Cache[[]models.Gem]
}

// NewGemService creates a gem service reading <dir>/<line id>.csv
func NewGemService(dir string, topology *Topology, ttl time.Duration, strict bool) *GemService {
	return &GemService{
		dir:      dir,
		topology: topology,
		strict:   strict,
		cache:    cache.New[[]models.Gem](ttl),
	}
}

// Close stops the cache's background cleanup
func (s *GemService) Close() {
	s.cache.Close()
}

// GemsForLine returns the gems catalogued for a line
func (s *GemService) GemsForLine(ctx context.Context, lineID string) ([]models.Gem, error) {
	if _, ok := s.topology.Line(lineID); !ok {
		return nil, fmt.Errorf("gems for %q: %w", lineID, ErrUnknownLine)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.cache.GetOrLoad(lineID, func() ([]models.Gem, error) {
		return s.load(lineID)
	})
}

// AllGems loads every line concurrently and returns the gems in line order
func (s *GemService) AllGems(ctx context.Context) ([]models.Gem, error) {
	lines := s.topology.Lines()
	perLine := make([][]models.Gem, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	for i, line := range lines {
		g.Go(func() error {
			gems, err := s.GemsForLine(ctx, line.ID)
			if err != nil {
				return err
			}
			perLine[i] = gems
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []models.Gem
	for _, gems := range perLine {
		all = append(all, gems...)
	}
	return all, nil
}

// Reload drops every cached line so the next request reads the files again
func (s *GemService) Reload() {
	s.cache.Clear()
}

func (s *GemService) load(lineID string) ([]models.Gem, error) {
	path := filepath.Join(s.dir, lineID+".csv")
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if s.strict {
			return nil, fmt.Errorf("%s: %w", path, ErrGemDataMissing)
		}
		log.Warn().Str("line", lineID).Str("path", path).Msg("No gem data for line, serving empty catalogue")
		return []models.Gem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening gem file: %w", err)
	}
	defer file.Close()

	rows, err := gocsv.CSVToMaps(file)
	if err != nil {
		return nil, fmt.Errorf("reading gem CSV %s: %w", path, err)
	}

	gems := ParseGemRows(rows, lineID)
	log.Debug().Str("line", lineID).Int("rows", len(rows)).Int("gems", len(gems)).Msg("Loaded gem catalogue")
	return gems, nil
}

// ParseGemRows converts loosely-typed export rows into gems. Rows without
// coordinates are dropped, as are repeats of the same named place.
func ParseGemRows(rows []map[string]string, lineID string) []models.Gem {
	gems := make([]models.Gem, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		gem, ok := parseGemRow(row, lineID)
		if !ok {
			continue
		}

		key := NormalizeKey(gem.Name) + "@" + geohash.EncodeWithPrecision(gem.Lat, gem.Lng, duplicateGeohashPrecision)
		if seen[key] {
			continue
		}
		seen[key] = true
		gems = append(gems, gem)
	}
	return gems
}

func parseGemRow(row map[string]string, lineID string) (models.Gem, bool) {
	lat, okLat := firstNumber(row, "lat", "latitude")
	lng, okLng := firstNumber(row, "lng", "lon", "longitude")
	if !okLat || !okLng {
		return models.Gem{}, false
	}
	if !(models.Coordinate{Lat: lat, Lng: lng}).Valid() {
		return models.Gem{}, false
	}

	name := firstText(row, "Name", "name")
	if name == "" {
		name = "Unnamed Place"
	}

	category := NormalizeCategory(firstText(row, "Category", "category", "amenity"))
	if category == "" {
		category = "others"
	}

	description := firstText(row, "Subcategory", "subcategory", "Cuisine", "cuisine", "description")
	if description == "" || description == "N/A" {
		description = "No description provided."
	}

	id := firstText(row, "ID", "id")
	if id == "" {
		id = fallbackID(lineID, name, lat, lng)
	}

	gem := models.Gem{
		ID:             id,
		Name:           name,
		Category:       category,
		Description:    description,
		CO2Saved:       normalizeCO2(firstText(row, "co2Saved", "co2_saved", "co2")),
		Lat:            lat,
		Lng:            lng,
		NearestStation: firstText(row, "Nearest Station", "nearest_station", "nearestStation"),
		Line:           lineID,
	}
	if dist, ok := firstNumber(row, "Distance (m)", "distance_m", "distanceMeters"); ok {
		gem.DistanceMeters = &dist
	}
	return gem, true
}

func firstText(row map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(row[key]); value != "" {
			return value
		}
	}
	return ""
}

func firstNumber(row map[string]string, keys ...string) (float64, bool) {
	for _, key := range keys {
		value := strings.TrimSpace(row[key])
		if value == "" {
			continue
		}
		n, err := strconv.ParseFloat(value, 64)
		if err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return n, true
		}
	}
	return 0, false
}

func normalizeCO2(raw string) string {
	if raw == "" {
		return "0.00kg"
	}
	if strings.HasSuffix(strings.ToLower(raw), "g") {
		return raw
	}
	return raw + "kg"
}

// fallbackID derives a stable id for rows exported without one
func fallbackID(lineID, name string, lat, lng float64) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s:%s:%g:%g", lineID, name, lat, lng)
	return "gem-" + strconv.FormatUint(uint64(h.Sum32()), 10)
}
