package location

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
	// line-code prefixes such as "AG7 SP7 KJ13 " or "KG18A "
	lineCodePattern = regexp.MustCompile(`^(?:[A-Z]{1,3}[0-9]{1,2}[A-Z]?\s+)+`)
)

// Resolver maps free-form station names onto canonical station names
type Resolver struct {
	topology  *Topology
	aliasKeys map[string]string
}

// NewResolver creates a resolver over a topology's stations and alias table
func NewResolver(t *Topology) *Resolver {
	keys := make(map[string]string, len(t.aliases))
	for alias, target := range t.aliases {
		keys[NormalizeKey(alias)] = target
	}
	return &Resolver{topology: t, aliasKeys: keys}
}

// Topology returns the topology the resolver was built from
func (r *Resolver) Topology() *Topology {
	return r.topology
}

// Resolve returns the canonical name for raw. Names that match no alias, code
// or station come back unchanged.
func (r *Resolver) Resolve(raw string) string {
	if name, ok := r.canonical(raw); ok {
		return name
	}
	return raw
}

// Known reports whether raw resolves to a station on at least one line
func (r *Resolver) Known(raw string) bool {
	_, ok := r.canonical(raw)
	return ok
}

// Key returns the comparison key for raw: the canonical station's key when
// raw is known, otherwise the key of the cleaned name
func (r *Resolver) Key(raw string) string {
	name, _ := r.canonical(raw)
	return NormalizeKey(name)
}

// canonical returns the station name raw refers to and true, or the cleaned
// name and false when raw matches nothing in the topology
func (r *Resolver) canonical(raw string) (string, bool) {
	cleaned := CleanStationName(raw)
	if cleaned == "" {
		return "", false
	}

	name := cleaned
	if target, ok := r.topology.aliases[cleaned]; ok {
		name = target
	} else if target, ok := r.aliasKeys[NormalizeKey(cleaned)]; ok {
		name = target
	} else if station, ok := r.topology.codes[strings.ToUpper(cleaned)]; ok {
		name = station
	}

	if station, ok := r.topology.Station(name); ok {
		return station.Name, true
	}
	return cleaned, false
}

// Matches reports whether a free-text station field refers to target.
// Exact key equality wins; otherwise the candidate key must contain the
// target key, which covers prefixed and concatenated variants.
func (r *Resolver) Matches(candidate, target string) bool {
	return matchKeys(r.Key(candidate), r.Key(target))
}

func matchKeys(candidate, target string) bool {
	if candidate == "" || target == "" {
		return false
	}
	return candidate == target || strings.Contains(candidate, target)
}

// CleanStationName drops parenthetical notes, leading line codes and
// redundant whitespace
func CleanStationName(raw string) string {
	s := parentheticalPattern.ReplaceAllString(raw, " ")
	s = strings.Join(strings.Fields(s), " ")
	return lineCodePattern.ReplaceAllString(s, "")
}

// NormalizeKey lower-cases a name and strips everything but letters and digits
func NormalizeKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
