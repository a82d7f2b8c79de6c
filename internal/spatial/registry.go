package spatial

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
)

// ErrUnknownSpatialReference indicates a registry lookup against a name that
// isn't configured. This is a configuration defect, not bad source data, so
// callers treat it as fatal.
var ErrUnknownSpatialReference = errors.New("unknown spatial reference")

// Envelope is a rectangular bound of plausible ordinate values for one
// coordinate encoding. Roughly the district service area plus a 100-mile
// buffer; a coarse sanity filter, not a precise boundary.
type Envelope struct {
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	YMin float64 `yaml:"ymin"`
	YMax float64 `yaml:"ymax"`
}

// Contains reports whether (x, y) falls strictly inside the envelope.
// Boundary-equal values are outside: coordinates sitting exactly on a bound
// are treated as invalid rather than plausible.
func (e Envelope) Contains(x, y float64) bool {
	return x > e.XMin && x < e.XMax && y > e.YMin && y < e.YMax
}

// Envelopes holds the per-encoding bounds used by the classifier and the
// bucket query builders.
type Envelopes struct {
	DD  Envelope `yaml:"dd"`
	DMS Envelope `yaml:"dms"`
	UTM Envelope `yaml:"utm"`
}

// Config is the registry's fixed configuration: symbolic coordinate-system
// and transform names mapped to their numeric ids, plus the envelope bounds.
// Loaded once at startup and never mutated afterwards.
type Config struct {
	References map[string]int `yaml:"references"`
	Envelopes  Envelopes      `yaml:"envelopes"`
}

// DefaultConfig returns the built-in reference table and envelope bounds.
// The ids match the EPSG codes the original feature classes were created
// with (target is NAD_1983_UTM_Zone_16N). The datum-transform entries are
// carried for completeness; no datum transformation is ever applied.
func DefaultConfig() Config {
	return Config{
		References: map[string]int{
			"GCS_North_American_1983":      4269,
			"GCS_North_American_1983_HARN": 4152,
			"GCS_WGS_1984":                 4326,
			"NAD_1983_UTM_Zone_16N":        26916,
			"NAD_1983_UTM_Zone_17N":        26917,
			"WGS_1984_UTM_Zone_16N":        32616,
			"NAD_1983_To_WGS_1984_1":       1188,
			"NAD_1983_To_WGS_1984_5":       1515,
		},
		Envelopes: Envelopes{
			// Decimal degrees, west-negative longitude.
			DD: Envelope{XMin: -88.5, XMax: -82.5, YMin: 28.5, YMax: 32.5},
			// Packed ddmmss values; longitude negated before the test.
			DMS: Envelope{XMin: -883000, XMax: -823000, YMin: 283000, YMax: 323000},
			// UTM zone 16N meters.
			UTM: Envelope{XMin: 355000, XMax: 935000, YMin: 3150000, YMax: 3600000},
		},
	}
}

// Registry resolves symbolic spatial reference names to numeric ids and
// serves the per-encoding envelopes. Immutable after construction.
type Registry struct {
	references map[string]int
	names      map[string]string // lowercased -> canonical, for error text
	envelopes  Envelopes
}

// foldCase normalizes names for the case-insensitive lookup.
var foldCase = cases.Fold()

func NewRegistry(cfg Config) *Registry {
	r := &Registry{
		references: make(map[string]int, len(cfg.References)),
		names:      make(map[string]string, len(cfg.References)),
		envelopes:  cfg.Envelopes,
	}
	for name, id := range cfg.References {
		key := foldCase.String(name)
		r.references[key] = id
		r.names[key] = name
	}
	return r
}

// ReferenceID looks up the numeric id for a symbolic coordinate-system or
// datum-transform name. Matching is exact but case-insensitive.
func (r *Registry) ReferenceID(name string) (int, error) {
	id, ok := r.references[foldCase.String(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSpatialReference, name)
	}
	return id, nil
}

// MustReferenceID is ReferenceID for fixed names known at startup; a miss is
// a configuration defect and panics.
func (r *Registry) MustReferenceID(name string) int {
	id, err := r.ReferenceID(name)
	if err != nil {
		panic(err)
	}
	return id
}

// EnvelopeFor returns the fixed bounds for a coordinate encoding. Only the
// three real encodings have envelopes; asking for any other bucket is a
// programming error.
func (r *Registry) EnvelopeFor(b Bucket) (Envelope, error) {
	switch b {
	case BucketDD:
		return r.envelopes.DD, nil
	case BucketDMS:
		return r.envelopes.DMS, nil
	case BucketUTM:
		return r.envelopes.UTM, nil
	}
	return Envelope{}, fmt.Errorf("%w: no envelope for bucket %s", ErrUnknownSpatialReference, b)
}
