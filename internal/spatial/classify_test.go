package spatial_test

import (
	"testing"

	"github.com/NWFWMD-IT/Wells/internal/spatial"
)

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }

func testRegistry() *spatial.Registry {
	return spatial.NewRegistry(spatial.DefaultConfig())
}

// TestClassify_MissingOrdinates verifies that an absent longitude or
// latitude is invalid regardless of the format tag.
func TestClassify_MissingOrdinates(t *testing.T) {
	r := testRegistry()

	if got := r.Classify(strp("DD"), nil, f64p(30.5), spatial.NullTagInvalid); got != spatial.BucketInvalid {
		t.Errorf("missing lon: got %s, want INVALID", got)
	}
	if got := r.Classify(strp("DD"), f64p(-85.0), nil, spatial.NullTagInvalid); got != spatial.BucketInvalid {
		t.Errorf("missing lat: got %s, want INVALID", got)
	}
	if got := r.Classify(nil, nil, nil, spatial.NullTagDMS); got != spatial.BucketInvalid {
		t.Errorf("all missing: got %s, want INVALID", got)
	}
}

// TestClassify_DD verifies decimal-degree classification: strictly inside
// the DD envelope classifies as DD, envelope-boundary values are invalid.
func TestClassify_DD(t *testing.T) {
	r := testRegistry()

	if got := r.Classify(strp("DD"), f64p(-85.0), f64p(30.5), spatial.NullTagInvalid); got != spatial.BucketDD {
		t.Errorf("interior point: got %s, want DD", got)
	}

	// Boundary-equal values must not classify; the envelope test is strict.
	env, err := r.EnvelopeFor(spatial.BucketDD)
	if err != nil {
		t.Fatalf("EnvelopeFor(DD): %v", err)
	}
	cases := []struct {
		name     string
		lon, lat float64
	}{
		{"lon at xmin", env.XMin, 30.5},
		{"lon at xmax", env.XMax, 30.5},
		{"lat at ymin", -85.0, env.YMin},
		{"lat at ymax", -85.0, env.YMax},
	}
	for _, c := range cases {
		if got := r.Classify(strp("DD"), f64p(c.lon), f64p(c.lat), spatial.NullTagInvalid); got != spatial.BucketInvalid {
			t.Errorf("%s: got %s, want INVALID", c.name, got)
		}
	}
}

// TestClassify_DMS verifies that DMS rows are tested with the longitude
// negated: a stored positive-magnitude longitude inside the (negative)
// envelope classifies, an already-negative longitude does not.
func TestClassify_DMS(t *testing.T) {
	r := testRegistry()

	// 85°30'15" stored positive, 30°15'00" latitude.
	if got := r.Classify(strp("DMS"), f64p(853015), f64p(301500), spatial.NullTagInvalid); got != spatial.BucketDMS {
		t.Errorf("packed DMS point: got %s, want DMS", got)
	}
	// Negated on the way in, the test negates again and lands outside.
	if got := r.Classify(strp("DMS"), f64p(-853015), f64p(301500), spatial.NullTagInvalid); got != spatial.BucketInvalid {
		t.Errorf("pre-negated longitude: got %s, want INVALID", got)
	}
}

// TestClassify_NullTagPolicy verifies the per-dataset divergence: an absent
// tag defaults to DMS only under NullTagDMS, and is invalid under
// NullTagInvalid even when the coordinates would pass the DMS envelope.
func TestClassify_NullTagPolicy(t *testing.T) {
	r := testRegistry()

	if got := r.Classify(nil, f64p(853015), f64p(301500), spatial.NullTagDMS); got != spatial.BucketDMS {
		t.Errorf("NullTagDMS: got %s, want DMS", got)
	}
	if got := r.Classify(nil, f64p(853015), f64p(301500), spatial.NullTagInvalid); got != spatial.BucketInvalid {
		t.Errorf("NullTagInvalid: got %s, want INVALID", got)
	}
}

// TestClassify_UTM verifies UTM classification uses the raw ordinates.
func TestClassify_UTM(t *testing.T) {
	r := testRegistry()

	if got := r.Classify(strp("UTM"), f64p(600000), f64p(3350000), spatial.NullTagInvalid); got != spatial.BucketUTM {
		t.Errorf("interior UTM point: got %s, want UTM", got)
	}
	if got := r.Classify(strp("UTM"), f64p(100), f64p(3350000), spatial.NullTagInvalid); got != spatial.BucketInvalid {
		t.Errorf("out-of-envelope UTM: got %s, want INVALID", got)
	}
}

// TestClassify_UnrecognizedTag verifies that an unknown tag is invalid even
// with plausible coordinates.
func TestClassify_UnrecognizedTag(t *testing.T) {
	r := testRegistry()

	if got := r.Classify(strp("STATEPLANE"), f64p(-85.0), f64p(30.5), spatial.NullTagInvalid); got != spatial.BucketInvalid {
		t.Errorf("unknown tag: got %s, want INVALID", got)
	}
	// Tag is matched exactly; lowercase is not a recognized declaration.
	if got := r.Classify(strp("dd"), f64p(-85.0), f64p(30.5), spatial.NullTagInvalid); got != spatial.BucketInvalid {
		t.Errorf("lowercase tag: got %s, want INVALID", got)
	}
}

// TestClassify_TaggedButOutOfEnvelope verifies that a recognized tag with
// out-of-envelope coordinates is invalid rather than falling through to
// another encoding's test.
func TestClassify_TaggedButOutOfEnvelope(t *testing.T) {
	r := testRegistry()

	// Coordinates that would pass the UTM envelope, declared as DD.
	if got := r.Classify(strp("DD"), f64p(600000), f64p(3350000), spatial.NullTagInvalid); got != spatial.BucketInvalid {
		t.Errorf("DD-tagged UTM values: got %s, want INVALID", got)
	}
}
