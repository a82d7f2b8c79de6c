package refresh

import (
	"strings"
	"testing"

	"github.com/NWFWMD-IT/Wells/internal/spatial"
)

var testCoords = SourceCoords{
	LonColumn: "longitude",
	LatColumn: "latitude",
	TagColumn: "coord_format",
}

func testQueries(t *testing.T, policy spatial.NullTagPolicy) []bucketQuery {
	t.Helper()
	reg := spatial.NewRegistry(spatial.DefaultConfig())
	queries, err := bucketQueries(reg, testCoords, policy)
	if err != nil {
		t.Fatalf("bucketQueries: %v", err)
	}
	if len(queries) != 4 {
		t.Fatalf("expected 4 bucket queries, got %d", len(queries))
	}
	return queries
}

func queryFor(t *testing.T, queries []bucketQuery, bucket spatial.Bucket) bucketQuery {
	t.Helper()
	for _, q := range queries {
		if q.Bucket == bucket {
			return q
		}
	}
	t.Fatalf("no query for bucket %s", bucket)
	return bucketQuery{}
}

// TestBucketQueries_EnvelopeBounds verifies each bucket's predicate embeds
// the configured envelope with strict comparisons.
func TestBucketQueries_EnvelopeBounds(t *testing.T) {
	queries := testQueries(t, spatial.NullTagInvalid)

	cases := []struct {
		bucket spatial.Bucket
		bounds []string
	}{
		{spatial.BucketDD, []string{"> -88.5", "< -82.5", "> 28.5", "< 32.5"}},
		{spatial.BucketDMS, []string{"> -883000", "< -823000", "> 283000", "< 323000"}},
		{spatial.BucketUTM, []string{"> 355000", "< 935000", "> 3.15e+06", "< 3.6e+06"}},
	}
	for _, c := range cases {
		q := queryFor(t, queries, c.bucket)
		for _, b := range c.bounds {
			if !strings.Contains(q.Where, b) {
				t.Errorf("%s predicate missing bound %q:\n%s", c.bucket, b, q.Where)
			}
		}
		if strings.Contains(q.Where, ">=") || strings.Contains(q.Where, "<=") {
			t.Errorf("%s predicate uses inclusive comparison:\n%s", c.bucket, q.Where)
		}
	}
}

// TestBucketQueries_DMSNegation verifies the packed-DMS bucket negates the
// stored longitude both in its envelope test and its geometry expression.
func TestBucketQueries_DMSNegation(t *testing.T) {
	q := queryFor(t, testQueries(t, spatial.NullTagInvalid), spatial.BucketDMS)

	if !strings.Contains(q.Where, "-longitude >") {
		t.Errorf("DMS predicate does not test the negated longitude:\n%s", q.Where)
	}
	if !strings.Contains(q.Geometry, "-(mod(trunc((longitude)::numeric") {
		t.Errorf("DMS geometry does not negate the decoded longitude:\n%s", q.Geometry)
	}
	if strings.Contains(q.Geometry, "-(mod(trunc((latitude)::numeric") {
		t.Errorf("DMS geometry negates the latitude:\n%s", q.Geometry)
	}
}

// TestBucketQueries_NullTagPolicy verifies the coalesce default an absent
// format tag receives: DMS where the policy says so, a non-matching empty
// string otherwise.
func TestBucketQueries_NullTagPolicy(t *testing.T) {
	dmsDefault := queryFor(t, testQueries(t, spatial.NullTagDMS), spatial.BucketDMS)
	if !strings.Contains(dmsDefault.Where, "coalesce(coord_format, 'DMS') = 'DMS'") {
		t.Errorf("NullTagDMS predicate does not default the tag to DMS:\n%s", dmsDefault.Where)
	}

	invalidDefault := queryFor(t, testQueries(t, spatial.NullTagInvalid), spatial.BucketDMS)
	if !strings.Contains(invalidDefault.Where, "coalesce(coord_format, '') = 'DMS'") {
		t.Errorf("NullTagInvalid predicate defaults the tag to DMS:\n%s", invalidDefault.Where)
	}
}

// TestBucketQueries_Geometry verifies each bucket's geometry expression
// carries the reference ids resolved from the registry.
func TestBucketQueries_Geometry(t *testing.T) {
	queries := testQueries(t, spatial.NullTagInvalid)

	dd := queryFor(t, queries, spatial.BucketDD)
	if !strings.Contains(dd.Geometry, "ST_Transform(ST_SetSRID(ST_MakePoint(longitude, latitude), 4269), 26916)") {
		t.Errorf("unexpected DD geometry:\n%s", dd.Geometry)
	}

	utm := queryFor(t, queries, spatial.BucketUTM)
	if utm.Geometry != "ST_SetSRID(ST_MakePoint(longitude, latitude), 26916)" {
		t.Errorf("unexpected UTM geometry:\n%s", utm.Geometry)
	}
	if strings.Contains(utm.Geometry, "ST_Transform") {
		t.Errorf("UTM geometry reprojects:\n%s", utm.Geometry)
	}

	invalid := queryFor(t, queries, spatial.BucketInvalid)
	if invalid.Geometry != "NULL::geometry" {
		t.Errorf("unexpected invalid geometry:\n%s", invalid.Geometry)
	}
}

// TestBucketQueries_InvalidComplement verifies the invalid bucket is the
// exact negation of the other three predicates.
func TestBucketQueries_InvalidComplement(t *testing.T) {
	queries := testQueries(t, spatial.NullTagInvalid)

	invalid := queryFor(t, queries, spatial.BucketInvalid)
	for _, bucket := range []spatial.Bucket{spatial.BucketDD, spatial.BucketDMS, spatial.BucketUTM} {
		q := queryFor(t, queries, bucket)
		if !strings.Contains(invalid.Where, "("+q.Where+")") {
			t.Errorf("invalid predicate does not embed the %s predicate:\n%s", bucket, invalid.Where)
		}
	}
	if !strings.HasPrefix(invalid.Where, "NOT (") {
		t.Errorf("invalid predicate is not a negation:\n%s", invalid.Where)
	}
}

// TestBucketQueries_UnknownReference verifies a registry lacking the target
// reference makes query construction fail instead of producing bad SQL.
func TestBucketQueries_UnknownReference(t *testing.T) {
	cfg := spatial.DefaultConfig()
	cfg.References = map[string]int{"GCS_North_American_1983": 4269}
	reg := spatial.NewRegistry(cfg)

	if _, err := bucketQueries(reg, testCoords, spatial.NullTagInvalid); err == nil {
		t.Error("expected error for missing target reference")
	}
}
