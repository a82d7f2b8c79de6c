package spatial

// Bucket is the classification outcome for one source row. It selects both
// the SQL filter and the geometry-construction branch during a refresh, so
// the same value must drive both.
type Bucket string

const (
	BucketDD      Bucket = "DD"
	BucketDMS     Bucket = "DMS"
	BucketUTM     Bucket = "UTM"
	BucketInvalid Bucket = "INVALID"
)

// InsertBuckets is the fixed order buckets are processed in during a
// refresh. Buckets are disjoint, so the order is convention, not a
// correctness requirement.
var InsertBuckets = []Bucket{BucketDD, BucketDMS, BucketUTM, BucketInvalid}

// NullTagPolicy controls how a row with an absent format tag classifies.
// The upstream systems disagree on this: the ERP site extracts historically
// default a missing tag to DMS, while the station/well extracts treat it as
// invalid. The divergence is preserved per dataset.
type NullTagPolicy int

const (
	// NullTagInvalid classifies rows with no format tag as BucketInvalid.
	NullTagInvalid NullTagPolicy = iota
	// NullTagDMS treats an absent format tag as a DMS declaration.
	NullTagDMS
)

// Classify assigns a source row's coordinates to exactly one bucket.
//
// Precedence: missing ordinates are invalid; then the declared tag selects
// the encoding, subject to a strict envelope test. A recognized tag whose
// coordinates fall outside the encoding's envelope is invalid, not retried
// against another encoding. The DMS test negates the longitude first,
// matching the stored positive-magnitude western-hemisphere convention.
func (r *Registry) Classify(tag *string, lon, lat *float64, policy NullTagPolicy) Bucket {
	if lon == nil || lat == nil {
		return BucketInvalid
	}

	switch {
	case tag != nil && *tag == "DD":
		if r.envelopes.DD.Contains(*lon, *lat) {
			return BucketDD
		}
	case tag != nil && *tag == "DMS", tag == nil && policy == NullTagDMS:
		if r.envelopes.DMS.Contains(-*lon, *lat) {
			return BucketDMS
		}
	case tag != nil && *tag == "UTM":
		if r.envelopes.UTM.Contains(*lon, *lat) {
			return BucketUTM
		}
	}
	return BucketInvalid
}
