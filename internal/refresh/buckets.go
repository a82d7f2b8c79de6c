package refresh

import (
	"fmt"

	"github.com/NWFWMD-IT/Wells/internal/spatial"
)

// SourceCoords names the coordinate columns on an upstream source table.
type SourceCoords struct {
	LonColumn string
	LatColumn string
	TagColumn string
}

// bucketQuery pairs the classification predicate a bucket's rows are
// selected with and the geometry expression those rows are built with.
// Both are rendered from the same envelope configuration and must never
// disagree about which rows an encoding owns.
type bucketQuery struct {
	Bucket   spatial.Bucket
	Where    string
	Geometry string
}

// packedDegreesSQL renders the packed-DMS decomposition for a column as SQL
// arithmetic: mod/trunc splits for degrees, minutes and seconds, identical
// to spatial.DMSToDD.
func packedDegreesSQL(column string) string {
	c := fmt.Sprintf("(%s)::numeric", column)
	return fmt.Sprintf(
		"(mod(trunc(%[1]s, -4), 10000000) / 10000"+
			" + mod(trunc(%[1]s, -2), 10000) / 100 / 60.0"+
			" + mod(%[1]s, 100) / 3600.0)",
		c,
	)
}

// envelopeSQL renders a strict open-interval envelope test for the given x
// and y expressions.
func envelopeSQL(env spatial.Envelope, xExpr, yExpr string) string {
	return fmt.Sprintf("%s > %g AND %s < %g AND %s > %g AND %s < %g",
		xExpr, env.XMin, xExpr, env.XMax,
		yExpr, env.YMin, yExpr, env.YMax,
	)
}

// bucketQueries builds the four bucket filter/geometry pairs for a source
// table. The geographic and target reference ids are resolved through the
// registry rather than written at the call sites.
//
// Every predicate is built null-safe (coalesced tags, explicit ordinate
// guards) so the invalid bucket can be expressed as the exact complement of
// the other three and the four stay collectively exhaustive.
func bucketQueries(reg *spatial.Registry, src SourceCoords, policy spatial.NullTagPolicy) ([]bucketQuery, error) {
	geographicSRID, err := reg.ReferenceID("GCS_North_American_1983")
	if err != nil {
		return nil, err
	}
	targetSRID, err := reg.ReferenceID("NAD_1983_UTM_Zone_16N")
	if err != nil {
		return nil, err
	}

	ddEnv, err := reg.EnvelopeFor(spatial.BucketDD)
	if err != nil {
		return nil, err
	}
	dmsEnv, err := reg.EnvelopeFor(spatial.BucketDMS)
	if err != nil {
		return nil, err
	}
	utmEnv, err := reg.EnvelopeFor(spatial.BucketUTM)
	if err != nil {
		return nil, err
	}

	lon, lat, tag := src.LonColumn, src.LatColumn, src.TagColumn
	present := fmt.Sprintf("%s IS NOT NULL AND %s IS NOT NULL", lon, lat)

	// An absent tag either defaults to DMS or matches nothing, depending on
	// the dataset's historical behavior.
	dmsTag := fmt.Sprintf("coalesce(%s, '') = 'DMS'", tag)
	if policy == spatial.NullTagDMS {
		dmsTag = fmt.Sprintf("coalesce(%s, 'DMS') = 'DMS'", tag)
	}

	ddWhere := fmt.Sprintf("%s AND coalesce(%s, '') = 'DD' AND %s",
		present, tag, envelopeSQL(ddEnv, lon, lat))
	dmsWhere := fmt.Sprintf("%s AND %s AND %s",
		present, dmsTag, envelopeSQL(dmsEnv, "-"+lon, lat))
	utmWhere := fmt.Sprintf("%s AND coalesce(%s, '') = 'UTM' AND %s",
		present, tag, envelopeSQL(utmEnv, lon, lat))

	dmsLon := "-" + packedDegreesSQL(lon)
	dmsLat := packedDegreesSQL(lat)

	return []bucketQuery{
		{
			Bucket: spatial.BucketDD,
			Where:  ddWhere,
			Geometry: fmt.Sprintf("ST_Transform(ST_SetSRID(ST_MakePoint(%s, %s), %d), %d)",
				lon, lat, geographicSRID, targetSRID),
		},
		{
			Bucket: spatial.BucketDMS,
			Where:  dmsWhere,
			Geometry: fmt.Sprintf("ST_Transform(ST_SetSRID(ST_MakePoint(%s, %s), %d), %d)",
				dmsLon, dmsLat, geographicSRID, targetSRID),
		},
		{
			Bucket: spatial.BucketUTM,
			Where:  utmWhere,
			Geometry: fmt.Sprintf("ST_SetSRID(ST_MakePoint(%s, %s), %d)",
				lon, lat, targetSRID),
		},
		{
			Bucket:   spatial.BucketInvalid,
			Where:    fmt.Sprintf("NOT ((%s) OR (%s) OR (%s))", ddWhere, dmsWhere, utmWhere),
			Geometry: "NULL::geometry",
		},
	}, nil
}
