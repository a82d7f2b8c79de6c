package decode

import (
	"fmt"
	"sort"
	"strings"
)

// The renderers below turn the decoder lookup tables into SQL CASE
// expressions so the bucketed INSERT ... SELECT statements can decode
// attributes set-based without a round trip through Go per row. Keys are
// emitted in sorted order so rendered SQL is deterministic and diffable.

// CollectionMethodSQL renders the collection-method table as a CASE over
// the named numeric column. Unmapped codes fall through to NULL, matching
// CollectionMethod.
func CollectionMethodSQL(column string) string {
	codes := make([]int, 0, len(collectionMethods))
	for code := range collectionMethods {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	var b strings.Builder
	fmt.Fprintf(&b, "CASE %s", column)
	for _, code := range codes {
		fmt.Fprintf(&b, " WHEN %d THEN '%s'", code, collectionMethods[code])
	}
	b.WriteString(" ELSE NULL END")
	return b.String()
}

// LocationMethodSQL renders the location-method table as a CASE over the
// named text column, uppercased to match SimplifyLocationMethod's
// case-insensitivity. Unrecognized values fall through to NULL.
func LocationMethodSQL(column string) string {
	raws := make([]string, 0, len(locationMethods))
	for raw := range locationMethods {
		raws = append(raws, raw)
	}
	sort.Strings(raws)

	var b strings.Builder
	fmt.Fprintf(&b, "CASE upper(trim(%s))", column)
	for _, raw := range raws {
		fmt.Fprintf(&b, " WHEN '%s' THEN '%s'", raw, locationMethods[raw])
	}
	b.WriteString(" ELSE NULL END")
	return b.String()
}

// CompositeComponentSQL renders the extraction of one composite-id
// component from the named column. Components 1-3 are plain dash-delimited
// fields; component 4 is the remainder after the third dash and may contain
// further dashes, so it needs a pattern rather than split_part.
func CompositeComponentSQL(column string, component int) (string, error) {
	switch {
	case component >= 1 && component <= 3:
		return fmt.Sprintf("split_part(%s, '-', %d)", column, component), nil
	case component == 4:
		return fmt.Sprintf("substring(%s from '^[^-]*-[^-]*-[^-]*-(.*)$')", column), nil
	}
	return "", fmt.Errorf("%w: %d", ErrInvalidComponentIndex, component)
}
