package catalog

import "github.com/couchcryptid/clim-settings-service/internal/domain"

// obsSuffix marks the observation-only copy of an axis range.
const obsSuffix = "_obs"

// MergeRanges returns a new table holding defaults overlaid with specifics,
// plus an "_obs" copy of every resulting key. Neither input is modified.
func MergeRanges(defaults, specifics domain.RangeTable) domain.RangeTable {
	merged := make(domain.RangeTable, 2*(len(defaults)+len(specifics)))
	for key, r := range defaults {
		merged[key] = r
	}
	for key, r := range specifics {
		merged[key] = r
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	for _, key := range keys {
		merged[key+obsSuffix] = merged[key]
	}
	return merged
}

// AnnotateShapes merges the shared defaults into every shape's specifics.
func AnnotateShapes(defaults domain.RangeTable, specifics domain.ShapeTable) domain.ShapeTable {
	annotation := make(domain.ShapeTable, len(specifics))
	for shape, ranges := range specifics {
		annotation[shape] = MergeRanges(defaults, ranges)
	}
	return annotation
}
