// Package report renders the two output artifacts: the interactive
// before/after comparison table and the POI location map. No computation
// happens here; a render failure never invalidates the computed data.
package report
