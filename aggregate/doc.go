// Package aggregate reduces per-minute travel-time records to per-pair
// means and joins the before/after scenarios into comparison rows with
// relative changes.
package aggregate
