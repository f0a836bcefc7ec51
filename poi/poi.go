package poi

// PointOfInterest is a named, geolocated place used as a trip origin or
// destination. The set is externally curated and read once per run.
type PointOfInterest struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}
