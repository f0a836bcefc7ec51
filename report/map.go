package report

import (
	"html/template"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/vgXhc/madison-accessibility/poi"
)

// POIFeatureCollection builds the GeoJSON layer backing the map: one point
// feature per POI, carrying its id and label.
func POIFeatureCollection(pois []poi.PointOfInterest) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range pois {
		f := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
		f.Properties["id"] = p.ID
		f.Properties["label"] = p.Label
		fc.Append(f)
	}
	return fc
}

type mapPage struct {
	Title   string
	GeoJSON template.JS
}

// WriteMap renders the POIs as labeled markers on a Leaflet map.
func WriteMap(w io.Writer, title string, pois []poi.PointOfInterest) error {
	fc := POIFeatureCollection(pois)
	data, err := fc.MarshalJSON()
	if err != nil {
		return &RenderError{Artifact: "map", Err: err}
	}
	page := mapPage{Title: title, GeoJSON: template.JS(data)}
	if err := mapTemplate.Execute(w, page); err != nil {
		return &RenderError{Artifact: "map", Err: err}
	}
	return nil
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
</style>
</head>
<body>
<div id="map"></div>
<script>
var pois = {{.GeoJSON}};
var map = L.map("map");
L.tileLayer("https://tile.openstreetmap.org/{z}/{x}/{y}.png", {
  attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);
var layer = L.geoJSON(pois, {
  onEachFeature: function (feature, marker) {
    marker.bindTooltip(feature.properties.id, { permanent: true, direction: "top" });
    marker.bindPopup(feature.properties.label);
  }
}).addTo(map);
map.fitBounds(layer.getBounds().pad(0.1));
</script>
</body>
</html>
`))
