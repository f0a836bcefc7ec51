package poi

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// ErrDataUnavailable marks a POI source that is unreachable or malformed.
// Callers test for it with errors.Is.
var ErrDataUnavailable = errors.New("poi data unavailable")

// Load fetches the POI spreadsheet CSV export and parses it into the
// ordered set of points of interest.
func Load(ctx context.Context, client *http.Client, csvURL string) ([]PointOfInterest, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, csvURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrDataUnavailable, csvURL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrDataUnavailable, resp.StatusCode, csvURL)
	}
	pois, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", csvURL, err)
	}
	return pois, nil
}

// Parse reads CSV rows of (id, label?, lat, lon) keyed by header name.
// The label column is optional; a blank label falls back to the id.
// Duplicate ids are rejected since every downstream join assumes the id
// identifies exactly one place.
func Parse(r io.Reader) ([]PointOfInterest, error) {
	csvr := csv.NewReader(r)
	rec, err := csvr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if len(rec) == 0 {
		return nil, fmt.Errorf("%w: empty source", ErrDataUnavailable)
	}
	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	idCol := idx("id")
	labelCol := idx("label")
	latCol := idx("lat")
	lonCol := idx("lon")
	if idCol < 0 || latCol < 0 || lonCol < 0 {
		return nil, fmt.Errorf("%w: missing required column (need id, lat, lon)", ErrDataUnavailable)
	}

	pois := make([]PointOfInterest, 0, len(rec)-1)
	seen := make(map[string]bool, len(rec)-1)
	for _, row := range rec[1:] {
		id := strings.TrimSpace(row[idCol])
		if id == "" {
			return nil, fmt.Errorf("%w: row with empty id", ErrDataUnavailable)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrDataUnavailable, id)
		}
		seen[id] = true
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[latCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: id %q: bad lat %q", ErrDataUnavailable, id, row[latCol])
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[lonCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: id %q: bad lon %q", ErrDataUnavailable, id, row[lonCol])
		}
		label := id
		if labelCol >= 0 && strings.TrimSpace(row[labelCol]) != "" {
			label = strings.TrimSpace(row[labelCol])
		}
		pois = append(pois, PointOfInterest{ID: id, Label: label, Lat: lat, Lon: lon})
	}
	return pois, nil
}
