package routing

import (
	"time"

	"github.com/vgXhc/madison-accessibility/poi"
)

// Mode is a travel mode accepted by the routing engine.
type Mode string

const (
	ModeWalk    Mode = "WALK"
	ModeTransit Mode = "TRANSIT"
)

// TravelTimeRecord is one feasible trip reported by the engine: one row per
// origin/destination/departure-minute. All durations are minutes.
type TravelTimeRecord struct {
	FromID          string  `json:"from_id"`
	ToID            string  `json:"to_id"`
	DepartureMinute int     `json:"departure_minute"`
	TotalTime       float64 `json:"total_time"`
	AccessTime      float64 `json:"access_time"`
	EgressTime      float64 `json:"egress_time"`
	TransferTime    float64 `json:"transfer_time"`
}

// TravelTimeRequest parameterizes one expanded travel-time-matrix call.
// Origins and destinations are the same POI set in this pipeline, but the
// engine does not require that.
type TravelTimeRequest struct {
	Origins        []poi.PointOfInterest
	Destinations   []poi.PointOfInterest
	Modes          []Mode
	Departure      time.Time
	WindowMinutes  int
	MaxWalkMinutes int
	MaxTripMinutes int
	Network        string
	Schedule       string
}

// wire types for the engine's matrix endpoint

type enginePlace struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type engineMatrixRequest struct {
	Origins         []enginePlace `json:"origins"`
	Destinations    []enginePlace `json:"destinations"`
	Modes           []Mode        `json:"modes"`
	Departure       string        `json:"departure"`
	TimeWindow      int           `json:"time_window"`
	MaxWalkTime     int           `json:"max_walk_time"`
	MaxTripDuration int           `json:"max_trip_duration"`
	Network         string        `json:"network"`
	Schedule        string        `json:"schedule"`
}

type engineMatrixResponse struct {
	TravelTimes []TravelTimeRecord `json:"travel_times"`
	Error       string             `json:"error,omitempty"`
}

func toEnginePlaces(pois []poi.PointOfInterest) []enginePlace {
	out := make([]enginePlace, len(pois))
	for i, p := range pois {
		out[i] = enginePlace{ID: p.ID, Lat: p.Lat, Lon: p.Lon}
	}
	return out
}
