package config

import (
	"fmt"
	"time"
)

// POISourceConfig points at the spreadsheet holding the points of interest.
// Either an explicit CSV export URL or a Google Sheets document ID.
type POISourceConfig struct {
	CSVURL     string `yaml:"csvURL" validate:"omitempty,url"`
	DocumentID string `yaml:"documentID" validate:"omitempty"`
}

// ResolveCSVURL returns the URL to fetch POI rows from. A document ID is
// expanded to the sheet's CSV export endpoint.
func (p POISourceConfig) ResolveCSVURL() string {
	if p.CSVURL != "" {
		return p.CSVURL
	}
	if p.DocumentID != "" {
		return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", p.DocumentID)
	}
	return ""
}

// EngineConfig contains the routing engine endpoint configuration.
type EngineConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"required,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// DataConfig locates the routing inputs consumed by the engine.
type DataConfig struct {
	Dir     string `yaml:"dir" validate:"required"`
	Network string `yaml:"network" validate:"required"`
}

// ScenarioConfig describes one schedule snapshot and its departure instant.
type ScenarioConfig struct {
	Name      string `yaml:"name" validate:"required"`
	Schedule  string `yaml:"schedule" validate:"required"`
	Departure string `yaml:"departure" validate:"required"`
}

// DepartureTime parses the scenario departure as RFC 3339.
func (s ScenarioConfig) DepartureTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s.Departure)
	if err != nil {
		return time.Time{}, fmt.Errorf("scenario %q: bad departure %q: %w", s.Name, s.Departure, err)
	}
	return t, nil
}

// AnalysisConfig carries the trip constraints shared by both scenarios.
type AnalysisConfig struct {
	Modes          []string `yaml:"modes"`
	MaxWalkMinutes int      `yaml:"maxWalkMinutes" validate:"gte=0"`
	MaxTripMinutes int      `yaml:"maxTripMinutes" validate:"gte=0"`
	WindowMinutes  int      `yaml:"windowMinutes" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	POIs     POISourceConfig `yaml:"pois"`
	Engine   EngineConfig    `yaml:"engine"`
	Data     DataConfig      `yaml:"data"`
	Before   ScenarioConfig  `yaml:"before"`
	After    ScenarioConfig  `yaml:"after"`
	Analysis AnalysisConfig  `yaml:"analysis"`
}
