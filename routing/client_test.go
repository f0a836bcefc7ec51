package routing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vgXhc/madison-accessibility/poi"
)

func testRequest() TravelTimeRequest {
	return TravelTimeRequest{
		Origins: []poi.PointOfInterest{
			{ID: "A", Lat: 43.07, Lon: -89.38},
			{ID: "B", Lat: 43.14, Lon: -89.34},
		},
		Destinations: []poi.PointOfInterest{
			{ID: "A", Lat: 43.07, Lon: -89.38},
			{ID: "B", Lat: 43.14, Lon: -89.34},
		},
		Modes:          []Mode{ModeWalk, ModeTransit},
		Departure:      time.Date(2023, 5, 31, 7, 0, 0, 0, time.UTC),
		WindowMinutes:  30,
		MaxWalkMinutes: 30,
		MaxTripMinutes: 150,
		Network:        "data/madison.osm.pbf",
		Schedule:       "data/mmt_gtfs_2023-05.zip",
	}
}

func TestTravelTimeMatrix(t *testing.T) {
	var gotReq engineMatrixRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/matrix/expanded" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(engineMatrixResponse{TravelTimes: []TravelTimeRecord{
			{FromID: "A", ToID: "B", DepartureMinute: 0, TotalTime: 18, AccessTime: 3, EgressTime: 2, TransferTime: 0},
			{FromID: "A", ToID: "B", DepartureMinute: 1, TotalTime: 22, AccessTime: 3, EgressTime: 2, TransferTime: 4},
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	records, err := c.TravelTimeMatrix(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("TravelTimeMatrix failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].TransferTime != 4 {
		t.Errorf("unexpected record: %+v", records[1])
	}

	// The wrapper must pass scenario parameters through unchanged.
	if gotReq.TimeWindow != 30 || gotReq.MaxWalkTime != 30 || gotReq.MaxTripDuration != 150 {
		t.Errorf("constraints not marshaled: %+v", gotReq)
	}
	if gotReq.Departure != "2023-05-31T07:00:00Z" {
		t.Errorf("departure not marshaled: %q", gotReq.Departure)
	}
	if len(gotReq.Origins) != 2 || gotReq.Origins[0].ID != "A" {
		t.Errorf("origins not marshaled: %+v", gotReq.Origins)
	}
}

func TestTravelTimeMatrix_CachesIdenticalRequests(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_ = json.NewEncoder(w).Encode(engineMatrixResponse{TravelTimes: []TravelTimeRecord{
			{FromID: "A", ToID: "B", TotalTime: 10},
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	for i := 0; i < 3; i++ {
		if _, err := c.TravelTimeMatrix(context.Background(), testRequest()); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected 1 engine call for identical requests, got %d", calls)
	}

	// A different schedule snapshot must miss the cache.
	other := testRequest()
	other.Schedule = "data/mmt_gtfs_2023-06.zip"
	if _, err := c.TravelTimeMatrix(context.Background(), other); err != nil {
		t.Fatalf("second scenario failed: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected 2 engine calls across scenarios, got %d", calls)
	}
}

func TestTravelTimeMatrix_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		stage   string
	}{
		{
			name: "engine rejects inputs",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bad schedule file", http.StatusBadRequest)
			},
			stage: "status",
		},
		{
			name: "engine-level failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(engineMatrixResponse{Error: "network graph failed to build"})
			},
			stage: "engine",
		},
		{
			name: "malformed response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
			stage: "decode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL, 0)
			_, err := c.TravelTimeMatrix(context.Background(), testRequest())
			var engineErr *EngineError
			if !errors.As(err, &engineErr) {
				t.Fatalf("expected EngineError, got %v", err)
			}
			if engineErr.Stage != tt.stage {
				t.Errorf("expected stage %q, got %q", tt.stage, engineErr.Stage)
			}
		})
	}
}

func TestTravelTimeMatrix_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.TravelTimeMatrix(context.Background(), testRequest())
	var engineErr *EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected EngineError, got %v", err)
	}
	if engineErr.Stage != "request" {
		t.Errorf("expected stage request, got %q", engineErr.Stage)
	}
}
