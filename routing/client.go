package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bluele/gcache"

	"github.com/vgXhc/madison-accessibility/internal"
)

// Client wraps the routing engine's expanded travel-time-matrix endpoint.
// The engine owns all route search; the client only marshals parameters and
// surfaces engine failures.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      gcache.Cache
}

// NewClient creates a client for the engine at baseURL. A zero timeout
// leaves the call unbounded, since matrix runs routinely take minutes.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cache:      gcache.New(16).LRU().Build(),
	}
}

// TravelTimeMatrix computes per-minute travel times between all
// origin/destination pairs for every departure minute in the request
// window. Pair-minutes with no feasible trip produce no record. Responses
// are cached per request so re-renders within one process skip the engine.
func (c *Client) TravelTimeMatrix(ctx context.Context, req TravelTimeRequest) ([]TravelTimeRecord, error) {
	key := c.cacheKey(req)
	if cached, err := c.cache.Get(key); err == nil {
		if records, ok := cached.([]TravelTimeRecord); ok {
			internal.GetLogger().Debugf("matrix cache hit for %s", key)
			return records, nil
		}
	}

	body, err := json.Marshal(engineMatrixRequest{
		Origins:         toEnginePlaces(req.Origins),
		Destinations:    toEnginePlaces(req.Destinations),
		Modes:           req.Modes,
		Departure:       req.Departure.Format(time.RFC3339),
		TimeWindow:      req.WindowMinutes,
		MaxWalkTime:     req.MaxWalkMinutes,
		MaxTripDuration: req.MaxTripMinutes,
		Network:         req.Network,
		Schedule:        req.Schedule,
	})
	if err != nil {
		return nil, &EngineError{Stage: "request", Err: err}
	}

	url := c.baseURL + "/v1/matrix/expanded"
	internal.GetLogger().Infow("matrix request",
		"url", url,
		"schedule", req.Schedule,
		"departure", req.Departure.Format(time.RFC3339),
		"window_min", req.WindowMinutes,
	)
	start := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &EngineError{Stage: "request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &EngineError{Stage: "request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &EngineError{
			Stage: "status",
			Err:   fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, url, strings.TrimSpace(string(payload))),
		}
	}

	var out engineMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &EngineError{Stage: "decode", Err: err}
	}
	if out.Error != "" {
		return nil, &EngineError{Stage: "engine", Err: errors.New(out.Error)}
	}

	internal.GetLogger().Infow("matrix response",
		"records", len(out.TravelTimes),
		"elapsed", time.Since(start).String(),
	)
	c.cache.Set(key, out.TravelTimes)
	return out.TravelTimes, nil
}

// cacheKey is deterministic over everything that changes the engine's
// answer. The two scenario calls differ in schedule and departure, so they
// never collide.
func (c *Client) cacheKey(req TravelTimeRequest) string {
	var b strings.Builder
	b.WriteString(req.Network)
	b.WriteByte('|')
	b.WriteString(req.Schedule)
	b.WriteByte('|')
	b.WriteString(req.Departure.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "|%d|%d|%d", req.WindowMinutes, req.MaxWalkMinutes, req.MaxTripMinutes)
	for _, m := range req.Modes {
		b.WriteByte('|')
		b.WriteString(string(m))
	}
	for _, p := range req.Origins {
		fmt.Fprintf(&b, "|%s:%.6f,%.6f", p.ID, p.Lat, p.Lon)
	}
	for _, p := range req.Destinations {
		fmt.Fprintf(&b, "|%s:%.6f,%.6f", p.ID, p.Lat, p.Lon)
	}
	return b.String()
}
