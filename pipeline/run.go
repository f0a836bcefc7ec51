package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/vgXhc/madison-accessibility/aggregate"
	"github.com/vgXhc/madison-accessibility/config"
	"github.com/vgXhc/madison-accessibility/gtfs"
	"github.com/vgXhc/madison-accessibility/internal"
	"github.com/vgXhc/madison-accessibility/poi"
	"github.com/vgXhc/madison-accessibility/report"
	"github.com/vgXhc/madison-accessibility/routing"
)

// Options controls where the artifacts land.
type Options struct {
	OutDir        string
	TableFile     string
	MapFile       string
	SkipPreflight bool
}

func (o *Options) applyDefaults() {
	if o.OutDir == "" {
		o.OutDir = "."
	}
	if o.TableFile == "" {
		o.TableFile = "comparison.html"
	}
	if o.MapFile == "" {
		o.MapFile = "pois.html"
	}
}

// Result holds the paths of the written artifacts.
type Result struct {
	TablePath string
	MapPath   string
}

// Run executes the whole comparison: load POIs, preflight both schedule
// archives, run the engine once per scenario, aggregate, join, and render
// the table and map. Strictly sequential and fail-fast: any load or
// routing error aborts the run with no partial output.
func Run(ctx context.Context, cfg config.AppConfig, opts Options) (*Result, error) {
	opts.applyDefaults()
	log := internal.GetLogger()

	pois, err := poi.Load(ctx, http.DefaultClient, cfg.POIs.ResolveCSVURL())
	if err != nil {
		return nil, err
	}
	log.Infow("loaded points of interest", "count", len(pois))

	if !opts.SkipPreflight {
		for _, sc := range []config.ScenarioConfig{cfg.Before, cfg.After} {
			if err := preflight(cfg, sc); err != nil {
				return nil, err
			}
		}
	}

	client := routing.NewClient(cfg.Engine.BaseURL, time.Duration(cfg.Engine.TimeoutMS)*time.Millisecond)

	// Both scenarios share one spatial parameter set; only the schedule
	// snapshot and departure differ.
	before, err := runScenario(ctx, client, cfg, cfg.Before, pois)
	if err != nil {
		return nil, err
	}
	after, err := runScenario(ctx, client, cfg, cfg.After, pois)
	if err != nil {
		return nil, err
	}

	rows := aggregate.Compare(before, after)
	log.Infow("joined scenarios", "rows", len(rows))

	res := &Result{
		TablePath: filepath.Join(opts.OutDir, opts.TableFile),
		MapPath:   filepath.Join(opts.OutDir, opts.MapFile),
	}
	title := fmt.Sprintf("Travel times: %s vs. %s", cfg.Before.Name, cfg.After.Name)
	if err := writeArtifact(res.TablePath, func(f *os.File) error {
		return report.WriteTable(f, title, rows)
	}); err != nil {
		return nil, err
	}
	if err := writeArtifact(res.MapPath, func(f *os.File) error {
		return report.WriteMap(f, "Points of interest", pois)
	}); err != nil {
		return nil, err
	}
	log.Infow("report written", "table", res.TablePath, "map", res.MapPath)
	return res, nil
}

func preflight(cfg config.AppConfig, sc config.ScenarioConfig) error {
	path := filepath.Join(cfg.Data.Dir, sc.Schedule)
	if err := gtfs.CheckArchive(path); err != nil {
		return err
	}
	departure, err := sc.DepartureTime()
	if err != nil {
		return err
	}
	covered, err := gtfs.ServiceCovers(path, departure)
	if err != nil {
		return err
	}
	if !covered {
		return fmt.Errorf("scenario %q: no service on %s in %s", sc.Name, departure.Format("2006-01-02"), sc.Schedule)
	}
	return nil
}

func runScenario(ctx context.Context, client *routing.Client, cfg config.AppConfig, sc config.ScenarioConfig, pois []poi.PointOfInterest) ([]aggregate.Pair, error) {
	departure, err := sc.DepartureTime()
	if err != nil {
		return nil, err
	}
	modes := make([]routing.Mode, len(cfg.Analysis.Modes))
	for i, m := range cfg.Analysis.Modes {
		modes[i] = routing.Mode(m)
	}
	records, err := client.TravelTimeMatrix(ctx, routing.TravelTimeRequest{
		Origins:        pois,
		Destinations:   pois,
		Modes:          modes,
		Departure:      departure,
		WindowMinutes:  cfg.Analysis.WindowMinutes,
		MaxWalkMinutes: cfg.Analysis.MaxWalkMinutes,
		MaxTripMinutes: cfg.Analysis.MaxTripMinutes,
		Network:        filepath.Join(cfg.Data.Dir, cfg.Data.Network),
		Schedule:       filepath.Join(cfg.Data.Dir, sc.Schedule),
	})
	if err != nil {
		return nil, err
	}
	pairs := aggregate.Summarize(records)
	internal.GetLogger().Infow("scenario aggregated",
		"scenario", sc.Name,
		"records", len(records),
		"pairs", len(pairs),
	)
	return pairs, nil
}

// writeArtifact writes via a temp file and rename so an aborted run leaves
// no partial report behind.
func writeArtifact(path string, render func(*os.File) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".report-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if err := render(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
