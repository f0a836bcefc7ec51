package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/vgXhc/madison-accessibility/config"
	"github.com/vgXhc/madison-accessibility/internal"
	"github.com/vgXhc/madison-accessibility/pipeline"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to configuration file")
	outDir := flag.String("out", ".", "directory for the rendered artifacts")
	tableFile := flag.String("table", "comparison.html", "filename of the comparison table")
	mapFile := flag.String("map", "pois.html", "filename of the POI map")
	skipPreflight := flag.Bool("skip-preflight", false, "skip schedule archive checks")
	engineURL := flag.String("engine", "", "routing engine base URL (overrides config)")
	poiURL := flag.String("pois", "", "POI CSV export URL (overrides config)")
	flag.Parse()

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	internal.InitLogger()
	defer internal.SyncLogger()
	log := internal.GetLogger()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *engineURL != "" {
		cfg.Engine.BaseURL = *engineURL
	} else if v := os.Getenv("ENGINE_BASE_URL"); v != "" {
		cfg.Engine.BaseURL = v
	}
	if *poiURL != "" {
		cfg.POIs.CSVURL = *poiURL
	} else if v := os.Getenv("POI_CSV_URL"); v != "" {
		cfg.POIs.CSVURL = v
	}

	res, err := pipeline.Run(context.Background(), cfg, pipeline.Options{
		OutDir:        *outDir,
		TableFile:     *tableFile,
		MapFile:       *mapFile,
		SkipPreflight: *skipPreflight,
	})
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}
	log.Infof("comparison table: %s", res.TablePath)
	log.Infof("POI map: %s", res.MapPath)
}
