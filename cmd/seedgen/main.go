package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"shelfpace/cmd/seedgen/engine"
)

func main() {
	scenario := flag.String("scenario", "steady", "Scenario to generate: steady, sprinter, corrector")
	outDir := flag.String("out", "./.cache", "Output directory for the generated library database")
	items := flag.Int("items", 6, "Number of tracked items to generate")
	weeks := flag.Int("weeks", 10, "Weeks of snapshot history")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Items:    *items,
		Weeks:    *weeks,
		Seed:     *seed,
		Now:      time.Now().UTC(),
	}

	fmt.Printf("Generating scenario '%s' (%d items, %d weeks) to %s...\n", cfg.Scenario, cfg.Items, cfg.Weeks, *outDir)

	items2, snaps := engine.Generate(cfg)
	if err := engine.Save(*outDir, items2, snaps); err != nil {
		fmt.Printf("Failed to save seed data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
