package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"impact-mcp/cmd/scenariogen/engine"
)

func main() {
	preset := flag.String("preset", "risk", "Variation to generate: risk, cost, volume, jitter")
	out := flag.String("out", "./scenarios.yaml", "Output path for the scenario file")
	count := flag.Int("count", 5, "Number of scenarios for the cost, volume and jitter presets")
	seed := flag.Int64("seed", 0, "Random seed for the jitter preset (default: current time)")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Preset:   *preset,
		Count:    *count,
		Seed:     *seed,
		Baseline: engine.PilotBaseline(),
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	fmt.Printf("Generating preset '%s' (Count: %d) to %s...\n", cfg.Preset, cfg.Count, *out)

	scenarios, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate scenarios: %v\n", err)
		os.Exit(1)
	}

	if err := engine.Save(*out, scenarios); err != nil {
		fmt.Printf("Failed to save scenarios: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
