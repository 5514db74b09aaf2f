// Package scenario evaluates several named input sets side by side.
package scenario

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"impact-mcp/internal/impact"
	"impact-mcp/internal/report"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Scenario is a named set of estimator inputs.
type Scenario struct {
	Name   string        `json:"name" yaml:"name"`
	Inputs impact.Inputs `json:"inputs" yaml:"inputs"`
}

// File is the on-disk layout of a scenario document.
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Result holds the outcome for one scenario. Err is set when the inputs were rejected.
type Result struct {
	Name    string         `json:"name"`
	Inputs  impact.Inputs  `json:"inputs"`
	Outputs impact.Outputs `json:"outputs"`
	Err     error          `json:"-"`
}

// Load reads a scenario document from path.
func Load(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a scenario document and checks that names are present and unique.
func Decode(r io.Reader) ([]Scenario, error) {
	var doc File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	if len(doc.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file contains no scenarios")
	}

	seen := make(map[string]bool)
	for i, s := range doc.Scenarios {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("scenario %d has no name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate scenario name: %s", name)
		}
		seen[name] = true
		doc.Scenarios[i].Name = name
	}
	return doc.Scenarios, nil
}

// ApplyDefaultRiskLevel sets level on every scenario whose file entry omits risk_level.
func ApplyDefaultRiskLevel(scenarios []Scenario, level impact.RiskLevel) {
	for i := range scenarios {
		if strings.TrimSpace(string(scenarios[i].Inputs.RiskLevel)) == "" {
			scenarios[i].Inputs.RiskLevel = level
		}
	}
}

// Evaluate computes every scenario independently, at most limit at a time.
// Results keep the order of the input slice. A rejected scenario does not stop the others.
func Evaluate(ctx context.Context, scenarios []Scenario, limit int) ([]Result, error) {
	results := make([]Result, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, s := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := impact.Compute(s.Inputs)
			results[i] = Result{Name: s.Name, Inputs: s.Inputs, Outputs: out, Err: err}
			if err != nil {
				log.Debug().Str("scenario", s.Name).Err(err).Msg("Scenario rejected")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FirstError returns the first rejected scenario, labelled with its name.
func FirstError(results []Result) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("scenario %s: %w", r.Name, r.Err)
		}
	}
	return nil
}

// Columns converts successful results into comparison columns.
func Columns(results []Result) []report.Column {
	var cols []report.Column
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		cols = append(cols, report.Column{Name: r.Name, Outputs: r.Outputs})
	}
	return cols
}
