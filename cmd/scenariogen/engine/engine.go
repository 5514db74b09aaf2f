package engine

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"impact-mcp/internal/impact"
	"impact-mcp/internal/scenario"

	"gopkg.in/yaml.v3"
)

const (
	PresetRisk   = "risk"
	PresetCost   = "cost"
	PresetVolume = "volume"
	PresetJitter = "jitter"
)

type GeneratorConfig struct {
	Preset   string
	Count    int
	Seed     int64
	Baseline impact.Inputs
}

// PilotBaseline is a typical single-clinic pilot.
func PilotBaseline() impact.Inputs {
	return impact.Inputs{
		ReportsPerMonth:               40,
		CurrentRejectionRatePct:       15,
		AverageDelayDays:              5,
		ClinicianHourlyCostUSD:        75,
		MinutesPerReportNow:           45,
		MinutesPerReportTarget:        25,
		ExpectedRejectionReductionPct: 50,
		ValuePerOnTimeApprovalUSD:     120,
		MonthlyDeploymentCostUSD:      600,
		RiskLevel:                     impact.RiskMedium,
	}
}

func Generate(cfg GeneratorConfig) ([]scenario.Scenario, error) {
	if cfg.Count < 1 {
		cfg.Count = 1
	}
	base := cfg.Baseline
	if base.RiskLevel == "" {
		base.RiskLevel = impact.RiskMedium
	}

	var out []scenario.Scenario
	switch cfg.Preset {
	case PresetRisk:
		for _, level := range impact.RiskLevels() {
			in := base
			in.RiskLevel = level
			out = append(out, scenario.Scenario{Name: fmt.Sprintf("risk %s", level), Inputs: in})
		}
	case PresetCost:
		// Steps from half to double the baseline cost.
		for i := 0; i < cfg.Count; i++ {
			in := base
			in.MonthlyDeploymentCostUSD = math.Round(base.MonthlyDeploymentCostUSD * stepFactor(i, cfg.Count))
			out = append(out, scenario.Scenario{Name: fmt.Sprintf("cost %.0f", in.MonthlyDeploymentCostUSD), Inputs: in})
		}
	case PresetVolume:
		for i := 0; i < cfg.Count; i++ {
			in := base
			in.ReportsPerMonth = int(math.Round(float64(base.ReportsPerMonth) * stepFactor(i, cfg.Count)))
			out = append(out, scenario.Scenario{Name: fmt.Sprintf("volume %d", in.ReportsPerMonth), Inputs: in})
		}
	case PresetJitter:
		rng := rand.New(rand.NewSource(cfg.Seed))
		levels := impact.RiskLevels()
		for i := 0; i < cfg.Count; i++ {
			in := base
			in.ReportsPerMonth = jitterInt(rng, base.ReportsPerMonth)
			in.CurrentRejectionRatePct = clampPct(jitter(rng, base.CurrentRejectionRatePct))
			in.ClinicianHourlyCostUSD = jitter(rng, base.ClinicianHourlyCostUSD)
			in.MinutesPerReportNow = jitterInt(rng, base.MinutesPerReportNow)
			in.MinutesPerReportTarget = jitterInt(rng, base.MinutesPerReportTarget)
			in.ExpectedRejectionReductionPct = clampPct(jitter(rng, base.ExpectedRejectionReductionPct))
			in.ValuePerOnTimeApprovalUSD = jitter(rng, base.ValuePerOnTimeApprovalUSD)
			in.MonthlyDeploymentCostUSD = jitter(rng, base.MonthlyDeploymentCostUSD)
			in.RiskLevel = levels[rng.Intn(len(levels))]
			out = append(out, scenario.Scenario{Name: fmt.Sprintf("sample %d", i+1), Inputs: in})
		}
	default:
		return nil, fmt.Errorf("unknown preset: %s (expected risk, cost, volume or jitter)", cfg.Preset)
	}
	return out, nil
}

// stepFactor spreads count points evenly over [0.5, 2.0].
func stepFactor(i, count int) float64 {
	if count == 1 {
		return 1
	}
	return 0.5 + 1.5*float64(i)/float64(count-1)
}

// jitter moves v by up to 25% either way, rounded to two decimals.
func jitter(rng *rand.Rand, v float64) float64 {
	f := 0.75 + rng.Float64()*0.5
	return math.Round(v*f*100) / 100
}

func jitterInt(rng *rand.Rand, v int) int {
	return int(math.Round(float64(v) * (0.75 + rng.Float64()*0.5)))
}

func clampPct(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func Save(path string, scenarios []scenario.Scenario) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(scenario.File{Scenarios: scenarios}); err != nil {
		return err
	}
	return enc.Close()
}
