package pnrconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config collects the pipeline's tuning constants: the PathFinder blend
// factors, the global placer's objective weights and the annealing
// schedules' bounds.
type Config struct {
	// Seed is the deterministic RNG seed used by the partitioner, the
	// global placer's SA and the detailed placer's SA.
	Seed int64 `yaml:"seed"`

	// NumIteration bounds the PathFinder outer loop.
	NumIteration int `yaml:"num_iteration"`

	// SlackFactor and HnFactor are PathFinder's a_n = slack*SlackFactor and
	// h(v) = history(v)*HnFactor terms. Both default to 1.
	SlackFactor float64 `yaml:"slack_factor"`
	HnFactor    float64 `yaml:"hn_factor"`

	// RouteStrategyRatio is the slack threshold separating delay-driven
	// from congestion-driven routing per sink.
	RouteStrategyRatio float64 `yaml:"route_strategy_ratio"`

	// Global placer objective weights.
	HPWLParam        float64 `yaml:"hpwl_param"`
	PotentialParam   float64 `yaml:"potential_param"`
	LegalParam       float64 `yaml:"legal_param"`
	AspectParam      float64 `yaml:"aspect_param"`
	AspectRatio      float64 `yaml:"aspect_ratio"`
	AnnealUserFactor float64 `yaml:"anneal_user_factor"`

	// CGMaxOuterIterations bounds the global placer's CG optimizer.
	CGMaxOuterIterations int `yaml:"cg_max_outer_iterations"`
	// CGPrecision is the CG inner loop's improvement-factor stop threshold.
	CGPrecision float64 `yaml:"cg_precision"`

	// RegisterFolding enables placing registers on switch-box nodes rather
	// than discrete register tiles.
	RegisterFolding bool `yaml:"register_folding"`

	// DetailRefineNumIter and DetailRefineThreshold bound the detailed
	// placer's post-SA downhill pass: outer rounds repeat until the relative
	// improvement falls to or below the threshold.
	DetailRefineNumIter   int     `yaml:"detail_refine_num_iter"`
	DetailRefineThreshold float64 `yaml:"detail_refine_threshold"`
}

// Default returns the stock tuning constants every pipeline stage starts
// from; Load overlays a YAML file on top of these.
func Default() Config {
	return Config{
		Seed:                  0,
		NumIteration:          50,
		SlackFactor:           1,
		HnFactor:              1,
		RouteStrategyRatio:    0.5,
		HPWLParam:             1,
		PotentialParam:        1,
		LegalParam:            1,
		AspectParam:           1,
		AspectRatio:           1,
		AnnealUserFactor:      1,
		CGMaxOuterIterations:  50,
		CGPrecision:           0.99999,
		RegisterFolding:       true,
		DetailRefineNumIter:   10,
		DetailRefineThreshold: 0.001,
	}
}

// Load reads a YAML file at path and overlays it onto Default(); fields
// absent from the file keep their default value. Malformed YAML is
// returned unchanged to the caller, never retried.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("pnrconfig: Load(%s): %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("pnrconfig: Load(%s): %w", path, err)
	}
	return cfg, nil
}
