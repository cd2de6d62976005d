package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the run configuration for the optimizer process.
type Config struct {
	WarehouseFile string `yaml:"warehouseFile"`
	DemandFile    string `yaml:"demandFile"`
	DistanceFile  string `yaml:"distanceFile"`

	ServiceLevel string `yaml:"serviceLevel"`
	// MaxWarehouses caps the single solve; 0 means uncapped.
	MaxWarehouses     int `yaml:"maxWarehouses"`
	SolveTimeLimitSec int `yaml:"solveTimeLimitSec"`

	Sweep SweepConfig `yaml:"sweep"`

	// BaselineCost is the all-warehouses-open reference cost used for the
	// savings report; 0 disables the report.
	BaselineCost float64 `yaml:"baselineCost"`

	// MetricsAddr exposes the Prometheus registry when set, e.g. ":9090".
	MetricsAddr string `yaml:"metricsAddr"`
}

// SweepConfig parameterizes the scenario comparison.
type SweepConfig struct {
	Caps         []int  `yaml:"caps"`
	TimeLimitSec int    `yaml:"timeLimitSec"`
	OutFile      string `yaml:"outFile"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		WarehouseFile:     "data/processed/warehouse_locations.csv",
		DemandFile:        "data/processed/aggregated_demand.csv",
		DistanceFile:      "data/raw/distance_matrix.csv",
		ServiceLevel:      "Standard",
		SolveTimeLimitSec: 300,
		Sweep: SweepConfig{
			Caps:         []int{2, 3, 4, 5, 6, 7, 8},
			TimeLimitSec: 60,
			OutFile:      "data/processed/scenario_analysis.csv",
		},
	}
}

// Load reads the YAML config at path, falling back to defaults when the file
// does not exist.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.SolveTimeLimitSec <= 0 || cfg.Sweep.TimeLimitSec <= 0 {
		return Config{}, fmt.Errorf("%s: time limits must be positive", path)
	}
	return cfg, nil
}

// SolveTimeLimit returns the single-solve budget as a duration.
func (c Config) SolveTimeLimit() time.Duration {
	return time.Duration(c.SolveTimeLimitSec) * time.Second
}

// SweepTimeLimit returns the per-scenario budget as a duration.
func (c Config) SweepTimeLimit() time.Duration {
	return time.Duration(c.Sweep.TimeLimitSec) * time.Second
}
