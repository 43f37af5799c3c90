package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.002
	DefaultBlocks      = 10
	DefaultSteps       = 500
	DefaultHealing     = 0.1
	DefaultTemperature = 1.0
	DefaultTau         = 0.1

	DefaultMCBlocks = 10
	DefaultMCSteps  = 1000
	DefaultDrMax    = 0.15
	DefaultEpsBox   = 0.005
)

// Run holds the parameters of one molecular dynamics run. Cutoffs and
// Strides are indexed by shell, innermost first; Strides[0] must be 1.
type Run struct {
	Blocks         int           `yaml:"blocks"`
	Steps          int           `yaml:"steps"`
	Dt             float64       `yaml:"dt"`
	Cutoffs        []float64     `yaml:"cutoffs"`
	Strides        []int         `yaml:"strides"`
	Healing        float64       `yaml:"healing"`
	TailCorrection bool          `yaml:"tail_correction"`
	Workers        int           `yaml:"workers"`
	Seed           int64         `yaml:"seed"`
	Equilibration  Equilibration `yaml:"equilibration"`
}

// Equilibration configures the warm-up blocks that precede averaging.
// Thermostat is one of "none", "rescale" or "berendsen"; Tau is the
// Berendsen coupling time.
type Equilibration struct {
	Blocks      int     `yaml:"blocks"`
	Thermostat  string  `yaml:"thermostat"`
	Temperature float64 `yaml:"temperature"`
	Tau         float64 `yaml:"tau"`
}

// MC holds the parameters of a hard-sphere Monte Carlo run. DrMax is the
// maximum trial displacement, EpsBox the box scaling used by the pressure
// estimator.
type MC struct {
	Blocks int     `yaml:"blocks"`
	Steps  int     `yaml:"steps"`
	DrMax  float64 `yaml:"dr_max"`
	EpsBox float64 `yaml:"eps_box"`
	Seed   int64   `yaml:"seed"`
}

func DefaultRun() *Run {
	return &Run{
		Blocks:  DefaultBlocks,
		Steps:   DefaultSteps,
		Dt:      DefaultDt,
		Cutoffs: []float64{1.6, 2.0, 2.3},
		Strides: []int{1, 4, 2},
		Healing: DefaultHealing,
		Workers: 1,
		Equilibration: Equilibration{
			Blocks:      2,
			Thermostat:  "rescale",
			Temperature: DefaultTemperature,
			Tau:         DefaultTau,
		},
	}
}

func DefaultMC() *MC {
	return &MC{
		Blocks: DefaultMCBlocks,
		Steps:  DefaultMCSteps,
		DrMax:  DefaultDrMax,
		EpsBox: DefaultEpsBox,
	}
}

// LoadRun reads a YAML run file. Missing keys keep their defaults.
func LoadRun(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultRun()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveRun(path string, cfg *Run) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadMC reads a YAML Monte Carlo file. Missing keys keep their defaults.
func LoadMC(path string) (*MC, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultMC()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveMC(path string, cfg *MC) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
