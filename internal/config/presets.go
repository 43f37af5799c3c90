package config

var Presets = map[string]*Run{
	"quick": {
		Blocks: 4, Steps: 100, Dt: 0.002,
		Cutoffs: []float64{1.6, 2.0, 2.3}, Strides: []int{1, 4, 2}, Healing: 0.1,
		Workers: 1,
		Equilibration: Equilibration{
			Blocks: 1, Thermostat: "rescale", Temperature: 1.0, Tau: DefaultTau,
		},
	},
	"single": {
		Blocks: 10, Steps: 1000, Dt: 0.005,
		Cutoffs: []float64{2.3}, Strides: []int{1}, Healing: 0.1,
		Workers: 1,
		Equilibration: Equilibration{
			Blocks: 2, Thermostat: "rescale", Temperature: 1.0, Tau: DefaultTau,
		},
	},
	"triple": {
		Blocks: 10, Steps: 500, Dt: 0.002,
		Cutoffs: []float64{1.6, 2.0, 2.3}, Strides: []int{1, 4, 2}, Healing: 0.1,
		Workers: 1,
		Equilibration: Equilibration{
			Blocks: 2, Thermostat: "rescale", Temperature: 1.0, Tau: DefaultTau,
		},
	},
	"wide": {
		Blocks: 10, Steps: 200, Dt: 0.002,
		Cutoffs: []float64{2.4, 3.5, 4.0}, Strides: []int{1, 4, 2}, Healing: 0.1,
		Workers: 4,
		Equilibration: Equilibration{
			Blocks: 2, Thermostat: "berendsen", Temperature: 1.0, Tau: DefaultTau,
		},
	},
}

func GetPreset(name string) *Run {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
