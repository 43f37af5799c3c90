package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mdsim/internal/config"
)

var _ = Describe("Run validation", func() {
	var cfg *config.Run

	BeforeEach(func() {
		cfg = config.DefaultRun()
	})

	It("accepts the defaults", func() {
		Expect(cfg.Validate()).To(Succeed())
	})

	It("accepts a single shell", func() {
		cfg.Cutoffs = []float64{2.3}
		cfg.Strides = []int{1}
		Expect(cfg.Validate()).To(Succeed())
	})

	It("rejects zero blocks", func() {
		cfg.Blocks = 0
		Expect(cfg.Validate()).To(MatchError(config.ErrCounts))
	})

	It("rejects zero steps", func() {
		cfg.Steps = 0
		Expect(cfg.Validate()).To(MatchError(config.ErrCounts))
	})

	It("rejects a non-positive time step", func() {
		cfg.Dt = 0
		Expect(cfg.Validate()).To(MatchError(config.ErrStep))
		cfg.Dt = -0.002
		Expect(cfg.Validate()).To(MatchError(config.ErrStep))
	})

	It("rejects an empty cutoff list", func() {
		cfg.Cutoffs = nil
		Expect(cfg.Validate()).To(MatchError(config.ErrCutoffs))
	})

	It("rejects cutoffs that do not increase", func() {
		cfg.Cutoffs = []float64{1.6, 1.6, 2.3}
		Expect(cfg.Validate()).To(MatchError(config.ErrCutoffs))
		cfg.Cutoffs = []float64{1.6, 2.3, 2.0}
		Expect(cfg.Validate()).To(MatchError(config.ErrCutoffs))
	})

	It("rejects a non-positive healing length", func() {
		cfg.Healing = 0
		Expect(cfg.Validate()).To(MatchError(config.ErrHealing))
	})

	It("rejects a healing length reaching the first cutoff", func() {
		cfg.Healing = cfg.Cutoffs[0]
		Expect(cfg.Validate()).To(MatchError(config.ErrHealing))
	})

	It("rejects shell gaps narrower than the healing length", func() {
		cfg.Cutoffs = []float64{2.4, 2.45, 4.0}
		Expect(cfg.Validate()).To(MatchError(config.ErrGap))
	})

	It("rejects a stride count that differs from the cutoff count", func() {
		cfg.Strides = []int{1, 4}
		Expect(cfg.Validate()).To(MatchError(config.ErrStrides))
	})

	It("rejects an innermost stride other than one", func() {
		cfg.Strides = []int{2, 4, 2}
		Expect(cfg.Validate()).To(MatchError(config.ErrBaseStride))
	})

	It("rejects non-positive strides", func() {
		cfg.Strides = []int{1, 0, 2}
		Expect(cfg.Validate()).To(MatchError(config.ErrStride))
		cfg.Strides = []int{1, -4, 2}
		Expect(cfg.Validate()).To(MatchError(config.ErrStride))
	})

	It("rejects negative workers", func() {
		cfg.Workers = -1
		Expect(cfg.Validate()).To(MatchError(config.ErrWorkers))
	})

	Describe("equilibration", func() {
		It("rejects negative warm-up blocks", func() {
			cfg.Equilibration.Blocks = -1
			Expect(cfg.Validate()).To(MatchError(config.ErrCounts))
		})

		It("rejects an unknown thermostat", func() {
			cfg.Equilibration.Thermostat = "nose-hoover"
			Expect(cfg.Validate()).To(MatchError(config.ErrThermostat))
		})

		It("rejects a non-positive target temperature", func() {
			cfg.Equilibration.Temperature = 0
			Expect(cfg.Validate()).To(MatchError(config.ErrTemperature))
		})

		It("rejects a non-positive berendsen tau", func() {
			cfg.Equilibration.Thermostat = "berendsen"
			cfg.Equilibration.Tau = 0
			Expect(cfg.Validate()).To(MatchError(config.ErrTau))
		})

		It("ignores coupling parameters when disabled", func() {
			cfg.Equilibration.Thermostat = "none"
			cfg.Equilibration.Temperature = 0
			cfg.Equilibration.Tau = 0
			Expect(cfg.Validate()).To(Succeed())

			cfg.Equilibration = config.Equilibration{Blocks: 0}
			Expect(cfg.Validate()).To(Succeed())
		})
	})
})

var _ = Describe("MC validation", func() {
	var cfg *config.MC

	BeforeEach(func() {
		cfg = config.DefaultMC()
	})

	It("accepts the defaults", func() {
		Expect(cfg.Validate()).To(Succeed())
	})

	It("rejects zero blocks or steps", func() {
		cfg.Blocks = 0
		Expect(cfg.Validate()).To(MatchError(config.ErrCounts))
		cfg.Blocks = 10
		cfg.Steps = 0
		Expect(cfg.Validate()).To(MatchError(config.ErrCounts))
	})

	It("rejects a non-positive trial displacement", func() {
		cfg.DrMax = 0
		Expect(cfg.Validate()).To(MatchError(config.ErrMove))
	})

	It("rejects a non-positive box scaling", func() {
		cfg.EpsBox = -0.005
		Expect(cfg.Validate()).To(MatchError(config.ErrMove))
	})
})
