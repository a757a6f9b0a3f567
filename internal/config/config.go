// Package config defines the run configuration: yaml load/save, defaults,
// named presets, and the conversions into the physical parameter and
// initial-condition structs. Configs speak astronomical units (Msun, kpc,
// Myr, K); everything downstream is SI.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/galaxsph/internal/body"
	"github.com/san-kum/galaxsph/internal/evolve"
	"github.com/san-kum/galaxsph/internal/galaxy"
	"github.com/san-kum/galaxsph/internal/units"
)

type Config struct {
	N             int     `yaml:"n"`
	Dt            float64 `yaml:"dt"`       // Myr
	Duration      float64 `yaml:"duration"` // Myr
	Seed          int64   `yaml:"seed"`
	SnapshotEvery int     `yaml:"snapshot_every"`

	IC   ICConfig   `yaml:"init"`
	Phys PhysConfig `yaml:"phys"`
	Halo HaloConfig `yaml:"halo"`
}

type ICConfig struct {
	MGas   float64 `yaml:"m_gas"`  // Msun
	Radius float64 `yaml:"radius"` // kpc
	Spin   float64 `yaml:"spin"`
	Sigma  float64 `yaml:"sigma"`
	Temp   float64 `yaml:"temp"` // K
}

type PhysConfig struct {
	Alpha         float64 `yaml:"alpha"`
	Beta          float64 `yaml:"beta"`
	KCond         float64 `yaml:"k_cond"`
	Eps           float64 `yaml:"eps"`
	EtaEff        float64 `yaml:"eta_eff"`
	HEta          float64 `yaml:"h_eta"`
	StarFormation bool    `yaml:"star_formation"`
	Viscosity     bool    `yaml:"viscosity"`
}

type HaloConfig struct {
	MTot float64 `yaml:"m_tot"` // Msun
	ANFW float64 `yaml:"a_nfw"`
	Rs   float64 `yaml:"rs"` // kpc
}

func DefaultConfig() *Config {
	return &Config{
		N:             1000,
		Dt:            0.5,
		Duration:      100,
		SnapshotEvery: 10,
		IC: ICConfig{
			MGas:   1e8,
			Radius: 5,
			Spin:   0.4,
			Sigma:  0.1,
			Temp:   1e4,
		},
		Phys: PhysConfig{
			Alpha:         1.0,
			Beta:          2.0,
			KCond:         0,
			Eps:           0.01,
			EtaEff:        0.01,
			HEta:          2.1,
			StarFormation: false,
			Viscosity:     true,
		},
		Halo: HaloConfig{
			MTot: 1e10,
			ANFW: 1.4888,
			Rs:   10,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the config into the read-only physical parameter set.
func (c *Config) Params() *body.Params {
	return &body.Params{
		G:             units.G,
		Rig:           units.Rig,
		MTot:          c.Halo.MTot * units.Msun,
		ANFW:          c.Halo.ANFW,
		Rs:            c.Halo.Rs * units.Kpc,
		KCond:         c.Phys.KCond,
		Eps:           c.Phys.Eps,
		Alpha:         c.Phys.Alpha,
		Beta:          c.Phys.Beta,
		EtaEff:        c.Phys.EtaEff,
		StarFormation: c.Phys.StarFormation,
		Viscosity:     c.Phys.Viscosity,
	}
}

// InitCond converts the config into the initial-condition description.
func (c *Config) InitCond() galaxy.IC {
	return galaxy.IC{
		N:       c.N,
		MGasTot: c.IC.MGas * units.Msun,
		Radius:  c.IC.Radius * units.Kpc,
		Spin:    c.IC.Spin,
		Sigma:   c.IC.Sigma,
		Temp:    c.IC.Temp,
		Mu:      units.MuHydrogen,
	}
}

// EvolveConfig converts timestep and duration to SI.
func (c *Config) EvolveConfig() evolve.Config {
	return evolve.Config{
		Dt:            c.Dt * units.Myr,
		TMax:          c.Duration * units.Myr,
		SnapshotEvery: c.SnapshotEvery,
		ValidateState: true,
	}
}
