package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/loads"
	"github.com/trusspole/trusspole/pkg/optimize"
	"github.com/trusspole/trusspole/pkg/profile"
	"github.com/trusspole/trusspole/pkg/sizing"
	"github.com/trusspole/trusspole/pkg/truss"
)

// Config is the TOML run configuration: the tower outline, the load
// hypotheses, and the optional catalog and search overrides.
//
// Example:
//
//	[tower]
//	module-heights = [300.0, 300.0, 300.0]
//	base-width = 100.0
//
//	[[hypothesis]]
//	name = "Fh(+)"
//	horizontal = [445.0, 883.0, 1293.0]
//
//	[[hypothesis]]
//	name = "Fh(-)"
//	horizontal = [-445.0, -883.0, -1293.0]
type Config struct {
	Tower      towerConfig        `toml:"tower"`
	Hypotheses []hypothesisConfig `toml:"hypothesis"`
	Catalog    catalogConfig      `toml:"catalog"`
	Bolts      boltConfig         `toml:"bolts"`
	Search     searchConfig       `toml:"search"`
}

type towerConfig struct {
	// ModuleHeights in cm, top module first.
	ModuleHeights []float64 `toml:"module-heights"`
	BaseWidth     float64   `toml:"base-width"`
	TopWidth      float64   `toml:"top-width"`
}

type hypothesisConfig struct {
	Name       string    `toml:"name"`
	Horizontal []float64 `toml:"horizontal"`
}

type catalogConfig struct {
	// Path to a catalog workbook. Empty uses the builtin catalog.
	Path string `toml:"path"`
}

type boltConfig struct {
	Leg         float64 `toml:"leg"`
	Diagonal    float64 `toml:"diagonal"`
	Horizontal  float64 `toml:"horizontal"`
	MinLegBolts int     `toml:"min-leg-bolts"`
}

type searchConfig struct {
	Workers         int     `toml:"workers"`
	MaxIterations   int     `toml:"max-iterations"`
	WeightTolerance float64 `toml:"weight-tolerance"`
	MaxDisplacement float64 `toml:"max-displacement"`
}

// LoadConfig reads and parses a run configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return &cfg, nil
}

// Options converts the configuration into search options, loading the
// catalog workbook when one is configured. Validation of the assembled
// options happens inside the search itself.
func (c *Config) Options() (optimize.Options, error) {
	opts := optimize.Options{
		Geometry: truss.Geometry{
			ModuleHeights: c.Tower.ModuleHeights,
			BaseWidth:     c.Tower.BaseWidth,
			TopWidth:      c.Tower.TopWidth,
		},
		Workers:         c.Search.Workers,
		MaxIterations:   c.Search.MaxIterations,
		WeightTolerance: c.Search.WeightTolerance,
		MaxDisplacement: c.Search.MaxDisplacement,
	}
	for _, h := range c.Hypotheses {
		opts.Hypotheses = append(opts.Hypotheses, loads.Hypothesis{
			Name:       h.Name,
			Horizontal: h.Horizontal,
		})
	}
	if c.Catalog.Path != "" {
		cat, err := profile.LoadCatalog(c.Catalog.Path)
		if err != nil {
			return optimize.Options{}, err
		}
		opts.Catalog = cat
	}
	if c.Bolts != (boltConfig{}) {
		diameters := sizing.DefaultBoltDiameters()
		if c.Bolts.Leg > 0 {
			diameters[truss.GroupLeg] = c.Bolts.Leg
		}
		if c.Bolts.Diagonal > 0 {
			diameters[truss.GroupDiagonal] = c.Bolts.Diagonal
		}
		if c.Bolts.Horizontal > 0 {
			diameters[truss.GroupHorizontal] = c.Bolts.Horizontal
		}
		opts.Sizing = sizing.Options{
			BoltDiameters: diameters,
			MinLegBolts:   c.Bolts.MinLegBolts,
		}
	}
	return opts, nil
}
