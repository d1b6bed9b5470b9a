package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/flexworks/co2flex/core/factory"
	coresink "github.com/flexworks/co2flex/core/sink"
	"github.com/flexworks/co2flex/monitor"
)

type Config struct {
	Data    DataConfig      `json:"data"`
	Calc    CalcConfig      `json:"calc"`
	Output  coresink.Config `json:"output"`
	Monitor monitor.Config  `json:"monitor"`
}

// defaults are loaded below the config file, so the file only has to name
// what differs.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"data.dir":              "data",
		"data.series_pattern":   "preis_und_emf_%d.csv",
		"data.averages_file":    "mittlere_preise_und_emf.csv",
		"data.measures_file":    "dsm_rohdaten.csv",
		"calc.year":             2023,
		"calc.max_co2":          true,
		"calc.max_cost":         false,
		"calc.combination":      false,
		"calc.basename":         "annual_potential",
		"calc.output_dir":       "output",
		"calc.adapted_measures": true,
	}
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("CF_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "cf_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Data.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Calc.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills the gaps the key-value defaults cannot express.
func (c *Config) SetDefaults() {
	if len(c.Output.Sinks) == 0 {
		c.Output.Sinks = []factory.ModuleConfig{{Type: "csv"}}
	}
}
