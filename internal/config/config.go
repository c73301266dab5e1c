package config

import "github.com/spf13/viper"

// DomainConfig registers one domain collection: the data file that holds it
// and the template its canonical paths are rendered from.
type DomainConfig struct {
	File         string `mapstructure:"file"`
	PathTemplate string `mapstructure:"path_template"`
}

// Config holds all runtime configuration for a crosslink run.
// Values are populated from .crosslink.yaml, CROSSLINK_* env vars, and CLI flags.
type Config struct {
	DataDir       string                  `mapstructure:"data_dir"`
	Domains       map[string]DomainConfig `mapstructure:"domains"`
	RelationsFile string                  `mapstructure:"relations_file"`
	HistoryDB     string                  `mapstructure:"history_db"`
	MaxExamples   int                     `mapstructure:"max_examples"`
	Verbose       bool                    `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. The four built-in
// domains are always registered; a config file can add more or override
// their files and templates.
func Load() Config {
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("relations_file", "")
	viper.SetDefault("history_db", "")
	viper.SetDefault("max_examples", 5)
	viper.SetDefault("verbose", false)

	viper.SetDefault("domains.materials.file", "materials.yaml")
	viper.SetDefault("domains.materials.path_template", "/materials/{category}/{subcategory}/{id}")
	viper.SetDefault("domains.contaminants.file", "contaminants.yaml")
	viper.SetDefault("domains.contaminants.path_template", "/contaminants/{category}/{subcategory}/{id}")
	viper.SetDefault("domains.compounds.file", "compounds.yaml")
	viper.SetDefault("domains.compounds.path_template", "/compounds/{category}/{subcategory}/{id}-compound")
	viper.SetDefault("domains.settings.file", "settings.yaml")
	viper.SetDefault("domains.settings.path_template", "/settings/{category}/{subcategory}/{id}-settings")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
