package models

// Config represents the main configuration
type Config struct {
	Rules  RulesConfig  `mapstructure:"rules"`
	Output OutputConfig `mapstructure:"output"`
}

// RulesConfig contains rule-set settings
type RulesConfig struct {
	File            string `mapstructure:"file"`
	AcceptSemicolon bool   `mapstructure:"accept_semicolon"`
	CacheSize       int    `mapstructure:"cache_size"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`
}
