package config

import (
	"fmt"

	"github.com/kbukum/automl/logger"
	"github.com/kbukum/automl/util"
)

// Config contains the library-level configuration consumed by embedding
// applications: logging and pipeline definition lookup.
type Config struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Definitions Definitions   `yaml:"definitions" mapstructure:"definitions"`
}

// Definitions configures where pipeline definition YAML files are searched.
type Definitions struct {
	Dirs []string `yaml:"dirs" mapstructure:"dirs"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	c.Name = util.Coalesce(c.Name, "automl")
	c.Environment = util.Coalesce(c.Environment, "development")
	if c.Environment == "development" {
		c.Debug = true
	}
	if len(c.Definitions.Dirs) == 0 {
		c.Definitions.Dirs = []string{"./pipelines", "./config/pipelines"}
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !util.Contains([]string{"development", "staging", "production"}, c.Environment) {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
