// Package config assembles component configurations for the CLI.
package config

import (
	"github.com/ichoake/spend-analysis/internal/parsers"
	"github.com/ichoake/spend-analysis/internal/schema"
	"github.com/ichoake/spend-analysis/pkg/logger"
)

// CreateLoggerConfig returns the logger configuration for a run.
func CreateLoggerConfig(verbose bool) *logger.Config {
	if verbose {
		return logger.DebugConfig()
	}
	return logger.DefaultConfig()
}

// CreateParseConfig returns the tabular parsing configuration.
func CreateParseConfig() *parsers.ParseConfig {
	return parsers.DefaultParseConfig()
}

// CreateSchemaConfig returns the schema inference heuristics.
func CreateSchemaConfig() *schema.Config {
	return schema.DefaultConfig()
}
