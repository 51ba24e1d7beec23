package config

import (
	"testing"

	"github.com/ichoake/spend-analysis/pkg/logger"
)

func TestCreateLoggerConfig(t *testing.T) {
	quiet := CreateLoggerConfig(false)
	if quiet.Level != logger.InfoLevel {
		t.Errorf("level = %s, expected info", quiet.Level)
	}
	if err := quiet.Validate(); err != nil {
		t.Errorf("default logger config invalid: %v", err)
	}

	verbose := CreateLoggerConfig(true)
	if verbose.Level != logger.DebugLevel {
		t.Errorf("verbose level = %s, expected debug", verbose.Level)
	}
}

func TestCreateParseConfig(t *testing.T) {
	config := CreateParseConfig()
	if !config.HasHeader {
		t.Error("expected HasHeader to be true")
	}
	if config.Delimiter != ',' {
		t.Errorf("delimiter = %c, expected comma", config.Delimiter)
	}
	if !config.SkipEmptyRows {
		t.Error("expected SkipEmptyRows to be true")
	}
}

func TestCreateSchemaConfig(t *testing.T) {
	config := CreateSchemaConfig()
	if config.DateThreshold != 0.5 {
		t.Errorf("date threshold = %v, expected 0.5", config.DateThreshold)
	}
	if len(config.DateLayouts) == 0 {
		t.Error("expected date layouts to be set")
	}
	if config.CategoryColumn != "category" {
		t.Errorf("category column = %q, expected category", config.CategoryColumn)
	}
	if config.AmountKeyword != "amount" {
		t.Errorf("amount keyword = %q, expected amount", config.AmountKeyword)
	}
}
