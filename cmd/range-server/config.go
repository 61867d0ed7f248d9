package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the resolved configuration of the server.
type Config struct {
	Port    int
	DB      string
	LogFile string
	Trace   bool
	Ranges  RangesConfig
}

type RangesConfig struct {
	Combine   bool
	MaxRanges int
}

// fileConfig is the on-disk configuration. Keys missing from the file are nil.
type fileConfig struct {
	Port    *int             `yaml:"port" toml:"port"`
	DB      *string          `yaml:"db" toml:"db"`
	LogFile *string          `yaml:"logFile" toml:"logFile"`
	Trace   *bool            `yaml:"trace" toml:"trace"`
	Ranges  fileRangesConfig `yaml:"ranges" toml:"ranges"`
}

type fileRangesConfig struct {
	Combine   *bool `yaml:"combine" toml:"combine"`
	MaxRanges *int  `yaml:"maxRanges" toml:"maxRanges"`
}

// getConfig reads a YAML or TOML config file, chosen by file extension.
// Every key set in the file overrides the value in config, even a zero value.
func getConfig(filename string, config Config) (Config, error) {
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrap(err, "failed to read configuration file")
	}

	var file fileConfig
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(configBytes, &file)
	case ".toml":
		err = toml.Unmarshal(configBytes, &file)
	default:
		return config, errors.Errorf("unsupported configuration file type '%s'", filepath.Ext(filename))
	}
	if err != nil {
		return config, errors.Wrapf(err, "failed to decode configuration file %s", filename)
	}

	if file.Port != nil {
		config.Port = *file.Port
	}
	if file.DB != nil {
		config.DB = *file.DB
	}
	if file.LogFile != nil {
		config.LogFile = *file.LogFile
	}
	if file.Trace != nil {
		config.Trace = *file.Trace
	}
	if file.Ranges.Combine != nil {
		config.Ranges.Combine = *file.Ranges.Combine
	}
	if file.Ranges.MaxRanges != nil {
		config.Ranges.MaxRanges = *file.Ranges.MaxRanges
	}
	return config, nil
}
