// Package config loads the optional desktopfilter configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/MatthiasKunnen/desktopfilter/basedir"
)

// FileSuffix is the location of the config file relative to an XDG config directory.
var FileSuffix = filepath.Join("desktopfilter", "config.yaml")

// Config holds the settings that can be set in the config file. Command line flags override them.
type Config struct {
	// LogLevel is one of the logrus levels: panic, fatal, error, warn, info, debug, trace.
	LogLevel string `yaml:"logLevel"`

	// FailFast stops processing at the first file that fails instead of reporting every failure.
	FailFast bool `yaml:"failFast"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{LogLevel: log.InfoLevel.String()}
}

// Level returns the parsed LogLevel.
func (c Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return level, fmt.Errorf("invalid logLevel: %w", err)
	}

	return level, nil
}

// Decode reads a YAML config. Fields that are absent keep their default value, unknown fields
// are an error.
func Decode(reader io.Reader) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads the config file at path.
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// Find loads the first config file found in dirs, or returns Default if there is none.
// The returned path is empty in the latter case.
func Find(dirs basedir.Dirs) (Config, string, error) {
	path, err := dirs.FindConfigFile(FileSuffix)
	switch {
	case err != nil:
		return Config{}, "", err
	case path == "":
		return Default(), "", nil
	}

	cfg, err := Load(path)
	return cfg, path, err
}
