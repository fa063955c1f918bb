// Package basedir resolves configuration directories as specified by the
// [XDG Base Directory Specification].
//
// [XDG Base Directory Specification]: https://specifications.freedesktop.org/basedir-spec/0.8/
package basedir

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var ErrNoHome = errors.New("$HOME environment variable not set")

// Dirs holds the base directories relevant for locating configuration.
type Dirs struct {
	// ConfigHome is the single base directory relative to which user-specific configuration files
	// should be written. This directory is defined by the environment variable $XDG_CONFIG_HOME.
	ConfigHome string

	// ConfigDirs is a set of preference ordered base directories relative to which configuration
	// files should be searched. This set of directories is defined by the environment
	// variable $XDG_CONFIG_DIRS.
	ConfigDirs []string
}

// FromEnv resolves the base directories using the process environment.
func FromEnv() (Dirs, error) {
	return FromLookup(os.Getenv)
}

// FromLookup resolves the base directories using getenv to read environment variables.
// Relative paths in the environment are ignored, as the basedir spec requires.
func FromLookup(getenv func(string) string) (Dirs, error) {
	home := getenv("HOME")
	if home == "" {
		return Dirs{}, ErrNoHome
	}

	return Dirs{
		ConfigHome: singleVar(getenv, "XDG_CONFIG_HOME", filepath.Join(home, ".config")),
		ConfigDirs: listVar(getenv, "XDG_CONFIG_DIRS", []string{"/etc/xdg"}),
	}, nil
}

func singleVar(getenv func(string) string, envName string, defaultValue string) string {
	envValue := getenv(envName)
	if envValue == "" || !filepath.IsAbs(envValue) {
		return defaultValue
	}

	return envValue
}

func listVar(getenv func(string) string, envName string, defaultValue []string) []string {
	envValue := getenv(envName)
	if envValue == "" {
		return defaultValue
	}

	result := make([]string, 0)
	for _, path := range strings.Split(envValue, ":") {
		if path == "" || !filepath.IsAbs(path) {
			continue
		}

		result = append(result, path)
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
