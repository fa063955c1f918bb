package basedir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FindConfigFile finds the given suffix in order of priority. First, ConfigHome is checked,
// then, each dir in ConfigDirs is checked.
// If no file exists, an empty path and a nil error are returned.
// Example for suffix: desktopfilter/config.yaml.
func (d Dirs) FindConfigFile(suffix string) (string, error) {
	candidates := append([]string{d.ConfigHome}, d.ConfigDirs...)

	for _, dir := range candidates {
		if dir == "" {
			continue
		}

		path := filepath.Join(dir, suffix)
		_, err := os.Stat(path)
		switch {
		case err == nil:
			return path, nil
		case errors.Is(err, os.ErrNotExist):
		default:
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	return "", nil
}
