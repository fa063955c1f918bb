package desktop

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FindFiles returns the paths of all desktop files below the given directories.
// Files with the .desktop extension are always included, .directory files never are.
// Other files are included when IsDesktopFilePath recognizes them.
// Symbolic links are included when they point to a regular file, the returned path is the link.
// The result holds the paths of dirs[0] first, each directory in lexical order.
func FindFiles(dirs []string) ([]string, error) {
	result := make([]string, 0)

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			if !isRegularFile(path, entry) {
				return nil
			}

			switch filepath.Ext(path) {
			case ".desktop":
				result = append(result, path)
			case ".directory":
			default:
				isDesktopFile, err := IsDesktopFilePath(path)
				if isDesktopFile && err == nil {
					result = append(result, path)
				}
			}

			return nil
		})

		if err != nil {
			return result, fmt.Errorf("FindFiles, failed to walk dir %s for desktop files: %w", dir, err)
		}
	}

	return result, nil
}

// isRegularFile reports whether entry is a regular file or a symbolic link to one.
func isRegularFile(path string, entry fs.DirEntry) bool {
	mode := entry.Type()
	if mode&fs.ModeSymlink == 0 {
		return mode.IsRegular()
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
