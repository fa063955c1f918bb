package sanitize

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Writer persists rendered desktop files.
//
// In dry run mode the filesystem is never touched, the content is written to Out instead.
// Otherwise the file is replaced atomically: the old content stays in place unless the new
// content has been written completely.
type Writer struct {
	DryRun bool

	// Out receives the content in dry run mode.
	Out io.Writer

	// Label prefixes dry run output with a "<path>:" line. Use it when processing more than
	// one file so the output blocks can be told apart.
	Label bool

	blocks int
}

// Write stores content for path and returns whether the file was, or in dry run mode would be,
// changed. Errors are of type *FileError.
func (w *Writer) Write(path string, content []byte) (bool, error) {
	changed, err := w.write(path, content)
	return changed, wrapFile(path, err)
}

func (w *Writer) write(path string, content []byte) (bool, error) {
	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	changed := err != nil || !bytes.Equal(current, content)

	if w.DryRun {
		return changed, w.print(path, content)
	}

	if !changed {
		return false, nil
	}

	err = replaceFile(path, func(dst io.Writer) error {
		_, err := dst.Write(content)
		return err
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

func (w *Writer) print(path string, content []byte) error {
	out := w.Out
	if out == nil {
		out = os.Stdout
	}

	if w.Label {
		if w.blocks > 0 {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(out, "%s:\n", path); err != nil {
			return err
		}
	}
	w.blocks++

	_, err := out.Write(content)
	return err
}

// replaceFile atomically replaces the file at path with what write produces.
// If path is a symbolic link, the file it points to is replaced and the link is kept.
// The permissions of the existing file are kept. On any error, the temporary file is removed and
// path is left untouched.
func replaceFile(path string, write func(io.Writer) error) error {
	target, err := filepath.EvalSymlinks(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		target = path
	case err != nil:
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	pending, err := renameio.NewPendingFile(
		target,
		renameio.WithTempDir(filepath.Dir(target)),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	defer pending.Cleanup()

	if err := write(pending); err != nil {
		return fmt.Errorf("failed to write to temporary file for %s: %w", path, err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("error writing to file %s: %w", path, err)
	}

	return nil
}
