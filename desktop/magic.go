package desktop

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode"
)

const (
	sniffLineStart = iota
	sniffInComment
)

// IsDesktopFile returns true if the content is likely a desktop file, i.e. the first line that is
// neither empty nor a comment is [Desktop Entry].
// Read errors and invalid UTF-8 outside of comments are treated as "not a desktop file".
//
// See the [desktop entry format].
//
// [desktop entry format]: https://specifications.freedesktop.org/desktop-entry-spec/1.5/basic-format.html
func IsDesktopFile(reader io.Reader) bool {
	expected := []byte(requiredGroupHeader[1:])
	r := bufio.NewReader(reader)

	if maybeBom, err := r.Peek(len(utf8Bom)); err == nil && bytes.Equal(maybeBom, utf8Bom) {
		if _, err := r.Discard(len(utf8Bom)); err != nil {
			return false
		}
	}

	state := sniffLineStart
	for {
		readRune, _, err := r.ReadRune()
		if err != nil {
			return false
		}

		if state == sniffInComment {
			// Garbage in comments is ignored
			if readRune == '\n' {
				state = sniffLineStart
			}
			continue
		}

		switch readRune {
		case unicode.ReplacementChar:
			return false
		case '#':
			state = sniffInComment
		case '\n':
		case '[':
			header := make([]byte, len(expected))
			if _, err := io.ReadFull(r, header); err != nil {
				return false
			}

			return bytes.Equal(header, expected)
		default:
			return false
		}
	}
}

// IsDesktopFilePath opens the file at path and runs IsDesktopFile on its content.
func IsDesktopFilePath(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open file '%s' to check if it a desktop file: %w", path, err)
	}
	defer file.Close()

	return IsDesktopFile(file), nil
}
