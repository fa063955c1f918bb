package desktop

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

const requiredGroupHeader = "[Desktop Entry]"

// maxLineLength is the longest line Parse accepts.
const maxLineLength = 1024 * 1024

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

var (
	ErrKeyOutsideGroup  = errors.New("key-value line found before the first group header")
	ErrMissingSeparator = errors.New("tried to read key-value line but no = was found")
	ErrInvalidKey       = errors.New("invalid key")
	ErrInvalidValue     = errors.New("value is not valid UTF-8")
	ErrDuplicateGroup   = errors.New("duplicate group")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrNotText          = errors.New("file does not contain text")
	ErrLineTooLong      = fmt.Errorf("line exceeds %d bytes", maxLineLength)
)

// ParseError is returned by Parse when the content is not in the desktop entry format.
// Line is 1-based.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse failure at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads content in the desktop entry format.
// No group is required, validating the structure is up to the caller.
func Parse(reader io.Reader) (*File, error) {
	var file File
	var current *Group
	sc := bufio.NewScanner(reader)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	seenKeys := make(map[string]bool)
	seenGroups := make(map[string]bool)

	lineNumber := 0
	for sc.Scan() {
		lineNumber++
		raw := sc.Bytes()
		if lineNumber == 1 {
			raw = bytes.TrimPrefix(raw, utf8Bom)
		}

		line := strings.TrimRight(string(raw), " \t")
		switch {
		case len(line) == 0:
			continue
		case strings.HasPrefix(line, "#"):
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			groupName := line[1 : len(line)-1]
			if seenGroups[groupName] {
				return nil, &ParseError{
					Line: lineNumber,
					Err:  fmt.Errorf("%w [%s]", ErrDuplicateGroup, groupName),
				}
			}
			seenGroups[groupName] = true
			clear(seenKeys)

			file.Groups = append(file.Groups, Group{Name: groupName})
			current = &file.Groups[len(file.Groups)-1]
			continue
		}

		if current == nil {
			return nil, &ParseError{Line: lineNumber, Err: ErrKeyOutsideGroup}
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, &ParseError{
				Line: lineNumber,
				Err:  fmt.Errorf("%w. Line: %s", ErrMissingSeparator, line),
			}
		}

		// Whitespace around = is allowed by the format and is not part of key or value.
		key = strings.TrimRight(key, " \t")
		value = strings.TrimLeft(value, " \t")

		if !isValidKey(key) {
			return nil, &ParseError{
				Line: lineNumber,
				Err:  fmt.Errorf("%w: %q", ErrInvalidKey, key),
			}
		}

		if !utf8.ValidString(value) {
			return nil, &ParseError{Line: lineNumber, Err: ErrInvalidValue}
		}

		if seenKeys[key] {
			return nil, &ParseError{
				Line: lineNumber,
				Err:  fmt.Errorf("%w %s in group [%s]", ErrDuplicateKey, key, current.Name),
			}
		}
		seenKeys[key] = true

		current.Attrs = append(current.Attrs, Attr{Key: key, Value: value})
	}

	if err := sc.Err(); errors.Is(err, bufio.ErrTooLong) {
		return nil, &ParseError{Line: lineNumber + 1, Err: ErrLineTooLong}
	} else if err != nil {
		return nil, fmt.Errorf("failed reading line %d: %w", lineNumber+1, err)
	}

	return &file, nil
}

// ParseFile opens and parses the file at path without sniffing its content.
func ParseFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ParseFile, failed to open file %s: %w", path, err)
	}
	defer file.Close()

	return Parse(file)
}

// LoadFile reads the file at path, verifies that it contains text and parses it.
// Binary content results in ErrNotText.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: failed to read desktop file '%s': %w", path, err)
	}

	if len(data) > 0 && !isText(data) {
		return nil, fmt.Errorf(
			"LoadFile: desktop file '%s' detected as %s: %w",
			path,
			mimetype.Detect(data).String(),
			ErrNotText,
		)
	}

	parsed, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("LoadFile: failed to parse desktop file '%s': %w", path, err)
	}

	return parsed, nil
}

// isText returns true if the sniffed type of data is text/plain or a descendant of it.
func isText(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}

	return false
}

func isValidKey(key string) bool {
	if len(key) == 0 {
		return false
	}

	if strings.HasSuffix(key, "[]") {
		return false
	}

	return isAsciiNoControl(key)
}

func isAsciiNoControl(value string) bool {
	for _, r := range value {
		if r > unicode.MaxASCII || unicode.IsControl(r) {
			return false
		}
	}

	return true
}
