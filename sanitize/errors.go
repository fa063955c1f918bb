package sanitize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MatthiasKunnen/desktopfilter/desktop"
)

// Kind classifies why a file could not be processed.
type Kind int

const (
	// KindUnknown is the Kind of a nil error.
	KindUnknown Kind = iota
	// KindParse means the file is not in the desktop entry format or is not text.
	KindParse
	// KindStructure means the file is not a single [Desktop Entry] group.
	KindStructure
	// KindMissingAttribute means the MimeType key is absent.
	KindMissingAttribute
	// KindMalformedMediaType means a MimeType item is not a valid type/subtype.
	KindMalformedMediaType
	// KindIO means the file could not be read or written.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "ParseError"
	case KindStructure:
		return "StructureError"
	case KindMissingAttribute:
		return "MissingAttributeError"
	case KindMalformedMediaType:
		return "MalformedMediaTypeError"
	case KindIO:
		return "IOError"
	default:
		return "UnknownError"
	}
}

// StructureError is returned when a file does not consist of exactly one [Desktop Entry] group.
type StructureError struct {
	Groups []string
}

func (e *StructureError) Error() string {
	switch {
	case len(e.Groups) == 0:
		return "no [Desktop Entry] section found in file"
	case len(e.Groups) > 1:
		return fmt.Sprintf(
			"can't process files with more than one section, found %d: [%s]",
			len(e.Groups),
			strings.Join(e.Groups, "], ["),
		)
	default:
		return fmt.Sprintf("no [Desktop Entry] section found in file, found [%s]", e.Groups[0])
	}
}

// MissingAttributeError is returned when a required key is absent from the group.
type MissingAttributeError struct {
	Key string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("can't find %s entry in file", e.Key)
}

// MalformedMediaTypeError is returned for the first MimeType item that does not parse.
type MalformedMediaTypeError struct {
	Token string
	Err   error
}

func (e *MalformedMediaTypeError) Error() string {
	return fmt.Sprintf("malformed media type %q: %v", e.Token, e.Err)
}

func (e *MalformedMediaTypeError) Unwrap() error {
	return e.Err
}

// FileError ties a failure to the file it occurred in.
type FileError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first FileError in err's tree, or classifies err itself.
func KindOf(err error) Kind {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind
	}

	return classify(err)
}

func classify(err error) Kind {
	var (
		parseErr     *desktop.ParseError
		structureErr *StructureError
		missingErr   *MissingAttributeError
		malformedErr *MalformedMediaTypeError
	)

	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &parseErr), errors.Is(err, desktop.ErrNotText):
		return KindParse
	case errors.As(err, &structureErr):
		return KindStructure
	case errors.As(err, &missingErr):
		return KindMissingAttribute
	case errors.As(err, &malformedErr):
		return KindMalformedMediaType
	default:
		return KindIO
	}
}

func wrapFile(path string, err error) error {
	if err == nil {
		return nil
	}

	return &FileError{Path: path, Kind: classify(err), Err: err}
}
