// Package sanitize reduces desktop files to a known-safe minimal form.
//
// A file is accepted only if it consists of a single [Desktop Entry] group. The output contains
// the keys of AllowedKeys, in that order, followed by the MimeType key from which every entry of
// Denylist has been removed.
package sanitize

import (
	"bytes"
	"fmt"

	"github.com/MatthiasKunnen/desktopfilter/desktop"
	"github.com/MatthiasKunnen/desktopfilter/mediatype"
)

// Result is the outcome of processing a single desktop file.
type Result struct {
	// Content is the rendered desktop file.
	Content []byte

	// Kept holds the MimeType entries that remain, in source order.
	Kept []mediatype.MediaType

	// Removed holds the MimeType entries that matched Denylist, in source order.
	Removed []mediatype.MediaType
}

// Validate returns the [Desktop Entry] group of file.
// It fails with *StructureError unless the file has exactly one group and it is named
// Desktop Entry.
func Validate(file *desktop.File) (*desktop.Group, error) {
	if len(file.Groups) != 1 {
		return nil, &StructureError{Groups: file.GroupNames()}
	}

	group, ok := file.Group(DesktopEntryGroup)
	if !ok {
		return nil, &StructureError{Groups: file.GroupNames()}
	}

	return group, nil
}

// FilterMimeTypes parses the MimeType key of group and splits its entries into the ones that
// are kept and the ones in Denylist.
// Parsing is all or nothing: the first malformed entry fails with *MalformedMediaTypeError.
func FilterMimeTypes(group *desktop.Group) (kept, removed []mediatype.MediaType, err error) {
	value, ok := group.Get(MimeTypeKey)
	if !ok {
		return nil, nil, &MissingAttributeError{Key: MimeTypeKey}
	}

	kept = make([]mediatype.MediaType, 0)
	removed = make([]mediatype.MediaType, 0)
	for _, token := range mediatype.SplitList(value) {
		m, err := mediatype.Parse(token)
		if err != nil {
			return nil, nil, &MalformedMediaTypeError{Token: token, Err: err}
		}

		if denylist.Contains(m) {
			removed = append(removed, m)
		} else {
			kept = append(kept, m)
		}
	}

	return kept, removed, nil
}

// Render writes the group header, the allowed keys present in group and the given MimeType
// value. Every line, including the last, ends with a newline.
func Render(group *desktop.Group, mimeTypes string) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "[%s]\n", group.Name)
	for _, key := range allowedKeys {
		if value, ok := group.Get(key); ok {
			fmt.Fprintf(&buf, "%s=%s\n", key, value)
		}
	}
	fmt.Fprintf(&buf, "%s=%s\n", MimeTypeKey, mimeTypes)

	return buf.Bytes()
}

// Process validates file, filters its MimeType and renders the result.
// file is not modified.
func Process(file *desktop.File) (Result, error) {
	group, err := Validate(file)
	if err != nil {
		return Result{}, err
	}

	kept, removed, err := FilterMimeTypes(group)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Content: Render(group, mediatype.JoinList(kept)),
		Kept:    kept,
		Removed: removed,
	}, nil
}

// ProcessFile loads the desktop file at path and processes it.
// Errors are of type *FileError.
func ProcessFile(path string) (Result, error) {
	file, err := desktop.LoadFile(path)
	if err != nil {
		return Result{}, wrapFile(path, err)
	}

	result, err := Process(file)
	if err != nil {
		return Result{}, wrapFile(path, fmt.Errorf("error processing file: %w", err))
	}

	return result, nil
}
