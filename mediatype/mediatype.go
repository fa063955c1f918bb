// Package mediatype parses MIME types of the form type/subtype as they appear in the MimeType key
// of desktop files and offers exact-match sets of them.
// Matching is literal: no aliases, no subclasses and no wildcards.
package mediatype

import (
	"errors"
	"fmt"
	"mime"
	"strings"
)

var ErrMissingSubtype = errors.New("expected type/subtype")

// MediaType is a parsed type/subtype pair such as text/html.
// Type and Subtype are lower case, Raw holds the text the value was parsed from.
type MediaType struct {
	Type    string
	Subtype string
	Raw     string
}

// Parse parses a single type/subtype token. Surrounding whitespace is ignored.
// Parameters are not supported, the ; separating them is the list separator in desktop files.
func Parse(s string) (MediaType, error) {
	raw := strings.TrimSpace(s)
	if strings.Contains(raw, ";") {
		return MediaType{}, fmt.Errorf("parse media type %q: parameters are not allowed", s)
	}

	parsed, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return MediaType{}, fmt.Errorf("parse media type %q: %w", s, err)
	}

	// mime.ParseMediaType also accepts content dispositions such as "inline".
	typ, subtype, found := strings.Cut(parsed, "/")
	if !found || subtype == "" {
		return MediaType{}, fmt.Errorf("parse media type %q: %w", s, ErrMissingSubtype)
	}

	return MediaType{Type: typ, Subtype: subtype, Raw: raw}, nil
}

// MustParse is like Parse but panics on error. Use it for tables of known types.
func MustParse(s string) MediaType {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return m
}

// Essence returns the normalized type/subtype.
func (m MediaType) Essence() string {
	return m.Type + "/" + m.Subtype
}

// String returns the text the media type was parsed from.
func (m MediaType) String() string {
	if m.Raw == "" {
		return m.Essence()
	}

	return m.Raw
}

// Equal reports whether type and subtype of both media types match.
func (m MediaType) Equal(other MediaType) bool {
	return m.Type == other.Type && m.Subtype == other.Subtype
}

// SplitList splits a ;-terminated list such as "text/html;image/png;" into its items.
// The ; is a terminator, not a separator: a trailing ; does not produce an empty item.
// Empty items in the middle of the list are dropped as well.
func SplitList(value string) []string {
	result := make([]string, 0)
	for _, item := range strings.Split(value, ";") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		result = append(result, item)
	}

	return result
}

// JoinList joins media types with ; without a trailing terminator.
func JoinList(types []MediaType) string {
	parts := make([]string, len(types))
	for i, m := range types {
		parts[i] = m.String()
	}

	return strings.Join(parts, ";")
}
