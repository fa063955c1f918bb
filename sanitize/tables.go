package sanitize

import (
	"github.com/MatthiasKunnen/desktopfilter/mediatype"
)

const (
	DesktopEntryGroup = "Desktop Entry"
	MimeTypeKey       = "MimeType"
)

var denylist = mediatype.NewSet(
	mediatype.MustParse("text/html"),
	mediatype.MustParse("text/rtf"),
	mediatype.MustParse("application/vnd.ms-word.document.macroEnabled.12"),
	mediatype.MustParse("text/plain"),
	mediatype.MustParse("application/vnd.openxmlformats-officedocument.wordprocessingml.document"),
	mediatype.MustParse("text/x-markdown"),
	mediatype.MustParse("application/vnd.oasis.opendocument.text"),
	mediatype.MustParse("application/pdf"),
	mediatype.MustParse("application/xhtml+xml"),
	mediatype.MustParse("application/x-ruby"),
)

// Denylist returns the document formats that a launcher must not claim to open.
// Matching is exact on type and subtype. The returned Set has no mutating methods.
func Denylist() mediatype.Set {
	return denylist
}

var allowedKeys = [...]string{
	"Version",
	"Type",
	"Name",
	"GenericName",
	"Comment",
	"TryExec",
	"Exec",
	"Icon",
	"Categories",
	"X-GNOME-UsesNotifications",
}

// AllowedKeys returns a copy of the keys that survive rewriting, in output order.
// MimeType is not part of it, it is always written last.
func AllowedKeys() []string {
	return append([]string(nil), allowedKeys[:]...)
}
