// Command desktopfilter strips document MIME types and unknown keys from desktop files.
//
// Usage:
//
//	desktopfilter [-n] [--fail-fast] <file|dir>...
//
// Every file is reduced to a single [Desktop Entry] group with a fixed set of keys. MIME types
// for plain documents, such as text/plain, text/html and application/pdf, are removed from the
// MimeType key. Directories are searched for desktop files.
package main

import (
	"os"
)

// Set via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
