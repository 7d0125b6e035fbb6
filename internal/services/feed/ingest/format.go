// Package ingest decodes publication records from files and the console
package ingest

import (
	"path/filepath"
	"slices"
	"strings"

	perr "newsfeed/internal/platform/errors"
)

// Format selects a parser
type Format string

const (
	FormatTXT     Format = "txt"
	FormatJSON    Format = "json"
	FormatXML     Format = "xml"
	FormatYAML    Format = "yaml"
	FormatConsole Format = "console"
)

// Formats lists the accepted values in menu order
var Formats = []Format{FormatConsole, FormatTXT, FormatJSON, FormatXML, FormatYAML}

var extensions = map[Format][]string{
	FormatTXT:  {".txt"},
	FormatJSON: {".json"},
	FormatXML:  {".xml"},
	FormatYAML: {".yaml", ".yml"},
}

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Formats, f) {
		return f, nil
	}
	return "", perr.WithField(perr.InvalidArgf("unknown format %q", s), "format")
}

// FormatFromPath guesses the format from a file extension
func FormatFromPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for f, exts := range extensions {
		if slices.Contains(exts, ext) {
			return f, true
		}
	}
	return "", false
}

// Matches reports whether path carries an extension f accepts
func (f Format) Matches(path string) bool {
	return slices.Contains(extensions[f], strings.ToLower(filepath.Ext(path)))
}

// File reports whether f reads from a file path
func (f Format) File() bool { return f != FormatConsole && f != "" }
