package detector

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// ContentType is the coarse kind of a scanned unit, derived from its extension
type ContentType string

const (
	HTML    ContentType = "html"
	CSS     ContentType = "css"
	JS      ContentType = "js"
	Unknown ContentType = "unknown"
)

// extensionTypes maps lowercased file extensions to content types.
var extensionTypes = map[string]ContentType{
	".html": HTML,
	".htm":  HTML,
	".css":  CSS,
	".scss": CSS,
	".less": CSS,
	".js":   JS,
	".jsx":  JS,
	".ts":   JS,
	".tsx":  JS,
}

// Extensions returns the file extensions recognised for t.
func Extensions(t ContentType) []string {
	var exts []string
	for _, ext := range []string{".html", ".htm", ".css", ".scss", ".less", ".js", ".jsx", ".ts", ".tsx"} {
		if extensionTypes[ext] == t {
			exts = append(exts, ext)
		}
	}
	return exts
}

// Classify derives the content type of a location, which is either a file path or an
// http(s) URL. For URLs only the path component is considered; if the URL cannot be
// parsed the raw string is used instead.
func Classify(location string) ContentType {
	return TypeForExtension(extension(location))
}

// TypeForExtension returns the content type for an extension such as ".css".
func TypeForExtension(ext string) ContentType {
	if t, ok := extensionTypes[strings.ToLower(ext)]; ok {
		return t
	}
	return Unknown
}

func extension(location string) string {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		u, err := url.Parse(location)
		if err == nil {
			return strings.ToLower(path.Ext(u.Path))
		}
	}
	return strings.ToLower(filepath.Ext(location))
}
