// Package imagefile validates and normalizes upload metadata: file names
// and mime types.
package imagefile

import (
	"path/filepath"
	"strings"
)

// mimeByExtension is the fixed table of supported upload formats.
var mimeByExtension = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
}

// SanitizeFileName strips any path component from name and replaces
// internal spaces with underscores. Returns "" if no usable basename
// remains.
func SanitizeFileName(name string) string {
	base := strings.TrimSpace(name)
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if base == "" || base == "." || base == ".." {
		return ""
	}
	return strings.ReplaceAll(base, " ", "_")
}

// InferMimeType resolves a mime type from the file extension.
// Returns "" for unknown extensions; callers must then require an
// explicit mime type from the uploader.
func InferMimeType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	return mimeByExtension[ext]
}
