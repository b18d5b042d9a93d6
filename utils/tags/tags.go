// Package tags turns free text into an ordered tag list.
package tags

import "strings"

// Parse splits text on commas, trims each piece, and drops empty pieces.
// Relative order is preserved; no case folding, no de-duplication.
func Parse(text string) []string {
	parts := strings.Split(text, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		result = append(result, tag)
	}
	return result
}

// Join renders a tag list back into the comma-joined form fed to the
// embedding model.
func Join(list []string) string {
	return strings.Join(list, ", ")
}
