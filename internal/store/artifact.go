package store

import (
	"path"
	"strings"
)

// cleanArtifactKey normalises key and rejects keys that are empty, absolute
// or that climb out of the store root.
func cleanArtifactKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidArtifactKey
	}

	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidArtifactKey
	}

	return cleaned, nil
}
