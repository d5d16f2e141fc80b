package vls

import (
	"strings"
)

// cleanPath normalizes a mount or lookup path to the internal form:
// no leading or trailing slashes, empty string for the root.
func cleanPath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "." {
		return ""
	}
	return path
}

// hasPrefix checks if path lives under the given mount point.
// Both paths must be cleaned before calling.
func hasPrefix(path, prefix string) bool {
	// Root matches everything
	if prefix == "" {
		return true
	}

	if path == prefix {
		return true
	}

	return strings.HasPrefix(path, prefix+"/")
}

// trimPrefix removes a mount point from path, yielding the path relative
// to the mount root without leading slashes.
func trimPrefix(path, prefix string) string {
	if prefix == "" {
		return path
	}

	if path == prefix {
		return ""
	}

	return strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
}
