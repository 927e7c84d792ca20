package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's
// separator and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// ExpandHome resolves a leading "~" against home and makes relative paths
// relative to home as well, so configured data paths never depend on the
// working directory.
func ExpandHome(p, home string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	switch {
	case p == "~":
		return NormalizePath(home)
	case strings.HasPrefix(p, "~/"), strings.HasPrefix(p, "~\\"):
		return NormalizePath(filepath.Join(home, p[2:]))
	case filepath.IsAbs(NormalizePath(p)):
		return NormalizePath(p)
	default:
		return NormalizePath(filepath.Join(home, p))
	}
}

// SamePath reports whether a and b name the same location after
// normalization.
func SamePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return NormalizePath(a) == NormalizePath(b)
}
