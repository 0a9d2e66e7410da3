package util

import (
	"path"
	"strings"
)

// Pointer simply returns a pointer to the supplied value
func Pointer[T any](v T) *T {
	return &v
}

// NormalizePath canonicalizes a path for cross-OS comparison: backslashes
// become forward slashes and the result is cleaned. Paths recorded on one
// platform must compare equal to watch events delivered on another.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Clean(p)
}
