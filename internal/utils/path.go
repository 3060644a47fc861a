package utils

import (
	"path/filepath"
	"strconv"
	"strings"
)

// JoinPath joins path parts using forward slashes regardless of host OS.
// It strips leading/trailing slashes from each component.
// Pattern:
//   - No parts = ""
//   - Single part = "{part}"
//   - Several parts = "{part}/{part}/..."
func JoinPath(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		part = strings.Trim(part, "/")
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}

	return strings.Join(cleaned, "/")
}

// CopyRoot returns <dst>/<index> on the host filesystem
func CopyRoot(dst string, index int) string {
	return filepath.Join(dst, strconv.Itoa(index))
}

// CopyPath maps a slash-separated seed path to <dst>/<index>/<rel> on the host filesystem
func CopyPath(dst string, index int, rel string) string {
	return filepath.Join(CopyRoot(dst, index), filepath.FromSlash(rel))
}
