package core

import (
	"path"
	"path/filepath"
	"strings"
)

// EnclosedName converts an archive entry name into a path relative to the
// extraction root. It reports false for names that could escape the root:
// empty names, names containing NUL, absolute names, names with a volume or
// drive prefix, and names whose ".." components climb above the root.
// Backslashes are treated as separators.
func EnclosedName(name string) (string, bool) {
	if name == "" || strings.ContainsRune(name, 0) {
		return "", false
	}
	slashed := strings.ReplaceAll(name, `\`, "/")
	if strings.HasPrefix(slashed, "/") || hasVolumeName(slashed) {
		return "", false
	}

	depth := 0
	for _, element := range strings.Split(slashed, "/") {
		switch element {
		case "", ".":
		case "..":
			depth--
			if depth < 0 {
				return "", false
			}
		default:
			depth++
		}
	}

	cleaned := path.Clean(slashed)
	if cleaned == "." {
		return "", false
	}
	return filepath.FromSlash(cleaned), true
}

func hasVolumeName(name string) bool {
	if filepath.VolumeName(name) != "" {
		return true
	}
	first, _, found := strings.Cut(name, "/")
	return len(first) == 2 && first[1] == ':' && isLetter(first[0]) && (found || len(name) == 2)
}

func isLetter(value byte) bool {
	return ('a' <= value && value <= 'z') || ('A' <= value && value <= 'Z')
}
