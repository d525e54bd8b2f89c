package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// UnknownType is reported for names without a usable extension.
const UnknownType = "unknown"

// maxNameRunes bounds the sanitized part of a stored file name.
const maxNameRunes = 128

// EnsureDir creates dir (and parents) if missing and returns its absolute
// path. Relative paths are resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// Extension returns the lower-cased text after the last '.' in name.
// If the dot is the first or the last character, or there is no dot,
// UnknownType is returned.
func Extension(name string) string {
	dot := strings.LastIndex(name, ".")
	if dot > 0 && dot < len(name)-1 {
		return strings.ToLower(name[dot+1:])
	}
	return UnknownType
}

// FormatSize renders a byte count using binary units.
func FormatSize(size int64) string {
	const unit = 1024
	switch {
	case size < unit:
		return fmt.Sprintf("%d B", size)
	case size < unit*unit:
		return fmt.Sprintf("%.1f KB", float64(size)/unit)
	case size < unit*unit*unit:
		return fmt.Sprintf("%.1f MB", float64(size)/(unit*unit))
	default:
		return fmt.Sprintf("%.1f GB", float64(size)/(unit*unit*unit))
	}
}

// SanitizeName makes name safe to embed in a single path element.
//
// Runs of whitespace become one '_', path separators and any other rune that
// is not a letter, digit, '.', '-' or '_' become '_', ".." sequences are
// broken up and leading dots are dropped. An empty result becomes "document".
func SanitizeName(name string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteRune('_')
			}
			inSpace = true
			continue
		}
		inSpace = false

		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := b.String()
	for strings.Contains(out, "..") {
		out = strings.ReplaceAll(out, "..", "_")
	}
	out = strings.TrimLeft(out, ".")

	if runes := []rune(out); len(runes) > maxNameRunes {
		out = string(runes[:maxNameRunes])
	}
	if out == "" {
		return "document"
	}
	return out
}
