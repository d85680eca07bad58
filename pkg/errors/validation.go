package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidatePrefix validates an output file name prefix.
// The prefix is glued in front of the source directory name, so it must not
// introduce path components or characters that break file names.
//
// The validation rules are intentionally conservative:
//   - Empty is allowed (no prefix)
//   - No path separators
//   - No control characters or null bytes
//   - Maximum length of 128 characters
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}

	if len(prefix) > 128 {
		return New(ErrCodeInvalidOption, "prefix too long (max 128 characters)")
	}

	for _, r := range prefix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidOption, "prefix contains invalid control characters")
		}
	}

	if strings.ContainsAny(prefix, "/\\") {
		return New(ErrCodeInvalidOption, "prefix cannot contain path separators")
	}

	if strings.Contains(prefix, "..") {
		return New(ErrCodeInvalidOption, "prefix cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateSourcePath checks that path exists.
// Both files and directories are accepted; the frame loader decides how to
// read them.
func ValidateSourcePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "source path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' {
			return New(ErrCodeInvalidPath, "source path contains invalid characters")
		}
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Wrap(ErrCodeFileNotFound, err, "path not found: %s", path)
		}
		return Wrap(ErrCodeInvalidPath, err, "stat %s", path)
	}
	return nil
}

// EnsureOutputDir creates dir (and parents) if needed and checks that the
// result is a directory.
func EnsureOutputDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Wrap(ErrCodeOutputNotDir, err, "create output directory %s", dir)
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", dir)
	}
	if !fi.IsDir() {
		return New(ErrCodeOutputNotDir, "output path is not a directory: %s", dir)
	}
	return nil
}

// ValidateRange checks that an integer option lies within [lo, hi].
func ValidateRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return New(ErrCodeInvalidOption, "%s must be between %d and %d, got %d", name, lo, hi, v)
	}
	return nil
}

// ValidatePositive checks that a float option is strictly greater than zero.
func ValidatePositive(name string, v float64) error {
	if !(v > 0) {
		return New(ErrCodeInvalidOption, "%s must be greater than 0, got %v", name, v)
	}
	return nil
}

// ValidateChoice checks that v is one of the allowed values.
func ValidateChoice(name, v string, allowed []string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return New(ErrCodeInvalidOption, "invalid %s: %q (must be one of: %s)", name, v, strings.Join(allowed, ", "))
}
