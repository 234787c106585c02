package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDimension checks a required enclosure dimension.
// It must be strictly positive.
func ValidateDimension(name string, v int) error {
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be a positive integer, got %d", name, v)
	}
	return nil
}

// ValidateThickness checks a material thickness. Zero is accepted and
// produces panels without any thickness allowance.
func ValidateThickness(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative, got %d", name, v)
	}
	return nil
}

// groupNameRegex matches names that are safe to use as file base names.
var groupNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateGroupName validates a material group name, which doubles as the
// base name of the files written for the group.
func ValidateGroupName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "group name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "group name too long (max 64 characters)")
	}
	if !groupNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid group name: %q", name)
	}
	return nil
}

// ValidateOutputDir validates the directory artifacts are written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFileName validates a single artifact file name.
// It ensures the name is a simple basename without path components.
func ValidateFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators")
	}
	if name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "file name cannot be a hidden file")
	}
	return nil
}
