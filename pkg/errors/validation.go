package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNameLength bounds property names and export patterns.
const maxNameLength = 256

// ValidatePropertyName validates the name of a graph property.
//
// Names are free-form (the default selection property is "viewSelection")
// and may be empty, but must be at most 256 bytes and free of control
// characters.
func ValidatePropertyName(name string) error {
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidProperty, "property name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProperty, "property name contains invalid control characters")
		}
	}

	return nil
}

// ValidateExportPattern validates the file name pattern of an export.
// The pattern is joined to an export directory, so it must be a bare file
// name without path separators.
func ValidateExportPattern(pattern string) error {
	if pattern == "" {
		return New(ErrCodeInvalidPath, "export pattern cannot be empty")
	}

	if len(pattern) > maxNameLength {
		return New(ErrCodeInvalidPath, "export pattern too long (max %d characters)", maxNameLength)
	}

	if strings.ContainsAny(pattern, "/\\") || pattern != filepath.Base(pattern) {
		return New(ErrCodeInvalidPath, "export pattern cannot contain path separators: %q", pattern)
	}

	for _, r := range pattern {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "export pattern contains invalid characters")
		}
	}

	if pattern == "." || pattern == ".." {
		return New(ErrCodeInvalidPath, "export pattern must name a file: %q", pattern)
	}

	return nil
}
