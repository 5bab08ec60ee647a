package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNameLength bounds gallery, method and section names.
const maxNameLength = 128

// ValidateName validates a name that ends up inside a file name or directory
// name (method names, section names, gallery names).
//
// The rules:
//   - No empty names
//   - No control characters
//   - No path separators or parent references
//   - Maximum length of 128 characters
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "%s name too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "%s name %q contains control characters", kind, name)
		}
	}

	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidName, "%s name %q cannot contain path separators", kind, name)
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidName, "%s name %q is reserved", kind, name)
	}

	return nil
}

// ValidatePath validates a configured path (directory or output file).
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// Relative paths may climb out of the root with "..": galleries are commonly
// generated next to, not inside, experiment output trees.
func ValidatePath(kind, path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "%s path cannot be empty", kind)
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "%s path too long (max %d characters)", kind, maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "%s path contains invalid control characters", kind)
		}
	}

	return nil
}

// ValidateOutputPath validates the gallery output file path: a regular path
// that does not name a directory.
func ValidateOutputPath(path string) error {
	if err := ValidatePath("output", path); err != nil {
		return err
	}
	base := filepath.Base(path)
	if strings.HasSuffix(path, "/") || base == "." || base == ".." {
		return New(ErrCodeInvalidPath, "output path %q must name a file", path)
	}
	return nil
}
